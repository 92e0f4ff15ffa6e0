package world

import (
	"testing"
)

func TestSnapshotRoundTripCarriesWorldState(t *testing.T) {
	w := newTestWorld(t)
	p, _ := joinPlayer(t, w, "anne")
	p.Gold = 42
	w.islands[0].Gold = 77
	w.islands[0].Owner = p.ID
	w.powerUps["PU1"] = &PowerUp{ID: "PU1", Kind: "speed", Pos: Vec2{X: 5, Y: 5}}
	w.handleChatMessage(p, "ahoy")

	snap := w.ExportSnapshot()
	if len(snap.Players) != 1 || snap.Players[0].Gold != 42 {
		t.Fatalf("players not captured: %+v", snap.Players)
	}
	if len(snap.Islands) != 5 || snap.Islands[0].Gold != 77 {
		t.Fatalf("islands not captured: %+v", snap.Islands)
	}
	if len(snap.PowerUps) != 1 || len(snap.Chat) != 1 {
		t.Fatalf("power-ups/chat not captured")
	}

	w2 := newTestWorld(t)
	w2.ImportSnapshot(snap)

	// Terrain and history carry over; connection-bound records do not.
	if w2.islands[0].Gold != 77 {
		t.Fatalf("island gold not restored: %d", w2.islands[0].Gold)
	}
	if w2.islands[0].Owner != "" {
		t.Fatalf("owner restored without a live connection")
	}
	if len(w2.players) != 0 {
		t.Fatalf("player records restored without connections")
	}
	if len(w2.powerUps) != 1 || len(w2.chat) != 1 {
		t.Fatalf("power-ups/chat not restored")
	}
}

func TestImportMovesCountersForwardOnly(t *testing.T) {
	w := newTestWorld(t)
	joinPlayer(t, w, "anne")
	snap := w.ExportSnapshot()

	w2 := newTestWorld(t)
	w2.ImportSnapshot(snap)
	p2, _ := joinPlayer(t, w2, "mary")
	if p2.ID == "P1" {
		t.Fatalf("restored counter reissued id P1")
	}
}
