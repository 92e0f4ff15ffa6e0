package world

import (
	"testing"

	"piratekingdoms.io/internal/protocol"
)

func TestCollectResourceMovesGold(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	drainFrames(t, out)

	w.islands[0].Gold = 25
	w.handleCollectResource(p, 0)
	if p.Gold != 10 || w.islands[0].Gold != 15 {
		t.Fatalf("collect: player=%d island=%d", p.Gold, w.islands[0].Gold)
	}

	frames := drainFrames(t, out)
	var ru protocol.ResourceUpdate
	if !lastEvent(t, frames, protocol.EventResourceUpdate, &ru) {
		t.Fatalf("no resourceUpdate broadcast")
	}
	if len(ru.PlayerGold) != 1 || ru.PlayerGold[0].Gold != 10 {
		t.Fatalf("resourceUpdate gold wrong: %+v", ru.PlayerGold)
	}
}

func TestCollectResourceDrainsToZeroNotBelow(t *testing.T) {
	w := newTestWorld(t)
	p, _ := joinPlayer(t, w, "anne")

	w.islands[0].Gold = 7
	w.handleCollectResource(p, 0)
	if p.Gold != 7 || w.islands[0].Gold != 0 {
		t.Fatalf("partial collect: player=%d island=%d", p.Gold, w.islands[0].Gold)
	}

	// Empty island yields nothing and stays silent.
	out := w.clients[p.ID].Out
	drainFrames(t, out)
	w.handleCollectResource(p, 0)
	if p.Gold != 7 {
		t.Fatalf("collect from empty island changed gold: %d", p.Gold)
	}
	if len(drainFrames(t, out)) != 0 {
		t.Fatalf("empty collect emitted events")
	}
}

func TestCollectResourceBadIndexIgnored(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	drainFrames(t, out)

	w.handleCollectResource(p, 99)
	if p.Gold != 0 {
		t.Fatalf("gold mutated on bad island index")
	}
	if len(drainFrames(t, out)) != 0 {
		t.Fatalf("bad island index emitted events")
	}
}

func TestUpgradeShip(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	drainFrames(t, out)

	// Cost is floor(speed/10) = 16 for a fresh sloop.
	p.Gold = 20
	w.handleUpgradeShip(p)
	if p.Gold != 4 || p.Speed != 180 || p.Strength != 15 {
		t.Fatalf("upgrade applied wrong: gold=%d speed=%d strength=%d", p.Gold, p.Speed, p.Strength)
	}
	if p.BaseSpeed != 180 || p.BaseStrength != 15 {
		t.Fatalf("upgrade must move baselines too: %d/%d", p.BaseSpeed, p.BaseStrength)
	}

	var res protocol.UpgradeResult
	if !lastEvent(t, drainFrames(t, out), protocol.EventUpgradeResult, &res) {
		t.Fatalf("no upgradeResult")
	}
	if !res.Success || res.NewSpeed != 180 {
		t.Fatalf("bad upgradeResult: %+v", res)
	}
}

func TestUpgradeShipUnaffordable(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	drainFrames(t, out)

	p.Gold = 5
	w.handleUpgradeShip(p)
	if p.Gold != 5 || p.Speed != 160 || p.Strength != 10 {
		t.Fatalf("failed upgrade mutated state: gold=%d speed=%d strength=%d", p.Gold, p.Speed, p.Strength)
	}
	var res protocol.UpgradeResult
	if !lastEvent(t, drainFrames(t, out), protocol.EventUpgradeResult, &res) {
		t.Fatalf("no upgradeResult")
	}
	if res.Success {
		t.Fatalf("unaffordable upgrade reported success")
	}
}

func TestRegenRespectsCap(t *testing.T) {
	w := newTestWorld(t)
	w.islands[0].Gold = 199
	w.islands[1].Gold = 0
	w.regenIslands()
	if w.islands[0].Gold > 200 {
		t.Fatalf("regen exceeded cap: %d", w.islands[0].Gold)
	}
	if w.islands[1].Gold < 1 || w.islands[1].Gold > 5 {
		t.Fatalf("regen out of range: %d", w.islands[1].Gold)
	}
}
