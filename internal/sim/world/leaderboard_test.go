package world

import (
	"testing"

	"piratekingdoms.io/internal/protocol"
)

func TestLeaderboardSortsDescending(t *testing.T) {
	w := newTestWorld(t)
	a, _ := joinPlayer(t, w, "a")
	b, bOut := joinPlayer(t, w, "b")
	c, _ := joinPlayer(t, w, "c")
	a.Gold = 30
	b.Gold = 90
	c.Gold = 10
	drainFrames(t, bOut)

	w.recomputeLeaderboard(true)

	var lb protocol.LeaderboardUpdate
	if !lastEvent(t, drainFrames(t, bOut), protocol.EventLeaderboardUpdate, &lb) {
		t.Fatalf("leaderboard not broadcast")
	}
	if len(lb.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(lb.Entries))
	}
	for i := 1; i < len(lb.Entries); i++ {
		if lb.Entries[i-1].Gold < lb.Entries[i].Gold {
			t.Fatalf("not descending at %d: %+v", i, lb.Entries)
		}
	}
	if lb.Entries[0].PlayerID != b.ID || lb.Entries[0].Rank != 1 {
		t.Fatalf("wrong leader: %+v", lb.Entries[0])
	}
}

func TestLeaderboardTiesBreakByJoinOrder(t *testing.T) {
	w := newTestWorld(t)
	a, _ := joinPlayer(t, w, "first")
	b, _ := joinPlayer(t, w, "second")
	a.Gold = 40
	b.Gold = 40

	w.recomputeLeaderboard(false)
	if w.board[0].PlayerID != a.ID {
		t.Fatalf("tie not broken by join order: %+v", w.board)
	}
}

func TestLeaderboardTopN(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 15; i++ {
		p, _ := joinPlayer(t, w, "p")
		p.Gold = i
	}
	w.recomputeLeaderboard(false)
	if len(w.board) != 10 {
		t.Fatalf("leaderboard size = %d, want 10", len(w.board))
	}
	if w.board[0].Gold != 14 {
		t.Fatalf("leader gold = %d, want 14", w.board[0].Gold)
	}
}

func TestChatRingCapped(t *testing.T) {
	w := newTestWorld(t)
	p, _ := joinPlayer(t, w, "anne")
	for i := 0; i < 60; i++ {
		w.handleChatMessage(p, "ahoy")
	}
	if len(w.chat) != 50 {
		t.Fatalf("chat ring = %d, want 50", len(w.chat))
	}
}
