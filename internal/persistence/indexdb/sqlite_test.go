package indexdb

import (
	"context"
	"path/filepath"
	"testing"

	"piratekingdoms.io/internal/protocol"
)

func openTestIndex(t *testing.T) *SQLiteIndex {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGoldHistoryRoundTrip(t *testing.T) {
	s := openTestIndex(t)

	s.RecordGold("P1", 10, "collect")
	s.RecordGold("P1", 25, "collect")
	s.RecordGold("P2", 5, "storm")
	s.Flush()

	got, err := s.GoldHistory(context.Background(), "P1", 10)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0] != 10 || got[1] != 25 {
		t.Fatalf("gold history = %v, want [10 25]", got)
	}
}

func TestLatestLeaderboardReturnsNewestStandings(t *testing.T) {
	s := openTestIndex(t)

	s.RecordLeaderboard([]protocol.LeaderboardEntry{
		{Rank: 1, PlayerID: "P1", Name: "anne", Gold: 10},
	})
	s.Flush()
	s.RecordLeaderboard([]protocol.LeaderboardEntry{
		{Rank: 1, PlayerID: "P2", Name: "mary", Gold: 90},
		{Rank: 2, PlayerID: "P1", Name: "anne", Gold: 30},
	})
	s.Flush()

	got, err := s.LatestLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].PlayerID != "P2" || got[0].Rank != 1 {
		t.Fatalf("stale standings returned: %+v", got)
	}
}

func TestRecordAfterCloseIsNoOp(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Must not panic on a closed channel.
	s.RecordGold("P1", 1, "collect")
	s.Flush()
}

func TestNilIndexIsSafe(t *testing.T) {
	var s *SQLiteIndex
	s.RecordGold("P1", 1, "collect")
	s.RecordLeaderboard(nil)
	s.Flush()
}
