package world

import (
	"sort"

	"piratekingdoms.io/internal/protocol"
)

// recomputeLeaderboard derives the top-N by gold descending, ties broken by
// join order. It runs on the fixed ticker and after any gold-moving event.
func (w *World) recomputeLeaderboard(announce bool) {
	ranked := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Gold != ranked[j].Gold {
			return ranked[i].Gold > ranked[j].Gold
		}
		return ranked[i].JoinSeq < ranked[j].JoinSeq
	})
	if len(ranked) > w.cfg.LeaderboardSize {
		ranked = ranked[:w.cfg.LeaderboardSize]
	}

	entries := make([]protocol.LeaderboardEntry, len(ranked))
	for i, p := range ranked {
		entries[i] = protocol.LeaderboardEntry{
			Rank:     i + 1,
			PlayerID: p.ID,
			Name:     p.Name,
			Gold:     p.Gold,
		}
	}
	w.board = entries

	if announce {
		w.broadcast(protocol.EventLeaderboardUpdate, protocol.LeaderboardUpdate{Entries: entries})
		if w.history != nil {
			w.history.RecordLeaderboard(entries)
		}
	}
}

func (w *World) playerStates() []protocol.PlayerState {
	out := make([]protocol.PlayerState, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p.state())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
