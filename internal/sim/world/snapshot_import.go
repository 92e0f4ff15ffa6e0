package world

import (
	"time"

	"piratekingdoms.io/internal/persistence/snapshot"
	"piratekingdoms.io/internal/protocol"
)

// ImportSnapshot restores durable world state before Run starts. Connection
// bound state cannot survive a restart: island owners must be live players
// and alliances need both members online, so player records, alliances and
// pending trades from the snapshot are swept and only the terrain economy
// (islands, power-ups, chat, counters) carries over.
func (w *World) ImportSnapshot(snap snapshot.SnapshotV1) {
	if n := len(snap.Islands); n > 0 {
		islands := make([]*Island, 0, n)
		for _, iv := range snap.Islands {
			gold := iv.Gold
			if gold > w.cfg.IslandGoldCap {
				gold = w.cfg.IslandGoldCap
			}
			if gold < 0 {
				gold = 0
			}
			islands = append(islands, &Island{
				Index: iv.Index,
				Pos:   Vec2{X: iv.X, Y: iv.Y},
				Gold:  gold,
			})
		}
		w.islands = islands
	}

	for _, pv := range snap.PowerUps {
		w.powerUps[pv.ID] = &PowerUp{
			ID:      pv.ID,
			Kind:    pv.Kind,
			Pos:     Vec2{X: pv.X, Y: pv.Y},
			Spawned: time.UnixMilli(pv.SpawnedMs),
		}
	}

	for _, cv := range snap.Chat {
		w.chat = append(w.chat, protocol.ChatMessage{
			ID:        cv.ID,
			From:      cv.From,
			Text:      cv.Text,
			Timestamp: cv.Timestamp,
		})
	}
	if len(w.chat) > w.cfg.ChatHistoryMax {
		w.chat = w.chat[len(w.chat)-w.cfg.ChatHistoryMax:]
	}

	// Counters only move forward so restored ids never collide.
	c := snap.Counters
	if c.NextPlayer > w.nextPlayerNum.Load() {
		w.nextPlayerNum.Store(c.NextPlayer)
	}
	if c.NextPowerUp > w.nextPowerUpNum.Load() {
		w.nextPowerUpNum.Store(c.NextPowerUp)
	}
	if c.NextQuest > w.nextQuestNum.Load() {
		w.nextQuestNum.Store(c.NextQuest)
	}
	if c.NextChat > w.nextChatNum.Load() {
		w.nextChatNum.Store(c.NextChat)
	}

	if dropped := len(snap.Players) + len(snap.Alliances) + len(snap.Trades); dropped > 0 {
		w.log.Printf("snapshot import: restored %d islands, %d power-ups, %d chat messages; swept %d stale player-bound records",
			len(snap.Islands), len(snap.PowerUps), len(snap.Chat), dropped)
	}
}
