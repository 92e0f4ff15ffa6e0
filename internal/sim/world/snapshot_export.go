package world

import (
	"sort"
	"time"

	"piratekingdoms.io/internal/persistence/snapshot"
)

// ExportSnapshot captures the full world state. It must only be called from
// the loop goroutine, or after Run has returned.
func (w *World) ExportSnapshot() snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version:   1,
			Seed:      w.seed,
			CreatedMs: time.Now().UnixMilli(),
		},
		WorldWidth:  w.cfg.WorldWidth,
		WorldHeight: w.cfg.WorldHeight,
		Counters: snapshot.CountersV1{
			NextPlayer:  w.nextPlayerNum.Load(),
			NextPowerUp: w.nextPowerUpNum.Load(),
			NextQuest:   w.nextQuestNum.Load(),
			NextChat:    w.nextChatNum.Load(),
		},
	}

	for _, p := range w.players {
		pv := snapshot.PlayerV1{
			ID:           p.ID,
			Name:         p.Name,
			X:            p.Pos.X,
			Y:            p.Pos.Y,
			ShipType:     p.ShipType,
			Speed:        p.Speed,
			Strength:     p.Strength,
			Gold:         p.Gold,
			BaseSpeed:    p.BaseSpeed,
			BaseStrength: p.BaseStrength,
			AllianceID:   p.AllianceID,
			JoinSeq:      p.JoinSeq,
		}
		if len(p.Inventory) > 0 {
			pv.Inventory = make(map[string]int, len(p.Inventory))
			for k, v := range p.Inventory {
				pv.Inventory[k] = v
			}
		}
		if p.Quest != nil {
			pv.Quest = &snapshot.QuestV1{
				ID:       p.Quest.ID,
				Kind:     p.Quest.Kind,
				Goal:     p.Quest.Goal,
				Reward:   p.Quest.Reward,
				Progress: p.Quest.Progress,
			}
		}
		snap.Players = append(snap.Players, pv)
	}
	sort.Slice(snap.Players, func(i, j int) bool { return snap.Players[i].ID < snap.Players[j].ID })

	for _, isl := range w.islands {
		snap.Islands = append(snap.Islands, snapshot.IslandV1{
			Index: isl.Index,
			X:     isl.Pos.X,
			Y:     isl.Pos.Y,
			Gold:  isl.Gold,
			Owner: isl.Owner,
		})
	}

	for _, al := range w.alliances {
		snap.Alliances = append(snap.Alliances, snapshot.AllianceV1{ID: al.ID, Members: al.Members})
	}
	sort.Slice(snap.Alliances, func(i, j int) bool { return snap.Alliances[i].ID < snap.Alliances[j].ID })

	for initiator, pt := range w.trades {
		snap.Trades = append(snap.Trades, snapshot.TradeV1{
			InitiatorID: initiator,
			TargetID:    pt.TargetID,
			Offer:       pt.Offer,
			Request:     pt.Request,
			CreatedMs:   pt.Created.UnixMilli(),
		})
	}
	sort.Slice(snap.Trades, func(i, j int) bool { return snap.Trades[i].InitiatorID < snap.Trades[j].InitiatorID })

	for _, pu := range w.powerUps {
		snap.PowerUps = append(snap.PowerUps, snapshot.PowerUpV1{
			ID:        pu.ID,
			Kind:      pu.Kind,
			X:         pu.Pos.X,
			Y:         pu.Pos.Y,
			SpawnedMs: pu.Spawned.UnixMilli(),
		})
	}
	sort.Slice(snap.PowerUps, func(i, j int) bool { return snap.PowerUps[i].ID < snap.PowerUps[j].ID })

	for _, m := range w.chat {
		snap.Chat = append(snap.Chat, snapshot.ChatV1{
			ID:        m.ID,
			From:      m.From,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}

	return snap
}
