package world

import "piratekingdoms.io/internal/protocol"

func (w *World) handleAttackIsland(p *Player, index int) {
	isl := w.island(index)
	if isl == nil {
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			IslandIndex: index,
			Code:        protocol.ErrInvalidTarget,
		})
		return
	}
	// Attacking your own island is a deliberate no-op, no events.
	if isl.Owner == p.ID {
		return
	}

	defense := isl.Gold
	var owner *Player
	if isl.Owner != "" {
		owner = w.players[isl.Owner]
		if owner != nil {
			defense += owner.Strength
		}
	}

	golds := []protocol.GoldRef{}
	if p.Strength > defense {
		loot := isl.Gold
		if owner != nil {
			w.sendTo(owner.ID, protocol.EventIslandLost, protocol.IslandLost{
				IslandIndex: isl.Index,
				Gold:        loot,
			})
		}
		isl.Owner = p.ID
		isl.Gold = 0
		p.Gold += loot
		w.recordGold(p, "island_capture")
		w.broadcast(protocol.EventIslandCaptured, protocol.IslandCaptured{
			IslandIndex: isl.Index,
			NewOwner:    p.ID,
			Gold:        loot,
		})
		golds = append(golds, protocol.GoldRef{ID: p.ID, Gold: p.Gold})
	} else {
		penalty := p.debit(p.Gold / 10)
		w.recordGold(p, "island_attack_penalty")
		if owner != nil {
			owner.Gold += penalty
			w.recordGold(owner, "island_defense")
			w.sendTo(owner.ID, protocol.EventDefendedIsland, protocol.DefendedIsland{
				IslandIndex: isl.Index,
				GoldGained:  penalty,
			})
			golds = append(golds, protocol.GoldRef{ID: owner.ID, Gold: owner.Gold})
		}
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			IslandIndex: isl.Index,
			GoldLost:    penalty,
		})
		golds = append(golds, protocol.GoldRef{ID: p.ID, Gold: p.Gold})
	}

	w.broadcast(protocol.EventResourceUpdate, protocol.ResourceUpdate{
		Islands:    w.islandStates(),
		PlayerGold: golds,
	})
	w.recomputeLeaderboard(true)
}

func (w *World) handleAttackPlayer(p *Player, targetID string) {
	if targetID == p.ID {
		return
	}
	target, ok := w.players[targetID]
	if !ok {
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			TargetID: targetID,
			Code:     protocol.ErrInvalidTarget,
		})
		return
	}
	if p.AllianceID != "" && p.AllianceID == target.AllianceID {
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			TargetID: targetID,
			Code:     protocol.ErrAllied,
		})
		return
	}
	if distance(p.Pos, target.Pos) > w.cfg.InteractionRange {
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			TargetID: targetID,
			Code:     protocol.ErrOutOfRange,
		})
		return
	}
	if target.Shield {
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			TargetID: targetID,
			Code:     protocol.ErrShielded,
		})
		return
	}

	attackPower := p.Strength + w.rng.Intn(5)
	defensePower := target.Strength + w.rng.Intn(5)

	if attackPower > defensePower {
		plunder := target.Gold * 3 / 10
		if plunder > w.cfg.PlunderCap {
			plunder = w.cfg.PlunderCap
		}
		plunder = target.debit(plunder)
		p.Gold += plunder
		w.recordGold(p, "plunder")
		w.recordGold(target, "plundered")
		w.sendTo(p.ID, protocol.EventAttackSuccess, protocol.AttackSuccess{
			TargetID: targetID,
			Plunder:  plunder,
			NewGold:  p.Gold,
		})
		w.sendTo(targetID, protocol.EventUnderAttack, protocol.UnderAttack{
			AttackerID: p.ID,
			GoldLost:   plunder,
			NewGold:    target.Gold,
		})
	} else {
		penalty := p.debit(p.Gold / 10)
		target.Gold += penalty
		w.recordGold(p, "attack_penalty")
		w.recordGold(target, "defense")
		w.sendTo(p.ID, protocol.EventAttackFailed, protocol.AttackFailed{
			TargetID: targetID,
			GoldLost: penalty,
		})
		w.sendTo(targetID, protocol.EventDefendedAttack, protocol.DefendedAttack{
			AttackerID: p.ID,
			GoldGained: penalty,
			NewGold:    target.Gold,
		})
	}

	w.broadcast(protocol.EventResourceUpdate, protocol.ResourceUpdate{
		Islands: w.islandStates(),
		PlayerGold: []protocol.GoldRef{
			{ID: p.ID, Gold: p.Gold},
			{ID: targetID, Gold: target.Gold},
		},
	})
	w.recomputeLeaderboard(true)
}
