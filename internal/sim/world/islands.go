package world

import "piratekingdoms.io/internal/protocol"

type Island struct {
	Index int
	Pos   Vec2
	Gold  int
	Owner string // live player id or empty
}

func (w *World) generateIslands() []*Island {
	islands := make([]*Island, w.cfg.IslandCount)
	span := w.cfg.IslandGoldMax - w.cfg.IslandGoldMin + 1
	for i := range islands {
		islands[i] = &Island{
			Index: i,
			Pos:   w.randomPoint(),
			Gold:  w.cfg.IslandGoldMin + w.rng.Intn(span),
		}
	}
	return islands
}

func (w *World) island(index int) *Island {
	if index < 0 || index >= len(w.islands) {
		return nil
	}
	return w.islands[index]
}

func (w *World) islandStates() []protocol.IslandState {
	out := make([]protocol.IslandState, len(w.islands))
	for i, isl := range w.islands {
		out[i] = protocol.IslandState{
			Index: isl.Index,
			X:     isl.Pos.X,
			Y:     isl.Pos.Y,
			Gold:  isl.Gold,
			Owner: isl.Owner,
		}
	}
	return out
}

func (w *World) handleCollectResource(p *Player, index int) {
	isl := w.island(index)
	if isl == nil {
		w.log.Printf("collectResource %s: no island %d", p.ID, index)
		return
	}
	if isl.Gold <= 0 {
		return
	}
	collected := w.cfg.CollectRate
	if collected > isl.Gold {
		collected = isl.Gold
	}
	isl.Gold -= collected
	p.Gold += collected
	w.recordGold(p, "collect")
	w.broadcast(protocol.EventResourceUpdate, protocol.ResourceUpdate{
		Islands:    w.islandStates(),
		PlayerGold: []protocol.GoldRef{{ID: p.ID, Gold: p.Gold}},
	})
}

func (w *World) handleUpgradeShip(p *Player) {
	cost := p.Speed / 10
	if p.Gold < cost {
		w.sendTo(p.ID, protocol.EventUpgradeResult, protocol.UpgradeResult{Success: false, Gold: p.Gold})
		return
	}
	p.Gold -= cost
	p.Speed += w.cfg.UpgradeSpeedBonus
	p.Strength += w.cfg.UpgradeStrengthBonus
	p.BaseSpeed += w.cfg.UpgradeSpeedBonus
	p.BaseStrength += w.cfg.UpgradeStrengthBonus
	w.recordGold(p, "upgrade")
	w.sendTo(p.ID, protocol.EventUpgradeResult, protocol.UpgradeResult{
		Success:     true,
		NewSpeed:    p.Speed,
		NewStrength: p.Strength,
		NewGold:     p.Gold,
	})
}

func (w *World) regenIslands() {
	span := w.cfg.RegenMax - w.cfg.RegenMin + 1
	for _, isl := range w.islands {
		isl.Gold += w.cfg.RegenMin + w.rng.Intn(span)
		if isl.Gold > w.cfg.IslandGoldCap {
			isl.Gold = w.cfg.IslandGoldCap
		}
	}
	w.broadcast(protocol.EventResourceUpdate, protocol.ResourceUpdate{Islands: w.islandStates()})
}
