package world

import "piratekingdoms.io/internal/protocol"

// runWorldEvent fires one random world event: a storm warning whose strike
// lands after a delay, or a pirate raid on one random connected player.
func (w *World) runWorldEvent() {
	if w.rng.Intn(2) == 0 {
		w.startStorm()
	} else {
		w.pirateRaid()
	}
}

func (w *World) startStorm() {
	at := Vec2{
		X: w.rng.Float64() * w.cfg.WorldWidth,
		Y: w.rng.Float64() * w.cfg.WorldHeight,
	}
	w.broadcast(protocol.EventStormEvent, protocol.StormEvent{X: at.X, Y: at.Y})
	w.schedule(w.cfg.StormDelay.Std(), func() {
		w.stormStrike(at)
	})
	w.log.Printf("storm warned at (%.0f,%.0f), strike in %s", at.X, at.Y, w.cfg.StormDelay.Std())
}

// stormStrike runs after the warning delay against whoever is live then.
func (w *World) stormStrike(at Vec2) {
	for _, p := range w.players {
		if distance(p.Pos, at) >= w.cfg.StormRadius {
			continue
		}
		lost := p.debit(w.cfg.StormDamage)
		w.recordGold(p, "storm")
		w.sendTo(p.ID, protocol.EventStormDamage, protocol.StormDamage{
			GoldLost: lost,
			NewGold:  p.Gold,
		})
	}
	w.recomputeLeaderboard(true)
}

func (w *World) pirateRaid() {
	if len(w.players) == 0 {
		return
	}
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	target := w.players[ids[w.rng.Intn(len(ids))]]
	stolen := target.debit(w.cfg.PirateSteal)
	w.recordGold(target, "pirate")
	w.sendTo(target.ID, protocol.EventPirateAttack, protocol.PirateAttack{
		GoldLost: stolen,
		NewGold:  target.Gold,
	})
	w.recomputeLeaderboard(true)
	w.log.Printf("pirate raid on %s stole %d", target.ID, stolen)
}
