package world

import (
	"fmt"
	"time"

	"piratekingdoms.io/internal/protocol"
)

type PowerUp struct {
	ID      string
	Kind    string // speed, strength, shield
	Pos     Vec2
	Spawned time.Time
}

var powerUpKinds = []string{"speed", "strength", "shield"}

func (w *World) powerUpStates() []protocol.PowerUpState {
	out := make([]protocol.PowerUpState, 0, len(w.powerUps))
	for _, pu := range w.powerUps {
		out = append(out, protocol.PowerUpState{
			ID:         pu.ID,
			Kind:       pu.Kind,
			X:          pu.Pos.X,
			Y:          pu.Pos.Y,
			DurationMs: w.cfg.PowerUpDuration.Std().Milliseconds(),
		})
	}
	return out
}

func (w *World) spawnPowerUp() {
	if len(w.powerUps) >= w.cfg.PowerUpMax {
		return
	}
	pu := &PowerUp{
		ID:      fmt.Sprintf("PU%d", w.nextPowerUpNum.Add(1)),
		Kind:    powerUpKinds[w.rng.Intn(len(powerUpKinds))],
		Pos:     w.randomPoint(),
		Spawned: time.Now(),
	}
	w.powerUps[pu.ID] = pu
	w.broadcast(protocol.EventPowerUpSpawned, protocol.PowerUpState{
		ID:         pu.ID,
		Kind:       pu.Kind,
		X:          pu.Pos.X,
		Y:          pu.Pos.Y,
		DurationMs: w.cfg.PowerUpDuration.Std().Milliseconds(),
	})
}

func (w *World) handleCollectPowerUp(p *Player, id string) {
	pu, ok := w.powerUps[id]
	if !ok {
		return
	}
	delete(w.powerUps, id)

	switch pu.Kind {
	case "speed":
		p.Speed = p.BaseSpeed + w.cfg.PowerUpSpeedBonus
	case "strength":
		p.Strength = p.BaseStrength + w.cfg.PowerUpStrengthBonus
	case "shield":
		p.Shield = true
	}
	p.effectSeq++
	seq := p.effectSeq
	playerID := p.ID
	kind := pu.Kind

	// The expiry re-enters the world queue as an independent unit and
	// no-ops when the player left or collected a newer power-up.
	w.schedule(w.cfg.PowerUpDuration.Std(), func() {
		w.expirePowerUp(playerID, kind, seq)
	})

	w.broadcast(protocol.EventPowerUpCollected, protocol.PowerUpCollected{
		ID:       id,
		PlayerID: p.ID,
		Kind:     pu.Kind,
	})
}

func (w *World) expirePowerUp(playerID, kind string, seq uint64) {
	p, ok := w.players[playerID]
	if !ok || p.effectSeq != seq {
		return
	}
	p.Speed = p.BaseSpeed
	p.Strength = p.BaseStrength
	p.Shield = false
	w.sendTo(p.ID, protocol.EventPowerUpExpired, protocol.PowerUpExpired{
		Kind:     kind,
		Speed:    p.Speed,
		Strength: p.Strength,
		Shield:   p.Shield,
	})
}
