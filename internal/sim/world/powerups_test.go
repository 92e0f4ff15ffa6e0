package world

import (
	"testing"

	"piratekingdoms.io/internal/protocol"
)

func TestSpawnPowerUpHonorsCeiling(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 10; i++ {
		w.spawnPowerUp()
	}
	if len(w.powerUps) != 3 {
		t.Fatalf("power-up ceiling not honored: %d", len(w.powerUps))
	}
}

func TestCollectPowerUpAppliesAndExpires(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	drainFrames(t, out)

	pu := &PowerUp{ID: "PU1", Kind: "speed", Pos: Vec2{X: 1, Y: 1}}
	w.powerUps[pu.ID] = pu

	w.handleCollectPowerUp(p, "PU1")
	if p.Speed != 200 {
		t.Fatalf("speed buff not applied: %d", p.Speed)
	}
	if _, ok := w.powerUps["PU1"]; ok {
		t.Fatalf("collected power-up still in flight")
	}
	if countEvents(drainFrames(t, out), protocol.EventPowerUpCollected) != 1 {
		t.Fatalf("collection not broadcast")
	}

	// Fire the expiry directly instead of waiting out the timer.
	w.expirePowerUp(p.ID, "speed", p.effectSeq)
	if p.Speed != 160 {
		t.Fatalf("expiry did not restore baseline: %d", p.Speed)
	}
	var exp protocol.PowerUpExpired
	if !lastEvent(t, drainFrames(t, out), protocol.EventPowerUpExpired, &exp) {
		t.Fatalf("player not notified of expiry")
	}
	if exp.Speed != 160 {
		t.Fatalf("expiry payload wrong: %+v", exp)
	}
}

func TestStaleExpiryIsNoOp(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	drainFrames(t, out)

	w.powerUps["PU1"] = &PowerUp{ID: "PU1", Kind: "strength"}
	w.powerUps["PU2"] = &PowerUp{ID: "PU2", Kind: "strength"}
	w.handleCollectPowerUp(p, "PU1")
	firstSeq := p.effectSeq
	w.handleCollectPowerUp(p, "PU2")

	// The first power-up's expiry arrives late and must not clobber the
	// effect of the second.
	w.expirePowerUp(p.ID, "strength", firstSeq)
	if p.Strength != 20 {
		t.Fatalf("stale expiry reverted live effect: %d", p.Strength)
	}
}

func TestExpiryAfterDisconnectIsNoOp(t *testing.T) {
	w := newTestWorld(t)
	p, _ := joinPlayer(t, w, "anne")
	w.powerUps["PU1"] = &PowerUp{ID: "PU1", Kind: "shield"}
	w.handleCollectPowerUp(p, "PU1")
	seq := p.effectSeq

	w.handleLeave(p.ID)
	// Must not panic or resurrect the player.
	w.expirePowerUp(p.ID, "shield", seq)
	if _, ok := w.players[p.ID]; ok {
		t.Fatalf("expiry resurrected departed player")
	}
}

func TestShieldBlocksUntilExpiry(t *testing.T) {
	w := newTestWorld(t)
	a, _ := joinPlayer(t, w, "a")
	b, _ := joinPlayer(t, w, "b")
	a.Strength = 20
	b.Strength = 10
	a.Pos = Vec2{X: 0, Y: 0}
	b.Pos = Vec2{X: 0, Y: 0}
	b.Gold = 100

	w.powerUps["PU1"] = &PowerUp{ID: "PU1", Kind: "shield"}
	w.handleCollectPowerUp(b, "PU1")

	w.handleAttackPlayer(a, b.ID)
	if b.Gold != 100 {
		t.Fatalf("shielded player lost gold")
	}

	w.expirePowerUp(b.ID, "shield", b.effectSeq)
	w.handleAttackPlayer(a, b.ID)
	if b.Gold != 70 {
		t.Fatalf("attack after expiry failed: %d", b.Gold)
	}
}
