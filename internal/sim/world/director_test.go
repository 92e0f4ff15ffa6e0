package world

import (
	"testing"

	"piratekingdoms.io/internal/protocol"
)

func TestStormStrikeHitsOnlyPlayersInRadius(t *testing.T) {
	w := newTestWorld(t)
	near, nearOut := joinPlayer(t, w, "near")
	far, farOut := joinPlayer(t, w, "far")
	near.Pos = Vec2{X: 100, Y: 100}
	near.Gold = 25
	far.Pos = Vec2{X: 700, Y: 500}
	far.Gold = 25
	drainFrames(t, nearOut)
	drainFrames(t, farOut)

	w.stormStrike(Vec2{X: 110, Y: 100})

	if near.Gold != 15 {
		t.Fatalf("player in radius not damaged: %d", near.Gold)
	}
	if far.Gold != 25 {
		t.Fatalf("player outside radius damaged: %d", far.Gold)
	}
	var dmg protocol.StormDamage
	if !lastEvent(t, drainFrames(t, nearOut), protocol.EventStormDamage, &dmg) {
		t.Fatalf("damaged player not notified")
	}
	if dmg.GoldLost != 10 || dmg.NewGold != 15 {
		t.Fatalf("stormDamage wrong: %+v", dmg)
	}
	if countEvents(drainFrames(t, farOut), protocol.EventStormDamage) != 0 {
		t.Fatalf("untouched player received stormDamage")
	}
}

func TestStormStrikeClampsAtZero(t *testing.T) {
	w := newTestWorld(t)
	p, _ := joinPlayer(t, w, "anne")
	p.Pos = Vec2{X: 0, Y: 0}
	p.Gold = 3

	w.stormStrike(Vec2{X: 0, Y: 0})
	if p.Gold != 0 {
		t.Fatalf("storm drove gold below zero: %d", p.Gold)
	}
}

func TestStormStrikeOnEmptyWorld(t *testing.T) {
	w := newTestWorld(t)
	// Must be a clean no-op with nobody connected.
	w.stormStrike(Vec2{X: 0, Y: 0})
}

func TestPirateRaidStealsCappedAmount(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	p.Gold = 12
	drainFrames(t, out)

	w.pirateRaid()
	if p.Gold != 0 {
		t.Fatalf("pirate steal not capped by balance: %d", p.Gold)
	}
	var raid protocol.PirateAttack
	if !lastEvent(t, drainFrames(t, out), protocol.EventPirateAttack, &raid) {
		t.Fatalf("victim not notified")
	}
	if raid.GoldLost != 12 {
		t.Fatalf("pirateAttack goldLost=%d, want 12", raid.GoldLost)
	}
}

func TestPirateRaidOnEmptyWorld(t *testing.T) {
	w := newTestWorld(t)
	w.pirateRaid()
}
