package world

import "piratekingdoms.io/internal/protocol"

type Player struct {
	ID       string
	Name     string
	Pos      Vec2
	ShipType string

	Speed    int
	Strength int
	Gold     int

	// Baselines track ship class stats plus permanent upgrades; power-up
	// expiry restores to these.
	BaseSpeed    int
	BaseStrength int
	Shield       bool
	// effectSeq pairs a collected power-up with its expiry command so a
	// stale expiry degrades to a no-op.
	effectSeq uint64

	AllianceID string
	Quest      *Quest
	Inventory  map[string]int

	// JoinSeq breaks leaderboard ties deterministically.
	JoinSeq uint64
}

type ShipClass struct {
	Speed    int
	Strength int
	Capacity int
}

var shipClasses = map[string]ShipClass{
	"sloop":      {Speed: 160, Strength: 10, Capacity: 100},
	"brigantine": {Speed: 140, Strength: 15, Capacity: 150},
	"galleon":    {Speed: 120, Strength: 20, Capacity: 200},
}

const defaultShipType = "sloop"

func shipClass(name string) (string, ShipClass) {
	if c, ok := shipClasses[name]; ok {
		return name, c
	}
	return defaultShipType, shipClasses[defaultShipType]
}

func (p *Player) state() protocol.PlayerState {
	return protocol.PlayerState{
		ID:         p.ID,
		Name:       p.Name,
		X:          p.Pos.X,
		Y:          p.Pos.Y,
		Speed:      p.Speed,
		Strength:   p.Strength,
		Gold:       p.Gold,
		ShipType:   p.ShipType,
		AllianceID: p.AllianceID,
		Shield:     p.Shield,
	}
}

// debit removes up to amount gold and returns what was actually taken.
// Gold never goes negative.
func (p *Player) debit(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > p.Gold {
		amount = p.Gold
	}
	p.Gold -= amount
	return amount
}
