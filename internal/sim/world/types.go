package world

import (
	"encoding/json"
	"math"

	"piratekingdoms.io/internal/protocol"
)

type Vec2 struct {
	X float64
	Y float64
}

func distance(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}

// IntentEnvelope is one validated INTENT frame from a connection.
type IntentEnvelope struct {
	PlayerID string
	Intent   string
	Data     json.RawMessage
}

type JoinRequest struct {
	Name     string
	ShipType string
	Out      chan []byte
	Resp     chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type clientState struct {
	Out chan []byte
}

// timedCommand is a delayed effect re-entering the world queue. It runs on
// the loop goroutine and must re-check liveness itself.
type timedCommand func()
