package protocol

import "encoding/json"

const Version = "1.0"

// Frame types.
const (
	TypeJoin    = "JOIN"
	TypeWelcome = "WELCOME"
	TypeIntent  = "INTENT"
	TypeEvent   = "EVENT"
)

// BaseMessage lets us route unknown JSON frames by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// JOIN (client -> server): the connection handshake. Sent once, before any
// INTENT frame.
type JoinMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Name            string `json:"name"`
	ShipType        string `json:"ship_type,omitempty"`
}

// WELCOME (server -> client): acknowledges the JOIN and assigns the player
// id. The full gameState event follows on the same connection.
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	PlayerID        string      `json:"player_id"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	IslandCount int `json:"island_count"`
}

// INTENT (client -> server): a named action with a fixed payload schema.
// Payloads are validated against the embedded JSON Schemas before dispatch.
type IntentMsg struct {
	Type            string          `json:"type"`
	ProtocolVersion string          `json:"protocol_version"`
	Intent          string          `json:"intent"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// EVENT (server -> client): a named outcome notification.
type EventMsg struct {
	Type  string `json:"type"`
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func EncodeEvent(event string, data any) ([]byte, error) {
	return json.Marshal(EventMsg{Type: TypeEvent, Event: event, Data: data})
}
