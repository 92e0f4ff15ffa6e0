package protocol

// Intent names. The set is closed: anything else is ignored and logged.
const (
	IntentMove            = "move"
	IntentCollectResource = "collectResource"
	IntentUpgradeShip     = "upgradeShip"
	IntentAttackIsland    = "attackIsland"
	IntentAttackPlayer    = "attackPlayer"
	IntentProposeTrade    = "proposeTrade"
	IntentRespondTrade    = "respondTrade"
	IntentRequestAlliance = "requestAlliance"
	IntentRespondAlliance = "respondAlliance"
	IntentCollectPowerUp  = "collectPowerUp"
	IntentChatMessage     = "chatMessage"
	IntentQuestProgress   = "questProgress"
)

type MovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CollectResourcePayload struct {
	IslandIndex int `json:"islandIndex"`
}

type UpgradeShipPayload struct{}

type AttackIslandPayload struct {
	IslandIndex int `json:"islandIndex"`
}

type AttackPlayerPayload struct {
	TargetID string `json:"targetId"`
}

// ProposeTradePayload offers Offer gold to the target and requests Request
// gold back. Gold only; item trades are not part of the exchange.
type ProposeTradePayload struct {
	TargetID string `json:"targetId"`
	Offer    int    `json:"offer"`
	Request  int    `json:"request"`
}

type RespondTradePayload struct {
	TargetID string `json:"targetId"`
	Accepted bool   `json:"accepted"`
	Offer    int    `json:"offer,omitempty"`
	Request  int    `json:"request,omitempty"`
}

type RequestAlliancePayload struct {
	TargetID string `json:"targetId"`
}

type RespondAlliancePayload struct {
	TargetID string `json:"targetId"`
	Accepted bool   `json:"accepted"`
}

type CollectPowerUpPayload struct {
	ID string `json:"id"`
}

type ChatMessagePayload struct {
	Text string `json:"text"`
}

type QuestProgressPayload struct {
	QuestType string `json:"type"`
}
