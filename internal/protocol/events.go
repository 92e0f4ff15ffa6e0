package protocol

// Event names (server -> client).
const (
	EventGameState          = "gameState"
	EventNewPlayer          = "newPlayer"
	EventPlayerMoved        = "playerMoved"
	EventPlayerDisconnected = "playerDisconnected"
	EventResourceUpdate     = "resourceUpdate"
	EventUpgradeResult      = "upgradeResult"

	EventIslandCaptured         = "islandCaptured"
	EventIslandLost             = "islandLost"
	EventDefendedIsland         = "defendedIsland"
	EventAttackFailed           = "attackFailed"
	EventIslandOwnershipChanged = "islandOwnershipChanged"

	EventUnderAttack    = "underAttack"
	EventAttackSuccess  = "attackSuccess"
	EventDefendedAttack = "defendedAttack"

	EventAllianceRequest   = "allianceRequest"
	EventAllianceFormed    = "allianceFormed"
	EventAllianceRejected  = "allianceRejected"
	EventAllianceDissolved = "allianceDissolved"
	EventAllianceUpdate    = "allianceUpdate"

	EventTradeProposal = "tradeProposal"
	EventTradeComplete = "tradeComplete"
	EventTradeError    = "tradeError"

	EventPowerUpSpawned   = "powerUpSpawned"
	EventPowerUpCollected = "powerUpCollected"
	EventPowerUpExpired   = "powerUpExpired"

	EventQuestAssigned  = "questAssigned"
	EventQuestProgress  = "questProgress"
	EventQuestCompleted = "questCompleted"

	EventNewChatMessage    = "newChatMessage"
	EventLeaderboardUpdate = "leaderboardUpdate"

	EventStormEvent   = "stormEvent"
	EventStormDamage  = "stormDamage"
	EventPirateAttack = "pirateAttack"
)

type PlayerState struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Speed      int     `json:"speed"`
	Strength   int     `json:"strength"`
	Gold       int     `json:"gold"`
	ShipType   string  `json:"shipType"`
	AllianceID string  `json:"allianceId,omitempty"`
	Shield     bool    `json:"shield,omitempty"`
}

type IslandState struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Gold  int     `json:"gold"`
	Owner string  `json:"owner,omitempty"`
}

type AllianceState struct {
	ID      string    `json:"id"`
	Members [2]string `json:"members"`
}

type PowerUpState struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	DurationMs int64   `json:"durationMs"`
}

type QuestState struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Goal     int    `json:"goal"`
	Progress int    `json:"progress"`
	Reward   int    `json:"reward"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Gold     int    `json:"gold"`
}

type GoldRef struct {
	ID   string `json:"id"`
	Gold int    `json:"gold"`
}

// gameState: the full world snapshot sent once to a joining connection.
type GameState struct {
	You         string             `json:"you"`
	Players     []PlayerState      `json:"players"`
	Islands     []IslandState      `json:"islands"`
	Alliances   []AllianceState    `json:"alliances"`
	PowerUps    []PowerUpState     `json:"powerUps"`
	Chat        []ChatMessage      `json:"chat"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Quest       *QuestState        `json:"quest,omitempty"`
}

type PlayerMoved struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type PlayerDisconnected struct {
	ID string `json:"id"`
}

// resourceUpdate carries the island table plus the gold balances that moved.
type ResourceUpdate struct {
	Islands    []IslandState `json:"islands"`
	PlayerGold []GoldRef     `json:"playerGold"`
}

type UpgradeResult struct {
	Success     bool `json:"success"`
	NewSpeed    int  `json:"newSpeed,omitempty"`
	NewStrength int  `json:"newStrength,omitempty"`
	NewGold     int  `json:"newGold,omitempty"`
	Gold        int  `json:"gold,omitempty"`
}

type IslandCaptured struct {
	IslandIndex int    `json:"islandIndex"`
	NewOwner    string `json:"newOwner"`
	Gold        int    `json:"gold"`
}

type IslandLost struct {
	IslandIndex int `json:"islandIndex"`
	Gold        int `json:"gold"`
}

type DefendedIsland struct {
	IslandIndex int `json:"islandIndex"`
	GoldGained  int `json:"goldGained"`
}

// attackFailed: islandIndex set for island attacks, targetId for player
// attacks. Code is set when the attack was rejected before resolution.
type AttackFailed struct {
	IslandIndex int    `json:"islandIndex,omitempty"`
	TargetID    string `json:"targetId,omitempty"`
	GoldLost    int    `json:"goldLost,omitempty"`
	Code        string `json:"code,omitempty"`
}

type IslandOwnershipChanged struct {
	IslandIndex int    `json:"islandIndex"`
	NewOwner    string `json:"newOwner,omitempty"`
}

type UnderAttack struct {
	AttackerID string `json:"attackerId"`
	GoldLost   int    `json:"goldLost"`
	NewGold    int    `json:"newGold"`
}

type AttackSuccess struct {
	TargetID string `json:"targetId"`
	Plunder  int    `json:"plunder"`
	NewGold  int    `json:"newGold"`
}

type DefendedAttack struct {
	AttackerID string `json:"attackerId"`
	GoldGained int    `json:"goldGained"`
	NewGold    int    `json:"newGold"`
}

type AllianceRequest struct {
	FromID string `json:"fromId"`
}

type AllianceFormed struct {
	AllianceID string `json:"allianceId"`
	PartnerID  string `json:"partnerId"`
}

type AllianceRejected struct {
	ByID string `json:"byId"`
}

type AllianceDissolved struct {
	PartnerID string `json:"partnerId"`
}

type AllianceUpdate struct {
	Alliances []AllianceState `json:"alliances"`
}

type TradeProposal struct {
	FromID  string `json:"fromId"`
	Offer   int    `json:"offer"`
	Request int    `json:"request"`
}

type TradeComplete struct {
	WithID  string `json:"withId"`
	Offer   int    `json:"offer"`
	Request int    `json:"request"`
	NewGold int    `json:"newGold"`
}

type TradeError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	WithID  string `json:"withId,omitempty"`
}

type PowerUpCollected struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Kind     string `json:"kind"`
}

type PowerUpExpired struct {
	Kind     string `json:"kind"`
	Speed    int    `json:"speed"`
	Strength int    `json:"strength"`
	Shield   bool   `json:"shield"`
}

type QuestProgress struct {
	QuestID  string `json:"questId"`
	Progress int    `json:"progress"`
	Goal     int    `json:"goal"`
}

type QuestCompleted struct {
	QuestID string     `json:"questId"`
	Reward  int        `json:"reward"`
	NewGold int        `json:"newGold"`
	Next    QuestState `json:"next"`
}

type LeaderboardUpdate struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type StormEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StormDamage struct {
	GoldLost int `json:"goldLost"`
	NewGold  int `json:"newGold"`
}

type PirateAttack struct {
	GoldLost int `json:"goldLost"`
	NewGold  int `json:"newGold"`
}
