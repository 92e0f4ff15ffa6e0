package protocol

import (
	"encoding/json"
	"testing"
)

func TestValidateIntentAcceptsWellFormedPayloads(t *testing.T) {
	cases := []struct {
		intent  string
		payload string
	}{
		{IntentMove, `{"x": 10, "y": 20.5}`},
		{IntentCollectResource, `{"islandIndex": 0}`},
		{IntentUpgradeShip, `{}`},
		{IntentUpgradeShip, ``},
		{IntentAttackIsland, `{"islandIndex": 4}`},
		{IntentAttackPlayer, `{"targetId": "P2"}`},
		{IntentProposeTrade, `{"targetId": "P2", "offer": 10, "request": 0}`},
		{IntentRespondTrade, `{"targetId": "P1", "accepted": false}`},
		{IntentRequestAlliance, `{"targetId": "P2"}`},
		{IntentRespondAlliance, `{"targetId": "P1", "accepted": true}`},
		{IntentCollectPowerUp, `{"id": "PU1"}`},
		{IntentChatMessage, `{"text": "ahoy"}`},
		{IntentQuestProgress, `{"type": "combat"}`},
	}
	for _, c := range cases {
		if err := ValidateIntent(c.intent, json.RawMessage(c.payload)); err != nil {
			t.Errorf("%s %s: %v", c.intent, c.payload, err)
		}
	}
}

func TestValidateIntentRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		intent  string
		payload string
	}{
		{"missing field", IntentMove, `{"x": 10}`},
		{"wrong type", IntentMove, `{"x": "ten", "y": 20}`},
		{"negative index", IntentCollectResource, `{"islandIndex": -1}`},
		{"extra field", IntentAttackPlayer, `{"targetId": "P2", "force": true}`},
		{"empty target", IntentAttackPlayer, `{"targetId": ""}`},
		{"negative offer", IntentProposeTrade, `{"targetId": "P2", "offer": -5, "request": 0}`},
		{"empty text", IntentChatMessage, `{"text": ""}`},
		{"unknown quest type", IntentQuestProgress, `{"type": "fishing"}`},
		{"not an object", IntentMove, `[1, 2]`},
		{"broken json", IntentMove, `{"x":`},
	}
	for _, c := range cases {
		if err := ValidateIntent(c.intent, json.RawMessage(c.payload)); err == nil {
			t.Errorf("%s: %s %s validated", c.name, c.intent, c.payload)
		}
	}
}

func TestValidateIntentRejectsUnknownIntent(t *testing.T) {
	if err := ValidateIntent("summonKraken", json.RawMessage(`{}`)); err == nil {
		t.Fatalf("unknown intent validated")
	}
}
