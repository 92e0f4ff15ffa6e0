package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Intent payload schemas, compiled once at init. The transport validates
// every INTENT frame's data against these before it reaches the world loop,
// so handlers can trust field presence and types.
var intentSchemas map[string]*jsonschema.Schema

var intentSchemaSources = map[string]string{
	IntentMove: `{
	  "type": "object",
	  "required": ["x", "y"],
	  "properties": {
	    "x": {"type": "number"},
	    "y": {"type": "number"}
	  },
	  "additionalProperties": false
	}`,
	IntentCollectResource: `{
	  "type": "object",
	  "required": ["islandIndex"],
	  "properties": {
	    "islandIndex": {"type": "integer", "minimum": 0}
	  },
	  "additionalProperties": false
	}`,
	IntentUpgradeShip: `{
	  "type": "object",
	  "additionalProperties": false
	}`,
	IntentAttackIsland: `{
	  "type": "object",
	  "required": ["islandIndex"],
	  "properties": {
	    "islandIndex": {"type": "integer", "minimum": 0}
	  },
	  "additionalProperties": false
	}`,
	IntentAttackPlayer: `{
	  "type": "object",
	  "required": ["targetId"],
	  "properties": {
	    "targetId": {"type": "string", "minLength": 1}
	  },
	  "additionalProperties": false
	}`,
	IntentProposeTrade: `{
	  "type": "object",
	  "required": ["targetId", "offer", "request"],
	  "properties": {
	    "targetId": {"type": "string", "minLength": 1},
	    "offer": {"type": "integer", "minimum": 0},
	    "request": {"type": "integer", "minimum": 0}
	  },
	  "additionalProperties": false
	}`,
	IntentRespondTrade: `{
	  "type": "object",
	  "required": ["targetId", "accepted"],
	  "properties": {
	    "targetId": {"type": "string", "minLength": 1},
	    "accepted": {"type": "boolean"},
	    "offer": {"type": "integer", "minimum": 0},
	    "request": {"type": "integer", "minimum": 0}
	  },
	  "additionalProperties": false
	}`,
	IntentRequestAlliance: `{
	  "type": "object",
	  "required": ["targetId"],
	  "properties": {
	    "targetId": {"type": "string", "minLength": 1}
	  },
	  "additionalProperties": false
	}`,
	IntentRespondAlliance: `{
	  "type": "object",
	  "required": ["targetId", "accepted"],
	  "properties": {
	    "targetId": {"type": "string", "minLength": 1},
	    "accepted": {"type": "boolean"}
	  },
	  "additionalProperties": false
	}`,
	IntentCollectPowerUp: `{
	  "type": "object",
	  "required": ["id"],
	  "properties": {
	    "id": {"type": "string", "minLength": 1}
	  },
	  "additionalProperties": false
	}`,
	IntentChatMessage: `{
	  "type": "object",
	  "required": ["text"],
	  "properties": {
	    "text": {"type": "string", "minLength": 1, "maxLength": 500}
	  },
	  "additionalProperties": false
	}`,
	IntentQuestProgress: `{
	  "type": "object",
	  "required": ["type"],
	  "properties": {
	    "type": {"type": "string", "enum": ["collect", "visit", "combat"]}
	  },
	  "additionalProperties": false
	}`,
}

func init() {
	intentSchemas = make(map[string]*jsonschema.Schema, len(intentSchemaSources))
	for name, src := range intentSchemaSources {
		c := jsonschema.NewCompiler()
		url := "mem://intent/" + name + ".schema.json"
		if err := c.AddResource(url, strings.NewReader(src)); err != nil {
			panic(fmt.Sprintf("protocol: add schema %s: %v", name, err))
		}
		s, err := c.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("protocol: compile schema %s: %v", name, err))
		}
		intentSchemas[name] = s
	}
}

// ValidateIntent checks raw against the schema for the named intent. An
// unknown intent name is itself an error; an absent payload is treated as {}.
func ValidateIntent(name string, raw json.RawMessage) error {
	s, ok := intentSchemas[name]
	if !ok {
		return fmt.Errorf("unknown intent %q", name)
	}
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("intent %s: %w", name, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("intent %s: %w", name, err)
	}
	return nil
}
