package world

import (
	"encoding/json"
	"fmt"

	"piratekingdoms.io/internal/protocol"
)

func (w *World) dispatch(env IntentEnvelope) {
	p, ok := w.players[env.PlayerID]
	if !ok {
		w.log.Printf("intent %s from unknown player %s, dropping", env.Intent, env.PlayerID)
		return
	}
	if w.journal != nil {
		if err := w.journal.WriteIntent(env.PlayerID, env.Intent, env.Data); err != nil {
			w.log.Printf("journal intent %s: %v", env.Intent, err)
		}
	}

	// Payloads arrive schema-validated from the transport; a decode failure
	// here still only costs the one intent.
	fail := func(err error) {
		w.log.Printf("intent %s from %s: %v", env.Intent, env.PlayerID, err)
	}

	switch env.Intent {
	case protocol.IntentMove:
		var d protocol.MovePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleMove(p, d)
	case protocol.IntentCollectResource:
		var d protocol.CollectResourcePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleCollectResource(p, d.IslandIndex)
	case protocol.IntentUpgradeShip:
		w.handleUpgradeShip(p)
	case protocol.IntentAttackIsland:
		var d protocol.AttackIslandPayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleAttackIsland(p, d.IslandIndex)
	case protocol.IntentAttackPlayer:
		var d protocol.AttackPlayerPayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleAttackPlayer(p, d.TargetID)
	case protocol.IntentProposeTrade:
		var d protocol.ProposeTradePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleProposeTrade(p, d)
	case protocol.IntentRespondTrade:
		var d protocol.RespondTradePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleRespondTrade(p, d)
	case protocol.IntentRequestAlliance:
		var d protocol.RequestAlliancePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleRequestAlliance(p, d.TargetID)
	case protocol.IntentRespondAlliance:
		var d protocol.RespondAlliancePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleRespondAlliance(p, d)
	case protocol.IntentCollectPowerUp:
		var d protocol.CollectPowerUpPayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleCollectPowerUp(p, d.ID)
	case protocol.IntentChatMessage:
		var d protocol.ChatMessagePayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleChatMessage(p, d.Text)
	case protocol.IntentQuestProgress:
		var d protocol.QuestProgressPayload
		if err := json.Unmarshal(env.Data, &d); err != nil {
			fail(err)
			return
		}
		w.handleQuestProgress(p, d.QuestType)
	default:
		w.log.Printf("unknown intent %q from %s, ignoring", env.Intent, env.PlayerID)
	}
}

func (w *World) handleJoin(req JoinRequest) {
	name := req.Name
	if name == "" {
		name = "pirate"
	}
	shipType, class := shipClass(req.ShipType)

	idNum := w.nextPlayerNum.Add(1)
	p := &Player{
		ID:           fmt.Sprintf("P%d", idNum),
		Name:         name,
		ShipType:     shipType,
		Pos:          w.randomPoint(),
		Speed:        class.Speed,
		Strength:     class.Strength,
		BaseSpeed:    class.Speed,
		BaseStrength: class.Strength,
		Inventory:    map[string]int{},
		JoinSeq:      idNum,
	}
	p.Quest = w.newQuest()

	w.players[p.ID] = p
	if req.Out != nil {
		w.clients[p.ID] = &clientState{Out: req.Out}
	}

	if req.Resp != nil {
		req.Resp <- JoinResponse{Welcome: protocol.WelcomeMsg{
			Type:            protocol.TypeWelcome,
			ProtocolVersion: protocol.Version,
			PlayerID:        p.ID,
			WorldParams: protocol.WorldParams{
				Width:       int(w.cfg.WorldWidth),
				Height:      int(w.cfg.WorldHeight),
				IslandCount: w.cfg.IslandCount,
			},
		}}
	}

	w.recomputeLeaderboard(false)
	w.sendTo(p.ID, protocol.EventGameState, w.gameState(p.ID))
	w.sendTo(p.ID, protocol.EventQuestAssigned, p.Quest.state())
	w.broadcastExcept(p.ID, protocol.EventNewPlayer, p.state())
	w.log.Printf("join %s %q ship=%s at (%.0f,%.0f)", p.ID, p.Name, p.ShipType, p.Pos.X, p.Pos.Y)
}

func (w *World) handleLeave(playerID string) {
	p, ok := w.players[playerID]
	if !ok {
		delete(w.clients, playerID)
		return
	}
	delete(w.clients, playerID)
	delete(w.players, playerID)

	// Owned islands revert to unowned.
	for _, isl := range w.islands {
		if isl.Owner == playerID {
			isl.Owner = ""
			w.broadcast(protocol.EventIslandOwnershipChanged, protocol.IslandOwnershipChanged{
				IslandIndex: isl.Index,
			})
		}
	}

	w.dissolveAlliance(p)
	w.dropTradesWith(playerID)

	w.broadcast(protocol.EventPlayerDisconnected, protocol.PlayerDisconnected{ID: playerID})
	// The alliance refresh goes out on every disconnect, allied or not.
	w.broadcast(protocol.EventAllianceUpdate, protocol.AllianceUpdate{Alliances: w.allianceStates()})
	w.recomputeLeaderboard(true)
	w.log.Printf("leave %s", playerID)
}

// Positions are client-authoritative: the payload is stored verbatim and
// rebroadcast, out-of-bounds values included, so every peer shares the
// originator's view for range checks.
func (w *World) handleMove(p *Player, d protocol.MovePayload) {
	p.Pos = Vec2{X: d.X, Y: d.Y}
	w.broadcastExcept(p.ID, protocol.EventPlayerMoved, protocol.PlayerMoved{ID: p.ID, X: d.X, Y: d.Y})
}

func (w *World) randomPoint() Vec2 {
	return Vec2{
		X: 25 + w.rng.Float64()*(w.cfg.WorldWidth-50),
		Y: 25 + w.rng.Float64()*(w.cfg.WorldHeight-50),
	}
}

// gameState assembles the full world view sent to a joining connection.
func (w *World) gameState(you string) protocol.GameState {
	gs := protocol.GameState{
		You:         you,
		Players:     w.playerStates(),
		Islands:     w.islandStates(),
		Alliances:   w.allianceStates(),
		PowerUps:    w.powerUpStates(),
		Chat:        append([]protocol.ChatMessage(nil), w.chat...),
		Leaderboard: append([]protocol.LeaderboardEntry(nil), w.board...),
	}
	if p, ok := w.players[you]; ok && p.Quest != nil {
		q := p.Quest.state()
		gs.Quest = &q
	}
	return gs
}
