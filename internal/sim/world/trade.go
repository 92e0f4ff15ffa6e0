package world

import (
	"time"

	"piratekingdoms.io/internal/protocol"
)

// PendingTrade is the single open proposal per initiator. A new proposal
// replaces it (last proposal wins) and the superseded counterparty is told.
type PendingTrade struct {
	TargetID string
	Offer    int
	Request  int
	Created  time.Time
}

func (w *World) handleProposeTrade(p *Player, d protocol.ProposeTradePayload) {
	target, ok := w.players[d.TargetID]
	if !ok || d.TargetID == p.ID {
		w.sendTo(p.ID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrInvalidTarget,
			WithID: d.TargetID,
		})
		return
	}
	if p.Gold < d.Offer {
		w.sendTo(p.ID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrInsufficient,
			WithID: d.TargetID,
		})
		return
	}
	if prev, ok := w.trades[p.ID]; ok && prev.TargetID != d.TargetID {
		w.sendTo(prev.TargetID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrSuperseded,
			WithID: p.ID,
		})
	}
	w.trades[p.ID] = &PendingTrade{
		TargetID: d.TargetID,
		Offer:    d.Offer,
		Request:  d.Request,
		Created:  time.Now(),
	}
	w.sendTo(target.ID, protocol.EventTradeProposal, protocol.TradeProposal{
		FromID:  p.ID,
		Offer:   d.Offer,
		Request: d.Request,
	})
}

// handleRespondTrade resolves the proposal p previously received from
// d.TargetID. Both balances are validated before either moves.
func (w *World) handleRespondTrade(p *Player, d protocol.RespondTradePayload) {
	proposer, ok := w.players[d.TargetID]
	if !ok {
		w.sendTo(p.ID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrInvalidTarget,
			WithID: d.TargetID,
		})
		return
	}
	pt, ok := w.trades[d.TargetID]
	if !ok || pt.TargetID != p.ID {
		w.sendTo(d.TargetID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrConflict,
			WithID: p.ID,
		})
		return
	}
	delete(w.trades, d.TargetID)

	if !d.Accepted {
		w.sendTo(d.TargetID, protocol.EventTradeError, protocol.TradeError{
			Code:    protocol.ErrConflict,
			Message: "trade rejected",
			WithID:  p.ID,
		})
		return
	}

	// Validate both sides, then commit. Never a partial transfer.
	if proposer.Gold < pt.Offer || p.Gold < pt.Request {
		w.sendTo(p.ID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrInsufficient,
			WithID: d.TargetID,
		})
		w.sendTo(d.TargetID, protocol.EventTradeError, protocol.TradeError{
			Code:   protocol.ErrInsufficient,
			WithID: p.ID,
		})
		return
	}
	proposer.Gold += pt.Request - pt.Offer
	p.Gold += pt.Offer - pt.Request
	w.recordGold(proposer, "trade")
	w.recordGold(p, "trade")

	w.sendTo(d.TargetID, protocol.EventTradeComplete, protocol.TradeComplete{
		WithID:  p.ID,
		Offer:   pt.Offer,
		Request: pt.Request,
		NewGold: proposer.Gold,
	})
	w.sendTo(p.ID, protocol.EventTradeComplete, protocol.TradeComplete{
		WithID:  d.TargetID,
		Offer:   pt.Offer,
		Request: pt.Request,
		NewGold: p.Gold,
	})
	w.recomputeLeaderboard(true)
}

// dropTradesWith removes proposals by and toward a departing player.
func (w *World) dropTradesWith(playerID string) {
	delete(w.trades, playerID)
	for initiator, pt := range w.trades {
		if pt.TargetID == playerID {
			delete(w.trades, initiator)
			w.sendTo(initiator, protocol.EventTradeError, protocol.TradeError{
				Code:   protocol.ErrInvalidTarget,
				WithID: playerID,
			})
		}
	}
}
