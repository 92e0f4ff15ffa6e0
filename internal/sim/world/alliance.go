package world

import (
	"fmt"
	"time"

	"piratekingdoms.io/internal/protocol"
)

// Alliance is always exactly two members and membership is symmetric:
// both players carry the alliance id or neither does.
type Alliance struct {
	ID      string
	Members [2]string
}

func (w *World) allianceStates() []protocol.AllianceState {
	out := make([]protocol.AllianceState, 0, len(w.alliances))
	for _, al := range w.alliances {
		out = append(out, protocol.AllianceState{ID: al.ID, Members: al.Members})
	}
	return out
}

func (w *World) handleRequestAlliance(p *Player, targetID string) {
	target, ok := w.players[targetID]
	if !ok || targetID == p.ID {
		return
	}
	w.sendTo(target.ID, protocol.EventAllianceRequest, protocol.AllianceRequest{FromID: p.ID})
}

func (w *World) handleRespondAlliance(p *Player, d protocol.RespondAlliancePayload) {
	requester, ok := w.players[d.TargetID]
	if !ok || d.TargetID == p.ID {
		return
	}
	if !d.Accepted {
		w.sendTo(requester.ID, protocol.EventAllianceRejected, protocol.AllianceRejected{ByID: p.ID})
		return
	}
	// A player holds at most one alliance; the old one dissolves first.
	w.dissolveAlliance(p)
	w.dissolveAlliance(requester)

	al := &Alliance{
		ID:      fmt.Sprintf("alliance_%d", time.Now().UnixMilli()),
		Members: [2]string{requester.ID, p.ID},
	}
	w.alliances[al.ID] = al
	requester.AllianceID = al.ID
	p.AllianceID = al.ID

	w.sendTo(requester.ID, protocol.EventAllianceFormed, protocol.AllianceFormed{
		AllianceID: al.ID,
		PartnerID:  p.ID,
	})
	w.sendTo(p.ID, protocol.EventAllianceFormed, protocol.AllianceFormed{
		AllianceID: al.ID,
		PartnerID:  requester.ID,
	})
	w.broadcast(protocol.EventAllianceUpdate, protocol.AllianceUpdate{Alliances: w.allianceStates()})
}

// dissolveAlliance removes p's alliance, clears the partner's membership and
// notifies the partner. Safe to call when p has no alliance. Callers
// broadcast the allianceUpdate refresh themselves.
func (w *World) dissolveAlliance(p *Player) {
	if p.AllianceID == "" {
		return
	}
	al, ok := w.alliances[p.AllianceID]
	p.AllianceID = ""
	if !ok {
		return
	}
	delete(w.alliances, al.ID)
	for _, id := range al.Members {
		if id == p.ID {
			continue
		}
		if partner, ok := w.players[id]; ok {
			partner.AllianceID = ""
			w.sendTo(partner.ID, protocol.EventAllianceDissolved, protocol.AllianceDissolved{PartnerID: p.ID})
		}
	}
}
