package world

import (
	"fmt"

	"piratekingdoms.io/internal/protocol"
)

type Quest struct {
	ID       string
	Kind     string // collect, visit, combat
	Goal     int
	Reward   int
	Progress int
}

type questSpec struct {
	Kind   string
	Goal   int
	Reward int
}

var questCatalog = []questSpec{
	{Kind: "collect", Goal: 100, Reward: 50},
	{Kind: "visit", Goal: 3, Reward: 30},
	{Kind: "combat", Goal: 5, Reward: 75},
}

func (q *Quest) state() protocol.QuestState {
	return protocol.QuestState{
		ID:       q.ID,
		Kind:     q.Kind,
		Goal:     q.Goal,
		Progress: q.Progress,
		Reward:   q.Reward,
	}
}

func (w *World) newQuest() *Quest {
	spec := questCatalog[w.rng.Intn(len(questCatalog))]
	return &Quest{
		ID:     fmt.Sprintf("Q%d", w.nextQuestNum.Add(1)),
		Kind:   spec.Kind,
		Goal:   spec.Goal,
		Reward: spec.Reward,
	}
}

// handleQuestProgress advances the active quest by one when the reported
// kind matches. Completion credits the reward and swaps in a fresh quest in
// the same unit of work, so the completion event fires exactly once.
func (w *World) handleQuestProgress(p *Player, kind string) {
	q := p.Quest
	if q == nil || q.Kind != kind {
		return
	}
	q.Progress++
	if q.Progress < q.Goal {
		w.sendTo(p.ID, protocol.EventQuestProgress, protocol.QuestProgress{
			QuestID:  q.ID,
			Progress: q.Progress,
			Goal:     q.Goal,
		})
		return
	}

	p.Gold += q.Reward
	p.Quest = w.newQuest()
	w.recordGold(p, "quest")
	w.sendTo(p.ID, protocol.EventQuestCompleted, protocol.QuestCompleted{
		QuestID: q.ID,
		Reward:  q.Reward,
		NewGold: p.Gold,
		Next:    p.Quest.state(),
	})
	w.recomputeLeaderboard(true)
}
