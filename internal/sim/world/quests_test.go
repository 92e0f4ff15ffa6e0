package world

import (
	"testing"

	"piratekingdoms.io/internal/protocol"
)

// Ten reports against a quest at 90/100 must complete it exactly once;
// the surplus reports land on the replacement quest.
func TestQuestCompletesExactlyOnce(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	p.Quest = &Quest{ID: "Q1", Kind: "collect", Goal: 100, Reward: 50, Progress: 90}
	drainFrames(t, out)

	for i := 0; i < 10; i++ {
		w.handleQuestProgress(p, "collect")
	}

	frames := drainFrames(t, out)
	if got := countEvents(frames, protocol.EventQuestCompleted); got != 1 {
		t.Fatalf("questCompleted fired %d times, want 1", got)
	}
	if p.Gold != 50 {
		t.Fatalf("reward credited %d, want 50", p.Gold)
	}
	if p.Quest.ID == "Q1" {
		t.Fatalf("quest not replaced after completion")
	}

	var done protocol.QuestCompleted
	lastEvent(t, frames, protocol.EventQuestCompleted, &done)
	if done.QuestID != "Q1" || done.Next.ID == "Q1" {
		t.Fatalf("completion payload wrong: %+v", done)
	}
}

func TestQuestProgressIgnoresWrongKind(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	p.Quest = &Quest{ID: "Q1", Kind: "combat", Goal: 5, Reward: 75}
	drainFrames(t, out)

	w.handleQuestProgress(p, "visit")
	if p.Quest.Progress != 0 {
		t.Fatalf("mismatched kind advanced quest")
	}
	if len(drainFrames(t, out)) != 0 {
		t.Fatalf("mismatched kind emitted events")
	}
}

func TestQuestProgressNotifiesPlayerOnly(t *testing.T) {
	w := newTestWorld(t)
	p, out := joinPlayer(t, w, "anne")
	_, otherOut := joinPlayer(t, w, "mary")
	p.Quest = &Quest{ID: "Q1", Kind: "visit", Goal: 3, Reward: 30}
	drainFrames(t, out)
	drainFrames(t, otherOut)

	w.handleQuestProgress(p, "visit")

	var prog protocol.QuestProgress
	if !lastEvent(t, drainFrames(t, out), protocol.EventQuestProgress, &prog) {
		t.Fatalf("player missing questProgress")
	}
	if prog.Progress != 1 || prog.Goal != 3 {
		t.Fatalf("questProgress wrong: %+v", prog)
	}
	if countEvents(drainFrames(t, otherOut), protocol.EventQuestProgress) != 0 {
		t.Fatalf("quest progress leaked to other players")
	}
}
