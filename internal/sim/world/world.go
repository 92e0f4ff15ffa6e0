package world

import (
	"context"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"piratekingdoms.io/internal/persistence/snapshot"
	"piratekingdoms.io/internal/protocol"
	"piratekingdoms.io/internal/sim/tuning"
)

type Config struct {
	Tuning tuning.Tuning
	Seed   int64
}

// World is a single-goroutine authoritative simulation. All state is owned
// by the loop in Run; the only way in is the channels below.
type World struct {
	cfg  tuning.Tuning
	rng  *rand.Rand
	seed int64
	log  *log.Logger

	players   map[string]*Player
	islands   []*Island
	alliances map[string]*Alliance
	trades    map[string]*PendingTrade // keyed by initiator id
	powerUps  map[string]*PowerUp
	chat      []protocol.ChatMessage
	board     []protocol.LeaderboardEntry

	clients map[string]*clientState

	inbox chan IntentEnvelope
	join  chan JoinRequest
	leave chan string
	timed chan timedCommand
	stop  chan struct{}

	nextPlayerNum  atomic.Uint64
	nextPowerUpNum atomic.Uint64
	nextQuestNum   atomic.Uint64
	nextChatNum    atomic.Uint64

	gPlayers   atomic.Int64
	gClients   atomic.Int64
	gAlliances atomic.Int64
	gPowerUps  atomic.Int64
	gTrades    atomic.Int64

	// Optional sinks (may be nil). Implemented in internal/persistence/*.
	journal      Journal
	history      History
	snapshotSink chan<- snapshot.SnapshotV1
}

// Journal records every dispatched intent and emitted event.
type Journal interface {
	WriteIntent(playerID, intent string, data []byte) error
	WriteEvent(event string, recipients int) error
}

// History is the async index of gold movements and leaderboard standings.
// Calls must never block the world loop.
type History interface {
	RecordGold(playerID string, gold int, cause string)
	RecordLeaderboard(entries []protocol.LeaderboardEntry)
}

func New(cfg Config, logger *log.Logger) *World {
	t := cfg.Tuning
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	w := &World{
		cfg:       t,
		rng:       rand.New(rand.NewSource(seed)),
		seed:      seed,
		log:       logger,
		players:   map[string]*Player{},
		alliances: map[string]*Alliance{},
		trades:    map[string]*PendingTrade{},
		powerUps:  map[string]*PowerUp{},
		clients:   map[string]*clientState{},
		inbox:     make(chan IntentEnvelope, 1024),
		join:      make(chan JoinRequest, 64),
		leave:     make(chan string, 64),
		timed:     make(chan timedCommand, 256),
		stop:      make(chan struct{}),
	}
	w.islands = w.generateIslands()
	return w
}

func (w *World) SetJournal(j Journal)                          { w.journal = j }
func (w *World) SetHistory(h History)                          { w.history = h }
func (w *World) SetSnapshotSink(ch chan<- snapshot.SnapshotV1) { w.snapshotSink = ch }

func (w *World) Inbox() chan<- IntentEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

// Run drains joins, leaves, intents, delayed effects and scheduler ticks
// one at a time until ctx is cancelled or Stop is called.
func (w *World) Run(ctx context.Context) error {
	eventTicker := time.NewTicker(w.cfg.WorldEventEvery.Std())
	regenTicker := time.NewTicker(w.cfg.RegenEvery.Std())
	spawnTicker := time.NewTicker(w.cfg.PowerUpSpawnEvery.Std())
	boardTicker := time.NewTicker(w.cfg.LeaderboardEvery.Std())
	snapTicker := time.NewTicker(w.cfg.SnapshotEvery.Std())
	defer eventTicker.Stop()
	defer regenTicker.Stop()
	defer spawnTicker.Stop()
	defer boardTicker.Stop()
	defer snapTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			w.handleJoin(req)
		case id := <-w.leave:
			w.handleLeave(id)
		case env := <-w.inbox:
			w.dispatch(env)
		case cmd := <-w.timed:
			cmd()
		case <-eventTicker.C:
			w.runWorldEvent()
		case <-regenTicker.C:
			w.regenIslands()
		case <-spawnTicker.C:
			w.spawnPowerUp()
		case <-boardTicker.C:
			w.recomputeLeaderboard(true)
		case <-snapTicker.C:
			w.pushSnapshot()
		}
		w.updateGauges()
	}
}

func (w *World) Stop() { close(w.stop) }

// schedule posts fn back into the world queue after d. Fired commands run on
// the loop goroutine; if the queue is full the effect is dropped and logged.
func (w *World) schedule(d time.Duration, fn timedCommand) {
	time.AfterFunc(d, func() {
		select {
		case w.timed <- fn:
		default:
			w.log.Printf("timed queue full, dropping delayed effect")
		}
	})
}

func (w *World) pushSnapshot() {
	if w.snapshotSink == nil {
		return
	}
	snap := w.ExportSnapshot()
	select {
	case w.snapshotSink <- snap:
	default:
		w.log.Printf("snapshot sink busy, skipping periodic snapshot")
	}
}

// --- delivery ------------------------------------------------------------

func (w *World) sendTo(playerID, event string, data any) {
	cl, ok := w.clients[playerID]
	if !ok {
		return
	}
	b, err := protocol.EncodeEvent(event, data)
	if err != nil {
		w.log.Printf("encode %s: %v", event, err)
		return
	}
	sendLatest(cl.Out, b)
	w.journalEvent(event, 1)
}

func (w *World) broadcast(event string, data any) {
	w.broadcastExcept("", event, data)
}

func (w *World) broadcastExcept(exceptID, event string, data any) {
	b, err := protocol.EncodeEvent(event, data)
	if err != nil {
		w.log.Printf("encode %s: %v", event, err)
		return
	}
	n := 0
	for id, cl := range w.clients {
		if id == exceptID {
			continue
		}
		sendLatest(cl.Out, b)
		n++
	}
	w.journalEvent(event, n)
}

func (w *World) sendAlliance(allianceID, event string, data any) {
	al, ok := w.alliances[allianceID]
	if !ok {
		return
	}
	for _, id := range al.Members {
		w.sendTo(id, event, data)
	}
}

func (w *World) journalEvent(event string, recipients int) {
	if w.journal == nil {
		return
	}
	if err := w.journal.WriteEvent(event, recipients); err != nil {
		w.log.Printf("journal event %s: %v", event, err)
	}
}

func (w *World) recordGold(p *Player, cause string) {
	if w.history == nil {
		return
	}
	w.history.RecordGold(p.ID, p.Gold, cause)
}

// sendLatest never blocks; on a full buffer it drops the oldest frame.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
