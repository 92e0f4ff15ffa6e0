package world

// WorldMetrics is a point-in-time view safe to read from any goroutine.
type WorldMetrics struct {
	Players   int `json:"players"`
	Clients   int `json:"clients"`
	Alliances int `json:"alliances"`
	PowerUps  int `json:"power_ups"`
	Trades    int `json:"trades"`

	QueueDepths QueueDepths `json:"queue_depths"`
}

type QueueDepths struct {
	Inbox int `json:"inbox"`
	Join  int `json:"join"`
	Leave int `json:"leave"`
	Timed int `json:"timed"`
}

func (w *World) Metrics() WorldMetrics {
	return WorldMetrics{
		Players:   int(w.gPlayers.Load()),
		Clients:   int(w.gClients.Load()),
		Alliances: int(w.gAlliances.Load()),
		PowerUps:  int(w.gPowerUps.Load()),
		Trades:    int(w.gTrades.Load()),
		QueueDepths: QueueDepths{
			Inbox: len(w.inbox),
			Join:  len(w.join),
			Leave: len(w.leave),
			Timed: len(w.timed),
		},
	}
}

// updateGauges publishes loop-owned sizes after each unit of work.
func (w *World) updateGauges() {
	w.gPlayers.Store(int64(len(w.players)))
	w.gClients.Store(int64(len(w.clients)))
	w.gAlliances.Store(int64(len(w.alliances)))
	w.gPowerUps.Store(int64(len(w.powerUps)))
	w.gTrades.Store(int64(len(w.trades)))
}
