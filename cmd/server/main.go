package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"piratekingdoms.io/internal/persistence/indexdb"
	persistlog "piratekingdoms.io/internal/persistence/log"
	"piratekingdoms.io/internal/persistence/snapshot"
	"piratekingdoms.io/internal/sim/tuning"
	"piratekingdoms.io/internal/sim/world"
	"piratekingdoms.io/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		seed       = flag.Int64("seed", 0, "world rng seed (0 = time-based)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite economy index")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	_ = os.MkdirAll(*dataDir, 0o755)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", *tuningPath)
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
	}

	w := world.New(world.Config{Tuning: tune, Seed: *seed}, logger)

	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(*dataDir)
	}
	if snapshotToLoad != "" {
		snap, err := snapshot.ReadSnapshot(snapshotToLoad)
		if err != nil {
			// Unreadable snapshots are non-fatal; the fresh world stands.
			logger.Printf("read snapshot %s: %v (starting fresh)", snapshotToLoad, err)
		} else {
			w.ImportSnapshot(snap)
			logger.Printf("resumed from snapshot=%s", filepath.Base(snapshotToLoad))
		}
	}

	journal := persistlog.NewWorldJournal(*dataDir)
	defer journal.Close()
	w.SetJournal(journal)
	if idx != nil {
		w.SetHistory(idx)
	}

	ctx, cancel := signalContext()
	defer cancel()

	// Snapshot writer.
	snapCh := make(chan snapshot.SnapshotV1, 2)
	w.SetSnapshotSink(snapCh)
	writeSnap := func(snap snapshot.SnapshotV1) {
		path := filepath.Join(*dataDir, "snapshots", fmt.Sprintf("%d.snap.zst", snap.Header.CreatedMs))
		if err := snapshot.WriteSnapshot(path, snap); err != nil {
			logger.Printf("snapshot write: %v", err)
			return
		}
		if idx != nil {
			idx.RecordSnapshot(path, snap)
		}
		logger.Printf("snapshot written: %s", filepath.Base(path))
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-snapCh:
				writeSnap(snap)
			}
		}
	}()

	worldDone := make(chan struct{})
	go func() {
		defer close(worldDone)
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		m := w.Metrics()

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP piratekingdoms_players Current number of live players.\n")
		fmt.Fprintf(rw, "# TYPE piratekingdoms_players gauge\n")
		fmt.Fprintf(rw, "piratekingdoms_players %d\n", m.Players)

		fmt.Fprintf(rw, "# HELP piratekingdoms_clients Current number of connected clients.\n")
		fmt.Fprintf(rw, "# TYPE piratekingdoms_clients gauge\n")
		fmt.Fprintf(rw, "piratekingdoms_clients %d\n", m.Clients)

		fmt.Fprintf(rw, "# HELP piratekingdoms_alliances Current number of alliances.\n")
		fmt.Fprintf(rw, "# TYPE piratekingdoms_alliances gauge\n")
		fmt.Fprintf(rw, "piratekingdoms_alliances %d\n", m.Alliances)

		fmt.Fprintf(rw, "# HELP piratekingdoms_power_ups Power-ups currently in flight.\n")
		fmt.Fprintf(rw, "# TYPE piratekingdoms_power_ups gauge\n")
		fmt.Fprintf(rw, "piratekingdoms_power_ups %d\n", m.PowerUps)

		fmt.Fprintf(rw, "# HELP piratekingdoms_pending_trades Open trade proposals.\n")
		fmt.Fprintf(rw, "# TYPE piratekingdoms_pending_trades gauge\n")
		fmt.Fprintf(rw, "piratekingdoms_pending_trades %d\n", m.Trades)

		fmt.Fprintf(rw, "# HELP piratekingdoms_queue_depth Channel backlog depth.\n")
		fmt.Fprintf(rw, "# TYPE piratekingdoms_queue_depth gauge\n")
		fmt.Fprintf(rw, "piratekingdoms_queue_depth{queue=%q} %d\n", "inbox", m.QueueDepths.Inbox)
		fmt.Fprintf(rw, "piratekingdoms_queue_depth{queue=%q} %d\n", "join", m.QueueDepths.Join)
		fmt.Fprintf(rw, "piratekingdoms_queue_depth{queue=%q} %d\n", "leave", m.QueueDepths.Leave)
		fmt.Fprintf(rw, "piratekingdoms_queue_depth{queue=%q} %d\n", "timed", m.QueueDepths.Timed)
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(w, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}

	// The loop has stopped; one final snapshot captures the shutdown state.
	<-worldDone
	writeSnap(w.ExportSnapshot())
	if idx != nil {
		idx.Flush()
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func latestSnapshot(dataDir string) string {
	dir := filepath.Join(dataDir, "snapshots")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestMs uint64
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".snap.zst") {
			continue
		}
		base := strings.TrimSuffix(name, ".snap.zst")
		ms, err := strconv.ParseUint(base, 10, 64)
		if err != nil {
			continue
		}
		if best == "" || ms > bestMs {
			bestMs = ms
			best = filepath.Join(dir, name)
		}
	}
	return best
}
