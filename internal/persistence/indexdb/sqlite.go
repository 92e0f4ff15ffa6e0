package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"piratekingdoms.io/internal/persistence/snapshot"
	"piratekingdoms.io/internal/protocol"
)

// SQLiteIndex is a secondary, queryable index of the world's economy. All
// writes are fire-and-forget from the sim: enqueued to a single writer
// goroutine and dropped on backpressure. The snapshot blob remains the
// source of truth.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqGold reqKind = iota + 1
	reqBoard
	reqSnapshot
	reqFlush
)

type req struct {
	kind reqKind

	gold     goldRow
	board    []protocol.LeaderboardEntry
	snapshot snapshotRow
	flush    chan struct{}
}

type goldRow struct {
	TS       int64
	PlayerID string
	Gold     int
	Cause    string
}

type snapshotRow struct {
	TS        int64
	Path      string
	Players   int
	Islands   int
	Alliances int
	PowerUps  int
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	// NORMAL is a decent durability/perf tradeoff for a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS gold_history (
			ts INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			gold INTEGER NOT NULL,
			cause TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_gold_player_ts ON gold_history(player_id, ts);`,
		`CREATE TABLE IF NOT EXISTS leaderboard_history (
			ts INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			gold INTEGER NOT NULL,
			PRIMARY KEY (ts, rank)
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			ts INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			players INTEGER NOT NULL,
			islands INTEGER NOT NULL,
			alliances INTEGER NOT NULL,
			power_ups INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	if _, err := db.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) RecordGold(playerID string, gold int, cause string) {
	if s == nil || s.closed.Load() {
		return
	}
	r := goldRow{TS: time.Now().UnixMilli(), PlayerID: playerID, Gold: gold, Cause: cause}
	select {
	case s.ch <- req{kind: reqGold, gold: r}:
	default:
		// Drop if the indexer falls behind; the journal remains complete.
	}
}

func (s *SQLiteIndex) RecordLeaderboard(entries []protocol.LeaderboardEntry) {
	if s == nil || s.closed.Load() || len(entries) == 0 {
		return
	}
	cp := append([]protocol.LeaderboardEntry(nil), entries...)
	select {
	case s.ch <- req{kind: reqBoard, board: cp}:
	default:
	}
}

func (s *SQLiteIndex) RecordSnapshot(path string, snap snapshot.SnapshotV1) {
	if s == nil || s.closed.Load() {
		return
	}
	r := snapshotRow{
		TS:        time.Now().UnixMilli(),
		Path:      path,
		Players:   len(snap.Players),
		Islands:   len(snap.Islands),
		Alliances: len(snap.Alliances),
		PowerUps:  len(snap.PowerUps),
	}
	select {
	case s.ch <- req{kind: reqSnapshot, snapshot: r}:
	default:
	}
}

// LatestLeaderboard returns the most recently recorded standings, best rank
// first. Read path for ops tooling and tests; not used by the sim.
func (s *SQLiteIndex) LatestLeaderboard(ctx context.Context) ([]protocol.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rank, player_id, name, gold
		FROM leaderboard_history
		WHERE ts = (SELECT MAX(ts) FROM leaderboard_history)
		ORDER BY rank ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []protocol.LeaderboardEntry
	for rows.Next() {
		var e protocol.LeaderboardEntry
		if err := rows.Scan(&e.Rank, &e.PlayerID, &e.Name, &e.Gold); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GoldHistory returns the recorded balance trail for one player, oldest
// first, capped at limit.
func (s *SQLiteIndex) GoldHistory(ctx context.Context, playerID string, limit int) ([]int, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT gold FROM gold_history
		WHERE player_id = ?
		ORDER BY ts ASC, rowid ASC
		LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var g int
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Flush blocks until everything enqueued before the call is committed.
// Test and shutdown helper.
func (s *SQLiteIndex) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	select {
	case s.ch <- req{kind: reqFlush, flush: done}:
		<-done
	default:
	}
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertGold, _ := s.db.Prepare(`INSERT INTO gold_history(ts,player_id,gold,cause) VALUES(?,?,?,?)`)
	insertBoard, _ := s.db.Prepare(`INSERT OR REPLACE INTO leaderboard_history(ts,rank,player_id,name,gold) VALUES(?,?,?,?,?)`)
	insertSnapshot, _ := s.db.Prepare(`INSERT OR REPLACE INTO snapshots(ts,path,players,islands,alliances,power_ups) VALUES(?,?,?,?,?,?)`)
	defer func() {
		if insertGold != nil {
			_ = insertGold.Close()
		}
		if insertBoard != nil {
			_ = insertBoard.Close()
		}
		if insertSnapshot != nil {
			_ = insertSnapshot.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	flushIfNeeded := func() {
		if tx == nil {
			return
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	for r := range s.ch {
		if r.kind == reqFlush {
			commit()
			close(r.flush)
			continue
		}
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqGold:
			g := r.gold
			if insertGold != nil {
				if _, err := tx.Stmt(insertGold).Exec(g.TS, g.PlayerID, g.Gold, g.Cause); err != nil {
					rollback()
					continue
				}
				opCount++
			}

		case reqBoard:
			ts := time.Now().UnixMilli()
			failed := false
			for _, e := range r.board {
				if insertBoard == nil {
					break
				}
				if _, err := tx.Stmt(insertBoard).Exec(ts, e.Rank, e.PlayerID, e.Name, e.Gold); err != nil {
					rollback()
					failed = true
					break
				}
				opCount++
			}
			if failed {
				continue
			}

		case reqSnapshot:
			sn := r.snapshot
			if insertSnapshot != nil {
				if _, err := tx.Stmt(insertSnapshot).Exec(sn.TS, sn.Path, sn.Players, sn.Islands, sn.Alliances, sn.PowerUps); err != nil {
					rollback()
					continue
				}
				opCount++
			}
		}
		flushIfNeeded()
	}

	commit()
}
