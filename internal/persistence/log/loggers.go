package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

type JSONLZstdWriter struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := time.Now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	dir := filepath.Dir(w.pathForHour(hour))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curHour = hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

func (w *JSONLZstdWriter) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}

type intentEntry struct {
	TS       int64           `json:"ts"`
	Kind     string          `json:"kind"`
	PlayerID string          `json:"player_id,omitempty"`
	Intent   string          `json:"intent,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Event    string          `json:"event,omitempty"`
	Fanout   int             `json:"fanout,omitempty"`
}

// WorldJournal records every dispatched intent and every emitted event as
// one compressed JSONL entry each.
type WorldJournal struct{ w *JSONLZstdWriter }

func NewWorldJournal(dataDir string) *WorldJournal {
	return &WorldJournal{w: NewJSONLZstdWriter(filepath.Join(dataDir, "journal"), "journal")}
}

func (l *WorldJournal) WriteIntent(playerID, intent string, data []byte) error {
	return l.w.Write(intentEntry{
		TS:       time.Now().UnixMilli(),
		Kind:     "intent",
		PlayerID: playerID,
		Intent:   intent,
		Data:     json.RawMessage(data),
	})
}

func (l *WorldJournal) WriteEvent(event string, recipients int) error {
	return l.w.Write(intentEntry{
		TS:     time.Now().UnixMilli(),
		Kind:   "event",
		Event:  event,
		Fanout: recipients,
	})
}

func (l *WorldJournal) Close() error { return l.w.Close() }
