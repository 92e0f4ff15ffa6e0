package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version   int   `json:"version"`
	Seed      int64 `json:"seed"`
	CreatedMs int64 `json:"created_ms"`
}

// SnapshotV1 is the durable form of the full world. The file is a zstd
// stream holding one JSON header line followed by the gob-encoded body.
type SnapshotV1 struct {
	Header Header `json:"header"`

	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`

	Players   []PlayerV1   `json:"players"`
	Islands   []IslandV1   `json:"islands"`
	Alliances []AllianceV1 `json:"alliances"`
	Trades    []TradeV1    `json:"trades"`
	PowerUps  []PowerUpV1  `json:"power_ups"`
	Chat      []ChatV1     `json:"chat"`

	Counters CountersV1 `json:"counters"`
}

type PlayerV1 struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	ShipType     string  `json:"ship_type"`
	Speed        int     `json:"speed"`
	Strength     int     `json:"strength"`
	Gold         int     `json:"gold"`
	BaseSpeed    int     `json:"base_speed"`
	BaseStrength int     `json:"base_strength"`
	AllianceID   string  `json:"alliance_id,omitempty"`
	JoinSeq      uint64  `json:"join_seq"`

	Inventory map[string]int `json:"inventory,omitempty"`
	Quest     *QuestV1       `json:"quest,omitempty"`
}

type QuestV1 struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Goal     int    `json:"goal"`
	Reward   int    `json:"reward"`
	Progress int    `json:"progress"`
}

type IslandV1 struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Gold  int     `json:"gold"`
	Owner string  `json:"owner,omitempty"`
}

type AllianceV1 struct {
	ID      string    `json:"id"`
	Members [2]string `json:"members"`
}

type TradeV1 struct {
	InitiatorID string `json:"initiator_id"`
	TargetID    string `json:"target_id"`
	Offer       int    `json:"offer"`
	Request     int    `json:"request"`
	CreatedMs   int64  `json:"created_ms"`
}

type PowerUpV1 struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	SpawnedMs int64   `json:"spawned_ms"`
}

type ChatV1 struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type CountersV1 struct {
	NextPlayer  uint64 `json:"next_player"`
	NextPowerUp uint64 `json:"next_power_up"`
	NextQuest   uint64 `json:"next_quest"`
	NextChat    uint64 `json:"next_chat"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is advisory; gob carries it too.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
