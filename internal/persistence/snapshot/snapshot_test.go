package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshots", "1.snap.zst")

	in := SnapshotV1{
		Header:      Header{Version: 1, Seed: 42, CreatedMs: 1234},
		WorldWidth:  800,
		WorldHeight: 600,
		Players: []PlayerV1{{
			ID: "P1", Name: "anne", X: 10, Y: 20,
			ShipType: "sloop", Speed: 160, Strength: 10, Gold: 99,
			BaseSpeed: 160, BaseStrength: 10, JoinSeq: 1,
			Quest: &QuestV1{ID: "Q1", Kind: "collect", Goal: 100, Reward: 50, Progress: 3},
		}},
		Islands:  []IslandV1{{Index: 0, X: 1, Y: 2, Gold: 120, Owner: "P1"}},
		PowerUps: []PowerUpV1{{ID: "PU1", Kind: "shield", X: 3, Y: 4}},
		Chat:     []ChatV1{{ID: "C1", From: "anne", Text: "ahoy", Timestamp: 5}},
		Counters: CountersV1{NextPlayer: 1, NextQuest: 1, NextChat: 1},
	}
	if err := WriteSnapshot(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Header.Seed != 42 || out.WorldWidth != 800 {
		t.Fatalf("header mismatch: %+v", out.Header)
	}
	if len(out.Players) != 1 || out.Players[0].Gold != 99 {
		t.Fatalf("players mismatch: %+v", out.Players)
	}
	if out.Players[0].Quest == nil || out.Players[0].Quest.Progress != 3 {
		t.Fatalf("quest mismatch: %+v", out.Players[0].Quest)
	}
	if len(out.Islands) != 1 || out.Islands[0].Owner != "P1" {
		t.Fatalf("islands mismatch: %+v", out.Islands)
	}
	if out.Counters.NextPlayer != 1 {
		t.Fatalf("counters mismatch: %+v", out.Counters)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.snap.zst"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap.zst")
	if err := os.WriteFile(path, []byte("not a snapshot"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadSnapshot(path); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}
