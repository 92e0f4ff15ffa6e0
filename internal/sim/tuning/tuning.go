package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("10s") or integer milliseconds.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("bad duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := n.Decode(&ms); err != nil {
		return err
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	WorldWidth  float64 `yaml:"world_width"`
	WorldHeight float64 `yaml:"world_height"`
	IslandCount int     `yaml:"island_count"`

	IslandGoldMin int `yaml:"island_gold_min"`
	IslandGoldMax int `yaml:"island_gold_max"`
	IslandGoldCap int `yaml:"island_gold_cap"`

	CollectRate          int     `yaml:"collect_rate"`
	InteractionRange     float64 `yaml:"interaction_range"`
	UpgradeSpeedBonus    int     `yaml:"upgrade_speed_bonus"`
	UpgradeStrengthBonus int     `yaml:"upgrade_strength_bonus"`

	PlunderCap      int `yaml:"plunder_cap"`
	ChatHistoryMax  int `yaml:"chat_history_max"`
	LeaderboardSize int `yaml:"leaderboard_size"`

	PowerUpMax           int      `yaml:"power_up_max"`
	PowerUpDuration      Duration `yaml:"power_up_duration"`
	PowerUpSpeedBonus    int      `yaml:"power_up_speed_bonus"`
	PowerUpStrengthBonus int      `yaml:"power_up_strength_bonus"`

	StormRadius float64  `yaml:"storm_radius"`
	StormDamage int      `yaml:"storm_damage"`
	StormDelay  Duration `yaml:"storm_delay"`
	PirateSteal int      `yaml:"pirate_steal"`

	WorldEventEvery   Duration `yaml:"world_event_every"`
	RegenEvery        Duration `yaml:"regen_every"`
	RegenMin          int      `yaml:"regen_min"`
	RegenMax          int      `yaml:"regen_max"`
	PowerUpSpawnEvery Duration `yaml:"power_up_spawn_every"`
	LeaderboardEvery  Duration `yaml:"leaderboard_every"`
	SnapshotEvery     Duration `yaml:"snapshot_every"`
}

// Defaults mirror the shipped tuning.yaml so a missing file is never fatal.
func Defaults() Tuning {
	return Tuning{
		ProtocolVersion: "1.0",

		WorldWidth:  800,
		WorldHeight: 600,
		IslandCount: 5,

		IslandGoldMin: 50,
		IslandGoldMax: 149,
		IslandGoldCap: 200,

		CollectRate:          10,
		InteractionRange:     100,
		UpgradeSpeedBonus:    20,
		UpgradeStrengthBonus: 5,

		PlunderCap:      50,
		ChatHistoryMax:  50,
		LeaderboardSize: 10,

		PowerUpMax:           3,
		PowerUpDuration:      Duration(10 * time.Second),
		PowerUpSpeedBonus:    40,
		PowerUpStrengthBonus: 10,

		StormRadius: 100,
		StormDamage: 10,
		StormDelay:  Duration(5 * time.Second),
		PirateSteal: 20,

		WorldEventEvery:   Duration(30 * time.Second),
		RegenEvery:        Duration(10 * time.Second),
		RegenMin:          1,
		RegenMax:          5,
		PowerUpSpawnEvery: Duration(15 * time.Second),
		LeaderboardEvery:  Duration(10 * time.Second),
		SnapshotEvery:     Duration(5 * time.Minute),
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
