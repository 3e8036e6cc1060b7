// Package config provides YAML-based gameplay configuration loading and
// difficulty management for the tank battle.
package config

import "time"

// TanksConfig contains all configuration for a tank battle.
type TanksConfig struct {
	Gameplay   TanksGameplay    `yaml:"gameplay"`
	Enemies    TanksEnemies     `yaml:"enemies"`
	Bonuses    TanksBonuses     `yaml:"bonuses"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TanksGameplay defines the run-level parameters.
type TanksGameplay struct {
	Level           string        `yaml:"level"`            // level ID to play
	LevelsDir       string        `yaml:"levels_dir"`       // extra level files, optional
	Enemies         int           `yaml:"enemies"`          // quota when the level sets none
	SurvivalEnemies int           `yaml:"survival_enemies"` // quota of the survival mode
	SpawnShield     time.Duration `yaml:"spawn_shield"`
	MessageDuration time.Duration `yaml:"message_duration"`
}

// TanksEnemies defines the enemy spawner and AI pacing.
type TanksEnemies struct {
	MaxAlive      int           `yaml:"max_alive"`
	Increment     int           `yaml:"increment"`
	Reinforcement time.Duration `yaml:"reinforcement"`
	BonusChance   float64       `yaml:"bonus_chance"`
	SpawnDelay    time.Duration `yaml:"spawn_delay"`
	FireInterval  time.Duration `yaml:"fire_interval"`
}

// TanksBonuses defines bonus effect durations.
type TanksBonuses struct {
	Shield  time.Duration `yaml:"shield"`  // CASK
	Freeze  time.Duration `yaml:"freeze"`  // TIMER
	Protect time.Duration `yaml:"protect"` // STIFF_BASE
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireIntervalReduction  float64 `yaml:"fire_interval_reduction"` // share of the fire interval cut at max difficulty
	ReinforcementReduction float64 `yaml:"reinforcement_reduction"` // share of the reinforcement interval cut at max difficulty
	QuotaBonus             float64 `yaml:"quota_bonus"`             // extra share of the quota at max initial level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values give "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
