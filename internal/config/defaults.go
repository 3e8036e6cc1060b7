package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default tank battle configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Gameplay: TanksGameplay{
			Level:           "level1",
			Enemies:         20,
			SurvivalEnemies: 100,
			SpawnShield:     3 * time.Second,
			MessageDuration: 2 * time.Second,
		},
		Enemies: TanksEnemies{
			MaxAlive:      5,
			Increment:     3,
			Reinforcement: 5 * time.Second,
			BonusChance:   0.65,
			SpawnDelay:    1500 * time.Millisecond,
			FireInterval:  time.Second,
		},
		Bonuses: TanksBonuses{
			Shield:  10 * time.Second,
			Freeze:  10 * time.Second,
			Protect: 20 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				FireIntervalReduction:  0.5,
				ReinforcementReduction: 0.4,
				QuotaBonus:             0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tanks", "tanks_survival":
		return defaultTanksYAML
	default:
		return nil
	}
}
