package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FireInterval shortens the enemy fire interval as difficulty rises.
func (d *DifficultyManager) FireInterval(base time.Duration, score int, ticks int) time.Duration {
	return scaleDown(base, d.Level(score, ticks)*d.cfg.Scaling.FireIntervalReduction)
}

// Reinforcement shortens the reinforcement interval as difficulty rises.
func (d *DifficultyManager) Reinforcement(base time.Duration, score int, ticks int) time.Duration {
	return scaleDown(base, d.Level(score, ticks)*d.cfg.Scaling.ReinforcementReduction)
}

// Quota grows the enemy quota with the initial level only, so it stays
// fixed for the whole battle.
func (d *DifficultyManager) Quota(base int) int {
	return base + int(math.Round(float64(base)*d.initialLevel*d.cfg.Scaling.QuotaBonus))
}

// scaleDown removes a share of d, never going below a tenth of it.
func scaleDown(d time.Duration, share float64) time.Duration {
	share = clampF(share, 0.0, 0.9)
	return time.Duration(float64(d) * (1.0 - share))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
