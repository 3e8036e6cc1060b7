// Package units contains the mobile and pickable entities of a tank battle:
// tanks, projectiles, the base, bonuses and short-lived effects.
package units

import "time"

// Fraction is the side a tank fights for.
type Fraction int

const (
	FractionFriend Fraction = iota
	FractionEnemy
)

func (f Fraction) String() string {
	if f == FractionFriend {
		return "friend"
	}
	return "enemy"
}

// Color is the paint tier of a tank. Heavy enemies lose their PLAIN paint
// (turning GREEN) on the first hit instead of being destroyed.
type Color int

const (
	ColorPlain Color = iota
	ColorGreen
	ColorYellow
)

func (c Color) String() string {
	switch c {
	case ColorPlain:
		return "plain"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Type is a tank model. Player tanks climb LEVEL_1..LEVEL_4; enemies come in
// four fixed models.
type Type int

const (
	TypeLevel1 Type = iota
	TypeLevel2
	TypeLevel3
	TypeLevel4
	TypeEnemySimple
	TypeEnemyFast
	TypeEnemyMiddle
	TypeEnemyHeavy

	typeCount
)

// Projectile speeds in world px per second.
const (
	ShotSpeedNormal = 150.0
	ShotSpeedFast   = 240.0
)

// TypeSpec holds the per-model capabilities.
type TypeSpec struct {
	Speed        float64       // px per second
	ShotSpeed    float64       // px per second
	FireCooldown time.Duration // minimum time between shots
	HighPower    bool          // shots destroy steel
	Score        int           // points for destroying it
}

var typeSpecs = [typeCount]TypeSpec{
	TypeLevel1:      {Speed: 48, ShotSpeed: ShotSpeedNormal, FireCooldown: 600 * time.Millisecond},
	TypeLevel2:      {Speed: 48, ShotSpeed: ShotSpeedFast, FireCooldown: 500 * time.Millisecond},
	TypeLevel3:      {Speed: 48, ShotSpeed: ShotSpeedFast, FireCooldown: 300 * time.Millisecond},
	TypeLevel4:      {Speed: 48, ShotSpeed: ShotSpeedFast, FireCooldown: 300 * time.Millisecond, HighPower: true},
	TypeEnemySimple: {Speed: 30, ShotSpeed: ShotSpeedNormal, FireCooldown: 600 * time.Millisecond, Score: 100},
	TypeEnemyFast:   {Speed: 72, ShotSpeed: ShotSpeedNormal, FireCooldown: 600 * time.Millisecond, Score: 200},
	TypeEnemyMiddle: {Speed: 48, ShotSpeed: ShotSpeedFast, FireCooldown: 600 * time.Millisecond, Score: 300},
	TypeEnemyHeavy:  {Speed: 36, ShotSpeed: ShotSpeedNormal, FireCooldown: 600 * time.Millisecond, Score: 400},
}

// Spec returns the capabilities of the model. Unknown models get a zero spec.
func (t Type) Spec() TypeSpec {
	if t < 0 || t >= typeCount {
		return TypeSpec{}
	}
	return typeSpecs[t]
}

// Upgraded returns the next player tier, capped at LEVEL_4.
// Enemy models are returned unchanged.
func (t Type) Upgraded() Type {
	if t >= TypeLevel1 && t < TypeLevel4 {
		return t + 1
	}
	return t
}

// Next cycles through every model in declaration order, wrapping around.
func (t Type) Next() Type {
	return (t + 1) % typeCount
}

// IsEnemy reports whether the model is one of the enemy models.
func (t Type) IsEnemy() bool {
	return t >= TypeEnemySimple && t < typeCount
}

func (t Type) String() string {
	switch t {
	case TypeLevel1:
		return "LEVEL_1"
	case TypeLevel2:
		return "LEVEL_2"
	case TypeLevel3:
		return "LEVEL_3"
	case TypeLevel4:
		return "LEVEL_4"
	case TypeEnemySimple:
		return "ENEMY_SIMPLE"
	case TypeEnemyFast:
		return "ENEMY_FAST"
	case TypeEnemyMiddle:
		return "ENEMY_MIDDLE"
	case TypeEnemyHeavy:
		return "ENEMY_HEAVY"
	default:
		return "UNKNOWN"
	}
}

// EnemyQueue is the fixed order in which enemy models are spawned.
var EnemyQueue = [4]Type{TypeEnemySimple, TypeEnemyFast, TypeEnemyMiddle, TypeEnemyHeavy}
