package units

import (
	"math/rand"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

// BonusSize is the side of a bonus footprint in px.
const BonusSize = 2 * world.CellSize

// BonusType is the effect a bonus applies when the player picks it up.
type BonusType int

const (
	BonusDestruction BonusType = iota
	BonusCask
	BonusUpgrade
	BonusTimer
	BonusStiffBase
	BonusTopTank
	BonusGun

	bonusTypeCount
)

func (b BonusType) String() string {
	switch b {
	case BonusDestruction:
		return "DESTRUCTION"
	case BonusCask:
		return "CASK"
	case BonusUpgrade:
		return "UPGRADE"
	case BonusTimer:
		return "TIMER"
	case BonusStiffBase:
		return "STIFF_BASE"
	case BonusTopTank:
		return "TOP_TANK"
	case BonusGun:
		return "GUN"
	default:
		return "UNKNOWN"
	}
}

// RandomBonusType picks any bonus type with equal weight.
func RandomBonusType(rng *rand.Rand) BonusType {
	return BonusType(rng.Intn(int(bonusTypeCount)))
}

// Bonus is a pickable item lying on the field.
type Bonus struct {
	Type BonusType
	rect core.Rect
}

// NewBonus centers a bonus of the given type on (x, y).
func NewBonus(typ BonusType, x, y int) *Bonus {
	return &Bonus{
		Type: typ,
		rect: core.NewRect(x-BonusSize/2, y-BonusSize/2, BonusSize, BonusSize),
	}
}

// Rect returns the bonus footprint.
func (b *Bonus) Rect() core.Rect { return b.rect }

// Touches reports whether the rectangle overlaps the bonus.
func (b *Bonus) Touches(r core.Rect) bool {
	return b.rect.Intersects(r)
}
