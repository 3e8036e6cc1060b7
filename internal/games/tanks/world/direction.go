package world

import "math/rand"

// Direction is one of the four axis directions a tank or projectile can face.
type Direction int

const (
	DirNone Direction = iota - 1 // no heading; used for idle input
	DirUp
	DirDown
	DirLeft
	DirRight
)

// AllDirections lists the directions in a fixed order.
var AllDirections = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step (dx, dy) for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Vertical reports whether the direction moves along the y axis.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// RandomDirection picks one of the four directions.
func RandomDirection(rng *rand.Rand) Direction {
	return AllDirections[rng.Intn(len(AllDirections))]
}
