package game

import "math"

// Direction is one of the four cardinal glide directions. The numeric values
// follow the swipe order East, North, West, South.
type Direction int

const (
	East Direction = iota
	North
	West
	South
)

// Directions lists the cardinals in probe order.
var Directions = [4]Direction{East, North, West, South}

// Valid reports whether d is one of the four cardinals.
func (d Direction) Valid() bool {
	return d >= East && d <= South
}

// Delta returns the column/row offset of one step in d. Rows grow downward,
// so North is row-1. Invalid directions return (0, 0).
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case East:
		return 1, 0
	case North:
		return 0, -1
	case West:
		return -1, 0
	case South:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 2) % 4
}

// Unit returns the pixel-space unit vector for d.
func (d Direction) Unit() Vec {
	dc, dr := d.Delta()
	return Vec{X: float64(dc), Y: float64(dr)}
}

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case North:
		return "north"
	case West:
		return "west"
	case South:
		return "south"
	default:
		return "none"
	}
}

// Cell is a grid-aligned tile coordinate. It is the key of every free-view
// membership test.
type Cell struct {
	Col int
	Row int
}

// Step returns the cell n tiles away in direction d.
func (c Cell) Step(d Direction, n int) Cell {
	dc, dr := d.Delta()
	return Cell{Col: c.Col + dc*n, Row: c.Row + dr*n}
}

// Vec is a sub-tile pixel position or displacement.
type Vec struct {
	X float64
	Y float64
}

func (v Vec) Add(o Vec) Vec             { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec             { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec       { return Vec{X: v.X * k, Y: v.Y * k} }
func (v Vec) Len() float64              { return math.Hypot(v.X, v.Y) }
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Scale(t)) }

// Box is an axis-aligned hitbox centred on a pixel position.
type Box struct {
	Center Vec
	W      float64
	H      float64
}

// Intersects reports whether two boxes overlap. Touching edges do not count,
// so sprites on adjacent tiles never collide.
func (b Box) Intersects(o Box) bool {
	return math.Abs(b.Center.X-o.Center.X)*2 < b.W+o.W &&
		math.Abs(b.Center.Y-o.Center.Y)*2 < b.H+o.H
}

// Grow returns b widened by d on every side.
func (b Box) Grow(d float64) Box {
	return Box{Center: b.Center, W: b.W + 2*d, H: b.H + 2*d}
}

// progress returns how far now is through a span starting at start and
// lasting ticks, clamped to [0, 1].
func progress(now, start, ticks int) float64 {
	if ticks <= 0 {
		return 1
	}
	t := float64(now-start) / float64(ticks)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
