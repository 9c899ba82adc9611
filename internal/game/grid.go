package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// ErrGridExhausted is the panic value (wrapped with the view name) raised
// when a random free cell is requested from an empty view.
var ErrGridExhausted = errors.New("grid: no free cell")

// View selects one of the three free-cell sets.
type View int

const (
	ViewScenery View = iota // cobblestone placement
	ViewActor               // glide destinations, includes water
	ViewItem                // food and star placement
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewScenery:
		return "scenery"
	case ViewActor:
		return "actor"
	case ViewItem:
		return "item"
	default:
		return "unknown"
	}
}

// GridIndex tracks which cells are free for each kind of occupant. The three
// views are independent: reserving a cell in one leaves the others untouched.
type GridIndex struct {
	mu     sync.RWMutex
	cols   int
	rows   int
	pitch  float64
	free   [viewCount]mapset.Set[Cell]
	domain [viewCount]mapset.Set[Cell] // cells a view may ever hold
	water  mapset.Set[Cell]
	rng    *rand.Rand
}

// BuildGrid derives the free views from a level. Water cells (from the
// level or carved by the caller beforehand) enter the actor view only.
func BuildGrid(lvl *Level, rng *rand.Rand) *GridIndex {
	g := &GridIndex{
		cols:  lvl.Cols,
		rows:  lvl.Rows,
		pitch: lvl.Pitch,
		water: mapset.New[Cell](),
		rng:   rng,
	}
	for v := View(0); v < viewCount; v++ {
		g.free[v] = mapset.New[Cell]()
		g.domain[v] = mapset.New[Cell]()
	}
	tm := lvl.TileMap
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			c := Cell{Col: col, Row: row}
			switch {
			case tm.IsWater(col, row):
				g.water.Put(c)
				g.add(ViewActor, c)
			case tm.IsPassable(col, row):
				for v := View(0); v < viewCount; v++ {
					g.add(v, c)
				}
			}
		}
	}
	return g
}

func (g *GridIndex) add(v View, c Cell) {
	g.free[v].Put(c)
	g.domain[v].Put(c)
}

// Cols returns the grid width in cells.
func (g *GridIndex) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *GridIndex) Rows() int { return g.rows }

// Pitch returns the tile edge length in pixels.
func (g *GridIndex) Pitch() float64 { return g.pitch }

// Center returns the pixel centre of c.
func (g *GridIndex) Center(c Cell) Vec {
	return Vec{
		X: float64(c.Col)*g.pitch + g.pitch/2,
		Y: float64(c.Row)*g.pitch + g.pitch/2,
	}
}

// Snap returns the cell whose centre is nearest to p.
func (g *GridIndex) Snap(p Vec) Cell {
	return Cell{
		Col: int(math.Floor(p.X / g.pitch)),
		Row: int(math.Floor(p.Y / g.pitch)),
	}
}

// InBounds reports whether c lies on the map.
func (g *GridIndex) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

// IsFree reports whether c is currently a member of view v.
func (g *GridIndex) IsFree(v View, c Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.free[v].Has(c)
}

// Reserve removes c from view v. Reserving an absent cell is a no-op.
func (g *GridIndex) Reserve(v View, c Cell) {
	g.mu.Lock()
	g.free[v].Remove(c)
	g.mu.Unlock()
}

// Release returns c to view v. Cells that were never part of the view
// (walls, cobblestones, water outside the actor view) stay out.
func (g *GridIndex) Release(v View, c Cell) {
	g.mu.Lock()
	g.release(v, c)
	g.mu.Unlock()
}

func (g *GridIndex) release(v View, c Cell) {
	if g.domain[v].Has(c) {
		g.free[v].Put(c)
	}
}

// ReleaseAll returns every cell in cells to view v under one lock.
func (g *GridIndex) ReleaseAll(v View, cells []Cell) {
	g.mu.Lock()
	for _, c := range cells {
		g.release(v, c)
	}
	g.mu.Unlock()
}

// Block removes c from every view permanently. Used when a cobblestone grows.
func (g *GridIndex) Block(c Cell) {
	g.mu.Lock()
	for v := View(0); v < viewCount; v++ {
		g.free[v].Remove(c)
		g.domain[v].Remove(c)
	}
	g.mu.Unlock()
}

// IsWater reports whether c is a water hazard.
func (g *GridIndex) IsWater(c Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.water.Has(c)
}

// WaterCells returns all water cells sorted by (row, col).
func (g *GridIndex) WaterCells() []Cell {
	g.mu.RLock()
	out := make([]Cell, 0, g.water.Size())
	g.water.Each(func(c Cell) { out = append(out, c) })
	g.mu.RUnlock()
	sortCells(out)
	return out
}

// FreeCount returns the number of free cells in view v.
func (g *GridIndex) FreeCount(v View) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.free[v].Size()
}

// FreeCells returns a sorted copy of view v.
func (g *GridIndex) FreeCells(v View) []Cell {
	g.mu.RLock()
	out := make([]Cell, 0, g.free[v].Size())
	g.free[v].Each(func(c Cell) { out = append(out, c) })
	g.mu.RUnlock()
	sortCells(out)
	return out
}

// RandomFree picks a cell uniformly from view v minus forbidden. It panics
// with ErrGridExhausted if nothing qualifies.
func (g *GridIndex) RandomFree(v View, forbidden ...Cell) Cell {
	return g.RandomFreeFunc(v, func(c Cell) bool {
		for _, f := range forbidden {
			if f == c {
				return false
			}
		}
		return true
	})
}

// RandomFreeFunc picks a cell uniformly from the members of view v for which
// keep returns true. keep may call back into the grid.
func (g *GridIndex) RandomFreeFunc(v View, keep func(Cell) bool) Cell {
	candidates := g.FreeCells(v)
	n := 0
	for _, c := range candidates {
		if keep == nil || keep(c) {
			candidates[n] = c
			n++
		}
	}
	if n == 0 {
		panic(fmt.Errorf("%w in %s view", ErrGridExhausted, v))
	}
	return candidates[g.rng.Intn(n)]
}

// FreeDirections returns the cardinals whose first step from c is in the
// actor view, in probe order.
func (g *GridIndex) FreeDirections(from Cell) []Direction {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Direction
	for _, d := range Directions {
		if g.free[ViewActor].Has(from.Step(d, 1)) {
			out = append(out, d)
		}
	}
	return out
}

// sortCells orders cells row-major so random picks are reproducible for a
// given seed regardless of set iteration order.
func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}

// LaneHasWater reports whether the glide Project would compute from `from`
// in dir passes over water. Nothing is reserved.
func (g *GridIndex) LaneHasWater(from Cell, dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	for next := from.Step(dir, 1); g.free[ViewActor].Has(next); next = next.Step(dir, 1) {
		if g.water.Has(next) {
			return true
		}
	}
	return false
}
