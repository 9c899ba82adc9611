package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// DefaultPitch is the tile edge length in pixels.
const DefaultPitch = 64

// ErrUnknownLevelRune is returned by ParseLevel for characters outside the
// level alphabet.
var ErrUnknownLevelRune = errors.New("level: unknown map rune")

// defaultLevelRows is the stock maze. Row 0 is solid wall so water can be
// carved into it; the snake spawns at (0,2) and the player at 'P'.
var defaultLevelRows = []string{
	"#################",
	"........#........",
	".##.###.#.###.##.",
	".................",
	".##.#.#####.#.##.",
	"....#...#...#....",
	"###.###.#.###.###",
	"........P........",
	".##.###.#.###.##.",
	"...#.........#...",
	".#...#.###.#...#.",
	".................",
}

// Level is the static map data consumed once at load.
//
//	'#' wall   '.' floor   'P' floor with the player spawn   '~' water
type Level struct {
	Cols        int
	Rows        int
	Pitch       float64
	TileMap     *TileMap
	PlayerSpawn Cell
}

// ParseLevel builds a Level from ASCII rows. All rows must share a width.
func ParseLevel(rows []string, pitch float64) (*Level, error) {
	if len(rows) == 0 {
		return nil, errors.New("level: no rows")
	}
	cols := len(rows[0])
	tm := NewTileMap(cols, len(rows))
	lvl := &Level{Cols: cols, Rows: len(rows), Pitch: pitch, TileMap: tm}
	spawnSeen := false
	for row, line := range rows {
		if len(line) != cols {
			return nil, fmt.Errorf("level: row %d has width %d, want %d", row, len(line), cols)
		}
		for col, ch := range line {
			switch ch {
			case '#':
				tm.SetObject(col, row, ObjectWall)
			case '.':
			case '~':
				tm.CarveWater(col, row)
			case 'P':
				lvl.PlayerSpawn = Cell{Col: col, Row: row}
				spawnSeen = true
			default:
				return nil, fmt.Errorf("%w %q at (%d,%d)", ErrUnknownLevelRune, ch, col, row)
			}
		}
	}
	if !spawnSeen {
		lvl.PlayerSpawn = Cell{Col: cols / 2, Row: len(rows) / 2}
	}
	return lvl, nil
}

// DefaultLevel returns a fresh copy of the stock maze.
func DefaultLevel() *Level {
	lvl, err := ParseLevel(defaultLevelRows, DefaultPitch)
	if err != nil {
		panic(err) // stock data is static
	}
	return lvl
}

// Width returns the map width in pixels.
func (l *Level) Width() float64 { return float64(l.Cols) * l.Pitch }

// Height returns the map height in pixels.
func (l *Level) Height() float64 { return float64(l.Rows) * l.Pitch }

// CarveTopWater converts n distinct random top-row columns into water. The
// first and last columns are never chosen. Returns the carved cells sorted by
// column.
func (l *Level) CarveTopWater(n int, rng *rand.Rand) []Cell {
	inner := l.Cols - 2
	if n > inner {
		n = inner
	}
	if n <= 0 {
		return nil
	}
	picked := rng.Perm(inner)[:n]
	sort.Ints(picked)
	out := make([]Cell, 0, n)
	for _, p := range picked {
		c := Cell{Col: p + 1, Row: 0}
		l.TileMap.CarveWater(c.Col, c.Row)
		out = append(out, c)
	}
	return out
}

// Clone returns a deep copy so a run can carve water and grow cobblestones
// without touching the source level.
func (l *Level) Clone() *Level {
	out := *l
	tm := *l.TileMap
	tm.Tiles = append([]Tile(nil), l.TileMap.Tiles...)
	out.TileMap = &tm
	return &out
}
