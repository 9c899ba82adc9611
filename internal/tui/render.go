// Package tui draws a run on a character terminal with tcell.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/maze-man/internal/game"
)

// Glyphs used on the map.
const (
	GlyphFloor  = '.'
	GlyphWall   = '#'
	GlyphCobble = '%'
	GlyphWater  = '~'
	GlyphPlayer = '@'
	GlyphFood   = '&'
	GlyphStar   = '*'
	GlyphRock   = 'o'
	GlyphFire   = '^'
)

var enemyGlyphs = map[game.EntityID]rune{
	game.IDFrog:   'F',
	game.IDSpider: 'W',
	game.IDSnake:  'S',
	game.IDGhost:  'G',
}

var (
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCobble = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWater  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFire   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Renderer draws frames at the top-left corner of a screen, one character per
// grid cell, followed by two HUD lines.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer wraps s.
func NewRenderer(s tcell.Screen) *Renderer { return &Renderer{screen: s} }

// CellOf maps a pixel position in f to its grid cell, clamped to the board.
func CellOf(f game.Frame, p game.Vec) game.Cell {
	col := int(math.Floor(p.X / f.Pitch))
	row := int(math.Floor(p.Y / f.Pitch))
	col = min(max(col, 0), f.Cols-1)
	row = min(max(row, 0), f.Rows-1)
	return game.Cell{Col: col, Row: row}
}

// Draw renders f and shows the screen. The caller owns Clear.
func (r *Renderer) Draw(f game.Frame) {
	s := r.screen
	pc := CellOf(f, f.Player.Pos)
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			st := styleFloor
			if f.Started && !lit(f, pc, game.Cell{Col: col, Row: row}) {
				st = st.Dim(true)
			}
			s.SetContent(col, row, GlyphFloor, nil, st)
		}
	}
	put := func(c game.Cell, ch rune, st tcell.Style) { s.SetContent(c.Col, c.Row, ch, nil, st) }
	for _, c := range f.Water {
		put(c, GlyphWater, styleWater)
	}
	for _, c := range f.Walls {
		put(c, GlyphWall, styleWall)
	}
	for _, c := range f.Cobbles {
		put(c, GlyphCobble, styleCobble)
	}
	if f.Food != nil {
		put(CellOf(f, f.Food.Pos), GlyphFood, styleItem)
	}
	if f.Star != nil {
		put(CellOf(f, f.Star.Pos), GlyphStar, styleItem)
	}
	for _, rk := range f.Rocks {
		put(CellOf(f, rk.Pos), GlyphRock, styleHUD)
	}
	for _, e := range f.Enemies {
		ch, ok := enemyGlyphs[e.ID]
		if !ok {
			ch = '?'
		}
		put(CellOf(f, e.Pos), ch, styleEnemy)
	}
	if f.Fire != nil {
		put(CellOf(f, f.Fire.Pos), GlyphFire, styleFire)
	}
	ps := stylePlayer
	if f.Invincible {
		ps = ps.Blink(true)
	}
	put(pc, GlyphPlayer, ps)

	r.text(0, f.Rows, HUDLine(f.Stats), hudStyle(f.Stats))
	r.text(0, f.Rows+1, StatusLine(f.Stats), styleHUD)
	s.Show()
}

func lit(f game.Frame, player, c game.Cell) bool {
	dc, dr := float64(c.Col-player.Col), float64(c.Row-player.Row)
	return math.Hypot(dc, dr) <= f.Light
}

func hudStyle(st game.Stats) tcell.Style {
	if st.Critical {
		return styleAlert
	}
	return styleHUD
}

func (r *Renderer) text(x, y int, msg string, st tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range msg {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, st)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, st)
	}
}

// HUDLine is the one-line stats readout.
func HUDLine(st game.Stats) string {
	l := st.Ledger
	return fmt.Sprintf("Score %d  Energy %d/%d  Health %d  Rocks %d",
		l.Score, l.Energy, l.MaxEnergy, l.Health, l.Rocks)
}

// StatusLine is the message shown under the HUD.
func StatusLine(st game.Stats) string {
	switch {
	case !st.Started:
		return "Move to begin. Arrows/WASD move, space throws, q quits."
	case st.Finished:
		return "Game over. Press r to play again."
	default:
		return st.Status
	}
}
