// Package display is the windowed front-end: it ticks a run once per Ebiten
// update, draws the board and HUD, and shows the game-over card.
package display

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
	"github.com/Garsondee/maze-man/internal/persistence"
	"github.com/Garsondee/maze-man/internal/sfx"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// hudHeight is the strip under the board for stats and status.
const hudHeight = 64

var (
	colBackground = color.RGBA{R: 12, G: 12, B: 18, A: 255}
	colFloor      = color.RGBA{R: 34, G: 30, B: 40, A: 255}
	colWall       = color.RGBA{R: 90, G: 84, B: 110, A: 255}
	colCobble     = color.RGBA{R: 120, G: 110, B: 95, A: 255}
	colWater      = color.RGBA{R: 30, G: 80, B: 170, A: 255}
	colPlayer     = color.RGBA{R: 250, G: 220, B: 80, A: 255}
	colFood       = color.RGBA{R: 90, G: 200, B: 90, A: 255}
	colStar       = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	colRock       = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	colFire       = color.RGBA{R: 255, G: 120, B: 30, A: 255}
	colText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colAlert      = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

var enemyColors = map[game.EntityID]color.RGBA{
	game.IDFrog:   {R: 60, G: 170, B: 60, A: 255},
	game.IDSpider: {R: 150, G: 60, B: 160, A: 255},
	game.IDSnake:  {R: 200, G: 200, B: 60, A: 255},
	game.IDGhost:  {R: 180, G: 220, B: 255, A: 200},
}

// Options wires a Game to its collaborators. Recorder and Sound may be nil.
type Options struct {
	Scale    float64
	NewRun   func() (*game.Run, error)
	Recorder *persistence.Recorder
	Sound    *sfx.Player
	Copy     func(string) error
}

// Game implements ebiten.Game.
type Game struct {
	opts  Options
	scale float64
	run   *game.Run
	face  *text.GoTextFace
	log   *logrus.Entry

	width, height    int
	showAchievements bool
	notice           string
}

// New builds the window game and its first run.
func New(o Options) (*Game, error) {
	if o.NewRun == nil {
		return nil, errors.New("display: NewRun is required")
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Copy == nil {
		o.Copy = clipboard.WriteAll
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("display: load font: %w", err)
	}
	g := &Game{
		opts:  o,
		scale: o.Scale,
		face:  &text.GoTextFace{Source: src, Size: 16},
		log:   logger.Component("display"),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	r, err := g.opts.NewRun()
	if err != nil {
		return err
	}
	g.run = r
	g.showAchievements = false
	g.notice = ""
	lvl := r.Level()
	g.width = int(lvl.Width()*g.scale) + 2*borderWidth
	g.height = int(lvl.Height()*g.scale) + 2*borderWidth + hudHeight
	return nil
}

// WindowSize is the layout size for the current level.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.opts.Sound != nil {
		g.opts.Sound.SetMuted(!g.opts.Sound.Muted())
	}
	if g.run.Finished() {
		return g.updateGameOver()
	}
	if d, ok := pressedMove(); ok {
		g.run.Move(d)
	}
	if target, ok := g.throwTarget(); ok {
		g.run.Throw(target)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.run.Throw(g.facingTarget())
	}
	g.run.Tick()
	return nil
}

func (g *Game) facingTarget() game.Vec {
	p := g.run.Player()
	return p.Position(g.run.CurrentTick()).Add(p.Facing().Unit().Scale(3 * g.run.Level().Pitch))
}

func (g *Game) updateGameOver() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		return g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.showAchievements = !g.showAchievements
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copySummary()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		if g.opts.Recorder == nil {
			break
		}
		if err := g.opts.Recorder.ResetHighscores(); err != nil {
			g.log.WithError(err).Error("failed to reset high scores")
			g.notice = "Could not reset high scores."
		} else {
			g.notice = "High scores cleared."
		}
	}
	return nil
}

func (g *Game) records() persistence.Records {
	if g.opts.Recorder == nil {
		return persistence.Records{}
	}
	return g.opts.Recorder.Records()
}

func (g *Game) copySummary() {
	o, ok := g.run.Outcome()
	if !ok {
		return
	}
	if err := g.opts.Copy(RunSummary(o, g.records())); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable")
		g.notice = "Clipboard unavailable."
		return
	}
	g.notice = "Copied run summary."
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// px converts a board coordinate to screen space.
func (g *Game) px(v float64) float32 { return float32(borderWidth + v*g.scale) }

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	f := g.run.Frame()
	g.drawBoard(screen, f)
	if f.Started {
		g.drawVignette(screen, f)
	}
	g.drawHUD(screen, f)
	if o, ok := g.run.Outcome(); ok {
		g.drawGameOver(screen, o)
	}
}

func (g *Game) fillCell(screen *ebiten.Image, pitch float64, c game.Cell, col color.Color) {
	s := float32(pitch * g.scale)
	vector.FillRect(screen, g.px(float64(c.Col)*pitch), g.px(float64(c.Row)*pitch), s, s, col, false)
}

func (g *Game) drawSprite(screen *ebiten.Image, sp game.Sprite, col color.Color) {
	vector.FillCircle(screen, g.px(sp.Pos.X), g.px(sp.Pos.Y), float32(sp.Size*g.scale/2), col, true)
}

func (g *Game) drawBoard(screen *ebiten.Image, f game.Frame) {
	w, h := float32(float64(f.Cols)*f.Pitch*g.scale), float32(float64(f.Rows)*f.Pitch*g.scale)
	vector.FillRect(screen, borderWidth, borderWidth, w, h, colFloor, false)
	vector.StrokeRect(screen, borderWidth-1, borderWidth-1, w+2, h+2, 2.0, colWall, false)

	for _, c := range f.Water {
		g.fillCell(screen, f.Pitch, c, colWater)
	}
	for _, c := range f.Walls {
		g.fillCell(screen, f.Pitch, c, colWall)
	}
	for _, c := range f.Cobbles {
		g.fillCell(screen, f.Pitch, c, colCobble)
	}
	if f.Food != nil {
		g.drawSprite(screen, *f.Food, colFood)
	}
	if f.Star != nil {
		g.drawSprite(screen, *f.Star, colStar)
	}
	for _, rk := range f.Rocks {
		g.drawSprite(screen, rk, colRock)
	}
	for _, e := range f.Enemies {
		g.drawSprite(screen, e, enemyColors[e.ID])
	}
	if f.Fire != nil {
		g.drawSprite(screen, *f.Fire, colFire)
	}

	pc := colPlayer
	if f.Invincible && f.Tick/6%2 == 0 {
		pc.A = 90
	}
	g.drawSprite(screen, f.Player, pc)
	// Facing tick.
	tip := f.Player.Pos.Add(f.Player.Facing.Unit().Scale(f.Player.Size / 2))
	vector.StrokeLine(screen, g.px(f.Player.Pos.X), g.px(f.Player.Pos.Y), g.px(tip.X), g.px(tip.Y), 3, colBackground, true)
}

// drawVignette darkens cells by their distance past the light radius.
func (g *Game) drawVignette(screen *ebiten.Image, f game.Frame) {
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			cx := (float64(col) + 0.5) * f.Pitch
			cy := (float64(row) + 0.5) * f.Pitch
			d := math.Hypot(cx-f.Player.Pos.X, cy-f.Player.Pos.Y) / f.Pitch
			a := ShadeAlpha(d, f.Light)
			if a == 0 {
				continue
			}
			g.fillCell(screen, f.Pitch, game.Cell{Col: col, Row: row}, color.RGBA{A: a})
		}
	}
}

// ShadeAlpha is the darkness over a cell d cells from the player when the
// light reaches radius cells. It ramps to near black over two cells.
func ShadeAlpha(d, radius float64) uint8 {
	over := d - radius
	if over <= 0 {
		return 0
	}
	return uint8(math.Min(over/2, 1) * 235)
}

func (g *Game) text(screen *ebiten.Image, s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawHUD(screen *ebiten.Image, f game.Frame) {
	y := float64(g.height - hudHeight - borderWidth/2)
	col := color.Color(colText)
	if f.Critical {
		col = colAlert
	}
	l := f.Ledger
	g.text(screen, fmt.Sprintf("Score %d   Energy %d/%d   Health %d   Rocks %d",
		l.Score, l.Energy, l.MaxEnergy, l.Health, l.Rocks), borderWidth, y, col)

	status := f.Status
	if !f.Started {
		status = "Move to begin. Arrows/WASD move, click or space throws, M mutes."
	}
	g.text(screen, status, borderWidth, y+24, colText)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tick %d", f.Tick), g.width-borderWidth-80, g.height-borderWidth)
}

func (g *Game) drawGameOver(screen *ebiten.Image, o game.RunOutcome) {
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 200}, false)
	x := float64(g.width) / 6
	y := float64(g.height) / 6
	line := func(s string, col color.Color) {
		g.text(screen, s, x, y, col)
		y += 26
	}
	rec := g.records()
	if g.showAchievements {
		for _, s := range AchievementLines(rec) {
			line(s, colText)
		}
		line("", colText)
		line("[A] back", colText)
		return
	}

	a := AchievementFor(o.Cause)
	line("Game Over", colAlert)
	line(fmt.Sprintf("You scored %d points this run.", o.FinalScore), colText)
	line(fmt.Sprintf("%q", a.Message), colText)
	if g.opts.Recorder != nil && g.opts.Recorder.NewlyUnlocked() {
		line("New achievement: "+a.Title, colStar)
	}
	line("", colText)
	line("High scores", colText)
	for _, h := range rec.Highscores {
		line("  "+h.String(), colText)
	}
	line("", colText)
	line("[R] restart  [A] achievements  [C] copy  [X] reset scores", colText)
	if g.notice != "" {
		line(g.notice, colStar)
	}
}
