package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/maze-man/internal/game"
)

// moveKeys maps arrows and WASD to directions.
var moveKeys = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowUp:    game.North,
	ebiten.KeyW:          game.North,
	ebiten.KeyArrowDown:  game.South,
	ebiten.KeyS:          game.South,
	ebiten.KeyArrowLeft:  game.West,
	ebiten.KeyA:          game.West,
	ebiten.KeyArrowRight: game.East,
	ebiten.KeyD:          game.East,
}

// DirectionFor returns the move bound to k.
func DirectionFor(k ebiten.Key) (game.Direction, bool) {
	d, ok := moveKeys[k]
	return d, ok
}

// ScreenToWorld converts a cursor position to board pixels given the board
// offset and scale.
func ScreenToWorld(x, y int, offX, offY, scale float64) game.Vec {
	if scale <= 0 {
		scale = 1
	}
	return game.Vec{X: (float64(x) - offX) / scale, Y: (float64(y) - offY) / scale}
}

// pressedMove returns a move whose key went down this frame.
func pressedMove() (game.Direction, bool) {
	for k, d := range moveKeys {
		if inpututil.IsKeyJustPressed(k) {
			return d, true
		}
	}
	return 0, false
}

// throwTarget returns the clicked board position, if the left button was
// pressed this frame.
func (g *Game) throwTarget() (game.Vec, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return game.Vec{}, false
	}
	x, y := ebiten.CursorPosition()
	return ScreenToWorld(x, y, borderWidth, borderWidth, g.scale), true
}
