package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
)

// Action is what a key press asks for.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionThrow
	ActionRestart
	ActionQuit
)

// Intent is a decoded key press.
type Intent struct {
	Action Action
	Dir    game.Direction
}

// KeyIntent decodes arrows/WASD into moves, space into a throw, r into a
// restart and q or Escape into quit.
func KeyIntent(ev *tcell.EventKey) Intent {
	switch ev.Key() {
	case tcell.KeyUp:
		return Intent{Action: ActionMove, Dir: game.North}
	case tcell.KeyDown:
		return Intent{Action: ActionMove, Dir: game.South}
	case tcell.KeyLeft:
		return Intent{Action: ActionMove, Dir: game.West}
	case tcell.KeyRight:
		return Intent{Action: ActionMove, Dir: game.East}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Intent{Action: ActionQuit}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return Intent{Action: ActionMove, Dir: game.North}
		case 's', 'S':
			return Intent{Action: ActionMove, Dir: game.South}
		case 'a', 'A':
			return Intent{Action: ActionMove, Dir: game.West}
		case 'd', 'D':
			return Intent{Action: ActionMove, Dir: game.East}
		case ' ':
			return Intent{Action: ActionThrow}
		case 'r', 'R':
			return Intent{Action: ActionRestart}
		case 'q', 'Q':
			return Intent{Action: ActionQuit}
		}
	}
	return Intent{}
}

// ThrowTarget aims a terminal throw three cells ahead of the player's facing,
// since there is no pointer to aim with.
func ThrowTarget(r *game.Run) game.Vec {
	p := r.Player()
	pitch := r.Level().Pitch
	return p.Position(r.CurrentTick()).Add(p.Facing().Unit().Scale(3 * pitch))
}

// App owns one terminal session. NewRun is called for the first run and on
// every restart.
type App struct {
	Screen tcell.Screen
	NewRun func() (*game.Run, error)

	run    *game.Run
	render *Renderer
	log    *logrus.Entry
}

// Apply executes one intent against the current run. It returns false when
// the session should end.
func (a *App) Apply(in Intent) (bool, error) {
	switch in.Action {
	case ActionQuit:
		return false, nil
	case ActionMove:
		a.run.Move(in.Dir)
	case ActionThrow:
		a.run.Throw(ThrowTarget(a.run))
	case ActionRestart:
		if a.run.Finished() {
			return true, a.restart()
		}
	}
	return true, nil
}

func (a *App) restart() error {
	r, err := a.NewRun()
	if err != nil {
		return err
	}
	a.run = r
	a.Screen.Clear()
	if a.log == nil {
		a.log = logger.Component("tui")
	}
	a.log.Info("new run")
	return nil
}

// Current returns the active run.
func (a *App) Current() *game.Run { return a.run }

// Loop ticks the run at its fixed rate and redraws until quit or ctx ends.
func (a *App) Loop(ctx context.Context) error {
	a.render = NewRenderer(a.Screen)
	if err := a.restart(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.Screen.ChannelEvents(events, quit)

	tps := a.run.Tuning().TicksPerSecond
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				more, err := a.Apply(KeyIntent(ev))
				if err != nil || !more {
					return err
				}
			case *tcell.EventResize:
				a.Screen.Sync()
			}
		case <-ticker.C:
			a.run.Tick()
			a.render.Draw(a.run.Frame())
		}
	}
}
