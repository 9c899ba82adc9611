package game

import (
	"fmt"
	"math/rand"
)

// EnemyKind identifies an enemy archetype.
type EnemyKind int

const (
	Frog EnemyKind = iota
	Spider
	Snake
	Ghost
)

// AllEnemyKinds lists the archetypes in spawn order.
var AllEnemyKinds = []EnemyKind{Frog, Spider, Snake, Ghost}

func (k EnemyKind) String() string {
	switch k {
	case Frog:
		return "Frog"
	case Spider:
		return "Spider"
	case Snake:
		return "Snake"
	case Ghost:
		return "Ghost Orb"
	default:
		return "Unknown"
	}
}

// ID returns the entity id of the archetype. There is at most one live enemy
// per kind.
func (k EnemyKind) ID() EntityID {
	switch k {
	case Frog:
		return IDFrog
	case Spider:
		return IDSpider
	case Snake:
		return IDSnake
	case Ghost:
		return IDGhost
	default:
		return idNone
	}
}

// Enemy is a patrolling hazard.
type Enemy interface {
	Kind() EnemyKind
	ID() EntityID
	// Spawn places the enemy at its archetype's spawn point without moving it.
	Spawn()
	// Start begins the movement pattern.
	Start()
	// Despawn removes the enemy and cancels its pending callbacks.
	Despawn()
	Alive() bool
	Position(now int) Vec
	Facing() Direction
}

// enemyEnv bundles what every enemy needs from the run.
type enemyEnv struct {
	grid   *GridIndex
	sched  *Scheduler
	rng    *rand.Rand
	tuning Tuning
	log    *SimLog
}

// Oscillator runs a fixed patrol: out along dir for run tiles, flip, back,
// then an optional randomized pause. It flies over walls and water and holds
// no grid reservation.
type Oscillator struct {
	env     enemyEnv
	kind    EnemyKind
	dir     Direction
	run     int
	legTime float64
	pause   bool
	spawnAt func() Cell

	alive    bool
	epoch    int
	origin   Cell
	leg      Glide
	legStart int
	legTicks int
	moving   bool
	rest     Vec
	facing   Direction
}

func newOscillator(env enemyEnv, kind EnemyKind, dir Direction, run int, legTime float64, pause bool, spawnAt func() Cell) *Oscillator {
	return &Oscillator{
		env:     env,
		kind:    kind,
		dir:     dir,
		run:     run,
		legTime: legTime,
		pause:   pause,
		spawnAt: spawnAt,
		facing:  dir,
	}
}

func (o *Oscillator) Kind() EnemyKind   { return o.kind }
func (o *Oscillator) ID() EntityID      { return o.kind.ID() }
func (o *Oscillator) Alive() bool       { return o.alive }
func (o *Oscillator) Facing() Direction { return o.facing }

func (o *Oscillator) Spawn() {
	o.epoch++
	o.alive = true
	o.moving = false
	o.origin = o.spawnAt()
	o.rest = o.env.grid.Center(o.origin)
	o.facing = o.dir
	o.env.log.Add(o.env.sched.Now(), string(o.ID()), "spawn", o.kind.String(),
		fmt.Sprintf("at (%d,%d)", o.origin.Col, o.origin.Row), 0)
}

func (o *Oscillator) Start() {
	if !o.alive {
		return
	}
	o.epoch++
	o.outLeg(o.epoch)
}

func (o *Oscillator) Despawn() {
	o.epoch++
	o.alive = false
	o.moving = false
}

// lane returns the straight run of n cells from c in d, ignoring occupancy.
func lane(c Cell, d Direction, n int) Glide {
	gl := Glide{From: c, Dir: d, Cells: make([]Cell, 0, n+1)}
	for i := 0; i <= n; i++ {
		gl.Cells = append(gl.Cells, c.Step(d, i))
	}
	return gl
}

func (o *Oscillator) beginLeg(gl Glide) {
	o.leg = gl
	o.legStart = o.env.sched.Now()
	o.legTicks = o.env.tuning.Ticks(o.legTime)
	o.moving = true
	o.facing = gl.Dir
}

func (o *Oscillator) outLeg(epoch int) {
	o.beginLeg(lane(o.origin, o.dir, o.run))
	o.env.sched.After(o.legTicks, string(o.ID())+":out", func() {
		if epoch != o.epoch {
			return
		}
		o.backLeg(epoch)
	})
}

func (o *Oscillator) backLeg(epoch int) {
	far := o.origin.Step(o.dir, o.run)
	o.beginLeg(lane(far, o.dir.Opposite(), o.run))
	o.env.sched.After(o.legTicks, string(o.ID())+":back", func() {
		if epoch != o.epoch {
			return
		}
		o.moving = false
		o.rest = o.env.grid.Center(o.origin)
		if !o.pause {
			o.outLeg(epoch)
			return
		}
		wait := o.env.tuning.randTicks(o.env.rng, o.env.tuning.PauseMin, o.env.tuning.PauseMax)
		o.env.sched.After(wait, string(o.ID())+":pause", func() {
			if epoch != o.epoch {
				return
			}
			o.outLeg(epoch)
		})
	})
}

// Position interpolates along the current leg.
func (o *Oscillator) Position(now int) Vec {
	if !o.moving {
		return o.rest
	}
	from := o.env.grid.Center(o.leg.From)
	to := o.env.grid.Center(o.leg.Last())
	return from.Lerp(to, progress(now, o.legStart, o.legTicks))
}

// GhostOrb is an Oscillator that periodically drops fire. The attack interval
// is drawn once per spawn.
type GhostOrb struct {
	*Oscillator
	attackTicks int
	onAttack    func(from Vec)
}

func (g *GhostOrb) Spawn() {
	g.Oscillator.Spawn()
	e := g.env
	g.attackTicks = e.tuning.randTicks(e.rng, e.tuning.GhostAttackMin, e.tuning.GhostAttackMax)
}

func (g *GhostOrb) Start() {
	if !g.alive {
		return
	}
	g.Oscillator.Start()
	epoch := g.epoch
	var attack func()
	attack = func() {
		if epoch != g.epoch {
			return
		}
		if g.onAttack != nil {
			g.onAttack(g.Position(g.env.sched.Now()))
		}
		g.env.sched.After(g.attackTicks, "ghost:attack", attack)
	}
	g.env.sched.After(g.attackTicks, "ghost:attack", attack)
}

// Serpent wanders the maze with the same glide primitive as the player. A new
// direction is chosen every SnakeWait seconds, but only once the previous
// glide has finished.
type Serpent struct {
	env    enemyEnv
	motion *MotionController
	home   Cell
	alive  bool
	epoch  int
}

func newSerpent(env enemyEnv, home Cell) *Serpent {
	return &Serpent{
		env:    env,
		home:   home,
		motion: NewMotionController(IDSnake, env.grid, env.sched, env.tuning.Ticks(env.tuning.SnakeStep), env.log),
	}
}

func (s *Serpent) Kind() EnemyKind           { return Snake }
func (s *Serpent) ID() EntityID              { return IDSnake }
func (s *Serpent) Alive() bool               { return s.alive }
func (s *Serpent) Facing() Direction         { return s.motion.Facing() }
func (s *Serpent) Position(now int) Vec      { return s.motion.Position(now) }
func (s *Serpent) Motion() *MotionController { return s.motion }

// Locked reports whether a glide is still in flight.
func (s *Serpent) Locked() bool { return s.motion.State() == MotionGliding }

func (s *Serpent) Spawn() {
	s.epoch++
	at := s.home
	g := s.env.grid
	if !g.IsFree(ViewActor, at) || g.IsWater(at) {
		at = g.RandomFreeFunc(ViewActor, func(c Cell) bool { return !g.IsWater(c) })
	}
	s.motion.Place(at)
	s.alive = true
	s.env.log.Add(s.env.sched.Now(), string(IDSnake), "spawn", Snake.String(),
		fmt.Sprintf("at (%d,%d)", at.Col, at.Row), 0)
}

func (s *Serpent) Start() {
	if !s.alive {
		return
	}
	s.epoch++
	epoch := s.epoch
	wait := s.env.tuning.Ticks(s.env.tuning.SnakeWait)
	var decide func()
	decide = func() {
		if epoch != s.epoch {
			return
		}
		s.decide()
		s.env.sched.After(wait, "snake:decide", decide)
	}
	decide()
}

func (s *Serpent) decide() {
	if s.Locked() {
		return
	}
	dirs := s.env.grid.FreeDirections(s.motion.Cell())
	dir := East
	if len(dirs) > 0 {
		dir = dirs[s.env.rng.Intn(len(dirs))]
	}
	s.motion.RequestMove(dir)
}

func (s *Serpent) Despawn() {
	s.epoch++
	s.alive = false
	s.motion.Vacate()
}
