package game

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// item is the live state of the food or star.
type item struct {
	present bool
	cell    Cell
}

// Run is one play-through: from level load, through the first move, to the
// terminal outcome. It is not safe for concurrent use; only GridIndex reads
// may happen from other goroutines.
type Run struct {
	level  *Level
	tuning Tuning
	rng    *rand.Rand
	grid   *GridIndex
	sched  *Scheduler
	steps  []ResolverStep

	player  *MotionController
	enemies []Enemy
	kinds   []EnemyKind

	ledger    Ledger
	counters  Counters
	candidate DeathCause
	locks     Cooldowns

	food     item
	star     item
	fire     *Fire
	rocks    []*Rock
	rockSeq  int
	light    float64
	critical bool

	tick     int
	started  bool
	finished bool
	outcome  RunOutcome

	observers []Observer
	log       *SimLog
	status    *StatusLog
}

// RunOption configures a Run at construction.
type RunOption func(*Run)

// WithObserver attaches an observer.
func WithObserver(o Observer) RunOption {
	return func(r *Run) { r.observers = append(r.observers, o) }
}

// WithEnemyKinds limits which archetypes spawn. No arguments means none.
func WithEnemyKinds(kinds ...EnemyKind) RunOption {
	return func(r *Run) { r.kinds = append([]EnemyKind{}, kinds...) }
}

// WithSimLog records structured events into l.
func WithSimLog(l *SimLog) RunOption {
	return func(r *Run) { r.log = l }
}

// WithSteps replaces the resolver pipeline.
func WithSteps(steps []ResolverStep) RunOption {
	return func(r *Run) { r.steps = steps }
}

// NewRun loads a level and places every actor. Nothing moves until the first
// call to Move.
func NewRun(lvl *Level, t Tuning, rng *rand.Rand, opts ...RunOption) (*Run, error) {
	if t.TicksPerSecond <= 0 {
		return nil, fmt.Errorf("run: ticks per second must be positive, got %d", t.TicksPerSecond)
	}
	r := &Run{
		level:  lvl.Clone(),
		tuning: t,
		rng:    rng,
		sched:  NewScheduler(),
		steps:  Pipeline(),
		kinds:  AllEnemyKinds,
		locks:  Cooldowns{},
		light:  t.LightStart,
		status: NewStatusLog(),
	}
	for _, o := range opts {
		o(r)
	}

	water := r.level.CarveTopWater(t.NumWater, rng)
	r.grid = BuildGrid(r.level, rng)
	spawn := r.level.PlayerSpawn
	if !r.grid.IsFree(ViewActor, spawn) || r.grid.IsWater(spawn) {
		return nil, fmt.Errorf("run: player spawn (%d,%d) is not walkable", spawn.Col, spawn.Row)
	}
	r.log.Add(0, string(idNone), "grid", "built",
		fmt.Sprintf("%dx%d water=%d", r.level.Cols, r.level.Rows, len(water)), float64(r.grid.FreeCount(ViewActor)))

	r.player = NewMotionController(IDPlayer, r.grid, r.sched, t.Ticks(t.GlideStep), r.log)
	r.player.Place(spawn)

	env := enemyEnv{grid: r.grid, sched: r.sched, rng: rng, tuning: t, log: r.log}
	for _, k := range r.kinds {
		e := r.newEnemy(env, k)
		e.Spawn()
		r.enemies = append(r.enemies, e)
	}
	return r, nil
}

func (r *Run) newEnemy(env enemyEnv, k EnemyKind) Enemy {
	t := r.tuning
	g := r.grid
	switch k {
	case Frog:
		return newOscillator(env, Frog, South, t.FrogRun, t.FrogDuration, true, func() Cell {
			water := g.WaterCells()
			if len(water) == 0 {
				return Cell{Col: r.rng.Intn(g.Cols()), Row: 0}
			}
			return water[r.rng.Intn(len(water))]
		})
	case Spider:
		return newOscillator(env, Spider, West, t.SpiderRun, t.SpiderDuration, true, func() Cell {
			span := g.Rows() - 3
			if span < 1 {
				span = 1
			}
			return Cell{Col: g.Cols() - 1, Row: 2 + r.rng.Intn(span)}
		})
	case Snake:
		return newSerpent(env, Cell{Col: 0, Row: 2})
	default:
		orb := &GhostOrb{Oscillator: newOscillator(env, Ghost, East, t.GhostRun, t.GhostDuration, false, func() Cell {
			return Cell{Col: 0, Row: 1}
		})}
		orb.onAttack = r.dropFire
		return orb
	}
}

// Move is the directional input intent. The first move starts the run.
func (r *Run) Move(dir Direction) bool {
	if r.finished || !dir.Valid() {
		return false
	}
	if !r.started {
		r.start()
	}
	return r.player.RequestMove(dir)
}

// Throw launches a rock from the player toward target. It needs a started run
// and at least one rock; a target on the player is ignored.
func (r *Run) Throw(target Vec) bool {
	if !r.started || r.finished || r.ledger.Rocks <= 0 {
		return false
	}
	from := r.player.Position(r.tick)
	d := target.Sub(from)
	n := d.Len()
	if n == 0 {
		return false
	}
	r.ledger.AdjustRocks(-1)
	r.rockSeq++
	rock := newRock(r.rockSeq, from, d.Scale(1/n), r.tick, r.tuning)
	r.rocks = append(r.rocks, rock)
	r.log.Add(r.tick, string(rock.ID), "throw", "launch",
		fmt.Sprintf("toward (%.0f,%.0f)", target.X, target.Y), float64(r.ledger.Rocks))
	return true
}

func (r *Run) start() {
	t := r.tuning
	r.started = true
	r.ledger = NewLedger(t)
	r.light = t.LightLit
	r.say(IDPlayer, "Beware!")
	r.log.Add(r.tick, string(IDPlayer), "run", "start", "", 0)

	food := r.placeItem()
	r.food = item{present: true, cell: food}
	r.star = item{present: true, cell: r.placeItem(food)}

	for _, e := range r.enemies {
		e.Start()
	}

	r.sched.Every(t.Ticks(t.CobblestoneInterval), t.NumCobblestone, "cobblestone", r.growCobblestone)
	r.sched.Every(t.Ticks(t.RockRespawn), -1, "rocks", func() {
		r.ledger.AdjustRocks(t.RockReward)
	})
	if t.EnergyDecay > 0 {
		r.sched.Every(t.Ticks(t.DecayInterval), -1, "decay", func() {
			r.ledger.ApplyDamage(t.EnergyDecay)
		})
	}
}

// placeItem reserves a random free item cell other than avoid.
func (r *Run) placeItem(avoid ...Cell) Cell {
	c := r.grid.RandomFree(ViewItem, avoid...)
	r.grid.Reserve(ViewItem, c)
	return c
}

func (r *Run) growCobblestone() {
	g := r.grid
	c := g.RandomFreeFunc(ViewScenery, func(c Cell) bool {
		if c == r.food.cell || c == r.star.cell {
			return false
		}
		return g.IsFree(ViewActor, c)
	})
	g.Block(c)
	r.level.TileMap.SetObject(c.Col, c.Row, ObjectCobblestone)
	r.log.Add(r.tick, string(idNone), "grid", "cobblestone", fmt.Sprintf("(%d,%d)", c.Col, c.Row), 0)
}

func (r *Run) dropFire(from Vec) {
	r.fire = newFire(from, r.tick, r.tuning)
	r.log.Add(r.tick, string(IDGhost), "spawn", "fire", fmt.Sprintf("at (%.0f,%.0f)", from.X, from.Y), 0)
}

// Tick advances the run by one fixed step.
func (r *Run) Tick() {
	if r.finished {
		return
	}
	r.tick++
	r.sched.Advance(r.tick)
	r.expireProjectiles()
	if !r.started {
		return
	}
	snap := r.snapshot()
	stats := r.Stats()
	for _, o := range r.observers {
		o.TickStarted(stats)
	}
	r.apply(Resolve(snap, r.steps))
}

func (r *Run) expireProjectiles() {
	live := r.rocks[:0]
	for _, rk := range r.rocks {
		if !rk.Expired(r.tick) {
			live = append(live, rk)
		}
	}
	r.rocks = live
	if r.fire != nil && r.fire.Position(r.tick).Y > r.level.Height()+r.tuning.FireSize {
		r.fire = nil
	}
}

func (r *Run) snapshot() *Snapshot {
	t := r.tuning
	now := r.tick
	s := &Snapshot{
		Tick:       now,
		Tuning:     t,
		Ledger:     r.ledger,
		Counters:   r.counters,
		Candidate:  r.candidate,
		Player:     Box{Center: r.player.Position(now), W: t.PlayerSize, H: t.PlayerSize},
		PlayerCell: r.player.Cell(),
		Locks:      r.locks.Clone(),
		Light:      r.light,
		Jitter:     r.rng.Float64() * t.LightStep,
		Critical:   r.critical,
	}
	s.OnWater = r.grid.IsWater(s.PlayerCell)
	for _, e := range r.enemies {
		if !e.Alive() || e.Kind() == Ghost {
			continue
		}
		s.Enemies = append(s.Enemies, Body{
			ID: e.ID(), Kind: e.Kind(),
			Box: Box{Center: e.Position(now), W: t.EnemySize, H: t.EnemySize},
		})
	}
	if r.fire != nil {
		s.Fire = &Body{ID: IDFire, Kind: Ghost, Box: Box{Center: r.fire.Position(now), W: t.FireSize, H: t.FireSize}}
	}
	for _, rk := range r.rocks {
		s.Rocks = append(s.Rocks, Body{ID: rk.ID, Box: Box{Center: rk.Position(now), W: t.RockSize, H: t.RockSize}})
	}
	s.Food = r.pickup(r.food)
	s.Star = r.pickup(r.star)
	return s
}

func (r *Run) pickup(it item) Pickup {
	sz := r.tuning.ItemSize
	return Pickup{Present: it.present, Cell: it.cell, Box: Box{Center: r.grid.Center(it.cell), W: sz, H: sz}}
}

// apply commits encounters in order, once per (A, B, kind), and stops at the
// first terminal one.
func (r *Run) apply(encs []Encounter) {
	seen := mapset.New[encounterKey]()
	for _, e := range encs {
		if r.finished {
			return
		}
		if seen.Has(e.key()) {
			continue
		}
		seen.Put(e.key())
		e = r.applyOne(e)
		if e.Kind != EncounterLight {
			r.log.Add(r.tick, string(e.A), "encounter", e.Kind.String(),
				fmt.Sprintf("%s -> %s %d", e.A, e.B, e.Amount), float64(e.Amount))
			for _, o := range r.observers {
				o.Encountered(e)
			}
		}
		if e.Terminal() {
			r.finish(e.Cause)
			return
		}
	}
}

// applyOne commits e and returns it as applied.
func (r *Run) applyOne(e Encounter) Encounter {
	t := r.tuning
	switch e.Kind {
	case EncounterLight:
		r.light = e.Value
	case EncounterCritical:
		r.critical = e.Flag
	case EncounterDrown:
		r.locks.Hold(IDDrown)
		r.ledger.Drain()
		r.player.Halt()
	case EncounterConsume:
		r.ledger.ApplyHeal(e.Amount)
		r.counters.Consumed++
		r.food.cell = r.moveItem(r.food.cell)
		r.say(IDFood, "You feel energized.")
	case EncounterFoodStolen:
		r.locks.Hold(IDFood)
		r.food.present = false
		r.food.cell = r.moveItem(r.food.cell)
		r.say(e.A, fmt.Sprintf("Enemy %s found food to eat.", kindOf(e.A)))
		r.sched.After(t.Ticks(t.FoodRespawn), "food:respawn", func() {
			r.food.present = true
			r.locks.Clear(IDFood)
			r.log.Add(r.tick, string(IDFood), "spawn", "food",
				fmt.Sprintf("at (%d,%d)", r.food.cell.Col, r.food.cell.Row), 0)
		})
	case EncounterCollect:
		r.ledger.AddScore(e.Amount)
		r.counters.Collected++
		r.star.cell = r.moveItem(r.star.cell)
		r.say(IDStar, "Your pockets feel a bit heavier.")
	case EncounterDamage:
		r.ledger.ApplyDamage(e.Amount)
		r.counters.TimesHit++
		e.Flag = r.ledger.Health <= 0 && r.ledger.Energy <= 0
		if e.Flag {
			r.candidate = e.Cause
		}
		r.locks.Set(IDInvincible, r.tick+t.Ticks(t.Invincibility))
		who := kindOf(e.A)
		if e.A == IDFire {
			who = "Ghost"
		}
		r.say(e.A, fmt.Sprintf("%s -> You | %d damage.", who, e.Amount))
	case EncounterKill:
		r.counters.Kills++
		r.removeRock(e.A)
		r.kill(e.B)
	case EncounterExtinguish:
		r.counters.Kills++
		r.removeRock(e.A)
		r.fire = nil
		r.say(IDFire, fmt.Sprintf("Enemy %s was extinguished.", Ghost))
	}
	return e
}

// moveItem picks a new item cell away from the current food and star, then
// frees the old one.
func (r *Run) moveItem(old Cell) Cell {
	c := r.placeItem(r.food.cell, r.star.cell)
	r.grid.Release(ViewItem, old)
	return c
}

func (r *Run) removeRock(id EntityID) {
	for i, rk := range r.rocks {
		if rk.ID == id {
			r.rocks = append(r.rocks[:i], r.rocks[i+1:]...)
			return
		}
	}
}

func (r *Run) kill(id EntityID) {
	for _, e := range r.enemies {
		if e.ID() != id {
			continue
		}
		e.Despawn()
		r.locks.Hold(id)
		r.say(id, fmt.Sprintf("Enemy %s was killed.", e.Kind()))
		delay := r.tuning.randTicks(r.rng, r.tuning.RespawnMin, r.tuning.RespawnMax)
		enemy := e
		r.sched.After(delay, string(id)+":respawn", func() {
			enemy.Spawn()
			enemy.Start()
			r.locks.Clear(id)
		})
		return
	}
}

func (r *Run) finish(cause DeathCause) {
	c := r.counters
	c.RocksRemaining = r.ledger.Rocks
	r.outcome = RunOutcome{FinalScore: r.ledger.Score, Cause: cause, Counters: c, Tick: r.tick}
	r.finished = true
	r.sched.Discard()
	r.log.Add(r.tick, string(IDPlayer), "run", "finished", cause.String(), float64(r.ledger.Score))
	for _, o := range r.observers {
		o.Finished(r.outcome)
	}
}

func (r *Run) say(source EntityID, msg string) {
	r.status.Add(r.tick, string(source), msg)
}

func kindOf(id EntityID) string {
	for _, k := range AllEnemyKinds {
		if k.ID() == id {
			return k.String()
		}
	}
	return string(id)
}

// Outcome returns the terminal record once the run has finished.
func (r *Run) Outcome() (RunOutcome, bool) { return r.outcome, r.finished }

// Started reports whether the first move has been made.
func (r *Run) Started() bool { return r.started }

// Finished reports whether the run has ended.
func (r *Run) Finished() bool { return r.finished }

// CurrentTick returns the number of ticks advanced so far.
func (r *Run) CurrentTick() int { return r.tick }

// Grid returns the run's grid index.
func (r *Run) Grid() *GridIndex { return r.grid }

// Level returns the run's own copy of the level, including carved water and
// grown cobblestones.
func (r *Run) Level() *Level { return r.level }

// Tuning returns the constants the run was built with.
func (r *Run) Tuning() Tuning { return r.tuning }

// Player returns the player's motion controller.
func (r *Run) Player() *MotionController { return r.player }

// Enemies returns the enemy roster in spawn order.
func (r *Run) Enemies() []Enemy { return r.enemies }

// SimLog returns the structured event log, if one was attached.
func (r *Run) SimLog() *SimLog { return r.log }

// StatusLog returns the player-facing message log.
func (r *Run) StatusLog() *StatusLog { return r.status }

// Stats returns the current presentation stats.
func (r *Run) Stats() Stats {
	return Stats{
		Tick:       r.tick,
		Started:    r.started,
		Finished:   r.finished,
		Ledger:     r.ledger,
		Counters:   r.counters,
		Light:      r.light,
		Critical:   r.critical,
		Invincible: r.locks.Active(IDInvincible, r.tick),
		Status:     r.status.Latest(),
	}
}

// Frame returns everything a renderer needs for the current tick.
func (r *Run) Frame() Frame {
	t := r.tuning
	now := r.tick
	f := Frame{
		Stats: r.Stats(),
		Cols:  r.level.Cols,
		Rows:  r.level.Rows,
		Pitch: r.level.Pitch,
		Water: r.grid.WaterCells(),
		Player: Sprite{
			ID: IDPlayer, Label: "You", Pos: r.player.Position(now),
			Facing: r.player.Facing(), Size: t.PlayerSize,
		},
	}
	tm := r.level.TileMap
	for _, c := range tm.Blocked() {
		if tm.ObjectAt(c.Col, c.Row) == ObjectCobblestone {
			f.Cobbles = append(f.Cobbles, c)
		} else {
			f.Walls = append(f.Walls, c)
		}
	}
	for _, e := range r.enemies {
		if !e.Alive() {
			continue
		}
		f.Enemies = append(f.Enemies, Sprite{
			ID: e.ID(), Label: e.Kind().String(), Pos: e.Position(now),
			Facing: e.Facing(), Size: t.EnemySize,
		})
	}
	if r.fire != nil {
		f.Fire = &Sprite{ID: IDFire, Label: "Fire", Pos: r.fire.Position(now), Size: t.FireSize}
	}
	for _, rk := range r.rocks {
		f.Rocks = append(f.Rocks, Sprite{ID: rk.ID, Label: "Rock", Pos: rk.Position(now), Size: t.RockSize})
	}
	if r.started && r.food.present {
		f.Food = &Sprite{ID: IDFood, Label: "Food", Pos: r.grid.Center(r.food.cell), Size: t.ItemSize}
	}
	if r.started && r.star.present {
		f.Star = &Sprite{ID: IDStar, Label: "Star", Pos: r.grid.Center(r.star.cell), Size: t.ItemSize}
	}
	return f
}
