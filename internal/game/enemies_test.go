package game

import (
	"math/rand"
	"testing"
)

func testEnv(t *testing.T, rows ...string) enemyEnv {
	t.Helper()
	_, g := testGrid(t, rows...)
	return enemyEnv{
		grid:   g,
		sched:  NewScheduler(),
		rng:    rand.New(rand.NewSource(3)), // #nosec G404 -- test
		tuning: DefaultTuning(),
		log:    NewSimLog(false),
	}
}

func advanceTo(s *Scheduler, tick int) {
	for now := s.Now() + 1; now <= tick; now++ {
		s.Advance(now)
	}
}

func TestOscillator_OutAndBack(t *testing.T) {
	env := testEnv(t, "......")
	o := newOscillator(env, Spider, West, 3, 1, false, func() Cell { return Cell{Col: 5, Row: 0} })
	o.Spawn()
	if p := o.Position(0); p.X != 352 {
		t.Fatalf("expected rest at x=352, got %.1f", p.X)
	}
	o.Start()

	advanceTo(env.sched, 30)
	if p := o.Position(30); p.X != 256 {
		t.Fatalf("expected halfway at x=256, got %.1f", p.X)
	}
	advanceTo(env.sched, 60)
	if o.Facing() != East {
		t.Fatalf("expected to turn around, facing %s", o.Facing())
	}
	if p := o.Position(60); p.X != 160 {
		t.Fatalf("expected far end x=160, got %.1f", p.X)
	}
	advanceTo(env.sched, 120)
	if o.Facing() != West {
		t.Fatalf("expected a new out leg, facing %s", o.Facing())
	}
	if p := o.Position(120); p.X != 352 {
		t.Fatalf("expected back at origin, got %.1f", p.X)
	}
	if env.grid.FreeCount(ViewActor) != 6 {
		t.Fatal("oscillators must not reserve cells")
	}
}

func TestOscillator_DespawnStopsPatrol(t *testing.T) {
	env := testEnv(t, "......")
	o := newOscillator(env, Frog, East, 4, 1, true, func() Cell { return Cell{Col: 0, Row: 0} })
	o.Spawn()
	o.Start()
	advanceTo(env.sched, 20)
	o.Despawn()
	advanceTo(env.sched, 1000)
	if o.Alive() || o.moving {
		t.Fatal("despawned oscillator kept moving")
	}
	o.Start()
	if o.moving {
		t.Fatal("Start on a dead oscillator should do nothing")
	}
}

func TestGhostOrb_AttacksOnInterval(t *testing.T) {
	env := testEnv(t, "......", "......")
	env.tuning.GhostAttackMin, env.tuning.GhostAttackMax = 2, 2
	var drops []Vec
	g := &GhostOrb{Oscillator: newOscillator(env, Ghost, East, 4, 10, false, func() Cell { return Cell{Col: 0, Row: 1} })}
	g.onAttack = func(at Vec) { drops = append(drops, at) }
	g.Spawn()
	g.Start()
	advanceTo(env.sched, 360)
	if len(drops) != 3 {
		t.Fatalf("expected 3 attacks in 6s, got %d", len(drops))
	}
	if drops[1].X <= drops[0].X {
		t.Fatalf("ghost should drift east between attacks: %v", drops)
	}
	g.Despawn()
	advanceTo(env.sched, 1000)
	if len(drops) != 3 {
		t.Fatal("dead ghost kept attacking")
	}
}

func TestSerpent_SpawnFallsBackWhenHomeTaken(t *testing.T) {
	env := testEnv(t,
		"~...",
		"....",
	)
	home := Cell{Col: 1, Row: 0}
	env.grid.Reserve(ViewActor, home)
	s := newSerpent(env, home)
	s.Spawn()
	at := s.Motion().Cell()
	if at == home || env.grid.IsWater(at) {
		t.Fatalf("expected fallback away from home and water, got %v", at)
	}
	if env.grid.IsFree(ViewActor, at) {
		t.Fatal("spawn cell not reserved")
	}
}

func TestSerpent_WaitsForGlideBeforeChoosing(t *testing.T) {
	env := testEnv(t, "........")
	s := newSerpent(env, Cell{Col: 0, Row: 0})
	s.Spawn()
	s.Start()
	if !s.Locked() || s.Facing() != East {
		t.Fatalf("expected an east glide right away, locked=%v facing=%s", s.Locked(), s.Facing())
	}
	// Seven steps of 30 ticks; decisions every 60 ticks are skipped meanwhile.
	advanceTo(env.sched, 209)
	if !s.Locked() {
		t.Fatal("glide finished early")
	}
	advanceTo(env.sched, 210)
	if s.Motion().Cell() != (Cell{Col: 7, Row: 0}) {
		t.Fatalf("expected end of corridor, got %v", s.Motion().Cell())
	}
	advanceTo(env.sched, 240)
	if s.Facing() != West {
		t.Fatalf("expected the next decision to turn back, facing %s", s.Facing())
	}
}

func TestSerpent_DespawnFreesCells(t *testing.T) {
	env := testEnv(t, "....")
	s := newSerpent(env, Cell{Col: 0, Row: 0})
	s.Spawn()
	s.Start()
	s.Despawn()
	if env.grid.FreeCount(ViewActor) != 4 {
		t.Fatalf("expected all cells free, got %d", env.grid.FreeCount(ViewActor))
	}
	if s.Alive() {
		t.Fatal("despawned serpent alive")
	}
}
