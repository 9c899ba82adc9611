package game

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless run harness used by tests and the headless report.
// It has no Ebiten dependency and supports deterministic seeding and
// structured logging.
type TestSim struct {
	Level  *Level
	Tuning Tuning
	Run    *Run
	SimLog *SimLog

	rng       *rand.Rand
	kinds     []EnemyKind
	observers []Observer
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // level, tuning, seed, verbose; applied first
	simOptActors                      // enemy roster, observers; applied before the run is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithLevel replaces the stock maze with ASCII rows (see ParseLevel).
func WithLevel(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		lvl, err := ParseLevel(rows, DefaultPitch)
		if err != nil {
			panic(fmt.Sprintf("test level: %v", err))
		}
		ts.Level = lvl
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-step glide logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithTuning edits the gameplay constants.
func WithTuning(edit func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.Tuning)
	}}
}

// WithoutEnemies spawns no enemies.
func WithoutEnemies() SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.kinds = []EnemyKind{}
	}}
}

// WithEnemies spawns only the given archetypes.
func WithEnemies(kinds ...EnemyKind) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.kinds = append([]EnemyKind{}, kinds...)
	}}
}

// WithSimObserver attaches an observer to the run.
func WithSimObserver(o Observer) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.observers = append(ts.observers, o)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (level, tuning, seed, verbose)
//  2. Actors (enemy roster, observers)
//  3. Build the Run
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Level:  DefaultLevel(),
		Tuning: DefaultTuning(),
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		kinds:  AllEnemyKinds,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptActors {
			o.fn(ts)
		}
	}
	runOpts := []RunOption{WithSimLog(ts.SimLog), WithEnemyKinds(ts.kinds...)}
	for _, o := range ts.observers {
		runOpts = append(runOpts, WithObserver(o))
	}
	run, err := NewRun(ts.Level, ts.Tuning, ts.rng, runOpts...)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Run = run
	return ts
}

// RunTicks advances the run n ticks. Ticks after the run ends are no-ops.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Run.Tick()
	}
}

// RunUntil advances the run up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Run.Tick()
		if predicate(ts) {
			return ts.Run.CurrentTick()
		}
	}
	return -1
}

// RunToEnd advances until the run finishes or maxTicks elapse.
func (ts *TestSim) RunToEnd(maxTicks int) (RunOutcome, bool) {
	ts.RunUntil(func(ts *TestSim) bool { return ts.Run.Finished() }, maxTicks)
	return ts.Run.Outcome()
}

// Move forwards a move intent.
func (ts *TestSim) Move(d Direction) bool { return ts.Run.Move(d) }

// Seconds converts seconds to ticks under the sim's tuning.
func (ts *TestSim) Seconds(s float64) int { return ts.Tuning.Ticks(s) }

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Run.CurrentTick()
}

// Stats returns the run's presentation stats.
func (ts *TestSim) Stats() Stats { return ts.Run.Stats() }
