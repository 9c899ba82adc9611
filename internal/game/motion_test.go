package game

import "testing"

type motionRig struct {
	grid  *GridIndex
	sched *Scheduler
	log   *SimLog
	m     *MotionController
}

func newMotionRig(t *testing.T, stepTicks int, rows ...string) *motionRig {
	t.Helper()
	lvl, g := testGrid(t, rows...)
	rig := &motionRig{grid: g, sched: NewScheduler(), log: NewSimLog(true)}
	rig.m = NewMotionController(IDPlayer, g, rig.sched, stepTicks, rig.log)
	rig.m.Place(lvl.PlayerSpawn)
	return rig
}

func (r *motionRig) advance(n int) {
	for i := 0; i < n; i++ {
		r.sched.Advance(r.sched.Now() + 1)
	}
}

func TestMotion_GlideCompletesAndKeepsFinalCell(t *testing.T) {
	rig := newMotionRig(t, 2, "P....")
	if !rig.m.RequestMove(East) {
		t.Fatal("expected move to be accepted")
	}
	if rig.m.State() != MotionGliding {
		t.Fatalf("expected gliding, got %s", rig.m.State())
	}
	if got := rig.grid.FreeCount(ViewActor); got != 0 {
		t.Fatalf("expected whole lane reserved, free=%d", got)
	}

	rig.advance(8)
	if rig.m.State() != MotionIdle {
		t.Fatalf("expected idle after 4 steps, got %s", rig.m.State())
	}
	if rig.m.Cell() != (Cell{Col: 4, Row: 0}) {
		t.Fatalf("expected to end at (4,0), got %v", rig.m.Cell())
	}
	for col := 0; col < 4; col++ {
		if !rig.grid.IsFree(ViewActor, Cell{Col: col, Row: 0}) {
			t.Fatalf("cell (%d,0) should be released", col)
		}
	}
	if rig.grid.IsFree(ViewActor, Cell{Col: 4, Row: 0}) {
		t.Fatal("final cell must stay reserved")
	}
	if rig.sched.Pending() != 0 {
		t.Fatalf("expected no pending steps, got %d", rig.sched.Pending())
	}
}

func TestMotion_SameDirectionIsNoop(t *testing.T) {
	rig := newMotionRig(t, 2, "P....")
	rig.m.RequestMove(East)
	free := rig.grid.FreeCount(ViewActor)
	pending := rig.sched.Pending()

	rig.advance(1)
	if rig.m.RequestMove(East) {
		t.Fatal("repeat of the in-flight direction should be rejected")
	}
	if rig.grid.FreeCount(ViewActor) != free {
		t.Fatal("repeat move changed reservations")
	}
	if rig.sched.Pending() != pending {
		t.Fatalf("repeat move scheduled work: %d -> %d", pending, rig.sched.Pending())
	}
	if n := rig.log.CountCategory("glide", "start"); n != 1 {
		t.Fatalf("expected 1 glide, got %d", n)
	}
}

func TestMotion_InvalidDirectionIgnored(t *testing.T) {
	rig := newMotionRig(t, 2, "P....")
	if rig.m.RequestMove(Direction(42)) {
		t.Fatal("invalid direction accepted")
	}
	if rig.m.State() != MotionIdle || rig.sched.Pending() != 0 {
		t.Fatal("invalid direction changed state")
	}
}

func TestMotion_RedirectReleasesTailOnce(t *testing.T) {
	rig := newMotionRig(t, 2,
		".....",
		"P....",
		".....",
	)
	total := 15
	rig.m.RequestMove(East)
	if got := rig.grid.FreeCount(ViewActor); got != total-5 {
		t.Fatalf("expected 5 reserved, free=%d", got)
	}

	rig.advance(1)
	if !rig.m.RequestMove(South) {
		t.Fatal("redirect should be recorded")
	}
	if rig.m.Pending() != South {
		t.Fatalf("expected pending south, got %s", rig.m.Pending())
	}
	// Nothing changes until the step boundary.
	if got := rig.grid.FreeCount(ViewActor); got != total-5 {
		t.Fatalf("redirect applied early, free=%d", got)
	}

	rig.advance(1)
	if rig.m.Cell() != (Cell{Col: 1, Row: 1}) {
		t.Fatalf("expected redirect at (1,1), got %v", rig.m.Cell())
	}
	for _, c := range []Cell{{0, 1}, {2, 1}, {3, 1}, {4, 1}} {
		if !rig.grid.IsFree(ViewActor, c) {
			t.Fatalf("east tail cell %v not released", c)
		}
	}
	gl := rig.m.Glide()
	if gl.Dir != South || gl.Last() != (Cell{Col: 1, Row: 2}) {
		t.Fatalf("expected new south glide to (1,2), got %v %v", gl.Dir, gl.Cells)
	}
	if got := rig.grid.FreeCount(ViewActor); got != total-2 {
		t.Fatalf("expected 2 reserved after redirect, free=%d", got)
	}
	if n := rig.log.CountCategory("glide", "redirect"); n != 1 {
		t.Fatalf("expected exactly one redirect, got %d", n)
	}

	rig.advance(2)
	if rig.m.State() != MotionIdle || rig.m.Cell() != (Cell{Col: 1, Row: 2}) {
		t.Fatalf("expected idle at (1,2), got %s at %v", rig.m.State(), rig.m.Cell())
	}
	if got := rig.grid.FreeCount(ViewActor); got != total-1 {
		t.Fatalf("expected only the final cell reserved, free=%d", got)
	}
}

func TestMotion_SingletonHoldsOneStep(t *testing.T) {
	rig := newMotionRig(t, 3,
		"###",
		"#P#",
		"###",
	)
	if !rig.m.RequestMove(North) {
		t.Fatal("move into a wall is still accepted")
	}
	if rig.m.State() != MotionGliding {
		t.Fatal("expected a one-step hold")
	}
	rig.advance(3)
	if rig.m.State() != MotionIdle || rig.m.Cell() != (Cell{Col: 1, Row: 1}) {
		t.Fatalf("expected idle in place, got %s at %v", rig.m.State(), rig.m.Cell())
	}
	if rig.grid.IsFree(ViewActor, Cell{Col: 1, Row: 1}) {
		t.Fatal("actor cell must stay reserved")
	}
}

func TestMotion_PositionInterpolates(t *testing.T) {
	rig := newMotionRig(t, 2, "P....")
	rig.m.RequestMove(East)
	rig.advance(1)
	p := rig.m.Position(rig.sched.Now())
	if p.X != 64 || p.Y != 32 {
		t.Fatalf("expected halfway point (64,32), got (%.1f,%.1f)", p.X, p.Y)
	}
	rig.advance(1)
	p = rig.m.Position(rig.sched.Now())
	if p.X != 96 {
		t.Fatalf("expected centre of (1,0) at x=96, got %.1f", p.X)
	}
}

func TestMotion_VacateReleasesEverything(t *testing.T) {
	rig := newMotionRig(t, 2, "P....")
	rig.m.RequestMove(East)
	rig.advance(3)
	rig.m.Vacate()
	if got := rig.grid.FreeCount(ViewActor); got != 5 {
		t.Fatalf("expected all 5 cells free, got %d", got)
	}
	rig.advance(10)
	if rig.m.State() != MotionIdle {
		t.Fatal("stale step callbacks ran after vacate")
	}
}
