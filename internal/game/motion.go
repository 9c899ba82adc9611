package game

import "fmt"

// MotionState is the glide state of one actor.
type MotionState int

const (
	MotionIdle MotionState = iota
	MotionGliding
)

func (s MotionState) String() string {
	if s == MotionGliding {
		return "gliding"
	}
	return "idle"
}

// MotionController drives one actor through glides computed by the grid.
// Only one glide is in flight at a time; a different direction requested
// mid-glide is applied at the next step boundary.
type MotionController struct {
	id        EntityID
	grid      *GridIndex
	sched     *Scheduler
	log       *SimLog
	stepTicks int

	state     MotionState
	cell      Cell
	facing    Direction
	glide     Glide
	idx       int // index of cell within glide
	stepStart int
	dir       Direction // in flight
	pending   Direction
	epoch     int

	// OnIdle runs after a glide completes naturally.
	OnIdle func(Cell)
}

// NewMotionController creates an idle controller. Call Place before moving.
func NewMotionController(id EntityID, grid *GridIndex, sched *Scheduler, stepTicks int, log *SimLog) *MotionController {
	return &MotionController{
		id:        id,
		grid:      grid,
		sched:     sched,
		log:       log,
		stepTicks: stepTicks,
		facing:    East,
	}
}

// Place puts the actor on c and reserves it in the actor view. Any glide in
// flight is abandoned without releasing its cells.
func (m *MotionController) Place(c Cell) {
	m.epoch++
	m.state = MotionIdle
	m.cell = c
	m.glide = Glide{}
	m.grid.Reserve(ViewActor, c)
}

// Vacate stops the actor and returns every cell it holds to the actor view.
func (m *MotionController) Vacate() {
	m.epoch++
	if m.state == MotionGliding {
		m.grid.ReleaseAll(ViewActor, m.glide.Cells)
	}
	m.grid.Release(ViewActor, m.cell)
	m.state = MotionIdle
	m.glide = Glide{}
}

// Halt freezes the actor on its current cell. Unused glide cells stay
// reserved; the run is over when this is called.
func (m *MotionController) Halt() {
	m.epoch++
	m.state = MotionIdle
}

// State returns Idle or Gliding.
func (m *MotionController) State() MotionState { return m.state }

// Cell returns the last cell the actor reached.
func (m *MotionController) Cell() Cell { return m.cell }

// Facing returns the direction of the last accepted move.
func (m *MotionController) Facing() Direction { return m.facing }

// Glide returns the glide in flight (zero when idle).
func (m *MotionController) Glide() Glide {
	if m.state != MotionGliding {
		return Glide{}
	}
	return m.glide
}

// Pending returns the direction that will be applied at the next step.
func (m *MotionController) Pending() Direction { return m.pending }

// RequestMove asks the actor to glide in dir. It returns false for invalid
// directions and for a repeat of the direction already in flight.
func (m *MotionController) RequestMove(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	if m.state == MotionGliding {
		if dir == m.pending {
			return false
		}
		m.pending = dir
		return true
	}
	m.start(dir)
	return true
}

func (m *MotionController) start(dir Direction) {
	gl := m.grid.Project(m.cell, dir)
	m.epoch++
	m.state = MotionGliding
	m.glide = gl
	m.idx = 0
	m.dir = dir
	m.pending = dir
	m.facing = dir
	m.stepStart = m.sched.Now()
	m.log.AddVerbose(m.sched.Now(), string(m.id), "glide", "start",
		fmt.Sprintf("%s from (%d,%d) %d steps", dir, gl.From.Col, gl.From.Row, gl.Steps()), float64(gl.Steps()))
	m.schedule()
}

func (m *MotionController) schedule() {
	epoch := m.epoch
	m.sched.After(m.stepTicks, string(m.id)+":step", func() {
		if epoch != m.epoch {
			return
		}
		m.step()
	})
}

// step runs at each step boundary.
func (m *MotionController) step() {
	if m.idx < len(m.glide.Cells)-1 {
		m.idx++
		m.cell = m.glide.Cells[m.idx]
	}

	if m.pending != m.dir {
		m.releaseExceptCurrent()
		m.state = MotionIdle
		m.log.AddVerbose(m.sched.Now(), string(m.id), "glide", "redirect",
			fmt.Sprintf("%s -> %s at (%d,%d)", m.dir, m.pending, m.cell.Col, m.cell.Row), 0)
		m.start(m.pending)
		return
	}

	if m.idx >= len(m.glide.Cells)-1 {
		m.releaseExceptCurrent()
		m.state = MotionIdle
		m.epoch++
		m.log.AddVerbose(m.sched.Now(), string(m.id), "glide", "done",
			fmt.Sprintf("at (%d,%d)", m.cell.Col, m.cell.Row), 0)
		if m.OnIdle != nil {
			m.OnIdle(m.cell)
		}
		return
	}

	m.stepStart = m.sched.Now()
	m.schedule()
}

func (m *MotionController) releaseExceptCurrent() {
	rest := make([]Cell, 0, len(m.glide.Cells))
	for _, c := range m.glide.Cells {
		if c != m.cell {
			rest = append(rest, c)
		}
	}
	m.grid.ReleaseAll(ViewActor, rest)
}

// Position returns the actor's pixel centre at tick now, interpolated along
// the current step.
func (m *MotionController) Position(now int) Vec {
	from := m.grid.Center(m.cell)
	if m.state != MotionGliding || m.idx >= len(m.glide.Cells)-1 {
		return from
	}
	to := m.grid.Center(m.glide.Cells[m.idx+1])
	return from.Lerp(to, progress(now, m.stepStart, m.stepTicks))
}
