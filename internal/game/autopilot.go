package game

import (
	"math"
	"math/rand"
)

// Autopilot is a simple bot that keeps the player moving and throws rocks at
// the nearest enemy in range with no wall in between. It drives the headless
// report.
type Autopilot struct {
	rng        *rand.Rand
	ThrowRange float64 // px
	ThrowEvery int     // ticks between throws
	lastThrow  int
}

// NewAutopilot creates a bot with its own random stream.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay bot
		ThrowRange: 4 * DefaultPitch,
		ThrowEvery: 45,
		lastThrow:  -1 << 30,
	}
}

// Step issues at most one move and one throw for the current tick.
func (a *Autopilot) Step(r *Run) {
	if r.Finished() {
		return
	}
	p := r.Player()
	if !r.Started() || p.State() == MotionIdle {
		if d, ok := a.pickDirection(r); ok {
			r.Move(d)
		}
	}
	if !r.Started() || r.CurrentTick()-a.lastThrow < a.ThrowEvery {
		return
	}
	now := r.CurrentTick()
	me := p.Position(now)
	walls := r.Level().TileMap.Blocked()
	pitch := r.Level().Pitch
	best, bestDist := Vec{}, math.Inf(1)
	for _, e := range r.Enemies() {
		if !e.Alive() {
			continue
		}
		pos := e.Position(now)
		if d := pos.Sub(me).Len(); d < bestDist && ClearShot(me, pos, walls, pitch) {
			best, bestDist = pos, d
		}
	}
	if bestDist <= a.ThrowRange && r.Throw(best) {
		a.lastThrow = now
	}
}

// pickDirection prefers lanes that do not end in water.
func (a *Autopilot) pickDirection(r *Run) (Direction, bool) {
	g := r.Grid()
	from := r.Player().Cell()
	var safe []Direction
	for _, d := range g.FreeDirections(from) {
		if !g.LaneHasWater(from, d) {
			safe = append(safe, d)
		}
	}
	if len(safe) == 0 {
		return East, false
	}
	return safe[a.rng.Intn(len(safe))], true
}
