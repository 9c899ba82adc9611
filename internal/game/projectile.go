package game

import "fmt"

// Rock is a thrown projectile flying in a straight line.
type Rock struct {
	ID    EntityID
	From  Vec
	Dir   Vec // unit vector
	Start int
	Ticks int
	speed float64 // px per tick
}

// Position returns the rock centre at tick now.
func (r *Rock) Position(now int) Vec {
	return r.From.Add(r.Dir.Scale(r.speed * float64(now-r.Start)))
}

// Expired reports whether the rock's flight time has elapsed.
func (r *Rock) Expired(now int) bool { return now-r.Start >= r.Ticks }

// Fire is the ghost's falling attack.
type Fire struct {
	From    Vec
	Start   int
	gravity float64 // px per tick²
}

// Position returns the fire centre at tick now.
func (f *Fire) Position(now int) Vec {
	t := float64(now - f.Start)
	return f.From.Add(Vec{Y: 0.5 * f.gravity * t * t})
}

func newRock(seq int, from, dir Vec, now int, t Tuning) *Rock {
	tps := float64(t.TicksPerSecond)
	return &Rock{
		ID:    EntityID(fmt.Sprintf("rock#%d", seq)),
		From:  from,
		Dir:   dir,
		Start: now,
		Ticks: t.Ticks(t.RockFlight),
		speed: t.RockSpeed / tps,
	}
}

func newFire(from Vec, now int, t Tuning) *Fire {
	tps := float64(t.TicksPerSecond)
	return &Fire{
		From:    from.Add(Vec{Y: t.FireDrop}),
		Start:   now,
		gravity: t.FireGravity / (tps * tps),
	}
}
