package game

// Ledger holds the player's resources.
//
// Energy behaves as a shield in front of health: damage that does not fit in
// the remaining energy costs one health point and refills energy minus the
// overflow.
type Ledger struct {
	Health    int
	Energy    int
	Score     int
	Rocks     int
	MaxEnergy int
	MaxRocks  int
}

// NewLedger returns the starting ledger for a run.
func NewLedger(t Tuning) Ledger {
	return Ledger{
		Health:    t.StartHealth,
		Energy:    clampInt(t.StartEnergy, 0, t.MaxEnergy),
		Rocks:     clampInt(t.StartRocks, 0, t.MaxRocks),
		MaxEnergy: t.MaxEnergy,
		MaxRocks:  t.MaxRocks,
	}
}

// ApplyDamage removes raw energy. If the energy left would not stay positive
// one health point is lost instead and energy becomes MaxEnergy minus the
// overflow, clamped to [0, MaxEnergy]. At most one health point is lost per
// call. Returns true if health was deducted.
func (l *Ledger) ApplyDamage(raw int) bool {
	if raw <= 0 {
		return false
	}
	left := l.Energy - raw
	if left > 0 {
		l.Energy = left
		return false
	}
	l.Health--
	l.Energy = clampInt(l.MaxEnergy+left, 0, l.MaxEnergy)
	return true
}

// ApplyHeal adds n energy up to MaxEnergy.
func (l *Ledger) ApplyHeal(n int) {
	if n <= 0 {
		return
	}
	l.Energy = clampInt(l.Energy+n, 0, l.MaxEnergy)
}

// AdjustRocks changes the rock count by d, clamped to [0, MaxRocks].
func (l *Ledger) AdjustRocks(d int) {
	l.Rocks = clampInt(l.Rocks+d, 0, l.MaxRocks)
}

// AddScore adds n to the score. Negative amounts are ignored.
func (l *Ledger) AddScore(n int) {
	if n > 0 {
		l.Score += n
	}
}

// Dead reports whether health has dropped below zero.
func (l Ledger) Dead() bool { return l.Health < 0 }

// Drain zeroes health and energy.
func (l *Ledger) Drain() {
	l.Health = 0
	l.Energy = 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
