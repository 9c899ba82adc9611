package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-state reports (~10s at 60TPS).
const reportWindowTicks = 600

// RunReport captures the player's state at one sampled tick.
type RunReport struct {
	Tick       int
	Energy     int
	Health     int
	Rocks      int
	Score      int
	Light      float64
	Critical   bool
	Invincible bool
}

// RunReporter samples run stats at a fixed interval and summarises them over
// a sliding window. It is an Observer.
type RunReporter struct {
	every       int
	windowTicks int
	history     []RunReport
	finished    *RunOutcome
}

// NewRunReporter samples every n ticks and summarises over windowTicks.
// Non-positive arguments fall back to one second and reportWindowTicks.
func NewRunReporter(n, windowTicks int) *RunReporter {
	if n <= 0 {
		n = 60
	}
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &RunReporter{every: n, windowTicks: windowTicks}
}

// TickStarted records a sample on every n-th tick.
func (r *RunReporter) TickStarted(s Stats) {
	if s.Tick%r.every != 0 {
		return
	}
	r.history = append(r.history, RunReport{
		Tick:       s.Tick,
		Energy:     s.Ledger.Energy,
		Health:     s.Ledger.Health,
		Rocks:      s.Ledger.Rocks,
		Score:      s.Ledger.Score,
		Light:      s.Light,
		Critical:   s.Critical,
		Invincible: s.Invincible,
	})
}

// Encountered is a no-op.
func (r *RunReporter) Encountered(Encounter) {}

// Finished keeps the outcome for FormatLatest.
func (r *RunReporter) Finished(o RunOutcome) { r.finished = &o }

// Latest returns the most recent report, or nil if none collected yet.
func (r *RunReporter) Latest() *RunReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *RunReporter) History() []RunReport { return r.history }

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int
	AvgEnergy        float64
	AvgHealth        float64
	AvgRocks         float64
	AvgLight         float64
	CriticalShare    float64 // fraction of samples with the critical flag
	InvincibleShare  float64
	ScoreGained      int
}

// WindowSummary aggregates the reports within windowTicks of the latest one.
func (r *RunReporter) WindowSummary() *WindowReport {
	last := r.Latest()
	if last == nil {
		return nil
	}
	cutoff := last.Tick - r.windowTicks
	var window []RunReport
	for _, rep := range r.history {
		if rep.Tick > cutoff {
			window = append(window, rep)
		}
	}
	wr := &WindowReport{FromTick: window[0].Tick, ToTick: last.Tick, SampleCount: len(window)}
	for _, rep := range window {
		wr.AvgEnergy += float64(rep.Energy)
		wr.AvgHealth += float64(rep.Health)
		wr.AvgRocks += float64(rep.Rocks)
		wr.AvgLight += rep.Light
		if rep.Critical {
			wr.CriticalShare++
		}
		if rep.Invincible {
			wr.InvincibleShare++
		}
	}
	n := float64(len(window))
	wr.AvgEnergy /= n
	wr.AvgHealth /= n
	wr.AvgRocks /= n
	wr.AvgLight /= n
	wr.CriticalShare /= n
	wr.InvincibleShare /= n
	wr.ScoreGained = last.Score - window[0].Score
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "no samples\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "window T=%d..%d (%d samples)\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  energy=%.1f health=%.2f rocks=%.1f light=%.2f\n",
		wr.AvgEnergy, wr.AvgHealth, wr.AvgRocks, wr.AvgLight)
	fmt.Fprintf(&sb, "  critical=%.0f%% invincible=%.0f%% score+%d\n",
		100*wr.CriticalShare, 100*wr.InvincibleShare, wr.ScoreGained)
	return sb.String()
}

// FormatLatest returns a concise line for the most recent report.
func (r *RunReporter) FormatLatest() string {
	rep := r.Latest()
	if rep == nil {
		return "no samples"
	}
	s := fmt.Sprintf("T=%d E=%d H=%d R=%d S=%d light=%.1f", rep.Tick, rep.Energy, rep.Health, rep.Rocks, rep.Score, rep.Light)
	if r.finished != nil {
		s += " finished=" + r.finished.Cause.String()
	}
	return s
}
