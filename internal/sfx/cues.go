package sfx

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/maze-man/internal/game"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Cue names one sound.
type Cue int

const (
	CueNone Cue = iota
	CueEat
	CueStolen
	CueStar
	CueHit
	CueKill
	CueHiss
	CueCritical
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueStolen:
		return "stolen"
	case CueStar:
		return "star"
	case CueHit:
		return "hit"
	case CueKill:
		return "kill"
	case CueHiss:
		return "hiss"
	case CueCritical:
		return "critical"
	case CueGameOver:
		return "game-over"
	default:
		return "none"
	}
}

type note struct {
	freq float64
	d    time.Duration
	wave Wave
}

var cueNotes = map[Cue][]note{
	CueEat:      {{523, 60 * time.Millisecond, Sine}, {784, 90 * time.Millisecond, Sine}},
	CueStolen:   {{392, 80 * time.Millisecond, Square}, {262, 120 * time.Millisecond, Square}},
	CueStar:     {{880, 50 * time.Millisecond, Sine}, {1175, 50 * time.Millisecond, Sine}, {1568, 100 * time.Millisecond, Sine}},
	CueHit:      {{0, 140 * time.Millisecond, Noise}},
	CueKill:     {{196, 60 * time.Millisecond, Saw}, {98, 120 * time.Millisecond, Saw}},
	CueHiss:     {{0, 90 * time.Millisecond, Noise}},
	CueCritical: {{220, 100 * time.Millisecond, Square}, {220, 100 * time.Millisecond, Square}},
	CueGameOver: {{330, 150 * time.Millisecond, Saw}, {262, 150 * time.Millisecond, Saw}, {196, 400 * time.Millisecond, Saw}},
}

// CueFor maps an applied encounter to its sound. Light drift and terminal
// encounters have none; the end of a run is voiced by Finished.
func CueFor(e game.Encounter) Cue {
	switch e.Kind {
	case game.EncounterConsume:
		return CueEat
	case game.EncounterFoodStolen:
		return CueStolen
	case game.EncounterCollect:
		return CueStar
	case game.EncounterDamage:
		return CueHit
	case game.EncounterKill:
		return CueKill
	case game.EncounterExtinguish:
		return CueHiss
	case game.EncounterCritical:
		if e.Flag {
			return CueCritical
		}
	}
	return CueNone
}

// Duration is the total length of c.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.d
	}
	return d
}

// Streamer builds a fresh streamer for c, or nil for CueNone.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	notes := cueNotes[c]
	if len(notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, Fade(NewTone(n.freq, n.d, n.wave, rate), n.d, 5*time.Millisecond, 20*time.Millisecond, rate))
	}
	return beep.Seq(parts...)
}
