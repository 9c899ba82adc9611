// Package sfx turns run encounters into short synthesized cues played through
// the beep speaker.
package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects the oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// tone is a fixed-frequency oscillator that runs for a set number of samples.
type tone struct {
	freq     float64
	phase    float64
	step     float64
	position int
	total    int
	wave     Wave
	rng      *rand.Rand
}

// NewTone returns a streamer producing freq Hz of wave for d.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:  freq,
		step:  freq / float64(rate),
		total: rate.N(d),
		wave:  wave,
		rng:   rand.New(rand.NewSource(int64(freq))), // #nosec G404 -- audio noise
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.total {
			return i, true
		}
		v := t.sample()
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.step
		if t.phase >= 1 {
			t.phase -= math.Floor(t.phase)
		}
		t.position++
	}
	return len(samples), true
}

func (t *tone) sample() float64 {
	switch t.wave {
	case Square:
		if t.phase < 0.5 {
			return 0.5
		}
		return -0.5
	case Saw:
		return 2*t.phase - 1
	case Noise:
		return t.rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) Err() error { return nil }

// fade applies a linear attack and release over a wrapped streamer.
type fade struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// Fade shapes s with attack and release ramps over a total length d.
func Fade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		if f.pos >= f.total {
			return i, i > 0
		}
		vol := 1.0
		if f.attack > 0 && f.pos < f.attack {
			vol = float64(f.pos) / float64(f.attack)
		}
		if left := f.total - f.pos; f.release > 0 && left < f.release {
			vol = math.Min(vol, float64(left)/float64(f.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }
