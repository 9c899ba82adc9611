package sfx

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
)

// Output receives finished streamers.
type Output interface {
	Play(beep.Streamer)
}

// Speaker plays through the system audio device. The device is opened on the
// first cue; if that fails, sound stays off for the rest of the process.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	inited bool
	failed bool
	log    *logrus.Entry
}

// NewSpeaker returns an unopened speaker output.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}, log: logger.Component("sfx")}
}

func (s *Speaker) open() bool {
	if s.inited || s.failed {
		return s.inited
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		s.log.WithError(err).Warn("audio device unavailable, sound disabled")
		s.failed = true
		return false
	}
	speaker.Play(s.mixer)
	s.inited = true
	return true
}

func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open() {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences anything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// Player is a run observer that voices encounters.
type Player struct {
	out    Output
	volume float64
	muted  bool
	last   map[Cue]int
	tick   int
}

// NewPlayer plays cues on out at volume, a base-2 gain where 0 is unity.
func NewPlayer(out Output, volume float64) *Player {
	return &Player{out: out, volume: volume, last: map[Cue]int{}}
}

// SetMuted toggles output without detaching the observer.
func (p *Player) SetMuted(m bool) { p.muted = m }

// Muted reports the mute state.
func (p *Player) Muted() bool { return p.muted }

func (p *Player) play(c Cue) {
	if p.muted || c == CueNone {
		return
	}
	// One instance of a cue per tick; two rocks hitting together sound once.
	if t, ok := p.last[c]; ok && t == p.tick {
		return
	}
	p.last[c] = p.tick
	p.out.Play(&effects.Volume{
		Streamer: c.Streamer(SampleRate),
		Base:     2,
		Volume:   p.volume,
	})
}

func (p *Player) TickStarted(s game.Stats) { p.tick = s.Tick }

func (p *Player) Encountered(e game.Encounter) { p.play(CueFor(e)) }

func (p *Player) Finished(game.RunOutcome) { p.play(CueGameOver) }
