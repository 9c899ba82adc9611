package persistence

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
)

// Open returns the backend named by kind: "json", "postgres" or "none".
func Open(kind, file, databaseURL string) (Storage, error) {
	switch kind {
	case "", "json":
		return NewJSONStore(file)
	case "postgres":
		return NewPostgresStore(databaseURL)
	case "none":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("persistence: unknown store type %q", kind)
	}
}

// MemoryStore keeps records for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	data *Records
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() (Records, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return Records{}, ErrNotFound
	}
	return cloneRecords(*m.data), nil
}

func (m *MemoryStore) Save(r Records) error {
	m.mu.Lock()
	rec := cloneRecords(r)
	m.data = &rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Reset() error {
	m.mu.Lock()
	if m.data != nil {
		m.data.Highscores = nil
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Recorder merges each finished run into a Storage. It implements
// game.Observer; store failures are logged and never reach the run.
type Recorder struct {
	store Storage
	now   func() time.Time
	log   *logrus.Entry

	mu       sync.Mutex
	last     Records
	unlocked bool // the last run unlocked a new achievement
}

// NewRecorder wraps store.
func NewRecorder(store Storage) *Recorder {
	return &Recorder{
		store: store,
		now:   time.Now,
		log:   logger.Component("persistence"),
	}
}

// TickStarted is a no-op.
func (rc *Recorder) TickStarted(game.Stats) {}

// Encountered is a no-op.
func (rc *Recorder) Encountered(game.Encounter) {}

// Finished stores the score and unlocks the cause's achievement.
func (rc *Recorder) Finished(o game.RunOutcome) {
	if err := rc.Record(o); err != nil {
		rc.log.WithError(err).WithFields(logrus.Fields{
			"score": o.FinalScore,
			"cause": o.Cause.String(),
		}).Error("failed to record run")
	}
}

// Record merges o into the store and returns the first error encountered.
// The cached copy only changes once the store has accepted the records.
func (rc *Recorder) Record(o game.RunOutcome) error {
	rec, err := rc.store.Load()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	rec.AddScore(NewHighscore(o.FinalScore, rc.now()))
	isNew := rec.Unlock(o.Cause.Code())

	if err := rc.store.Save(rec); err != nil {
		rc.mu.Lock()
		rc.unlocked = false
		rc.mu.Unlock()
		return err
	}
	rc.mu.Lock()
	rc.last = cloneRecords(rec)
	rc.unlocked = isNew
	rc.mu.Unlock()
	rc.log.WithFields(logrus.Fields{
		"score":       o.FinalScore,
		"cause":       o.Cause.String(),
		"achievement": o.Cause.Code(),
		"new":         isNew,
	}).Info("run recorded")
	return nil
}

// Records returns the records as of the last finished run, or the stored
// ones if nothing has been recorded in this process yet.
func (rc *Recorder) Records() Records {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.last.Highscores != nil || rc.last.Achievements != nil {
		return cloneRecords(rc.last)
	}
	rec, err := rc.store.Load()
	if err != nil && !errors.Is(err, ErrNotFound) {
		rc.log.WithError(err).Warn("failed to load records")
	}
	return rec
}

// NewlyUnlocked reports whether the last recorded run unlocked a new
// achievement.
func (rc *Recorder) NewlyUnlocked() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.unlocked
}

// ResetHighscores clears the table in the store and in the cached copy.
func (rc *Recorder) ResetHighscores() error {
	if err := rc.store.Reset(); err != nil {
		return err
	}
	rc.mu.Lock()
	rc.last.Highscores = nil
	rc.mu.Unlock()
	return nil
}
