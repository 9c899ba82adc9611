// Package session wires a configured set of collaborators around runs: the
// high score store, the spectator feed and any front-end observers.
package session

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/maze-man/internal/config"
	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
	"github.com/Garsondee/maze-man/internal/persistence"
	"github.com/Garsondee/maze-man/internal/spectate"
)

// spectateEvery throttles spectator stats frames to four per second at the
// default tick rate.
const spectateEvery = 15

// Session outlives individual runs.
type Session struct {
	Config   config.Config
	Store    persistence.Storage
	Recorder *persistence.Recorder
	Hub      *spectate.Hub

	server    *http.Server
	observers []game.Observer
	rng       *rand.Rand
	runs      int
	runID     string
	log       *logrus.Entry
}

// Open builds the store, the recorder and, when an address is configured,
// the spectator server. extra observers are attached to every run.
func Open(cfg config.Config, extra ...game.Observer) (*Session, error) {
	s := &Session{Config: cfg, log: logger.Component("session")}
	store, err := persistence.Open(cfg.Persistence.Type, cfg.Persistence.File, cfg.Persistence.DatabaseURL)
	if err != nil {
		return nil, err
	}
	s.Store = store
	s.Recorder = persistence.NewRecorder(store)
	s.observers = append(s.observers, s.Recorder)

	if addr := cfg.Spectate.Addr; addr != "" {
		s.Hub = spectate.NewHub(spectateEvery)
		mux := http.NewServeMux()
		mux.Handle("/ws", s.Hub)
		s.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.log.WithError(err).Error("spectator server stopped")
			}
		}()
		s.observers = append(s.observers, s.Hub)
		s.log.WithField("addr", addr).Info("spectator feed listening on /ws")
	}
	s.observers = append(s.observers, extra...)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	s.log.WithField("seed", seed).Debug("session seeded")
	return s, nil
}

// NewRun starts a fresh run on the stock level with every observer attached.
func (s *Session) NewRun() (*game.Run, error) {
	opts := make([]game.RunOption, 0, len(s.observers))
	for _, o := range s.observers {
		opts = append(opts, game.WithObserver(o))
	}
	r, err := game.NewRun(game.DefaultLevel(), s.Config.Tuning, s.rng, opts...)
	if err != nil {
		return nil, err
	}
	s.runs++
	s.runID = uuid.NewString()
	if s.Hub != nil {
		s.Hub.BeginRun(s.runID)
	}
	s.log.WithFields(logrus.Fields{"run": s.runs, "run_id": s.runID}).Debug("run created")
	return r, nil
}

// Runs reports how many runs this session has created.
func (s *Session) Runs() int { return s.runs }

// RunID identifies the most recent run in logs and spectator frames.
func (s *Session) RunID() string { return s.runID }

// Close stops the spectator server and closes the store.
func (s *Session) Close() error {
	var errs []error
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.Hub.Close()
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.Store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
