// Package persistence stores high scores and unlocked achievements across
// runs.
package persistence

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// MaxHighscores is the length of the high score table.
const MaxHighscores = 3

// DateLayout formats high score dates as MM/dd/yy.
const DateLayout = "01/02/06"

// ErrNotFound is returned when a store has no record yet.
var ErrNotFound = errors.New("persistence: not found")

// Highscore is one entry of the table.
type Highscore struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// NewHighscore stamps score with the date of at.
func NewHighscore(score int, at time.Time) Highscore {
	return Highscore{Score: score, Date: at.Format(DateLayout)}
}

// String renders "date | score".
func (h Highscore) String() string {
	return fmt.Sprintf("%s | %d", h.Date, h.Score)
}

// Records is everything a store keeps.
type Records struct {
	Highscores   []Highscore `json:"highscores"`
	Achievements []int       `json:"achievements"` // death cause codes, unique, in unlock order
}

// AddScore inserts h, sorts the table by descending score and truncates it.
// Equal scores keep their insertion order, so an older entry stays ahead.
func (r *Records) AddScore(h Highscore) {
	r.Highscores = append(r.Highscores, h)
	sort.SliceStable(r.Highscores, func(i, j int) bool {
		return r.Highscores[i].Score > r.Highscores[j].Score
	})
	if len(r.Highscores) > MaxHighscores {
		r.Highscores = r.Highscores[:MaxHighscores]
	}
}

// Unlock adds code to the achievement set. It reports whether the code is
// new.
func (r *Records) Unlock(code int) bool {
	if r.Has(code) {
		return false
	}
	r.Achievements = append(r.Achievements, code)
	return true
}

// Has reports whether code is unlocked.
func (r *Records) Has(code int) bool {
	for _, c := range r.Achievements {
		if c == code {
			return true
		}
	}
	return false
}

// Storage is implemented by every backend.
type Storage interface {
	// Load returns the stored records, or ErrNotFound if nothing was saved.
	Load() (Records, error)
	Save(Records) error
	// Reset clears the high score table. Achievements are kept.
	Reset() error
	Close() error
}
