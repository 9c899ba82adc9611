package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/maze-man/internal/game"
)

func TestRecords_AddScoreKeepsTopThree(t *testing.T) {
	var r Records
	for i, s := range []int{5, 9, 1, 9, 7} {
		r.AddScore(Highscore{Score: s, Date: string(rune('a' + i))})
	}
	if len(r.Highscores) != MaxHighscores {
		t.Fatalf("expected %d entries, got %d", MaxHighscores, len(r.Highscores))
	}
	want := []Highscore{{9, "b"}, {9, "d"}, {7, "e"}}
	for i, h := range want {
		if r.Highscores[i] != h {
			t.Fatalf("entry %d: got %+v, want %+v", i, r.Highscores[i], h)
		}
	}
}

func TestRecords_UnlockIsUnique(t *testing.T) {
	var r Records
	if !r.Unlock(103) || r.Unlock(103) {
		t.Fatal("second unlock of the same code should report false")
	}
	r.Unlock(2)
	if len(r.Achievements) != 2 || !r.Has(2) {
		t.Fatalf("unexpected achievements %v", r.Achievements)
	}
}

func TestHighscore_Format(t *testing.T) {
	h := NewHighscore(12, time.Date(2022, 4, 16, 10, 0, 0, 0, time.UTC))
	if h.String() != "04/16/22 | 12" {
		t.Fatalf("unexpected format %q", h.String())
	}
}

func TestJSONStore_RoundTripAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on a fresh store, got %v", err)
	}
	rec := Records{Highscores: []Highscore{{Score: 4, Date: "01/02/06"}}, Achievements: []int{1, 103}}
	if err := store.Save(rec); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Highscores) != 1 || got.Highscores[0].Score != 4 || len(got.Achievements) != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	if err := reopened.Reset(); err != nil {
		t.Fatal(err)
	}
	got, _ = reopened.Load()
	if len(got.Highscores) != 0 || len(got.Achievements) != 2 {
		t.Fatalf("reset should clear scores only: %+v", got)
	}
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStore(path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	if _, err := Open("redis", "", ""); err == nil {
		t.Fatal("expected error for unknown store")
	}
	s, err := Open("none", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}
}

func TestRecorder_MergesOutcomes(t *testing.T) {
	store := NewMemoryStore()
	rc := NewRecorder(store)
	rc.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	var obs game.Observer = rc
	obs.Finished(game.RunOutcome{FinalScore: 3, Cause: game.CauseFrog})
	if !rc.NewlyUnlocked() {
		t.Fatal("first frog death should unlock")
	}
	obs.Finished(game.RunOutcome{FinalScore: 8, Cause: game.CauseFrog})
	if rc.NewlyUnlocked() {
		t.Fatal("second frog death should not unlock again")
	}
	obs.Finished(game.RunOutcome{FinalScore: 5, Cause: game.CausePacifist})

	rec, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Highscores) != 3 || rec.Highscores[0].Score != 8 || rec.Highscores[0].Date != "01/02/24" {
		t.Fatalf("unexpected highscores %+v", rec.Highscores)
	}
	if len(rec.Achievements) != 2 || rec.Achievements[0] != 2 || rec.Achievements[1] != 103 {
		t.Fatalf("unexpected achievements %v", rec.Achievements)
	}

	if err := rc.ResetHighscores(); err != nil {
		t.Fatal(err)
	}
	if got := rc.Records(); len(got.Highscores) != 0 || len(got.Achievements) != 2 {
		t.Fatalf("unexpected records after reset %+v", got)
	}
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(Records) error { return errors.New("disk full") }

func TestRecorder_StoreErrorsDoNotPanic(t *testing.T) {
	rc := NewRecorder(&failingStore{})
	if err := rc.Record(game.RunOutcome{FinalScore: 1}); err == nil {
		t.Fatal("expected save error")
	}
	rc.Finished(game.RunOutcome{FinalScore: 1})
}

func TestRecorder_FailedSaveKeepsCache(t *testing.T) {
	rc := NewRecorder(&failingStore{})
	if err := rc.Record(game.RunOutcome{FinalScore: 7, Cause: game.CauseDrown}); err == nil {
		t.Fatal("expected save error")
	}
	rec := rc.Records()
	if len(rec.Highscores) != 0 || rec.Has(game.CauseDrown.Code()) {
		t.Fatalf("unsaved run leaked into the cache: %+v", rec)
	}
	if rc.NewlyUnlocked() {
		t.Fatal("unsaved achievement reported as unlocked")
	}
}
