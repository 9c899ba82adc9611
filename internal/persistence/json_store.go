package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// JSONStore keeps records in a local JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *Records
}

// NewJSONStore opens filePath, creating it if it does not exist.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{filePath: filePath}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("persistence: load %s: %w", filePath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("persistence: stat %s: %w", filePath, err)
	}
	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	raw, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	var rec Records
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	js.data = &rec
	return nil
}

func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	raw, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(js.filePath, raw, 0o600)
}

// Load returns the records, or ErrNotFound before the first Save.
func (js *JSONStore) Load() (Records, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	if js.data == nil {
		return Records{}, ErrNotFound
	}
	return cloneRecords(*js.data), nil
}

// Save replaces the records and writes the file.
func (js *JSONStore) Save(r Records) error {
	js.mutex.Lock()
	rec := cloneRecords(r)
	js.data = &rec
	js.mutex.Unlock()

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("persistence: save %s: %w", js.filePath, err)
	}
	return nil
}

// Reset clears the high score table.
func (js *JSONStore) Reset() error {
	rec, err := js.Load()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	rec.Highscores = nil
	return js.Save(rec)
}

// Close is a no-op; every Save is flushed immediately.
func (js *JSONStore) Close() error { return nil }

func cloneRecords(r Records) Records {
	return Records{
		Highscores:   append([]Highscore(nil), r.Highscores...),
		Achievements: append([]int(nil), r.Achievements...),
	}
}
