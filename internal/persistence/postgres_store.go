package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and creates the schema if needed.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("persistence: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence: ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence: init schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS highscores (
		id SERIAL PRIMARY KEY,
		rank INTEGER NOT NULL,
		score INTEGER NOT NULL,
		played_on TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS achievements (
		code INTEGER PRIMARY KEY,
		unlocked_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// Load returns the stored records, or ErrNotFound if both tables are empty.
func (ps *PostgresStore) Load() (Records, error) {
	var rec Records

	rows, err := ps.db.Query(`SELECT score, played_on FROM highscores ORDER BY rank`)
	if err != nil {
		return rec, fmt.Errorf("persistence: load highscores: %w", err)
	}
	for rows.Next() {
		var h Highscore
		if err := rows.Scan(&h.Score, &h.Date); err != nil {
			rows.Close()
			return rec, fmt.Errorf("persistence: scan highscore: %w", err)
		}
		rec.Highscores = append(rec.Highscores, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return rec, fmt.Errorf("persistence: load highscores: %w", err)
	}

	rows, err = ps.db.Query(`SELECT code FROM achievements ORDER BY unlocked_at, code`)
	if err != nil {
		return rec, fmt.Errorf("persistence: load achievements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code int
		if err := rows.Scan(&code); err != nil {
			return rec, fmt.Errorf("persistence: scan achievement: %w", err)
		}
		rec.Achievements = append(rec.Achievements, code)
	}
	if err := rows.Err(); err != nil {
		return rec, fmt.Errorf("persistence: load achievements: %w", err)
	}

	if len(rec.Highscores) == 0 && len(rec.Achievements) == 0 {
		return rec, ErrNotFound
	}
	return rec, nil
}

// Save rewrites the high score table and inserts any new achievements in one
// transaction.
func (ps *PostgresStore) Save(r Records) error {
	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("persistence: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(`DELETE FROM highscores`); err != nil {
		return fmt.Errorf("persistence: clear highscores: %w", err)
	}
	for i, h := range r.Highscores {
		if _, err := tx.Exec(`INSERT INTO highscores (rank, score, played_on) VALUES ($1, $2, $3)`,
			i, h.Score, h.Date); err != nil {
			return fmt.Errorf("persistence: save highscore: %w", err)
		}
	}
	for _, code := range r.Achievements {
		if _, err := tx.Exec(`INSERT INTO achievements (code) VALUES ($1) ON CONFLICT (code) DO NOTHING`,
			code); err != nil {
			return fmt.Errorf("persistence: save achievement: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("persistence: commit: %w", err)
	}
	return nil
}

// Reset clears the high score table.
func (ps *PostgresStore) Reset() error {
	if _, err := ps.db.Exec(`DELETE FROM highscores`); err != nil {
		return fmt.Errorf("persistence: reset highscores: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
