package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/whatif/internal/dice"
	_ "modernc.org/sqlite"
)

// TrialsFile is the trial log's file name inside the data directory.
const TrialsFile = "trials.db"

const trialsSchema = `
CREATE TABLE IF NOT EXISTS trials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session TEXT NOT NULL,
    guess INTEGER NOT NULL,
    roll INTEGER NOT NULL,
    outcome TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trials_guess ON trials(guess);
`

// TrialLog keeps every dice trial across sessions.
type TrialLog struct {
	db *sql.DB
}

func OpenTrialLog(ctx context.Context, path string) (*TrialLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create trial log dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open trial log: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, trialsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create trial schema: %w", err)
	}

	return &TrialLog{db: db}, nil
}

func (l *TrialLog) Close() error { return l.db.Close() }

// Append stores trials under one session in a single transaction.
func (l *TrialLog) Append(ctx context.Context, session string, trials []dice.Trial) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO trials (session, guess, roll, outcome, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, t := range trials {
		if _, err := stmt.ExecContext(ctx, session, t.Guess, t.Roll, t.Outcome.String(), now); err != nil {
			return fmt.Errorf("insert trial: %w", err)
		}
	}

	return tx.Commit()
}

// GuessStats aggregates the valid trials recorded for one guess.
type GuessStats struct {
	Guess    int
	Trials   int
	Wins     int
	Expected float64
	Biased   bool
}

// Stats returns one row per guessed face, lowest face first. Invalid trials
// are not counted.
func (l *TrialLog) Stats(ctx context.Context) ([]GuessStats, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT guess, COUNT(*), SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END)
		FROM trials
		WHERE outcome != ?
		GROUP BY guess
		ORDER BY guess`, dice.Win.String(), dice.InvalidGuess.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []GuessStats
	for rows.Next() {
		var s GuessStats
		if err := rows.Scan(&s.Guess, &s.Trials, &s.Wins); err != nil {
			return nil, err
		}
		s.Expected = dice.ExpectedWins(s.Trials)
		s.Biased = dice.Biased(s.Wins, s.Trials)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Sessions counts distinct recorded sessions.
func (l *TrialLog) Sessions(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT session) FROM trials`).Scan(&n)
	return n, err
}
