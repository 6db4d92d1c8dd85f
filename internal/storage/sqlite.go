// Package storage provides SQLite-based persistence for scores and stage progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoRecord is returned when a requested stage has never been played.
var ErrNoRecord = errors.New("storage: no record")

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// StageRecord is the saved progress for one stage of one game.
type StageRecord struct {
	GameID      string
	Stage       int
	BestScore   int
	LastScore   int
	Stars       int // Best star rating achieved, 0 if never cleared
	Attempts    int
	Cleared     bool
	CompletedAt time.Time // First clear, zero if never cleared
	UpdatedAt   time.Time
}

// StageAttempt is the outcome of a single finished stage.
type StageAttempt struct {
	Stage   int
	Score   int
	Stars   int
	Cleared bool
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS stage_records (
			game_id TEXT NOT NULL,
			stage INTEGER NOT NULL,
			best_score INTEGER NOT NULL DEFAULT 0,
			last_score INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (game_id, stage)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// RecordStage folds one finished attempt into the stage's saved record and
// returns the updated record. Best score and stars only ever go up; the
// completion time is set on the first clear.
func (s *Store) RecordStage(gameID string, a StageAttempt) (StageRecord, error) {
	if a.Stage < 1 {
		return StageRecord{}, fmt.Errorf("storage: invalid stage %d", a.Stage)
	}

	now := s.now().UTC().Format(timeLayout)
	stars := a.Stars
	cleared := 0
	var completedAt any
	if a.Cleared {
		cleared = 1
		completedAt = now
	} else {
		stars = 0
	}

	_, err := s.db.Exec(
		`INSERT INTO stage_records
		 (game_id, stage, best_score, last_score, stars, attempts, cleared, completed_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)
		 ON CONFLICT(game_id, stage) DO UPDATE SET
		   best_score = MAX(best_score, excluded.best_score),
		   last_score = excluded.last_score,
		   stars = MAX(stars, excluded.stars),
		   attempts = attempts + 1,
		   cleared = MAX(cleared, excluded.cleared),
		   completed_at = COALESCE(completed_at, excluded.completed_at),
		   updated_at = excluded.updated_at`,
		gameID, a.Stage, a.Score, a.Score, stars, cleared, completedAt, now,
	)
	if err != nil {
		return StageRecord{}, fmt.Errorf("storage: cannot record stage %d: %w", a.Stage, err)
	}

	return s.StageRecord(gameID, a.Stage)
}

// StageRecord returns the saved record for a stage, or ErrNoRecord.
func (s *Store) StageRecord(gameID string, stage int) (StageRecord, error) {
	row := s.db.QueryRow(
		`SELECT game_id, stage, best_score, last_score, stars, attempts, cleared, completed_at, updated_at
		 FROM stage_records
		 WHERE game_id = ? AND stage = ?`,
		gameID, stage,
	)
	rec, err := scanStageRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StageRecord{}, ErrNoRecord
	}
	if err != nil {
		return StageRecord{}, fmt.Errorf("storage: cannot query stage %d: %w", stage, err)
	}
	return rec, nil
}

// StageRecords returns every saved stage record for a game, ordered by stage.
func (s *Store) StageRecords(gameID string) ([]StageRecord, error) {
	rows, err := s.db.Query(
		`SELECT game_id, stage, best_score, last_score, stars, attempts, cleared, completed_at, updated_at
		 FROM stage_records
		 WHERE game_id = ?
		 ORDER BY stage`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stage records: %w", err)
	}
	defer rows.Close()

	var records []StageRecord
	for rows.Next() {
		rec, err := scanStageRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stage record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighestUnlockedStage returns the highest cleared stage plus one, capped at
// maxStages. A game with no cleared stage starts at 1.
func (s *Store) HighestUnlockedStage(gameID string, maxStages int) (int, error) {
	var highest sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(stage) FROM stage_records WHERE game_id = ? AND cleared = 1",
		gameID,
	).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query unlocked stage: %w", err)
	}

	next := 1
	if highest.Valid {
		next = int(highest.Int64) + 1
	}
	if maxStages > 0 && next > maxStages {
		next = maxStages
	}
	return next, nil
}

// ResetProgress deletes all stage records for the given game.
func (s *Store) ResetProgress(gameID string) error {
	_, err := s.db.Exec("DELETE FROM stage_records WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStageRecord(sc scanner) (StageRecord, error) {
	var rec StageRecord
	var cleared int
	var completedAt, updatedAt any
	err := sc.Scan(
		&rec.GameID,
		&rec.Stage,
		&rec.BestScore,
		&rec.LastScore,
		&rec.Stars,
		&rec.Attempts,
		&cleared,
		&completedAt,
		&updatedAt,
	)
	if err != nil {
		return StageRecord{}, err
	}
	rec.Cleared = cleared != 0
	rec.CompletedAt = parseTime(completedAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return rec, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	GamesCount    int
	HighScore     int
	AvgScore      float64
	TotalScore    int64
	LastPlayed    time.Time
	StagesCleared int
	TotalStars    int
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(stars), 0)
		 FROM stage_records WHERE game_id = ? AND cleared = 1`,
		gameID,
	).Scan(&stats.StagesCleared, &stats.TotalStars)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string values returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case []byte:
		return parseTime(string(t))
	}
	return time.Time{}
}
