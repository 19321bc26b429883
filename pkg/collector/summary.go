package collector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SummaryRow is one collection cycle's audit record.
type SummaryRow struct {
	RunID       string
	CollectedAt time.Time
	Fetched     int
	Stored      int
	Vessels     int
	Duration    time.Duration
	Status      string
	Error       string
}

// SummaryStore persists collection summaries in a standalone SQLite file,
// kept separate from the position store so retention deletions never touch
// the audit trail.
type SummaryStore struct {
	db *sql.DB
}

// NewSummaryStore opens (and if needed creates) the summary database.
func NewSummaryStore(path string) (*SummaryStore, error) {
	if path == "" {
		return nil, fmt.Errorf("summary store path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open summary database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS collection_summary (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		collected_at INTEGER NOT NULL,
		positions_fetched INTEGER NOT NULL,
		positions_stored INTEGER NOT NULL,
		vessel_count INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_summary_collected_at ON collection_summary(collected_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize summary schema: %w", err)
	}

	return &SummaryStore{db: db}, nil
}

// RecordRun appends one summary row.
func (s *SummaryStore) RecordRun(ctx context.Context, row SummaryRow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collection_summary
			(run_id, collected_at, positions_fetched, positions_stored, vessel_count, duration_ms, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID,
		row.CollectedAt.UTC().UnixMilli(),
		row.Fetched,
		row.Stored,
		row.Vessels,
		row.Duration.Milliseconds(),
		row.Status,
		row.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record collection summary: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit summary rows, newest first.
func (s *SummaryStore) RecentRuns(ctx context.Context, limit int) ([]SummaryRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, collected_at, positions_fetched, positions_stored, vessel_count, duration_ms, status, COALESCE(error, '')
		FROM collection_summary
		ORDER BY collected_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection summaries: %w", err)
	}
	defer rows.Close()

	var results []SummaryRow
	for rows.Next() {
		var row SummaryRow
		var collectedAt, durationMs int64
		if err := rows.Scan(&row.RunID, &collectedAt, &row.Fetched, &row.Stored, &row.Vessels, &durationMs, &row.Status, &row.Error); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		row.CollectedAt = time.UnixMilli(collectedAt).UTC()
		row.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, row)
	}
	return results, rows.Err()
}

// Close closes the summary database.
func (s *SummaryStore) Close() error {
	return s.db.Close()
}
