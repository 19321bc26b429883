package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"balticwatch/pkg/tracking"
)

// SQLiteConfig contains configuration for the SQLite position store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/positions.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the position database and initializes
// the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: slog.Default().With("component", "storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("position store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

const insertPositionSQL = `
INSERT INTO vessel_positions
    (mmsi, name, longitude, latitude, timestamp, sog, cog, heading, nav_stat,
     ship_type, destination, draught, pos_acc, jurisdiction)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// InsertPositions persists a batch of position records in one transaction.
func (s *SQLiteStore) InsertPositions(ctx context.Context, positions []*tracking.PositionRecord) error {
	if len(positions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "insert", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPositionSQL)
	if err != nil {
		return NewStorageError("sqlite", "insert", err)
	}
	defer stmt.Close()

	for _, pos := range positions {
		var name sql.NullString
		if pos.Name != "" {
			name = sql.NullString{String: pos.Name, Valid: true}
		}
		var jurisdiction sql.NullString
		if pos.Jurisdiction != nil {
			jurisdiction = sql.NullString{String: *pos.Jurisdiction, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			pos.MMSI, name, pos.Lon, pos.Lat, pos.Timestamp.UTC().UnixMilli(),
			pos.SOG, pos.COG, pos.Heading, pos.NavStat,
			pos.ShipType, pos.Destination, pos.Draught, pos.PosAcc, jurisdiction,
		)
		if err != nil {
			return NewStorageError("sqlite", "insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "insert", err)
	}
	return nil
}

const selectColumns = `mmsi, name, longitude, latitude, timestamp, sog, cog,
heading, nav_stat, ship_type, destination, draught, pos_acc, jurisdiction`

// QuerySince returns all records at or after since, ordered by MMSI then
// timestamp.
func (s *SQLiteStore) QuerySince(ctx context.Context, since time.Time) ([]*tracking.PositionRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM vessel_positions
		WHERE timestamp >= ? ORDER BY mmsi, timestamp;`, selectColumns)

	rows, err := s.db.QueryContext(ctx, query, since.UTC().UnixMilli())
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// Latest returns the most recent record per vessel, ordered by MMSI. The
// bare columns resolve to the row matching MAX(timestamp), which SQLite
// guarantees for a single MAX aggregate.
func (s *SQLiteStore) Latest(ctx context.Context) ([]*tracking.PositionRecord, error) {
	query := `SELECT mmsi, name, longitude, latitude, MAX(timestamp), sog, cog,
		heading, nav_stat, ship_type, destination, draught, pos_acc, jurisdiction
		FROM vessel_positions GROUP BY mmsi ORDER BY mmsi;`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, NewStorageError("sqlite", "query_latest", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// DeleteVessels removes records for the given vessels. A non-nil since
// bounds the deletion to records at or after it so that history older than
// the analysis window survives.
func (s *SQLiteStore) DeleteVessels(ctx context.Context, mmsis []int64, since *time.Time) (int64, error) {
	if len(mmsis) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(mmsis))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf("DELETE FROM vessel_positions WHERE mmsi IN (%s)", placeholders)
	args := make([]any, 0, len(mmsis)+1)
	for _, mmsi := range mmsis {
		args = append(args, mmsi)
	}
	if since != nil {
		query += " AND timestamp >= ?"
		args = append(args, since.UTC().UnixMilli())
	}

	res, err := s.db.ExecContext(ctx, query+";", args...)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return deleted, nil
}

// CountPositions returns the total number of stored records.
func (s *SQLiteStore) CountPositions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vessel_positions;").Scan(&count)
	if err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanPositions(rows *sql.Rows) ([]*tracking.PositionRecord, error) {
	var positions []*tracking.PositionRecord
	for rows.Next() {
		var (
			pos          tracking.PositionRecord
			name         sql.NullString
			jurisdiction sql.NullString
			tsMillis     int64
		)
		err := rows.Scan(
			&pos.MMSI, &name, &pos.Lon, &pos.Lat, &tsMillis,
			&pos.SOG, &pos.COG, &pos.Heading, &pos.NavStat,
			&pos.ShipType, &pos.Destination, &pos.Draught, &pos.PosAcc, &jurisdiction,
		)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		pos.Timestamp = time.UnixMilli(tsMillis).UTC()
		if name.Valid {
			pos.Name = name.String
		}
		if jurisdiction.Valid {
			code := jurisdiction.String
			pos.Jurisdiction = &code
		}
		positions = append(positions, &pos)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "scan", err)
	}
	return positions, nil
}
