package storage

// SchemaVersion is the current position store schema version.
const SchemaVersion = 1

// Schema creates the position tables and indexes. Timestamps are stored as
// UTC unix milliseconds so range scans stay integer comparisons.
const Schema = `
CREATE TABLE IF NOT EXISTS vessel_positions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    mmsi        INTEGER NOT NULL,
    name        TEXT,
    longitude   REAL NOT NULL,
    latitude    REAL NOT NULL,
    timestamp   INTEGER NOT NULL,
    sog         REAL NOT NULL DEFAULT 0,
    cog         REAL NOT NULL DEFAULT 0,
    heading     INTEGER NOT NULL DEFAULT 0,
    nav_stat    INTEGER NOT NULL DEFAULT 0,
    ship_type   INTEGER NOT NULL DEFAULT 0,
    destination TEXT NOT NULL DEFAULT '',
    draught     REAL NOT NULL DEFAULT 0,
    pos_acc     INTEGER NOT NULL DEFAULT 0,
    jurisdiction TEXT
);

CREATE INDEX IF NOT EXISTS idx_positions_mmsi_time ON vessel_positions(mmsi, timestamp);
CREATE INDEX IF NOT EXISTS idx_positions_time ON vessel_positions(timestamp);

CREATE TABLE IF NOT EXISTS schema_version (
    version     INTEGER PRIMARY KEY,
    applied_at  INTEGER NOT NULL
);
`

// InsertSchemaVersion records the schema version, ignoring re-runs.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version, applied_at)
VALUES (?, strftime('%s', 'now') * 1000);
`

// GetSchemaVersion reads the highest applied schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version;`
