package fallback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"league-data-service/internal/domain"
	"league-data-service/internal/providers"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	op        TEXT NOT NULL,
	league    TEXT NOT NULL,
	filters   TEXT NOT NULL,
	payload   BLOB NOT NULL,
	stored_at TIMESTAMP NOT NULL,
	PRIMARY KEY (op, league, filters)
);`

// SQLiteDataset is a historical snapshot store in a local SQLite file. It
// serves lookups when live and cache are both unavailable and accepts
// write-through of live results to keep the snapshot current.
type SQLiteDataset struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the snapshot database at path.
func OpenSQLite(path string) (*SQLiteDataset, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &SQLiteDataset{db: db, now: time.Now}, nil
}

// Lookup returns the stored payload for the spec, if any.
func (d *SQLiteDataset) Lookup(ctx context.Context, spec providers.RequestSpec) (domain.Data, bool, error) {
	var payload []byte
	err := d.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE op = ? AND league = ? AND filters = ?`,
		string(spec.Op), string(spec.League), spec.CanonicalFilters(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Data{}, false, nil
	}
	if err != nil {
		return domain.Data{}, false, fmt.Errorf("snapshot lookup: %w", err)
	}

	var data domain.Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return domain.Data{}, false, fmt.Errorf("snapshot decode: %w", err)
	}
	return data, true, nil
}

// Store upserts the payload for the spec.
func (d *SQLiteDataset) Store(ctx context.Context, spec providers.RequestSpec, data domain.Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO snapshots (op, league, filters, payload, stored_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (op, league, filters) DO UPDATE SET
		   payload = excluded.payload, stored_at = excluded.stored_at`,
		string(spec.Op), string(spec.League), spec.CanonicalFilters(), payload, d.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("snapshot store: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (d *SQLiteDataset) Close() error {
	return d.db.Close()
}
