package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/maloquacious/dogcenter/internal/store"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using modernc.org/sqlite.
// mu guards db: operations hold the read lock for their whole duration so
// Close cannot pull the handle out from under them.
type SQLiteStore struct {
	dbPath         string
	expectedSchema string

	mu sync.RWMutex
	db *sql.DB
}

var _ store.Store = (*SQLiteStore)(nil)

// New creates a new SQLiteStore.
func New(dbPath string, expectedSchema string) *SQLiteStore {
	return &SQLiteStore{
		dbPath:         dbPath,
		expectedSchema: expectedSchema,
	}
}

// Open opens the SQLite database with safe defaults.
func (s *SQLiteStore) Open() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Apply safe defaults
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		db.Close()
		return fmt.Errorf("database already opened")
	}
	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Initialize creates the dogs table and, only when this call created it,
// inserts the seed rows. Running it again against a seeded file is a no-op.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return store.ErrNotOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existed, err := tableExists(ctx, tx, "dogs")
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, dogsSchema); err != nil {
		return fmt.Errorf("failed to create dogs table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, migrationsSchema); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	if !existed {
		for _, seed := range store.Seeds {
			if _, err := tx.ExecContext(ctx, insertDogSQL, seed.Name, seed.FeedingTime); err != nil {
				return fmt.Errorf("failed to seed %q: %w", seed.Name, err)
			}
		}
	}

	// Files created by the mobile app have no schema_migrations row yet.
	_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO schema_migrations (version, applied_at) VALUES (?, strftime('%s', 'now'))`, s.expectedSchema)
	if err != nil {
		return fmt.Errorf("failed to insert schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List returns all dogs ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]store.DogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, store.ErrNotOpen
	}

	rows, err := s.db.QueryContext(ctx, listDogsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}
	defer rows.Close()

	var records []store.DogRecord
	for rows.Next() {
		var (
			rec         store.DogRecord
			name        sql.NullString
			feedingTime sql.NullString
		)
		if err := rows.Scan(&rec.ID, &name, &feedingTime); err != nil {
			return nil, fmt.Errorf("failed to scan dog: %w", err)
		}
		rec.Name = name.String
		rec.FeedingTime = feedingTime.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dogs: %w", err)
	}

	return records, nil
}

// Add inserts a dog.
func (s *SQLiteStore) Add(ctx context.Context, name, feedingTime string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return store.ErrNotOpen
	}

	if _, err := s.db.ExecContext(ctx, insertDogSQL, name, feedingTime); err != nil {
		return fmt.Errorf("failed to add dog: %w", err)
	}
	return nil
}

// Update overwrites a dog's name and feeding time. Missing ids affect no rows.
func (s *SQLiteStore) Update(ctx context.Context, id int64, name, feedingTime string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return store.ErrNotOpen
	}

	if _, err := s.db.ExecContext(ctx, updateDogSQL, name, feedingTime, id); err != nil {
		return fmt.Errorf("failed to update dog %d: %w", id, err)
	}
	return nil
}

// Remove deletes a dog. Missing ids affect no rows.
func (s *SQLiteStore) Remove(ctx context.Context, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return store.ErrNotOpen
	}

	if _, err := s.db.ExecContext(ctx, deleteDogSQL, id); err != nil {
		return fmt.Errorf("failed to remove dog %d: %w", id, err)
	}
	return nil
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState() (store.StoreState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return store.StateMissing, store.ErrNotOpen
	}

	ctx := context.Background()
	for _, table := range []string{"dogs", "schema_migrations"} {
		ok, err := tableExists(ctx, s.db, table)
		if err != nil {
			return store.StateUninitialized, err
		}
		if !ok {
			return store.StateUninitialized, nil
		}
	}

	// Check schema version
	version, err := s.schemaVersion()
	if err != nil {
		return store.StateUninitialized, fmt.Errorf("failed to get schema version: %w", err)
	}

	if version != s.expectedSchema {
		return store.StateVersionMismatch, nil
	}

	return store.StateReady, nil
}

// GetSchemaVersion returns the current schema version from the database.
func (s *SQLiteStore) GetSchemaVersion() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schemaVersion()
}

// schemaVersion reads the newest schema_migrations row. Caller holds mu.
func (s *SQLiteStore) schemaVersion() (string, error) {
	if s.db == nil {
		return "", store.ErrNotOpen
	}

	var version string
	err := s.db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}

	return version, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryer, name string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check %s table: %w", name, err)
	}
	return count > 0, nil
}
