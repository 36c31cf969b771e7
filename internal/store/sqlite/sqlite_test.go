package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maloquacious/dogcenter/internal/store"
	"github.com/maloquacious/dogcenter/internal/store/sqlite"
	_ "modernc.org/sqlite"
)

const testSchema = "0.1"

func openTestStore(t *testing.T) (*sqlite.SQLiteStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), store.DefaultDBFile)
	s := sqlite.New(dbPath, testSchema)
	require.NoError(t, s.Open())
	t.Cleanup(func() { _ = s.Close() })
	return s, dbPath
}

func names(records []store.DogRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func findByName(t *testing.T, records []store.DogRecord, name string) store.DogRecord {
	t.Helper()
	for _, r := range records {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no record named %q in %v", name, records)
	return store.DogRecord{}
}

func TestInitialize_SeedsFreshStore(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Buddy", "Max", "Bella"}, names(records))
	assert.Equal(t, "08:00", records[0].FeedingTime)
	assert.Equal(t, "13:00", records[1].FeedingTime)
	assert.Equal(t, "18:00", records[2].FeedingTime)
	assert.Less(t, records[0].ID, records[1].ID)
	assert.Less(t, records[1].ID, records[2].ID)
}

func TestInitialize_DoesNotReseed(t *testing.T) {
	s, dbPath := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	// A second process opening the same file must not reseed either.
	require.NoError(t, s.Close())
	reopened := sqlite.New(dbPath, testSchema)
	require.NoError(t, reopened.Open())
	defer reopened.Close()
	require.NoError(t, reopened.Initialize(ctx))

	records, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestInitialize_KeepsExistingAppDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), store.DefaultDBFile)

	// Simulate a file written by the mobile app: dogs table only.
	raw, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE dogs (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, feedingTime TEXT)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO dogs (name, feedingTime) VALUES ('Rocky', '07:45')`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	s := sqlite.New(dbPath, testSchema)
	require.NoError(t, s.Open())
	defer s.Close()

	state, err := s.CheckState()
	require.NoError(t, err)
	assert.Equal(t, store.StateUninitialized, state)

	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rocky"}, names(records))

	state, err = s.CheckState()
	require.NoError(t, err)
	assert.Equal(t, store.StateReady, state)
}

func TestAddListRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.Add(ctx, "Rex", "09:30"))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Rex", records[3].Name)
	assert.Equal(t, "09:30", records[3].FeedingTime)
}

func TestUpdateAndRemove(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	records, err := s.List(ctx)
	require.NoError(t, err)
	maxID := findByName(t, records, "Max").ID
	bellaID := findByName(t, records, "Bella").ID

	require.NoError(t, s.Update(ctx, maxID, "Max", "14:15"))
	require.NoError(t, s.Remove(ctx, bellaID))

	records, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buddy", "Max"}, names(records))
	assert.Equal(t, "14:15", findByName(t, records, "Max").FeedingTime)
}

func TestUpdateRemove_MissingIDIsNoop(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.Update(ctx, 9999, "Ghost", "00:00"))
	require.NoError(t, s.Remove(ctx, 9999))

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buddy", "Max", "Bella"}, names(records))
}

func TestRemove_IDsNotReused(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	records, err := s.List(ctx)
	require.NoError(t, err)
	last := records[len(records)-1]
	require.NoError(t, s.Remove(ctx, last.ID))
	require.NoError(t, s.Add(ctx, "Luna", "13:00"))

	records, err = s.List(ctx)
	require.NoError(t, err)
	luna := findByName(t, records, "Luna")
	assert.Greater(t, luna.ID, last.ID)
}

func TestNotOpen(t *testing.T) {
	s := sqlite.New(filepath.Join(t.TempDir(), store.DefaultDBFile), testSchema)
	ctx := context.Background()

	assert.ErrorIs(t, s.Initialize(ctx), store.ErrNotOpen)
	_, err := s.List(ctx)
	assert.ErrorIs(t, err, store.ErrNotOpen)
	assert.ErrorIs(t, s.Add(ctx, "Rex", "09:30"), store.ErrNotOpen)
	assert.ErrorIs(t, s.Update(ctx, 1, "Rex", "09:30"), store.ErrNotOpen)
	assert.ErrorIs(t, s.Remove(ctx, 1), store.ErrNotOpen)

	state, err := s.CheckState()
	assert.ErrorIs(t, err, store.ErrNotOpen)
	assert.Equal(t, store.StateMissing, state)
}

func TestCheckState(t *testing.T) {
	s, dbPath := openTestStore(t)
	ctx := context.Background()

	state, err := s.CheckState()
	require.NoError(t, err)
	assert.Equal(t, store.StateUninitialized, state)

	require.NoError(t, s.Initialize(ctx))

	state, err = s.CheckState()
	require.NoError(t, err)
	assert.Equal(t, store.StateReady, state)

	version, err := s.GetSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, testSchema, version)

	require.NoError(t, s.Close())
	newer := sqlite.New(dbPath, "0.2")
	require.NoError(t, newer.Open())
	defer newer.Close()

	state, err = newer.CheckState()
	require.NoError(t, err)
	assert.Equal(t, store.StateVersionMismatch, state)
}

func TestClose_ConcurrentWithList(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.List(ctx); err != nil {
					errs <- err
				}
			}
		}()
	}
	require.NoError(t, s.Close())
	wg.Wait()
	close(errs)

	// Lists either completed before Close or saw a closed store.
	for err := range errs {
		assert.ErrorIs(t, err, store.ErrNotOpen)
	}
}

func TestOpen_Twice(t *testing.T) {
	s, _ := openTestStore(t)
	assert.Error(t, s.Open())

	state, err := s.CheckState()
	assert.NoError(t, err)
	assert.Equal(t, store.StateUninitialized, state)
}
