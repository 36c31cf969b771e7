package store

import (
	"context"
	"errors"
)

// StoreState represents the initialization state of the datastore.
type StoreState int

const (
	StateMissing         StoreState = iota // File doesn't exist
	StateUninitialized                     // File exists but no dogs table
	StateVersionMismatch                   // Schema exists but wrong version
	StateReady                             // Initialized and correct version
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateVersionMismatch:
		return "version-mismatch"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// ErrNotOpen is returned by operations on a store that has not been opened.
var ErrNotOpen = errors.New("database not opened")

// DogRecord is one dog and its daily feeding time.
type DogRecord struct {
	ID          int64
	Name        string
	FeedingTime string // HH:mm, validated by callers
}

// Store defines the dog datastore contract.
// The store does not validate names or times; callers must.
// Implementations must be safe for concurrent use, including Close racing
// with in-flight operations.
type Store interface {
	// Open opens the datastore connection
	Open() error

	// Close closes the datastore connection
	Close() error

	// Initialize creates the dogs table if absent and seeds it on creation
	Initialize(ctx context.Context) error

	// List returns every record in insertion (id) order
	List(ctx context.Context) ([]DogRecord, error)

	// Add inserts a new record; the store assigns its ID
	Add(ctx context.Context, name, feedingTime string) error

	// Update overwrites name and feeding time; unknown ids are ignored
	Update(ctx context.Context, id int64, name, feedingTime string) error

	// Remove deletes a record; unknown ids are ignored
	Remove(ctx context.Context, id int64) error
}

// Seed is one of the default rows inserted when the dogs table is first created.
type Seed struct {
	Name        string
	FeedingTime string
}

// Seeds are inserted, in order, on fresh initialization.
var Seeds = []Seed{
	{Name: "Buddy", FeedingTime: "08:00"},
	{Name: "Max", FeedingTime: "13:00"},
	{Name: "Bella", FeedingTime: "18:00"},
}
