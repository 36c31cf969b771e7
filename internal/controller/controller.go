// Package controller turns user actions into store calls and keeps the
// read-only snapshot that views and the reminder scanner render from.
package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/maloquacious/dogcenter/internal/logger"
	"github.com/maloquacious/dogcenter/internal/store"
	"github.com/maloquacious/dogcenter/internal/validate"
)

// ErrNotEditing is returned by SaveEdit when no edit is in progress.
var ErrNotEditing = errors.New("no dog is being edited")

// Edit is the in-progress edit of one record.
type Edit struct {
	ID          int64
	Name        string
	FeedingTime string
}

// Controller serialises user actions against a Store. Snapshot and OnChange
// are safe for concurrent use; actions are expected to come from one goroutine.
type Controller struct {
	store store.Store
	log   logger.Logger

	mu        sync.RWMutex
	snapshot  []store.DogRecord
	editing   *Edit
	listeners []func()
}

// New creates a controller over s.
func New(s store.Store, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Default
	}
	return &Controller{store: s, log: log}
}

// OnChange registers fn to run after every snapshot refresh.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns a copy of the records as of the last refresh.
func (c *Controller) Snapshot() []store.DogRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]store.DogRecord, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Load initializes the store and takes the first snapshot.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.permissive(c.store.Initialize(ctx), "initialize"); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Refresh replaces the snapshot with the store's current rows. Listeners
// run only when the rows differ from the previous snapshot.
func (c *Controller) Refresh(ctx context.Context) error {
	records, err := c.store.List(ctx)
	if err != nil {
		return c.permissive(err, "list")
	}

	c.mu.Lock()
	changed := !slices.Equal(c.snapshot, records)
	c.snapshot = records
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()

	if !changed {
		return nil
	}
	c.log.Debug("snapshot refreshed: %d dogs", len(records))
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// AddDog validates and inserts a dog.
func (c *Controller) AddDog(ctx context.Context, name, feedingTime string) error {
	if err := validate.Validate(name, feedingTime); err != nil {
		return err
	}
	name, feedingTime = strings.TrimSpace(name), strings.TrimSpace(feedingTime)

	if err := c.store.Add(ctx, name, feedingTime); err != nil {
		return c.permissive(err, "add")
	}
	c.log.Info("added %s at %s", name, feedingTime)
	return c.Refresh(ctx)
}

// DeleteDog removes a dog. Unknown ids are ignored.
func (c *Controller) DeleteDog(ctx context.Context, id int64) error {
	if err := c.store.Remove(ctx, id); err != nil {
		return c.permissive(err, "delete")
	}
	c.log.Info("deleted dog %d", id)
	return c.Refresh(ctx)
}

// StartEditing begins editing id, prefilled from the snapshot. Returns false
// if id is not in the snapshot.
func (c *Controller) StartEditing(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.snapshot {
		if rec.ID == id {
			c.editing = &Edit{ID: rec.ID, Name: rec.Name, FeedingTime: rec.FeedingTime}
			return true
		}
	}
	return false
}

// Editing returns the edit in progress, if any.
func (c *Controller) Editing() (Edit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.editing == nil {
		return Edit{}, false
	}
	return *c.editing, true
}

// CancelEdit drops the edit in progress without writing.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// SaveEdit validates and writes the edit in progress, then clears it.
// On validation failure the edit stays open.
func (c *Controller) SaveEdit(ctx context.Context, name, feedingTime string) error {
	edit, ok := c.Editing()
	if !ok {
		return ErrNotEditing
	}
	if err := validate.Validate(name, feedingTime); err != nil {
		return err
	}
	name, feedingTime = strings.TrimSpace(name), strings.TrimSpace(feedingTime)

	if err := c.store.Update(ctx, edit.ID, name, feedingTime); err != nil {
		return c.permissive(err, "update")
	}
	c.CancelEdit()
	c.log.Info("updated dog %d: %s at %s", edit.ID, name, feedingTime)
	return c.Refresh(ctx)
}

// permissive turns "store not open" into a logged no-op and wraps anything else.
func (c *Controller) permissive(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotOpen) {
		c.log.Warn("%s skipped: %v", op, err)
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
