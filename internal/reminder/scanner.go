package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/maloquacious/dogcenter/internal/logger"
	"github.com/maloquacious/dogcenter/internal/store"
)

// DefaultInterval is the rescan period.
const DefaultInterval = 60 * time.Second

// Source supplies the record snapshot to scan. It must be safe to call
// from the scanner goroutine.
type Source interface {
	Snapshot() []store.DogRecord
}

// Options configures a Scanner. Zero values pick the defaults.
type Options struct {
	Interval time.Duration
	Now      func() time.Time
	Notify   func(Reminder)
	Logger   logger.Logger
}

// Scanner rescans a Source on a fixed interval and whenever Changed is called.
type Scanner struct {
	source   Source
	interval time.Duration
	now      func() time.Time
	notify   func(Reminder)
	log      logger.Logger

	changed chan struct{}

	mu      sync.RWMutex
	current Reminder
}

// NewScanner creates a scanner over source.
func NewScanner(source Source, opts Options) *Scanner {
	s := &Scanner{
		source:   source,
		interval: opts.Interval,
		now:      opts.Now,
		notify:   opts.Notify,
		log:      opts.Logger,
		changed:  make(chan struct{}, 1),
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Default
	}
	return s
}

// Changed asks the running scanner for an immediate rescan. It never blocks;
// bursts collapse into one scan.
func (s *Scanner) Changed() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Current returns the result of the latest scan.
func (s *Scanner) Current() Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ScanNow scans the current snapshot, stores and delivers the result.
func (s *Scanner) ScanNow() Reminder {
	now := s.now()
	records := s.source.Snapshot()
	r := Scan(records, now)

	s.mu.Lock()
	s.current = r
	s.mu.Unlock()

	if r.IsActive() {
		s.log.Info("%s (%s)", r, now.Format(ClockLayout))
	} else if next, ok := NextDue(records, now); ok {
		s.log.Debug("nothing due at %s, next at %s", now.Format(ClockLayout), next.Format(ClockLayout))
	}

	if s.notify != nil {
		s.notify(r)
	}
	return r
}

// Run scans once immediately, then on every tick and every Changed call,
// until ctx is cancelled. The ticker is stopped before Run returns.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Debug("reminder scanner started, interval %s", s.interval)
	s.ScanNow()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("reminder scanner stopped")
			return ctx.Err()
		case <-ticker.C:
			s.ScanNow()
		case <-s.changed:
			s.ScanNow()
		}
	}
}
