package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"taskminder/internal/logging"
	"taskminder/internal/task"
)

// DefaultInterval is the time between scans.
const DefaultInterval = 5 * time.Second

// Source supplies the tasks to scan.
type Source interface {
	Tasks(ctx context.Context) ([]task.Task, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]task.Task, error)

func (f SourceFunc) Tasks(ctx context.Context) ([]task.Task, error) { return f(ctx) }

// Option configures a Scanner.
type Option func(*Scanner)

func WithClock(c clockwork.Clock) Option {
	return func(s *Scanner) { s.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(s *Scanner) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *Scanner) { s.loc = loc }
}

// WithResolver replaces the due-time resolution, Task.DueAt by default.
func WithResolver(fn func(t task.Task, now time.Time, loc *time.Location) (time.Time, bool)) Option {
	return func(s *Scanner) {
		if fn != nil {
			s.resolve = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = logging.OrDiscard(l) }
}

// Scanner periodically moves due tasks into a Set.
type Scanner struct {
	source   Source
	set      *Set
	clock    clockwork.Clock
	interval time.Duration
	loc      *time.Location
	logger   *slog.Logger
	resolve  func(task.Task, time.Time, *time.Location) (time.Time, bool)
}

// NewScanner returns a scanner reading from source and ringing into set.
func NewScanner(source Source, set *Set, opts ...Option) *Scanner {
	s := &Scanner{
		source:   source,
		set:      set,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		loc:      time.Local,
		logger:   logging.Discard(),
		resolve:  task.Task.DueAt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set returns the set the scanner rings into.
func (s *Scanner) Set() *Set {
	return s.set
}

// Interval returns the time between scans.
func (s *Scanner) Interval() time.Duration {
	return s.interval
}

// Scan rings every incomplete, scheduled task whose due instant is not
// after now and that is not already ringing. The newly ringing entries are
// added to the set in one batch and returned. A task that cannot be
// evaluated is logged and skipped.
func (s *Scanner) Scan(ctx context.Context) ([]Entry, error) {
	tasks, err := s.source.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	now := s.clock.Now()

	var due []Entry
	for _, t := range tasks {
		if e, ok := s.evaluate(t, now); ok {
			due = append(due, e)
		}
	}
	s.set.Add(due...)
	if len(due) > 0 {
		s.logger.Debug("reminders ringing", "new", len(due), "total", s.set.Len())
	}
	return due, nil
}

func (s *Scanner) evaluate(t task.Task, now time.Time) (e Entry, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("skipping task in reminder scan", "id", t.ID, "panic", r)
			e, ok = Entry{}, false
		}
	}()

	if t.Completed {
		return Entry{}, false
	}
	at, scheduled := s.resolve(t, now, s.loc)
	if !scheduled || at.After(now) {
		return Entry{}, false
	}
	if s.set.Contains(t.ID) {
		return Entry{}, false
	}
	return Entry{Task: t, Due: at, RangAt: now}, true
}

// Run scans on every tick until ctx is done, calling notify with each
// non-empty batch. Failed scans are logged and retried on the next tick.
func (s *Scanner) Run(ctx context.Context, notify func([]Entry)) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			due, err := s.Scan(ctx)
			if err != nil {
				s.logger.Warn("reminder scan skipped", "err", err)
				continue
			}
			if len(due) > 0 && notify != nil {
				notify(due)
			}
		}
	}
}
