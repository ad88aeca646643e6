// Package store owns the task collection and persists it through a Slot.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"taskminder/internal/logging"
	"taskminder/internal/task"
)

// ErrEmptyTitle is returned when a task would be stored without a title.
var ErrEmptyTitle = errors.New("title required")

// Slot holds the serialized collection as a single value.
type Slot interface {
	// Load returns the stored bytes, or nil when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored bytes.
	Save(ctx context.Context, data []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for recurrence decisions.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLocation sets the time zone date and time fields are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = logging.OrDiscard(l) }
}

// WithIDGenerator replaces the id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store is the in-memory task collection. Every mutation is written to the
// slot before it becomes visible; a failed save leaves the collection as it
// was.
type Store struct {
	mu     sync.Mutex
	slot   Slot
	tasks  []task.Task
	clock  clockwork.Clock
	loc    *time.Location
	logger *slog.Logger
	newID  func() string
}

// Open loads the collection from slot. Unreadable content is logged and
// replaced by an empty collection; a failing slot is an error.
func Open(ctx context.Context, slot Slot, opts ...Option) (*Store, error) {
	s := &Store{
		slot:   slot,
		clock:  clockwork.NewRealClock(),
		loc:    time.Local,
		logger: logging.Discard(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collection with the slot's content.
func (s *Store) Reload(ctx context.Context) error {
	data, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := s.decode(data)

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

func (s *Store) decode(data []byte) []task.Task {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var raw []task.Task
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("stored tasks unreadable, starting empty", "err", err)
		return nil
	}

	seen := make(map[string]bool, len(raw))
	out := make([]task.Task, 0, len(raw))
	for _, t := range raw {
		t, fixed := task.Normalize(t)
		if len(fixed) > 0 {
			s.logger.Warn("repaired stored task", "id", t.ID, "fields", strings.Join(fixed, ","))
		}
		if t.ID == "" || seen[t.ID] {
			id := s.newID()
			s.logger.Warn("reassigned task id", "old", t.ID, "new", id)
			t.ID = id
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// commit persists next and installs it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next []task.Task) error {
	if next == nil {
		next = []task.Task{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.tasks = next
	return nil
}

// clone copies the collection with spare room for extra tasks.
func (s *Store) clone(extra int) []task.Task {
	out := make([]task.Task, len(s.tasks), len(s.tasks)+extra)
	copy(out, s.tasks)
	return out
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Location returns the time zone tasks are scheduled in.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Tasks returns a copy of the collection in stored order.
func (s *Store) Tasks(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone(0), nil
}

// Get returns the task with the given id.
func (s *Store) Get(ctx context.Context, id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Create appends a new incomplete task built from d.
func (s *Store) Create(ctx context.Context, d task.Draft) (task.Task, error) {
	created, err := s.CreateBatch(ctx, []task.Draft{d})
	if err != nil {
		return task.Task{}, err
	}
	return created[0], nil
}

// CreateBatch appends one task per draft in a single save. Either every
// draft is stored or none is.
func (s *Store) CreateBatch(ctx context.Context, drafts []task.Draft) ([]task.Task, error) {
	for i := range drafts {
		if strings.TrimSpace(drafts[i].Title) == "" {
			return nil, ErrEmptyTitle
		}
	}
	if len(drafts) == 0 {
		return []task.Task{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := make([]task.Task, 0, len(drafts))
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		created = append(created, task.FromDraft(s.newID(), d))
	}
	next := append(s.clone(len(created)), created...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Debug("tasks created", "count", len(created))
	return created, nil
}

// Update replaces the stored task that has t's id. It reports false when no
// such task exists.
func (s *Store) Update(ctx context.Context, t task.Task) (bool, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return false, ErrEmptyTitle
	}
	t, _ = task.Normalize(t)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(t.ID)
	if i < 0 {
		return false, nil
	}
	next := s.clone(0)
	next[i] = t
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Debug("task updated", "id", t.ID)
	return true, nil
}

// Toggle applies a completion toggle to the task with the given id and
// returns the stored result. Recurring tasks move to their next occurrence.
func (s *Store) Toggle(ctx context.Context, id string) (task.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false, nil
	}
	next := s.clone(0)
	next[i] = next[i].Toggle(s.clock.Now(), s.loc)
	if err := s.commit(ctx, next); err != nil {
		return task.Task{}, false, err
	}
	s.logger.Debug("task toggled", "id", id, "completed", next[i].Completed, "due", next[i].DueDate+" "+next[i].DueTime)
	return next[i], true, nil
}

// Delete removes the task with the given id. It reports false when no such
// task exists.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := make([]task.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Debug("task deleted", "id", id)
	return true, nil
}
