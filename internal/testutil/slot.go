// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"taskminder/internal/store"
	"taskminder/internal/task"
)

// Now is the instant fake clocks start at.
var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// NewClock returns a fake clock set to Now.
func NewClock() clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Now)
}

// MemorySlot is an in-memory store.Slot with error injection.
type MemorySlot struct {
	mu    sync.Mutex
	data  []byte
	saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewMemorySlot returns a slot holding data. nil means never saved.
func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{data: data}
}

func (m *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Data returns the last saved bytes.
func (m *MemorySlot) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Saves counts successful saves.
func (m *MemorySlot) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Stored decodes the last saved collection.
func (m *MemorySlot) Stored(t *testing.T) []task.Task {
	t.Helper()
	var out []task.Task
	if err := json.Unmarshal(m.Data(), &out); err != nil {
		t.Fatalf("decode stored tasks: %v", err)
	}
	return out
}

// SeedSlot encodes tasks into a new MemorySlot.
func SeedSlot(t *testing.T, tasks ...task.Task) *MemorySlot {
	t.Helper()
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		t.Fatalf("encode seed tasks: %v", err)
	}
	return NewMemorySlot(data)
}

// NewStore opens a store over a slot seeded with tasks. Dates are read in
// UTC, ids are "id-1", "id-2", ... and clock drives recurrence.
func NewStore(t *testing.T, clock clockwork.Clock, tasks ...task.Task) (*store.Store, *MemorySlot) {
	t.Helper()
	slot := SeedSlot(t, tasks...)
	s, err := store.Open(context.Background(), slot,
		store.WithClock(clock),
		store.WithLocation(time.UTC),
		store.WithIDGenerator(SequentialIDs("id")),
	)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s, slot
}

// SequentialIDs returns an id source yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

