// Package reminder finds due tasks and tracks which ones are ringing.
package reminder

import (
	"sync"
	"time"

	"taskminder/internal/task"
)

// Entry is a ringing reminder. Task is the snapshot taken when it rang.
type Entry struct {
	Task   task.Task
	Due    time.Time
	RangAt time.Time
}

// Set is the ordered collection of ringing reminders, oldest first. A task
// id appears at most once.
type Set struct {
	mu      sync.Mutex
	entries []Entry
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// Add appends entries whose task is not already ringing and returns how
// many were added.
func (s *Set) Add(entries ...Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, e := range entries {
		if s.indexOf(e.Task.ID) >= 0 {
			continue
		}
		s.entries = append(s.entries, e)
		added++
	}
	return added
}

// Remove drops the reminder for id. It reports whether one was ringing.
func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return true
}

// RemoveFunc drops every reminder for which drop returns true and returns
// the dropped entries.
func (s *Set) RemoveFunc(drop func(Entry) bool) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var dropped []Entry
	kept := s.entries[:0]
	for _, e := range s.entries {
		if drop(e) {
			dropped = append(dropped, e)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return dropped
}

// Contains reports whether id is ringing.
func (s *Set) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Entries returns a copy of the ringing reminders, oldest first.
func (s *Set) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Front returns the oldest ringing reminder.
func (s *Set) Front() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

// Len returns the number of ringing reminders.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Set) indexOf(id string) int {
	for i, e := range s.entries {
		if e.Task.ID == id {
			return i
		}
	}
	return -1
}
