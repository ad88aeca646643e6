package reminder

import (
	"testing"

	"taskminder/internal/task"
)

func entry(id string) Entry {
	return Entry{Task: task.Task{ID: id, Title: id}}
}

func TestSetAddSkipsDuplicates(t *testing.T) {
	s := NewSet()
	if n := s.Add(entry("a"), entry("b")); n != 2 {
		t.Fatalf("expected 2 added, got %d", n)
	}
	if n := s.Add(entry("a"), entry("c")); n != 1 {
		t.Fatalf("expected 1 added, got %d", n)
	}

	got := s.Entries()
	if len(got) != 3 || got[0].Task.ID != "a" || got[1].Task.ID != "b" || got[2].Task.ID != "c" {
		t.Errorf("unexpected entries %+v", got)
	}
}

func TestSetRemove(t *testing.T) {
	s := NewSet()
	s.Add(entry("a"), entry("b"))

	if !s.Remove("a") {
		t.Error("expected a removed")
	}
	if s.Remove("a") {
		t.Error("expected second remove to report false")
	}
	if s.Contains("a") || !s.Contains("b") {
		t.Error("unexpected membership after remove")
	}
	front, ok := s.Front()
	if !ok || front.Task.ID != "b" {
		t.Errorf("expected b at front, got %+v", front)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", s.Len())
	}
}

func TestSetFrontEmpty(t *testing.T) {
	if _, ok := NewSet().Front(); ok {
		t.Error("expected empty set")
	}
}

func TestSetRemoveFunc(t *testing.T) {
	s := NewSet()
	s.Add(entry("a"), entry("b"), entry("c"))

	dropped := s.RemoveFunc(func(e Entry) bool { return e.Task.ID != "b" })

	if len(dropped) != 2 || dropped[0].Task.ID != "a" || dropped[1].Task.ID != "c" {
		t.Errorf("unexpected dropped entries: %+v", dropped)
	}
	if s.Len() != 1 || !s.Contains("b") {
		t.Errorf("expected only b to remain, got %+v", s.Entries())
	}
	if n := s.Add(entry("a")); n != 1 {
		t.Errorf("expected removed reminder to be addable again, got %d", n)
	}
}
