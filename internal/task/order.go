package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in tab order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter matches s case-insensitively. The empty string means all.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid filter: %q (want all, active or completed)", s)
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

// Next returns the filter after f in tab order, wrapping around.
func (f Filter) Next() Filter {
	for i, g := range Filters {
		if g == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

type sortKey struct {
	task      Task
	due       time.Time
	scheduled bool
}

// Sort returns a copy of tasks in display order. Incomplete tasks come first,
// soonest due first with unscheduled ones last. Completed tasks follow, most
// recently due first with unscheduled ones leading. Ties keep stored order.
func Sort(tasks []Task, now time.Time, loc *time.Location) []Task {
	keys := make([]sortKey, len(tasks))
	for i, t := range tasks {
		due, ok := t.DueAt(now, loc)
		keys[i] = sortKey{task: t, due: due, scheduled: ok}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return displayLess(keys[i], keys[j])
	})
	out := make([]Task, len(keys))
	for i, k := range keys {
		out[i] = k.task
	}
	return out
}

func displayLess(a, b sortKey) bool {
	if a.task.Completed != b.task.Completed {
		return !a.task.Completed
	}
	if a.scheduled != b.scheduled {
		if a.task.Completed {
			return !a.scheduled
		}
		return a.scheduled
	}
	if !a.scheduled {
		return false
	}
	if a.task.Completed {
		return a.due.After(b.due)
	}
	return a.due.Before(b.due)
}

// View sorts tasks for display and keeps those matching f.
func View(tasks []Task, f Filter, now time.Time, loc *time.Location) []Task {
	sorted := Sort(tasks, now, loc)
	out := sorted[:0]
	for _, t := range sorted {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
