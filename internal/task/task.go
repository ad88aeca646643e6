// Package task defines the task record and the scheduling rules applied to it.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts used for the stored date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTime       = errors.New("invalid time")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
)

// Priority is the importance label of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want low, medium or high)", ErrInvalidPriority, s)
}

// CoercePriority parses s and falls back to Medium for anything unknown.
func CoercePriority(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		return PriorityMedium
	}
	return p
}

// Recurrence is the repeat period of a task.
type Recurrence string

const (
	RecurrenceNone   Recurrence = "None"
	RecurrenceHourly Recurrence = "Hourly"
	RecurrenceDaily  Recurrence = "Daily"
	RecurrenceWeekly Recurrence = "Weekly"
)

// Recurrences lists every recurrence value.
var Recurrences = []Recurrence{RecurrenceNone, RecurrenceHourly, RecurrenceDaily, RecurrenceWeekly}

// Valid reports whether r is one of the known recurrence values.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceHourly, RecurrenceDaily, RecurrenceWeekly:
		return true
	}
	return false
}

// Recurring reports whether completing the task reschedules it.
func (r Recurrence) Recurring() bool {
	return r == RecurrenceHourly || r == RecurrenceDaily || r == RecurrenceWeekly
}

// ParseRecurrence matches s case-insensitively against the known values.
func ParseRecurrence(s string) (Recurrence, error) {
	for _, r := range Recurrences {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want none, hourly, daily or weekly)", ErrInvalidRecurrence, s)
}

// Task is a single to-do item. The JSON form is the persisted form.
type Task struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Completed  bool       `json:"completed" yaml:"completed"`
	Priority   Priority   `json:"priority" yaml:"priority"`
	DueDate    string     `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	DueTime    string     `json:"dueTime,omitempty" yaml:"dueTime,omitempty"`
	Recurrence Recurrence `json:"recurrence" yaml:"recurrence"`
}

// Scheduled reports whether the task carries a date or a time.
func (t Task) Scheduled() bool {
	return t.DueDate != "" || t.DueTime != ""
}

// Draft holds the user-supplied fields of a task that does not exist yet.
type Draft struct {
	Title      string
	Priority   Priority
	DueDate    string
	DueTime    string
	Recurrence Recurrence
}

// Suggestion is one sub-task proposed by a generator.
type Suggestion struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
}

// ValidateDate checks a YYYY-MM-DD date. The empty string is valid.
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %s (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return nil
}

// ValidateTime checks an HH:MM time. The empty string is valid.
func ValidateTime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := parseClock(s); err != nil {
		return fmt.Errorf("%w: %s (want HH:MM)", ErrInvalidTime, s)
	}
	return nil
}

// parseClock accepts HH:MM and HH:MM:SS.
func parseClock(s string) (time.Time, error) {
	c, err := time.Parse(TimeLayout, s)
	if err == nil {
		return c, nil
	}
	return time.Parse("15:04:05", s)
}
