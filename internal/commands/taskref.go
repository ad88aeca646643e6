package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"taskminder/internal/task"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num      int    // 1-based position in the full listing, 0 if IDPrefix is set
	IDPrefix string // lowercase id prefix
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits → number as shown by list
// 3. At least MinIDPrefix hex digits or dashes → id prefix
// 4. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", strings.Join(args, " "))
	}

	arg := args[0]
	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}
	if isIDPrefix(arg) {
		return TaskRef{IDPrefix: strings.ToLower(arg)}, nil
	}
	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

func (r TaskRef) String() string {
	if r.IDPrefix != "" {
		return r.IDPrefix
	}
	return strconv.Itoa(r.Num)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isIDPrefix returns true if s looks like the start of a uuid.
func isIDPrefix(s string) bool {
	if len(s) < MinIDPrefix {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r == '-') {
			return false
		}
	}
	return true
}

// ResolveTaskRef finds the task ref points at. Numbers follow the order of
// the unfiltered listing at now.
func ResolveTaskRef(tasks []task.Task, ref TaskRef, now time.Time, loc *time.Location) (task.Task, error) {
	if ref.IDPrefix == "" {
		ordered := task.Sort(tasks, now, loc)
		if ref.Num < 1 || ref.Num > len(ordered) {
			return task.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
		}
		return ordered[ref.Num-1], nil
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), ref.IDPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("task not found: %s", ref.IDPrefix)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("ambiguous task id: %s", ref.IDPrefix)
	}
}
