// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskminder/internal/reminder"
	"taskminder/internal/task"
)

// Formats accepted by list --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NoTasks is printed when a text listing is empty.
const NoTasks = "no tasks found"

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TITLE}  ({details})\n"
func FormatTask(w io.Writer, num int, t task.Task, now time.Time, loc *time.Location) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s  (%s)\n", num, mark, normalizeTitle(t.Title), strings.Join(details(t, now, loc), ", "))
}

func details(t task.Task, now time.Time, loc *time.Location) []string {
	out := []string{strings.ToLower(string(t.Priority))}
	if due := Due(t); due != "" {
		out = append(out, "due "+due)
	}
	if t.Overdue(now, loc) {
		out = append(out, "overdue")
	}
	if t.Recurrence.Recurring() {
		out = append(out, "repeats "+strings.ToLower(string(t.Recurrence)))
	}
	return out
}

// Due renders the stored date and time fields, or "" when unscheduled.
func Due(t task.Task) string {
	return strings.TrimSpace(t.DueDate + " " + t.DueTime)
}

// FormatReminder formats a ringing reminder line.
func FormatReminder(w io.Writer, e reminder.Entry) {
	fmt.Fprintf(w, "reminder: %s (due %s)\n", normalizeTitle(e.Task.Title), e.Due.Format("2006-01-02 15:04"))
}

// WriteJSON writes tasks as an indented JSON array.
func WriteJSON(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// WriteYAML writes tasks as a YAML sequence.
func WriteYAML(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

// Title returns the display form of a task title.
func Title(t task.Task) string {
	return normalizeTitle(t.Title)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
