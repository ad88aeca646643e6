package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskminder/internal/store"
	"taskminder/internal/task"
)

type field int

const (
	fieldTitle field = iota
	fieldDate
	fieldTime
	fieldPriority
	fieldRecurrence
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Date", "Time", "Priority", "Repeat"}

// form edits one task. An empty id means the form adds a new task.
type form struct {
	id     string
	inputs [fieldPriority]textinput.Model

	priority   task.Priority
	recurrence task.Recurrence
	focus      field

	// carried through an edit unchanged
	completed bool
}

func newForm() form {
	f := form{priority: task.PriorityMedium, recurrence: task.RecurrenceNone}
	placeholders := [fieldPriority]string{"What needs doing?", "YYYY-MM-DD (optional)", "HH:MM (optional)"}
	limits := [fieldPriority]int{200, len(task.DateLayout), len(task.TimeLayout)}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = 40
		f.inputs[i] = in
	}
	f.setFocus(fieldTitle)
	return f
}

func editForm(t task.Task) form {
	f := newForm()
	f.id = t.ID
	f.completed = t.Completed
	f.inputs[fieldTitle].SetValue(t.Title)
	f.inputs[fieldDate].SetValue(t.DueDate)
	f.inputs[fieldTime].SetValue(t.DueTime)
	f.priority = task.CoercePriority(string(t.Priority))
	f.recurrence = t.Recurrence
	if !f.recurrence.Valid() {
		f.recurrence = task.RecurrenceNone
	}
	return f
}

func (f form) adding() bool { return f.id == "" }

func (f *form) setFocus(next field) {
	f.focus = (next + fieldCount) % fieldCount
	for i := range f.inputs {
		if field(i) == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f form) title() string {
	return strings.TrimSpace(f.inputs[fieldTitle].Value())
}

// draft validates the form and returns the fields it describes.
func (f form) draft() (task.Draft, error) {
	d := task.Draft{
		Title:      f.title(),
		Priority:   f.priority,
		DueDate:    strings.TrimSpace(f.inputs[fieldDate].Value()),
		DueTime:    strings.TrimSpace(f.inputs[fieldTime].Value()),
		Recurrence: f.recurrence,
	}
	if d.Title == "" {
		return task.Draft{}, store.ErrEmptyTitle
	}
	if err := task.ValidateDate(d.DueDate); err != nil {
		return task.Draft{}, err
	}
	if err := task.ValidateTime(d.DueTime); err != nil {
		return task.Draft{}, err
	}
	return d, nil
}

// apply builds the updated record for an edit.
func (f form) apply(d task.Draft) task.Task {
	return task.Task{
		ID:         f.id,
		Title:      d.Title,
		Completed:  f.completed,
		Priority:   d.Priority,
		DueDate:    d.DueDate,
		DueTime:    d.DueTime,
		Recurrence: d.Recurrence,
	}
}

func (f form) update(msg tea.KeyMsg, keys keyMap) (form, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		f.setFocus(f.focus + 1)
		return f, nil
	case key.Matches(msg, keys.Prev):
		f.setFocus(f.focus - 1)
		return f, nil
	}

	switch f.focus {
	case fieldPriority:
		f.priority = cycle(task.Priorities, f.priority, step(msg, keys))
		return f, nil
	case fieldRecurrence:
		f.recurrence = cycle(task.Recurrences, f.recurrence, step(msg, keys))
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func step(msg tea.KeyMsg, keys keyMap) int {
	switch {
	case key.Matches(msg, keys.Left):
		return -1
	case key.Matches(msg, keys.Right):
		return 1
	}
	return 0
}

func cycle[T comparable](values []T, cur T, delta int) T {
	for i, v := range values {
		if v == cur {
			return values[(i+delta+len(values))%len(values)]
		}
	}
	return values[0]
}
