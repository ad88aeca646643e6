package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskminder/internal/planner"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(max(msg.Height-14, 5))
		return m, nil

	case tickMsg:
		if _, err := m.scanner.Scan(m.ctx); err != nil {
			m.logger.Warn("reminder scan skipped", "err", err)
		}
		m.refresh()
		return m, m.tick()

	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Added %d sub-tasks", len(msg.tasks))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		if _, ok := m.scanner.Set().Front(); ok {
			return m.updateReminder(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		if m.generating {
			return m, nil
		}
		m.form = newForm()
		m.mode = modeForm
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.form = editForm(t)
			m.mode = modeForm
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.pending = t
			m.mode = modeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			_, _, err := m.tasks.Toggle(m.ctx, t.ID)
			m.err = err
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.table.SetCursor(0)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.Generate) && m.form.adding():
		goal := m.form.title()
		if goal == "" {
			m.err = planner.ErrEmptyGoal
			return m, nil
		}
		m.mode = modeList
		m.generating = true
		m.status = ""
		m.err = nil
		return m, m.generate(goal)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg, m.keys)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	d, err := m.form.draft()
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.form.adding() {
		_, err = m.tasks.Create(m.ctx, d)
	} else {
		var found bool
		found, err = m.tasks.Update(m.ctx, m.form.apply(d))
		if err == nil && !found {
			err = errTaskGone
		}
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.status = ""
	m.mode = modeList
	m.refresh()
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		_, err := m.tasks.Delete(m.ctx, m.pending.ID)
		m.err = err
		m.mode = modeList
		m.refresh()
	case key.Matches(msg, m.keys.Deny):
		m.mode = modeList
	}
	return m, nil
}

// updateReminder handles keys while a reminder popup is showing.
func (m Model) updateReminder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e, _ := m.scanner.Set().Front()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		// A task that was deleted or completed in the meantime is only
		// dismissed.
		if t, ok := m.tasks.Get(m.ctx, e.Task.ID); ok && !t.Completed {
			if _, _, err := m.tasks.Toggle(m.ctx, t.ID); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.scanner.Set().Remove(e.Task.ID)
		m.refresh()

	case key.Matches(msg, m.keys.Cancel):
		m.scanner.Set().Remove(e.Task.ID)
	}
	return m, nil
}

var errTaskGone = errors.New("task no longer exists")
