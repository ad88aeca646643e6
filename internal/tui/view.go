package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"taskminder/internal/output"
	"taskminder/internal/task"
)

func columns(width int) []table.Column {
	fixed := 3 + 8 + 18 + 8 + 10
	title := max(width-fixed, 20)
	return []table.Column{
		{Title: "", Width: 3},
		{Title: "Title", Width: title},
		{Title: "Priority", Width: 8},
		{Title: "Due", Width: 18},
		{Title: "Repeat", Width: 8},
	}
}

func row(t task.Task, now time.Time, loc *time.Location) table.Row {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	due := output.Due(t)
	if t.Overdue(now, loc) {
		due += " !"
	}
	repeat := ""
	if t.Recurrence.Recurring() {
		repeat = strings.ToLower(string(t.Recurrence))
	}
	return table.Row{mark, output.Title(t), string(t.Priority), due, repeat}
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("taskminder"))
	b.WriteString(" ")
	b.WriteString(m.styles.Date.Render(m.clock.Now().In(m.loc).Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView())
	case modeConfirmDelete:
		b.WriteString(m.deleteView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.helpBar())
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder

	tabs := make([]string, 0, len(task.Filters))
	for _, f := range task.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == m.filter {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(m.styles.Status.Render(output.NoTasks))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.generating {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render("Generating sub-tasks..."))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	if e, ok := m.scanner.Set().Front(); ok {
		b.WriteString("\n")
		b.WriteString(m.reminderView(e.Task, e.Due))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) reminderView(t task.Task, due time.Time) string {
	body := fmt.Sprintf("Reminder\n\n%s\nDue %s", output.Title(t), due.In(m.loc).Format("2006-01-02 15:04"))
	if n := m.scanner.Set().Len(); n > 1 {
		body += fmt.Sprintf("\n\n(%d more)", n-1)
	}
	body += "\n\nenter mark as done • esc dismiss"
	return m.styles.Popup.Render(body)
}

func (m Model) formView() string {
	var b strings.Builder
	heading := "Edit Task"
	if m.form.adding() {
		heading = "Add Task"
	}
	b.WriteString(m.styles.Header.Render(heading))
	b.WriteString("\n\n")

	for f := fieldTitle; f < fieldCount; f++ {
		label := m.styles.Label
		if f == m.form.focus {
			label = m.styles.Focused
		}
		b.WriteString(label.Render(fieldLabels[f]))
		switch f {
		case fieldPriority:
			b.WriteString("‹ " + string(m.form.priority) + " ›")
		case fieldRecurrence:
			b.WriteString("‹ " + string(m.form.recurrence) + " ›")
		default:
			b.WriteString(m.form.inputs[f].View())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) deleteView() string {
	body := fmt.Sprintf("Delete this task?\n\n%s\n\ny confirm • n cancel", output.Title(m.pending))
	return m.styles.Dialog.Render(body)
}

func (m Model) helpBar() string {
	var bindings []key.Binding
	switch m.mode {
	case modeForm:
		bindings = m.keys.formHelp(m.form.adding())
	case modeConfirmDelete:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Deny}
	default:
		bindings = m.keys.listHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+m.styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, m.styles.HelpDesc.Render(" • "))
}
