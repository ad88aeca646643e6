// Package tui is the interactive terminal front end: a filtered task
// table, an add/edit form, AI sub-task generation and reminder popups.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"taskminder/internal/logging"
	"taskminder/internal/planner"
	"taskminder/internal/reminder"
	"taskminder/internal/service"
	"taskminder/internal/task"
)

// Options configures a Model.
type Options struct {
	Tasks service.Service

	// Generator returns the AI generator. It is called only when the user
	// asks for sub-tasks, so missing credentials surface as an error
	// banner instead of failing startup.
	Generator func(ctx context.Context) (service.Generator, error)

	Clock    clockwork.Clock
	Interval time.Duration
	Logger   *slog.Logger
}

var errNoGenerator = errors.New("AI generation is not configured")

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

type (
	tickMsg      time.Time
	generatedMsg struct {
		tasks []task.Task
		err   error
	}
)

// Model is the bubbletea model of the task app.
type Model struct {
	ctx      context.Context
	tasks    service.Service
	planner  *planner.Planner
	scanner  *reminder.Scanner
	clock    clockwork.Clock
	loc      *time.Location
	interval time.Duration
	logger   *slog.Logger

	keys   keyMap
	styles styles

	table   table.Model
	visible []task.Task
	filter  task.Filter

	mode    mode
	form    form
	pending task.Task

	generating bool
	status     string
	err        error

	width, height int
}

// New builds the model and loads the first view.
func New(ctx context.Context, opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := logging.OrDiscard(opts.Logger)
	loc := opts.Tasks.Location()

	scanner := reminder.NewScanner(opts.Tasks, reminder.NewSet(),
		reminder.WithClock(clock),
		reminder.WithInterval(opts.Interval),
		reminder.WithLocation(loc),
		reminder.WithLogger(logger),
	)

	var gen service.Generator
	if opts.Generator != nil {
		gen = lazyGenerator(opts.Generator)
	} else {
		gen = lazyGenerator(noGenerator)
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Selected = s.Selected.Foreground(white).Background(accent).Bold(true)
	t.SetStyles(s)

	m := Model{
		ctx:      ctx,
		tasks:    opts.Tasks,
		planner:  planner.New(gen, opts.Tasks, logger),
		scanner:  scanner,
		clock:    clock,
		loc:      loc,
		interval: scanner.Interval(),
		logger:   logger,
		keys:     defaultKeyMap(),
		styles:   defaultStyles(),
		table:    t,
		filter:   task.FilterAll,
		mode:     modeList,
	}
	m.refresh()
	return m
}

// Init scans for reminders right away.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(m.clock.Now()) }
}

// Reminders is the set of ringing reminders.
func (m Model) Reminders() *reminder.Set {
	return m.scanner.Set()
}

// Visible returns the tasks in the current view, in display order.
func (m Model) Visible() []task.Task {
	return m.visible
}

// refresh recomputes the view from the store.
func (m *Model) refresh() {
	all, err := m.tasks.Tasks(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	now := m.clock.Now()
	m.visible = task.View(all, m.filter, now, m.loc)

	rows := make([]table.Row, 0, len(m.visible))
	for _, t := range m.visible {
		rows = append(rows, row(t, now, m.loc))
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) selected() (task.Task, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[c], true
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) generate(goal string) tea.Cmd {
	ctx, p := m.ctx, m.planner
	return func() tea.Msg {
		created, err := p.Generate(ctx, goal)
		return generatedMsg{tasks: created, err: err}
	}
}

// lazyGenerator builds the real generator on each request.
type lazyGenerator func(ctx context.Context) (service.Generator, error)

func (f lazyGenerator) GenerateSubTasks(ctx context.Context, goal string) ([]task.Suggestion, error) {
	gen, err := f(ctx)
	if err != nil {
		return nil, err
	}
	return gen.GenerateSubTasks(ctx, goal)
}

func noGenerator(context.Context) (service.Generator, error) {
	return nil, errNoGenerator
}
