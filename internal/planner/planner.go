// Package planner turns a goal into stored sub-tasks.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"taskminder/internal/logging"
	"taskminder/internal/service"
	"taskminder/internal/task"
)

var (
	// ErrEmptyGoal is returned for a blank goal; nothing is requested.
	ErrEmptyGoal = errors.New("goal required")

	// ErrBusy is returned while another generation is running.
	ErrBusy = errors.New("generation already in progress")

	// ErrGenerate wraps every generator failure.
	ErrGenerate = errors.New("failed to generate tasks")
)

// Planner requests sub-tasks for a goal and adds them to the collection.
// At most one request runs at a time.
type Planner struct {
	gen    service.Generator
	tasks  service.Service
	logger *slog.Logger
	busy   atomic.Bool
}

// New returns a planner.
func New(gen service.Generator, tasks service.Service, logger *slog.Logger) *Planner {
	return &Planner{gen: gen, tasks: tasks, logger: logging.OrDiscard(logger)}
}

// Busy reports whether a generation is in flight.
func (p *Planner) Busy() bool {
	return p.busy.Load()
}

// Generate asks the generator to break goal into sub-tasks and stores them
// as incomplete, unscheduled, non-recurring tasks in one batch. On any
// failure the collection is left unchanged.
func (p *Planner) Generate(ctx context.Context, goal string) ([]task.Task, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, ErrEmptyGoal
	}
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.busy.Store(false)

	p.logger.Debug("generating sub-tasks", "goal", goal)
	suggestions, err := p.gen.GenerateSubTasks(ctx, goal)
	if err != nil {
		p.logger.Warn("sub-task generation failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	drafts := make([]task.Draft, 0, len(suggestions))
	for _, s := range suggestions {
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		drafts = append(drafts, task.Draft{
			Title:      s.Title,
			Priority:   task.CoercePriority(string(s.Priority)),
			Recurrence: task.RecurrenceNone,
		})
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no sub-tasks returned", ErrGenerate)
	}

	created, err := p.tasks.CreateBatch(ctx, drafts)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("sub-tasks added", "count", len(created))
	return created, nil
}
