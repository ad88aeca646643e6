// Package service defines the interfaces commands and the terminal UI
// program against.
package service

import (
	"context"
	"time"

	"taskminder/internal/task"
)

// Service is the task collection. Implemented by store.Store.
// Every mutation is persisted before it returns.
type Service interface {
	// Tasks returns a copy of the collection in stored order.
	Tasks(ctx context.Context) ([]task.Task, error)

	// Get returns the task with the given id.
	Get(ctx context.Context, id string) (task.Task, bool)

	// Create appends a new incomplete task.
	Create(ctx context.Context, d task.Draft) (task.Task, error)

	// CreateBatch appends one task per draft in a single save,
	// all or nothing.
	CreateBatch(ctx context.Context, drafts []task.Draft) ([]task.Task, error)

	// Update replaces the task with the same id. Reports false if absent.
	Update(ctx context.Context, t task.Task) (bool, error)

	// Toggle flips completion, advancing recurring tasks instead of
	// completing them. Reports false if absent.
	Toggle(ctx context.Context, id string) (task.Task, bool, error)

	// Delete removes a task. Reports false if absent.
	Delete(ctx context.Context, id string) (bool, error)

	// Reload re-reads the collection from storage.
	Reload(ctx context.Context) error

	// Location is the time zone dates and times are read in.
	Location() *time.Location
}

// Generator proposes sub-tasks for a goal. Implemented by gemini.Client.
type Generator interface {
	GenerateSubTasks(ctx context.Context, goal string) ([]task.Suggestion, error)
}
