package testutil

import (
	"context"
	"sync"

	"taskminder/internal/task"
)

// FakeGenerator is a scripted service.Generator.
type FakeGenerator struct {
	mu    sync.Mutex
	goals []string

	Suggestions []task.Suggestion
	Err         error

	// Release, when set, blocks GenerateSubTasks until it is closed.
	Release chan struct{}
	// Started receives the goal once a call has begun, when set.
	Started chan string
}

func (f *FakeGenerator) GenerateSubTasks(ctx context.Context, goal string) ([]task.Suggestion, error) {
	f.mu.Lock()
	f.goals = append(f.goals, goal)
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- goal
	}
	if f.Release != nil {
		select {
		case <-f.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]task.Suggestion(nil), f.Suggestions...), nil
}

// Goals returns the goals passed so far.
func (f *FakeGenerator) Goals() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.goals...)
}
