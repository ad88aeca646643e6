package reminder_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskminder/internal/reminder"
	"taskminder/internal/task"
	"taskminder/internal/testutil"
)

func staticSource(tasks ...task.Task) reminder.Source {
	return reminder.SourceFunc(func(ctx context.Context) ([]task.Task, error) {
		return tasks, nil
	})
}

func newScanner(src reminder.Source, clock reminder.Option) (*reminder.Scanner, *reminder.Set) {
	set := reminder.NewSet()
	return reminder.NewScanner(src, set, clock, reminder.WithLocation(time.UTC)), set
}

func TestScan(t *testing.T) {
	clock := testutil.NewClock()
	src := staticSource(
		task.Task{ID: "overdue", DueDate: "2024-02-28", DueTime: "09:00"},
		task.Task{ID: "now", DueDate: "2024-03-01", DueTime: "12:00"},
		task.Task{ID: "later", DueDate: "2024-03-01", DueTime: "12:01"},
		task.Task{ID: "done", DueDate: "2024-02-01", Completed: true},
		task.Task{ID: "unscheduled"},
		task.Task{ID: "broken", DueDate: "not-a-date"},
	)
	s, set := newScanner(src, reminder.WithClock(clock))

	due, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "overdue", due[0].Task.ID)
	assert.Equal(t, "now", due[1].Task.ID)
	assert.Equal(t, testutil.Now, due[1].RangAt)
	assert.Equal(t, 2, set.Len())

	due, err = s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, due, "ringing tasks must not ring twice")

	clock.Advance(time.Minute)
	due, err = s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "later", due[0].Task.ID)
}

func TestScanRingsAgainAfterDismiss(t *testing.T) {
	s, set := newScanner(staticSource(task.Task{ID: "a", DueTime: "08:00"}), reminder.WithClock(testutil.NewClock()))

	_, err := s.Scan(context.Background())
	require.NoError(t, err)
	set.Remove("a")

	due, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestScanSkipsTaskThatPanics(t *testing.T) {
	src := staticSource(
		task.Task{ID: "a", DueDate: "2024-03-01", DueTime: "08:00"},
		task.Task{ID: "bad", DueDate: "2024-03-01", DueTime: "09:00"},
		task.Task{ID: "b", DueDate: "2024-03-01", DueTime: "10:00"},
	)
	resolve := func(tk task.Task, now time.Time, loc *time.Location) (time.Time, bool) {
		if tk.ID == "bad" {
			var missing *time.Location
			return time.Date(2024, 3, 1, 9, 0, 0, 0, missing), true
		}
		return tk.DueAt(now, loc)
	}
	set := reminder.NewSet()
	s := reminder.NewScanner(src, set,
		reminder.WithClock(testutil.NewClock()),
		reminder.WithLocation(time.UTC),
		reminder.WithResolver(resolve),
	)

	due, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].Task.ID)
	assert.Equal(t, "b", due[1].Task.ID)
	assert.False(t, set.Contains("bad"))
}

func TestScanSourceError(t *testing.T) {
	src := reminder.SourceFunc(func(ctx context.Context) ([]task.Task, error) {
		return nil, errors.New("unreadable")
	})
	s, set := newScanner(src, reminder.WithClock(testutil.NewClock()))

	_, err := s.Scan(context.Background())
	assert.EqualError(t, err, "read tasks: unreadable")
	assert.Zero(t, set.Len())
}

func TestRun(t *testing.T) {
	clock := testutil.NewClock()
	var calls atomic.Int32
	src := reminder.SourceFunc(func(ctx context.Context) ([]task.Task, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("transient")
		}
		return []task.Task{{ID: "a", DueDate: "2024-03-01"}}, nil
	})
	set := reminder.NewSet()
	s := reminder.NewScanner(src, set,
		reminder.WithClock(clock),
		reminder.WithInterval(5*time.Second),
		reminder.WithLocation(time.UTC),
	)

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []reminder.Entry, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(due []reminder.Entry) { batches <- due })
	}()

	// The first tick fails and is skipped; a later one rings.
	deadline := time.After(5 * time.Second)
	for delivered := false; !delivered; {
		clock.BlockUntil(1)
		clock.Advance(5 * time.Second)
		select {
		case got := <-batches:
			require.Len(t, got, 1)
			assert.Equal(t, "a", got[0].Task.ID)
			delivered = true
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("no reminder delivered")
		}
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(2))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
