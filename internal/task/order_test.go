package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskminder/internal/task"
)

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func orderFixture() []task.Task {
	return []task.Task{
		{ID: "done-none", Completed: true},
		{ID: "open-none-1"},
		{ID: "open-late", DueDate: "2024-03-05"},
		{ID: "done-early", DueDate: "2024-02-01", Completed: true},
		{ID: "open-soon", DueTime: "13:00"},
		{ID: "open-none-2"},
		{ID: "done-late", DueDate: "2024-02-20", DueTime: "10:00", Completed: true},
		{ID: "open-overdue", DueDate: "2024-02-01", DueTime: "09:00"},
	}
}

func TestSort(t *testing.T) {
	got := task.Sort(orderFixture(), now, time.UTC)

	assert.Equal(t, []string{
		"open-overdue",
		"open-soon",
		"open-late",
		"open-none-1",
		"open-none-2",
		"done-none",
		"done-late",
		"done-early",
	}, ids(got))
}

func TestSortDoesNotModifyInput(t *testing.T) {
	in := orderFixture()
	first := in[0].ID
	task.Sort(in, now, time.UTC)
	assert.Equal(t, first, in[0].ID)
}

func TestView(t *testing.T) {
	active := task.View(orderFixture(), task.FilterActive, now, time.UTC)
	assert.Equal(t, []string{"open-overdue", "open-soon", "open-late", "open-none-1", "open-none-2"}, ids(active))

	completed := task.View(orderFixture(), task.FilterCompleted, now, time.UTC)
	assert.Equal(t, []string{"done-none", "done-late", "done-early"}, ids(completed))

	assert.Len(t, task.View(orderFixture(), task.FilterAll, now, time.UTC), 8)
}

func TestParseFilter(t *testing.T) {
	f, err := task.ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, task.FilterAll, f)

	f, err = task.ParseFilter("Active")
	require.NoError(t, err)
	assert.Equal(t, task.FilterActive, f)

	_, err = task.ParseFilter("overdue")
	assert.Error(t, err)

	assert.Equal(t, task.FilterActive, task.FilterAll.Next())
	assert.Equal(t, task.FilterAll, task.FilterCompleted.Next())
}
