package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskminder/internal/store"
	"taskminder/internal/task"
	"taskminder/internal/testutil"
)

func TestOpenEmptySlot(t *testing.T) {
	s, err := store.Open(context.Background(), testutil.NewMemorySlot(nil))
	require.NoError(t, err)

	tasks, err := s.Tasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestOpenCorruptContentStartsEmpty(t *testing.T) {
	slot := testutil.NewMemorySlot([]byte(`{"not": "an array"`))
	s, err := store.Open(context.Background(), slot)
	require.NoError(t, err)

	tasks, _ := s.Tasks(context.Background())
	assert.Empty(t, tasks)
	assert.Zero(t, slot.Saves())
}

func TestOpenLoadFailure(t *testing.T) {
	slot := testutil.NewMemorySlot(nil)
	slot.LoadErr = errors.New("disk gone")

	_, err := store.Open(context.Background(), slot)
	assert.EqualError(t, err, "load tasks: disk gone")
}

func TestOpenRepairsRecords(t *testing.T) {
	slot := testutil.NewMemorySlot([]byte(`[
		{"id": "a", "title": "one", "completed": false, "priority": "Urgent", "recurrence": "None"},
		{"id": "a", "title": "two", "completed": false, "priority": "Low", "recurrence": "None", "dueDate": "soon"},
		{"title": "three", "completed": true, "priority": "High", "recurrence": "Daily"}
	]`))
	s, err := store.Open(context.Background(), slot, store.WithIDGenerator(testutil.SequentialIDs("new")))
	require.NoError(t, err)

	tasks, _ := s.Tasks(context.Background())
	require.Len(t, tasks, 3)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, task.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, "new-1", tasks[1].ID)
	assert.Empty(t, tasks[1].DueDate)
	assert.Equal(t, "new-2", tasks[2].ID)
}

func TestCreate(t *testing.T) {
	s, slot := testutil.NewStore(t, testutil.NewClock())

	got, err := s.Create(context.Background(), task.Draft{Title: "  Buy milk ", Priority: task.PriorityHigh, DueDate: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, task.Task{
		ID:         "id-1",
		Title:      "Buy milk",
		Priority:   task.PriorityHigh,
		DueDate:    "2024-03-02",
		Recurrence: task.RecurrenceNone,
	}, got)

	assert.Equal(t, 1, slot.Saves())
	assert.Equal(t, []task.Task{got}, slot.Stored(t))
}

func TestCreateEmptyTitle(t *testing.T) {
	s, slot := testutil.NewStore(t, testutil.NewClock())

	_, err := s.Create(context.Background(), task.Draft{Title: "   "})
	assert.ErrorIs(t, err, store.ErrEmptyTitle)
	assert.Zero(t, slot.Saves())
}

func TestCreateBatchIsAllOrNothing(t *testing.T) {
	s, slot := testutil.NewStore(t, testutil.NewClock(), task.Task{ID: "keep", Title: "existing", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone})

	_, err := s.CreateBatch(context.Background(), []task.Draft{{Title: "a"}, {Title: ""}})
	assert.ErrorIs(t, err, store.ErrEmptyTitle)

	tasks, _ := s.Tasks(context.Background())
	assert.Len(t, tasks, 1)

	created, err := s.CreateBatch(context.Background(), []task.Draft{{Title: "a"}, {Title: "b", Priority: task.PriorityHigh}})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 1, slot.Saves())

	tasks, _ = s.Tasks(context.Background())
	assert.Equal(t, []string{"keep", "id-1", "id-2"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestSaveFailureLeavesCollectionUnchanged(t *testing.T) {
	s, slot := testutil.NewStore(t, testutil.NewClock(), task.Task{ID: "a", Title: "t", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone})
	slot.SaveErr = errors.New("quota exceeded")
	ctx := context.Background()

	_, err := s.Create(ctx, task.Draft{Title: "new"})
	assert.EqualError(t, err, "save tasks: quota exceeded")

	_, _, err = s.Toggle(ctx, "a")
	assert.Error(t, err)

	_, err = s.Delete(ctx, "a")
	assert.Error(t, err)

	tasks, _ := s.Tasks(ctx)
	require.Len(t, tasks, 1)
	assert.False(t, tasks[0].Completed)
}

func TestUpdate(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.NewClock(), task.Task{ID: "a", Title: "old", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone})
	ctx := context.Background()

	found, err := s.Update(ctx, task.Task{ID: "a", Title: "new", Priority: task.PriorityHigh, Recurrence: task.RecurrenceDaily, DueTime: "08:00"})
	require.NoError(t, err)
	assert.True(t, found)

	got, ok := s.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, task.RecurrenceDaily, got.Recurrence)

	found, err = s.Update(ctx, task.Task{ID: "missing", Title: "x"})
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.Update(ctx, task.Task{ID: "a", Title: ""})
	assert.ErrorIs(t, err, store.ErrEmptyTitle)
}

func TestToggle(t *testing.T) {
	clock := testutil.NewClock()
	s, slot := testutil.NewStore(t, clock,
		task.Task{ID: "plain", Title: "p", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone},
		task.Task{ID: "daily", Title: "d", Priority: task.PriorityLow, Recurrence: task.RecurrenceDaily, DueDate: "2024-03-01", DueTime: "08:00"},
	)
	ctx := context.Background()

	got, found, err := s.Toggle(ctx, "plain")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Completed)

	got, _, err = s.Toggle(ctx, "daily")
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Equal(t, "2024-03-02", got.DueDate)
	assert.Equal(t, "08:00", got.DueTime)

	_, found, err = s.Toggle(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, slot.Saves())
}

func TestToggleUsesInjectedClock(t *testing.T) {
	clock := testutil.NewClock()
	s, _ := testutil.NewStore(t, clock,
		task.Task{ID: "h", Title: "h", Priority: task.PriorityLow, Recurrence: task.RecurrenceHourly},
	)
	clock.Advance(90 * time.Minute)

	got, _, err := s.Toggle(context.Background(), "h")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got.DueDate)
	assert.Equal(t, "14:30", got.DueTime)
}

func TestDelete(t *testing.T) {
	s, slot := testutil.NewStore(t, testutil.NewClock(),
		task.Task{ID: "a", Title: "a", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone},
		task.Task{ID: "b", Title: "b", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone},
	)
	ctx := context.Background()

	found, err := s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	stored := slot.Stored(t)
	require.Len(t, stored, 1)
	assert.Equal(t, "b", stored[0].ID)
}

func TestReload(t *testing.T) {
	s, slot := testutil.NewStore(t, testutil.NewClock())
	require.NoError(t, slot.Save(context.Background(), []byte(`[{"id":"x","title":"from elsewhere","completed":false,"priority":"High","recurrence":"None"}]`)))

	require.NoError(t, s.Reload(context.Background()))
	got, ok := s.Get(context.Background(), "x")
	require.True(t, ok)
	assert.Equal(t, "from elsewhere", got.Title)
}

func TestTasksReturnsCopy(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.NewClock(), task.Task{ID: "a", Title: "a", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone})
	ctx := context.Background()

	tasks, _ := s.Tasks(ctx)
	tasks[0].Title = "mutated"

	got, _ := s.Get(ctx, "a")
	assert.Equal(t, "a", got.Title)
}
