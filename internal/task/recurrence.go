package task

import "time"

// Step adds one recurrence period to t. Non-recurring values return t.
func (r Recurrence) Step(t time.Time) time.Time {
	switch r {
	case RecurrenceHourly:
		return t.Add(time.Hour)
	case RecurrenceDaily:
		return t.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return t.AddDate(0, 0, 7)
	}
	return t
}

// NextDue returns the occurrence after a completion at now. The period is
// added to the current due instant, or to now when the task is unscheduled.
// A result that is still not in the future is replaced by now plus one period,
// so missed occurrences collapse into one.
func NextDue(r Recurrence, due time.Time, scheduled bool, now time.Time) time.Time {
	base := now
	if scheduled {
		base = due
	}
	next := r.Step(base)
	if !next.After(now) {
		next = r.Step(now)
	}
	return next
}

// Advance moves a recurring task to its next occurrence and leaves it
// incomplete. Non-recurring tasks are returned unchanged.
func (t Task) Advance(now time.Time, loc *time.Location) Task {
	if !t.Recurrence.Recurring() {
		return t
	}
	if loc == nil {
		loc = time.Local
	}
	due, ok := t.DueAt(now, loc)
	next := NextDue(t.Recurrence, due, ok, now).In(loc)

	t.DueDate = next.Format(DateLayout)
	t.DueTime = next.Format(TimeLayout)
	t.Completed = false
	return t
}

// Toggle applies a completion toggle at now. Incomplete recurring tasks are
// advanced instead of completed; everything else flips its completed flag.
func (t Task) Toggle(now time.Time, loc *time.Location) Task {
	if t.Recurrence.Recurring() && !t.Completed {
		return t.Advance(now, loc)
	}
	t.Completed = !t.Completed
	return t
}
