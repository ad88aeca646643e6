package task

// Normalize repairs a record read from storage and names the fields it had
// to change. Unparsable dates and times are dropped, unknown priorities
// become Medium and unknown recurrences become None.
func Normalize(t Task) (Task, []string) {
	var fixed []string

	if !t.Priority.Valid() {
		p := CoercePriority(string(t.Priority))
		fixed = append(fixed, "priority")
		t.Priority = p
	}
	if !t.Recurrence.Valid() {
		r, err := ParseRecurrence(string(t.Recurrence))
		if err != nil {
			r = RecurrenceNone
		}
		fixed = append(fixed, "recurrence")
		t.Recurrence = r
	}
	if ValidateDate(t.DueDate) != nil {
		fixed = append(fixed, "dueDate")
		t.DueDate = ""
	}
	if ValidateTime(t.DueTime) != nil {
		fixed = append(fixed, "dueTime")
		t.DueTime = ""
	}
	return t, fixed
}

// FromDraft builds an incomplete task from d, filling defaults.
func FromDraft(id string, d Draft) Task {
	t := Task{
		ID:         id,
		Title:      d.Title,
		Priority:   d.Priority,
		DueDate:    d.DueDate,
		DueTime:    d.DueTime,
		Recurrence: d.Recurrence,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceNone
	}
	t, _ = Normalize(t)
	return t
}
