package task

import "time"

// ResolveDue combines an optional date and an optional time into an instant
// in loc. A missing date means the calendar day of now; a missing time means
// midnight. ok is false when both are empty or either cannot be parsed.
func ResolveDue(date, clock string, now time.Time, loc *time.Location) (due time.Time, ok bool) {
	if date == "" && clock == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	var (
		y int
		m time.Month
		d int
	)
	if date == "" {
		y, m, d = now.In(loc).Date()
	} else {
		day, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return time.Time{}, false
		}
		y, m, d = day.Date()
	}

	var hh, mm, ss int
	if clock != "" {
		c, err := parseClock(clock)
		if err != nil {
			return time.Time{}, false
		}
		hh, mm, ss = c.Clock()
	}
	return time.Date(y, m, d, hh, mm, ss, 0, loc), true
}

// DueAt resolves the task's due instant. See ResolveDue.
func (t Task) DueAt(now time.Time, loc *time.Location) (time.Time, bool) {
	return ResolveDue(t.DueDate, t.DueTime, now, loc)
}

// Overdue reports whether an incomplete task's due instant is not after now.
func (t Task) Overdue(now time.Time, loc *time.Location) bool {
	if t.Completed {
		return false
	}
	due, ok := t.DueAt(now, loc)
	return ok && !due.After(now)
}
