package commands

import (
	"context"
	"fmt"
	"io"

	"taskminder/internal/exitcode"
	"taskminder/internal/task"
)

// lookupTask parses args as a task reference and resolves it against the
// current collection. On failure it reports to errOut and returns the exit
// code; code is exitcode.Success otherwise.
func lookupTask(ctx context.Context, env *Env, args []string, errOut io.Writer) (t task.Task, code int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}

	tasks, err := env.Tasks.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return task.Task{}, exitcode.BackendError
	}

	t, err = ResolveTaskRef(tasks, ref, env.clock().Now(), env.Tasks.Location())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}
	return t, exitcode.Success
}

// parseSchedule validates the user-supplied priority, date, time and
// recurrence flags into d. Empty values leave the draft's field alone.
func parseSchedule(d *task.Draft, priority, date, clock, repeat string) error {
	if priority != "" {
		p, err := task.ParsePriority(priority)
		if err != nil {
			return err
		}
		d.Priority = p
	}
	if repeat != "" {
		r, err := task.ParseRecurrence(repeat)
		if err != nil {
			return err
		}
		d.Recurrence = r
	}
	if date != "" {
		if err := task.ValidateDate(date); err != nil {
			return err
		}
		d.DueDate = date
	}
	if clock != "" {
		if err := task.ValidateTime(clock); err != nil {
			return err
		}
		d.DueTime = clock
	}
	return nil
}
