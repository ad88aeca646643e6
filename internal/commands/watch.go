package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/output"
	"taskminder/internal/reminder"
	"taskminder/internal/task"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd implements the watch command. It prints a line for every task
// that becomes due while it runs.
type WatchCmd struct {
	once bool
}

// SetOnce sets the --once flag (for testing).
func (c *WatchCmd) SetOnce(once bool) {
	c.once = once
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return []string{"remind"} }
func (c *WatchCmd) Synopsis() string  { return "Print reminders as tasks come due" }
func (c *WatchCmd) Usage() string     { return "taskminder watch [--once]" }
func (c *WatchCmd) NeedsStore() bool  { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.once, "once", false, "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Other processes may change the collection while we watch. Reminders
	// whose task no longer rings at the printed due time are forgotten.
	set := reminder.NewSet()
	loc := env.Tasks.Location()
	source := reminder.SourceFunc(func(ctx context.Context) ([]task.Task, error) {
		if err := env.Tasks.Reload(ctx); err != nil {
			return nil, err
		}
		tasks, err := env.Tasks.Tasks(ctx)
		if err != nil {
			return nil, err
		}
		settled := settledReminders(set, tasks, env.clock().Now(), loc)
		if len(settled) > 0 {
			env.logger().Debug("reminders settled", "count", len(settled))
		}
		return tasks, nil
	})
	scanner := reminder.NewScanner(source, set,
		reminder.WithClock(env.clock()),
		reminder.WithInterval(env.interval()),
		reminder.WithLocation(loc),
		reminder.WithLogger(env.logger()),
	)
	notify := func(due []reminder.Entry) {
		for _, e := range due {
			output.FormatReminder(out, e)
		}
	}

	if c.once {
		due, err := scanner.Scan(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
		notify(due)
		if len(due) == 0 && !cfg.Quiet {
			fmt.Fprintln(out, "no reminders")
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintf(errOut, "watching for due tasks every %s (interrupt to stop)\n", scanner.Interval())
	}
	// Tasks already due ring right away rather than after the first tick.
	if due, err := scanner.Scan(ctx); err == nil {
		notify(due)
	} else {
		env.logger().Warn("reminder scan skipped", "err", err)
	}

	err := scanner.Run(ctx, notify)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// settledReminders drops reminders whose task is gone, completed or now due
// at a different time.
func settledReminders(set *reminder.Set, tasks []task.Task, now time.Time, loc *time.Location) []reminder.Entry {
	byID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return set.RemoveFunc(func(e reminder.Entry) bool {
		t, ok := byID[e.Task.ID]
		if !ok || t.Completed {
			return true
		}
		due, scheduled := t.DueAt(now, loc)
		return !scheduled || !due.Equal(e.Due)
	})
}
