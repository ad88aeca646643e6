package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	title    string
	priority string
	date     string
	time     string
	repeat   string
	noDate   bool
	noTime   bool
}

// SetFields sets the flag values (for testing).
func (c *EditCmd) SetFields(title, priority, date, clock, repeat string, noDate, noTime bool) {
	c.title, c.priority, c.date, c.time, c.repeat = title, priority, date, clock, repeat
	c.noDate, c.noTime = noDate, noTime
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskminder edit [--title <t>] [--priority <p>] [--date <d> | --no-date] [--time <t> | --no-time] [--repeat <r>] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.time, "time", "", "")
	fs.StringVar(&c.time, "t", "", "")
	fs.StringVar(&c.repeat, "repeat", "", "")
	fs.StringVar(&c.repeat, "r", "", "")
	fs.BoolVar(&c.noDate, "no-date", false, "")
	fs.BoolVar(&c.noTime, "no-time", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if c.noDate && c.date != "" {
		fmt.Fprintln(errOut, "error: cannot use both --date and --no-date")
		return exitcode.UserError
	}
	if c.noTime && c.time != "" {
		fmt.Fprintln(errOut, "error: cannot use both --time and --no-time")
		return exitcode.UserError
	}
	if c.title == "" && c.priority == "" && c.date == "" && c.time == "" && c.repeat == "" && !c.noDate && !c.noTime {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	title := strings.TrimSpace(c.title)
	if c.title != "" && title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	t, code := lookupTask(ctx, env, args, errOut)
	if code != exitcode.Success {
		return code
	}

	draft := task.Draft{
		Title:      t.Title,
		Priority:   t.Priority,
		DueDate:    t.DueDate,
		DueTime:    t.DueTime,
		Recurrence: t.Recurrence,
	}
	if c.noDate {
		draft.DueDate = ""
	}
	if c.noTime {
		draft.DueTime = ""
	}
	if err := parseSchedule(&draft, c.priority, c.date, c.time, c.repeat); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if title != "" {
		draft.Title = title
	}

	t.Title = draft.Title
	t.Priority = draft.Priority
	t.DueDate = draft.DueDate
	t.DueTime = draft.DueTime
	t.Recurrence = draft.Recurrence

	found, err := env.Tasks.Update(ctx, t)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	if !found {
		fmt.Fprintf(errOut, "error: task not found: %s\n", t.ID)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
