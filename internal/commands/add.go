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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
	date     string
	time     string
	repeat   string
}

// SetSchedule sets the flag values (for testing).
func (c *AddCmd) SetSchedule(priority, date, clock, repeat string) {
	c.priority, c.date, c.time, c.repeat = priority, date, clock, repeat
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskminder add [--priority <p>] [--date <YYYY-MM-DD>] [--time <HH:MM>] [--repeat <r>] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.StringVar(&c.time, "time", "", "")
	fs.StringVar(&c.time, "t", "", "")
	fs.StringVar(&c.repeat, "repeat", "", "")
	fs.StringVar(&c.repeat, "r", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := task.Draft{
		Title:      title,
		Priority:   task.PriorityMedium,
		Recurrence: task.RecurrenceNone,
	}
	if err := parseSchedule(&draft, c.priority, c.date, c.time, c.repeat); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	created, err := env.Tasks.Create(ctx, draft)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	env.logger().Debug("task added", "id", created.ID)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
