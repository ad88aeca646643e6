package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/output"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. On a recurring task it moves the
// task to its next occurrence; on a completed task it reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskminder done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(ctx, env, args, errOut)
	if code != exitcode.Success {
		return code
	}

	updated, found, err := env.Tasks.Toggle(ctx, t.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	if !found {
		fmt.Fprintf(errOut, "error: task not found: %s\n", t.ID)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		if t.Recurrence.Recurring() && !t.Completed {
			fmt.Fprintf(out, "ok (next due %s)\n", output.Due(updated))
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
