package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/output"
	"taskminder/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskminder` (no args) and `taskminder list [filter]`.
type ListCmd struct {
	filter string
	format string
}

// SetOptions sets the filter and format (for testing).
func (c *ListCmd) SetOptions(filter, format string) {
	c.filter, c.format = filter, format
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskminder list [--format text|json|yaml] [all|active|completed]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.format, "format", output.FormatText, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	filterArg := c.filter
	if len(args) > 0 {
		if filterArg != "" {
			fmt.Fprintln(errOut, "error: cannot use both --filter and a filter argument")
			return exitcode.UserError
		}
		filterArg = strings.Join(args, " ")
	}
	filter, err := task.ParseFilter(filterArg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	format := strings.ToLower(c.format)
	if format == "" {
		format = output.FormatText
	}
	if format != output.FormatText && format != output.FormatJSON && format != output.FormatYAML {
		fmt.Fprintf(errOut, "error: invalid format: %s (want text, json or yaml)\n", c.format)
		return exitcode.UserError
	}

	tasks, err := env.Tasks.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	now := env.clock().Now()
	loc := env.Tasks.Location()

	// Numbers come from the unfiltered order so that refs stay stable
	// across filters.
	ordered := task.Sort(tasks, now, loc)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(out, task.View(tasks, filter, now, loc))
	case output.FormatYAML:
		err = output.WriteYAML(out, task.View(tasks, filter, now, loc))
	default:
		shown := 0
		for i, t := range ordered {
			if !filter.Match(t) {
				continue
			}
			output.FormatTask(out, i+1, t, now, loc)
			shown++
		}
		if shown == 0 && !cfg.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
