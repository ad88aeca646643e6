package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskminder help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskminder                                  List all tasks
  taskminder list [common flags] [--format text|json|yaml] [all|active|completed]
  taskminder add [common flags] [--priority <p>] [--date <YYYY-MM-DD>] [--time <HH:MM>] [--repeat <r>] <title...>
  taskminder create ...                       Alias for add
  taskminder edit [common flags] [--title <t>] [--priority <p>] [--date <d>|--no-date] [--time <t>|--no-time] [--repeat <r>] <ref>
  taskminder done [common flags] <ref>        Toggle completion (recurring tasks move to their next occurrence)
  taskminder rm [common flags] <ref>
  taskminder generate [common flags] <goal...>
  taskminder watch [common flags] [--once]
  taskminder ui [common flags]
  taskminder login [common flags]
  taskminder logout [common flags]
  taskminder help
  taskminder version

A <ref> is the number shown by list, or at least 4 leading characters of a task id.
Priorities: low, medium, high. Repeat: none, hourly, daily, weekly.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
