package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command, the interactive terminal app.
type UICmd struct{}

func (c *UICmd) Name() string                   { return "ui" }
func (c *UICmd) Aliases() []string              { return []string{"tui"} }
func (c *UICmd) Synopsis() string               { return "Open the interactive task manager" }
func (c *UICmd) Usage() string                  { return "taskminder ui" }
func (c *UICmd) NeedsStore() bool               { return true }
func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	model := tui.New(ctx, tui.Options{
		Tasks:     env.Tasks,
		Generator: env.generator,
		Clock:     env.clock(),
		Interval:  env.interval(),
		Logger:    env.logger(),
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
