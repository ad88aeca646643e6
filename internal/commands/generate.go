package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/planner"
)

func init() {
	Register(&GenerateCmd{})
}

// GenerateCmd implements the generate command.
type GenerateCmd struct{}

func (c *GenerateCmd) Name() string      { return "generate" }
func (c *GenerateCmd) Aliases() []string { return []string{"ai"} }
func (c *GenerateCmd) Synopsis() string  { return "Add AI-generated sub-tasks for a goal" }
func (c *GenerateCmd) Usage() string     { return "taskminder generate <goal...>" }
func (c *GenerateCmd) NeedsStore() bool  { return true }

func (c *GenerateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *GenerateCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	goal := strings.TrimSpace(strings.Join(args, " "))
	if goal == "" {
		fmt.Fprintln(errOut, "error: goal required")
		return exitcode.UserError
	}

	gen, err := env.generator(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(errOut, "generating...")
	}
	created, err := planner.New(gen, env.Tasks, env.logger()).Generate(ctx, goal)
	if err != nil {
		if errors.Is(err, planner.ErrGenerate) {
			fmt.Fprintf(errOut, "error: %v\n", err)
		} else {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		}
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		for _, t := range created {
			fmt.Fprintf(out, "added: %s (%s)\n", t.Title, strings.ToLower(string(t.Priority)))
		}
	}
	return exitcode.Success
}
