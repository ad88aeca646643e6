package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"taskminder/internal/cli"
	"taskminder/internal/commands"
	"taskminder/internal/config"
	"taskminder/internal/exitcode"
	"taskminder/internal/store"
	"taskminder/internal/task"
	"taskminder/internal/testutil"
)

// testFactory returns an env factory serving the given store.
func testFactory(s *store.Store) cli.EnvFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*commands.Env, error) {
		return &commands.Env{Tasks: s, Clock: testutil.NewClock(), Logger: logger}, nil
	}
}

func newDispatcher(t *testing.T, tasks ...task.Task) (*cli.Dispatcher, *store.Store) {
	t.Helper()
	s, _ := testutil.NewStore(t, testutil.NewClock(), tasks...)
	return cli.NewDispatcher(commands.DefaultRegistry, testFactory(s)), s
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "taskminder 0.1.0\n" {
		t.Errorf("expected 'taskminder 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagMissingValue(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "Buy milk", "--date"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -date\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	dispatcher, _ := newDispatcher(t, task.Task{
		ID: "a1", Title: "Buy milk", Priority: task.PriorityLow, Recurrence: task.RecurrenceNone,
	})
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	expected := "   1  [ ] Buy milk  (low)\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_FlagsAfterPositionals(t *testing.T) {
	dispatcher, s := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	args := []string{"add", "--config", t.TempDir(), "Pay", "rent", "--priority", "high", "-d", "2024-03-05"}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	tasks, _ := s.Tasks(context.Background())
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Pay rent" || tasks[0].Priority != task.PriorityHigh || tasks[0].DueDate != "2024-03-05" {
		t.Errorf("unexpected task: %+v", tasks[0])
	}
}

func TestDispatcher_DoubleDashEndsFlags(t *testing.T) {
	dispatcher, s := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	args := []string{"add", "--config", t.TempDir(), "--", "--not-a-flag"}
	code := dispatcher.Run(context.Background(), args, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	tasks, _ := s.Tasks(context.Background())
	if len(tasks) != 1 || tasks[0].Title != "--not-a-flag" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestDispatcher_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  driver: postgres\n"), 0600); err != nil {
		t.Fatal(err)
	}
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !bytes.HasPrefix(stderr.Bytes(), []byte("error: ")) {
		t.Errorf("expected error line, got %q", stderr.String())
	}
}

func TestDispatcher_FactoryFailure(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*commands.Env, error) {
		return nil, errors.New("disk on fire")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: backend error: disk on fire\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version", "--debug", "--config", t.TempDir()}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("config loaded")) {
		t.Errorf("expected debug log on stderr, got %q", stderr.String())
	}
}
