package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"taskminder/internal/backend/filestore"
	"taskminder/internal/backend/gemini"
	"taskminder/internal/backend/sqlitestore"
	"taskminder/internal/config"
	"taskminder/internal/logging"
	"taskminder/internal/reminder"
	"taskminder/internal/service"
	"taskminder/internal/store"
)

// Env carries the services a command operates on.
type Env struct {
	Tasks service.Service

	// Generator is used when set; otherwise NewGenerator is called on
	// first use.
	Generator    service.Generator
	NewGenerator func(ctx context.Context) (service.Generator, error)

	Clock    clockwork.Clock
	Interval time.Duration
	Logger   *slog.Logger

	// Closer releases storage, if the backend needs it.
	Closer io.Closer
}

// Close releases resources held by the environment.
func (e *Env) Close() error {
	if e == nil || e.Closer == nil {
		return nil
	}
	return e.Closer.Close()
}

func (e *Env) clock() clockwork.Clock {
	if e.Clock == nil {
		return clockwork.NewRealClock()
	}
	return e.Clock
}

func (e *Env) logger() *slog.Logger {
	return logging.OrDiscard(e.Logger)
}

func (e *Env) interval() time.Duration {
	if e.Interval <= 0 {
		return reminder.DefaultInterval
	}
	return e.Interval
}

// generator returns the AI generator, building it on first use.
func (e *Env) generator(ctx context.Context) (service.Generator, error) {
	if e.Generator != nil {
		return e.Generator, nil
	}
	if e.NewGenerator == nil {
		return nil, gemini.ErrNoCredentials
	}
	gen, err := e.NewGenerator(ctx)
	if err != nil {
		return nil, err
	}
	e.Generator = gen
	return gen, nil
}

// OpenEnv opens the configured storage backend and wires the task store,
// clock and AI generator.
func OpenEnv(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Env, error) {
	logger = logging.OrDiscard(logger)
	loc, err := cfg.Settings.Location()
	if err != nil {
		return nil, err
	}

	var (
		slot   store.Slot
		closer io.Closer
	)
	path := cfg.StoragePath()
	switch cfg.Settings.Storage.Driver {
	case config.DriverSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		slot, closer = s, s
	default:
		s, err := filestore.New(path)
		if err != nil {
			return nil, err
		}
		slot = s
	}
	logger.Debug("storage opened", "driver", cfg.Settings.Storage.Driver, "path", path)

	clock := clockwork.NewRealClock()
	tasks, err := store.Open(ctx, slot,
		store.WithClock(clock),
		store.WithLocation(loc),
		store.WithLogger(logger),
	)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	return &Env{
		Tasks: tasks,
		NewGenerator: func(ctx context.Context) (service.Generator, error) {
			return gemini.New(ctx, cfg)
		},
		Clock:    clock,
		Interval: cfg.Settings.Reminders.Interval,
		Logger:   logger,
		Closer:   closer,
	}, nil
}
