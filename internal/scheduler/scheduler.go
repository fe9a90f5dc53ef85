// Package scheduler runs periodic background jobs, such as re-syncing the
// search index from the content tree, on top of gocron.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
)

// Task is a unit of scheduled work. The context is cancelled when the
// scheduler stops.
type Task func(ctx context.Context) error

// Scheduler wraps a gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a new scheduler instance.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, ctx: ctx, cancel: cancel}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler", slog.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop cancels running tasks and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	s.cancel()
	return s.scheduler.Shutdown()
}

// Every schedules task to run at a fixed interval. Overlapping runs of the
// same job are skipped. Returns the job ID.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) (string, error) {
	if interval <= 0 {
		return "", errors.ValidationError("schedule interval must be positive").
			WithContext("job", name).
			WithContext("interval", interval.String()).
			Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic job %q: %w", name, err)
	}
	return job.ID().String(), nil
}

// run is called by gocron for each tick of a job.
func (s *Scheduler) run(name string, task Task) {
	start := time.Now()
	slog.Debug("Executing scheduled job", slog.String("job", name))
	if err := task(s.ctx); err != nil {
		slog.Error("Scheduled job failed", slog.String("job", name), logfields.Error(err))
		return
	}
	slog.Info("Scheduled job complete", slog.String("job", name),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
