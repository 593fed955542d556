// Package scheduler wires up the cron job that drives the monitor cycle.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"jobwatch/monitor-service/internal/monitor"
)

// Scheduler wraps robfig/cron and manages the monitor loop. Cycles are
// serialized: if one overruns the interval, the next fires after it drains
// instead of overlapping it.
type Scheduler struct {
	cron    *cron.Cron
	monitor *monitor.Monitor
	logger  *slog.Logger
	spec    string // cron spec, e.g. "@every 300s"
}

// New creates a Scheduler that fires every interval seconds.
func New(m *monitor.Monitor, intervalSeconds int, logger *slog.Logger) *Scheduler {
	cl := cronLogger{logger}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl)),
		monitor: m,
		logger:  logger,
		spec:    fmt.Sprintf("@every %ds", intervalSeconds),
	}
}

// Start registers the cycle job and starts the scheduler. One cycle runs
// immediately so new offers are reported without waiting for the first tick;
// the DelayIfStillRunning chain keeps it serialized with the cron-fired ones.
func (s *Scheduler) Start(ctx context.Context) error {
	job := cron.NewChain(cron.DelayIfStillRunning(cronLogger{s.logger})).
		Then(cron.FuncJob(func() { s.monitor.RunCycle(ctx) }))

	if _, err := s.cron.AddJob(s.spec, job); err != nil {
		return fmt.Errorf("cron.AddJob: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", slog.String("spec", s.spec))

	go job.Run()

	return nil
}

// Stop halts scheduling and waits for a running cycle to drain.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err.Error()}, keysAndValues...)
	l.logger.Error("cron: "+msg, args...)
}
