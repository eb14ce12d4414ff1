// Package scheduler runs the periodic leaderboard resets. Expressions are
// parsed with cronexpr, which accepts the standard five fields plus the
// optional seconds and years extensions, and are evaluated in the
// process's local timezone.
package scheduler

import (
	"fmt"
	"time"

	"github.com/hashicorp/cronexpr"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the cron runner. Job handles are plain ints; zero is
// never issued and marks a board without a reset job.
type Scheduler struct {
	log  *zap.Logger
	cron *cron.Cron
}

// New builds a stopped scheduler. Call Start once jobs are registered.
func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		log: log,
		cron: cron.New(
			cron.WithLocation(time.Local),
			cron.WithLogger(cronLogger{log: log}),
		),
	}
}

// Validate reports whether expr is a parseable cron expression.
func Validate(expr string) error {
	if _, err := cronexpr.Parse(expr); err != nil {
		return fmt.Errorf("parsing cron expression %q: %w", expr, err)
	}
	return nil
}

// Schedule registers job to run on expr's cadence and returns its handle.
func (s *Scheduler) Schedule(expr string, job func()) (int, error) {
	parsed, err := cronexpr.Parse(expr)
	if err != nil {
		return 0, fmt.Errorf("parsing cron expression %q: %w", expr, err)
	}
	id := s.cron.Schedule(cronSchedule{expr: parsed}, cron.FuncJob(job))
	return int(id), nil
}

// Cancel removes the job. A zero handle is a no-op.
func (s *Scheduler) Cancel(id int) {
	if id == 0 {
		return
	}
	s.cron.Remove(cron.EntryID(id))
}

// Start launches the runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// cronSchedule adapts a cronexpr expression to the runner's Schedule
// interface.
type cronSchedule struct {
	expr *cronexpr.Expression
}

func (c cronSchedule) Next(t time.Time) time.Time {
	return c.expr.Next(t)
}

// cronLogger routes the runner's own messages through zap.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
