package common

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler re-runs a job on a cron schedule in the market's time zone.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{cron: cron.New(cron.WithLocation(loc))}
}

// Every registers job under schedule, a standard five-field cron expression or a
// descriptor such as "@every 30s".
func (s *Scheduler) Every(schedule, name string, job func()) error {
	_, err := s.cron.AddFunc(schedule, func() {
		zap.L().Debug("Running scheduled job", zap.String("job", name))
		job()
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", schedule, name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	zap.L().Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.L().Info("Scheduler stopped")
}
