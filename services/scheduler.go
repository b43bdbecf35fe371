package services

import (
	"context"

	"hr-reminders/config"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler triggers the Runner on cron schedules: holidays, birthdays and
// work anniversaries daily, advance reminders weekly and monthly.
type Scheduler struct {
	c      *cron.Cron
	runner *Runner
	opts   config.SchedulerOptions
	log    *logrus.Logger
}

func NewScheduler(opts config.SchedulerOptions, runner *Runner, log *logrus.Logger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		c: cron.New(
			cron.WithLocation(opts.Location()),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger)),
		),
		runner: runner,
		opts:   opts,
		log:    log,
	}
}

type job struct {
	spec  string
	kinds []Kind
}

func (s *Scheduler) jobs() []job {
	return []job{
		{spec: s.opts.Daily, kinds: []Kind{KindHolidays, KindBirthdays, KindWorkAnniversaries}},
		{spec: s.opts.Weekly, kinds: []Kind{KindAdvanceWeekly}},
		{spec: s.opts.Monthly, kinds: []Kind{KindAdvanceMonthly}},
	}
}

// Start registers every job and starts the cron loop. Jobs run with ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, j := range s.jobs() {
		kinds := j.kinds
		if _, err := s.c.AddFunc(j.spec, func() {
			sum := s.runner.RunAll(ctx, kinds...)
			s.log.WithFields(logrus.Fields{
				"kinds":   kinds,
				"sent":    sum.Sent,
				"failed":  sum.Failed,
				"skipped": sum.Skipped,
			}).Info("scheduled reminders finished")
		}); err != nil {
			return errors.Wrapf(err, "schedule %q", j.spec)
		}
	}
	s.c.Start()
	s.log.WithField("timezone", s.opts.Timezone).Info("reminder scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
	s.log.Info("reminder scheduler stopped")
}
