package services

import (
	"context"
	"sync"

	"hr-reminders/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Kind names a reminder run that can be triggered on its own.
type Kind string

const (
	KindHolidays          Kind = "holidays"
	KindBirthdays         Kind = "birthdays"
	KindWorkAnniversaries Kind = "work-anniversaries"
	KindAdvanceWeekly     Kind = "advance-weekly"
	KindAdvanceMonthly    Kind = "advance-monthly"
)

var Kinds = []Kind{KindHolidays, KindBirthdays, KindWorkAnniversaries, KindAdvanceWeekly, KindAdvanceMonthly}

// Runner loads settings fresh for every run and hands them to the
// ReminderService. Runs are serialized.
type Runner struct {
	settings  SettingsStore
	reminders *ReminderService
	log       *logrus.Logger

	mu sync.Mutex
}

func NewRunner(settings SettingsStore, reminders *ReminderService, log *logrus.Logger) *Runner {
	return &Runner{settings: settings, reminders: reminders, log: log}
}

func (r *Runner) Run(ctx context.Context, kind Kind) (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := r.settings.GetSettings(ctx)
	if err != nil {
		// the store already hands back defaults
		r.log.WithError(err).Warn("failed to load hr settings, using defaults")
	}

	switch kind {
	case KindHolidays:
		return r.reminders.SendHolidayReminders(ctx, settings), nil
	case KindBirthdays:
		return r.reminders.SendBirthdayReminders(ctx, settings), nil
	case KindWorkAnniversaries:
		return r.reminders.SendWorkAnniversaryReminders(ctx, settings), nil
	case KindAdvanceWeekly:
		return r.reminders.SendAdvanceHolidayReminders(ctx, settings, models.FrequencyWeekly), nil
	case KindAdvanceMonthly:
		return r.reminders.SendAdvanceHolidayReminders(ctx, settings, models.FrequencyMonthly), nil
	default:
		return Summary{}, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
}

// RunAll runs kinds in order and adds up their summaries.
func (r *Runner) RunAll(ctx context.Context, kinds ...Kind) Summary {
	var total Summary
	for _, kind := range kinds {
		sum, err := r.Run(ctx, kind)
		if err != nil {
			r.log.WithError(err).Error("reminder run failed")
			continue
		}
		total.Add(sum)
	}
	return total
}
