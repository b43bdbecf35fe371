package services

import (
	"context"
	"strings"
	"time"

	"hr-reminders/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DeliveryLog records one ReminderLog row per send attempt. A failed insert
// is logged and otherwise ignored.
type DeliveryLog struct {
	db  *gorm.DB
	log *logrus.Logger
	now func() time.Time
}

func NewDeliveryLog(db *gorm.DB, log *logrus.Logger) *DeliveryLog {
	return &DeliveryLog{db: db, log: log, now: time.Now}
}

func (d *DeliveryLog) record(ctx context.Context, entry models.ReminderLog, sendErr error) {
	entry.Status = "sent"
	if sendErr != nil {
		entry.Status = "failed"
		var partial *DeliveryError
		if errors.As(sendErr, &partial) && partial.Delivered > 0 {
			entry.Status = "partial"
		}
		entry.ErrorMessage = sendErr.Error()
	}
	entry.SentAt = d.now()

	if err := d.db.WithContext(ctx).Create(&entry).Error; err != nil {
		d.log.WithError(err).WithField("template", entry.Template).Warn("failed to record reminder delivery")
	}
}

// Mailer wraps next so every Send is recorded.
func (d *DeliveryLog) Mailer(next Mailer) Mailer {
	return &loggingMailer{next: next, log: d}
}

// TextMessenger wraps next so every SendText is recorded.
func (d *DeliveryLog) TextMessenger(next TextMessenger) TextMessenger {
	return &loggingTextMessenger{next: next, log: d}
}

type loggingMailer struct {
	next Mailer
	log  *DeliveryLog
}

func (m *loggingMailer) Send(ctx context.Context, mail Mail) error {
	err := m.next.Send(ctx, mail)
	m.log.record(ctx, models.ReminderLog{
		Template:   mail.Template,
		Subject:    mail.Subject,
		Recipients: strings.Join(mail.Recipients, ","),
		Channel:    "email",
	}, err)
	return err
}

type loggingTextMessenger struct {
	next TextMessenger
	log  *DeliveryLog
}

func (m *loggingTextMessenger) SendText(ctx context.Context, to, body string) error {
	err := m.next.SendText(ctx, to, body)
	channel := "sms"
	if c, ok := m.next.(interface{ Channel(string) string }); ok {
		channel = c.Channel(to)
	}
	m.log.record(ctx, models.ReminderLog{
		Subject:    body,
		Recipients: to,
		Channel:    channel,
	}, err)
	return err
}
