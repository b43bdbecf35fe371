// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Template     string    `gorm:"type:varchar(40);index"` // holiday_reminder, birthday_reminder, anniversary_reminder
	Subject      string    `gorm:"type:text"`
	Recipients   string    `gorm:"type:text"`        // comma separated
	Status       string    `gorm:"type:varchar(20)"` // sent, partial, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // email, sms, whatsapp
	SentAt       time.Time
	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
