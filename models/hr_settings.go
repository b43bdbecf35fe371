package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FrequencyWeekly  = "Weekly"
	FrequencyMonthly = "Monthly"
)

// HRSettings is a single row table. Nil flags fall back to their defaults.
type HRSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	SendHolidayReminders          *bool
	StopBirthdayReminders         *bool
	SendWorkAnniversaryReminders  *bool
	SendHolidayRemindersInAdvance *bool
	Frequency                     string `gorm:"type:varchar(10)"`

	gorm.Model
}

func (s *HRSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (HRSettings) TableName() string {
	return "hr_settings"
}
