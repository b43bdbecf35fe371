package models

import (
	"time"

	"github.com/google/uuid"
)

type HolidayList struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name     string    `gorm:"uniqueIndex;not null"`
	FromDate time.Time `gorm:"type:date;not null"`
	ToDate   time.Time `gorm:"type:date;not null"`

	Holidays []Holiday `gorm:"foreignKey:HolidayListID"`
}

type Holiday struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	HolidayListID uuid.UUID `gorm:"type:uuid;index;not null"`
	HolidayDate   time.Time `gorm:"type:date;index;not null"`
	Description   string    `gorm:"type:text"`
	WeeklyOff     bool      `gorm:"default:false"`
}
