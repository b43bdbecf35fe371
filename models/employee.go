package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
	EmployeeStatusLeft     = "Left"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EmployeeName string    `gorm:"not null"`
	Company      string    `gorm:"index"`

	UserID        string // login email of the linked user, preferred address
	PersonalEmail string
	CompanyEmail  string
	CellNumber    string

	DateOfBirth   *time.Time `gorm:"type:date"`
	DateOfJoining *time.Time `gorm:"type:date"`
	Status        string     `gorm:"type:varchar(20);default:'Active';index"`

	HolidayListID *uuid.UUID `gorm:"type:uuid;index"`

	gorm.Model
}

// Email returns the address reminders go to: the user id, then the
// personal email, then the company email. Empty when none is set.
func (e Employee) Email() string {
	switch {
	case e.UserID != "":
		return e.UserID
	case e.PersonalEmail != "":
		return e.PersonalEmail
	default:
		return e.CompanyEmail
	}
}

func (e Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

type Company struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name               string     `gorm:"uniqueIndex;not null"`
	DefaultHolidayList *uuid.UUID `gorm:"type:uuid"`
}
