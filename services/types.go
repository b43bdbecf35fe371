package services

import (
	"context"
	"time"

	"hr-reminders/models"

	"github.com/google/uuid"
)

// DateField names an employee date column that reminders are keyed on.
type DateField string

const (
	FieldDateOfBirth   DateField = "date_of_birth"
	FieldDateOfJoining DateField = "date_of_joining"
)

func (f DateField) Valid() bool {
	return f == FieldDateOfBirth || f == FieldDateOfJoining
}

type MatchMode int

const (
	// MatchDayMonth matches rows whose day and month equal Window.Start.
	MatchDayMonth MatchMode = iota
	// MatchRange matches rows between Window.Start and Window.End inclusive.
	MatchRange
)

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (Settings, error)
}

type EmployeeStore interface {
	ListActiveEmployeeIDs(ctx context.Context) ([]uuid.UUID, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error)
	ListActiveEmployeesByCompany(ctx context.Context, company string) ([]models.Employee, error)
	QueryEmployeesByDateField(ctx context.Context, field DateField, mode MatchMode, window Window) ([]models.Employee, error)
}

type HolidayStore interface {
	IsHolidayToday(ctx context.Context, employeeID uuid.UUID, day time.Time, onlyNonWeekly bool) (bool, []string, error)
	GetHolidaysInRange(ctx context.Context, employeeID uuid.UUID, start, end time.Time, onlyNonWeekly bool) ([]models.Holiday, error)
}

// Mail is one reminder addressed to one or more recipients. Template names
// an HTML template under templates/ and Args is its data.
type Mail struct {
	Recipients []string
	Subject    string
	Template   string
	Args       map[string]any
	Header     string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// TextMessenger delivers a short plain text copy of a reminder to a phone.
type TextMessenger interface {
	SendText(ctx context.Context, to, body string) error
}

// Summary counts the outcome of one dispatch run. A group mail that reached
// only some of its recipients counts once as Sent and once as Failed.
type Summary struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

func (s *Summary) Add(other Summary) {
	s.Sent += other.Sent
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}
