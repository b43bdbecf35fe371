package services

import (
	"context"
	"sync"
	"time"

	"hr-reminders/models"
	"hr-reminders/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

type fakeStore struct {
	employees []models.Employee

	todayHolidays map[uuid.UUID][]string
	rangeHolidays map[uuid.UUID][]models.Holiday
	noHolidayList map[uuid.UUID]bool

	settings Settings

	listErr    error
	companyErr map[string]error
	queryErr   error

	lastRange Window
}

func newFakeStore(employees ...models.Employee) *fakeStore {
	return &fakeStore{
		employees:     employees,
		todayHolidays: map[uuid.UUID][]string{},
		rangeHolidays: map[uuid.UUID][]models.Holiday{},
		noHolidayList: map[uuid.UUID]bool{},
		companyErr:    map[string]error{},
		settings:      DefaultSettings(),
	}
}

func (f *fakeStore) GetSettings(ctx context.Context) (Settings, error) {
	return f.settings, nil
}

func (f *fakeStore) ListActiveEmployeeIDs(ctx context.Context) ([]uuid.UUID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var ids []uuid.UUID
	for _, e := range f.employees {
		if e.IsActive() {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

func (f *fakeStore) GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Employee{}, errors.Errorf("employee %s not found", id)
}

func (f *fakeStore) ListActiveEmployeesByCompany(ctx context.Context, company string) ([]models.Employee, error) {
	if err := f.companyErr[company]; err != nil {
		return nil, err
	}
	var out []models.Employee
	for _, e := range f.employees {
		if e.Company == company && e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) QueryEmployeesByDateField(ctx context.Context, field DateField, mode MatchMode, window Window) ([]models.Employee, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []models.Employee
	for _, e := range f.employees {
		if !e.IsActive() {
			continue
		}
		date := e.DateOfBirth
		if field == FieldDateOfJoining {
			date = e.DateOfJoining
		}
		if date != nil && utils.SameDayMonth(*date, window.Start) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) IsHolidayToday(ctx context.Context, employeeID uuid.UUID, day time.Time, onlyNonWeekly bool) (bool, []string, error) {
	if f.noHolidayList[employeeID] {
		return false, nil, ErrNoHolidayList
	}
	descriptions := f.todayHolidays[employeeID]
	return len(descriptions) > 0, descriptions, nil
}

func (f *fakeStore) GetHolidaysInRange(ctx context.Context, employeeID uuid.UUID, start, end time.Time, onlyNonWeekly bool) ([]models.Holiday, error) {
	f.lastRange = Window{Start: start, End: end}
	if f.noHolidayList[employeeID] {
		return nil, ErrNoHolidayList
	}
	return f.rangeHolidays[employeeID], nil
}

type recordingMailer struct {
	mu     sync.Mutex
	sent   []Mail
	failOn map[string]error
}

func (m *recordingMailer) Send(ctx context.Context, mail Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range mail.Recipients {
		if err := m.failOn[r]; err != nil {
			return err
		}
	}
	m.sent = append(m.sent, mail)
	return nil
}

// to returns the mails whose recipients are exactly the given addresses.
func (m *recordingMailer) to(recipients ...string) []Mail {
	var out []Mail
	for _, mail := range m.sent {
		if equalStrings(mail.Recipients, recipients) {
			out = append(out, mail)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type mockTextMessenger struct {
	mock.Mock
}

func (m *mockTextMessenger) SendText(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func employee(name, company, email string) models.Employee {
	return models.Employee{
		ID:           uuid.New(),
		EmployeeName: name,
		Company:      company,
		UserID:       email,
		Status:       models.EmployeeStatusActive,
	}
}
