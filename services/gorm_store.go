package services

import (
	"context"
	"fmt"
	"time"

	"hr-reminders/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// GormStore reads settings, employees and holidays from Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetSettings returns the stored HR settings, or the defaults when the row
// has never been saved.
func (s *GormStore) GetSettings(ctx context.Context) (Settings, error) {
	row, err := s.GetSettingsRow(ctx)
	if err != nil {
		return DefaultSettings(), err
	}
	return SettingsFromModel(row), nil
}

func (s *GormStore) GetSettingsRow(ctx context.Context) (models.HRSettings, error) {
	var row models.HRSettings
	err := s.db.WithContext(ctx).Order("created_at").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HRSettings{}, nil
	}
	if err != nil {
		return models.HRSettings{}, errors.Wrap(err, "load hr settings")
	}
	return row, nil
}

// SaveSettings creates the settings row on first use and updates it after.
func (s *GormStore) SaveSettings(ctx context.Context, settings Settings) (models.HRSettings, error) {
	row, err := s.GetSettingsRow(ctx)
	if err != nil {
		return row, err
	}
	settings.ApplyTo(&row)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return row, errors.Wrap(err, "save hr settings")
	}
	return row, nil
}

func (s *GormStore) ListActiveEmployeeIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("status = ?", models.EmployeeStatusActive).
		Order("employee_name").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active employees")
	}
	return ids, nil
}

func (s *GormStore) GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return employee, errors.Wrapf(err, "load employee %s", id)
	}
	return employee, nil
}

func (s *GormStore) ListActiveEmployeesByCompany(ctx context.Context, company string) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).
		Where("company = ? AND status = ?", company, models.EmployeeStatusActive).
		Order("employee_name").
		Find(&employees).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list employees of %s", company)
	}
	return employees, nil
}

func (s *GormStore) QueryEmployeesByDateField(ctx context.Context, field DateField, mode MatchMode, window Window) ([]models.Employee, error) {
	if !field.Valid() {
		return nil, errors.Errorf("invalid date field: %s", field)
	}
	column := string(field)

	query := s.db.WithContext(ctx).Where("status = ?", models.EmployeeStatusActive)
	switch mode {
	case MatchDayMonth:
		query = query.Where(
			fmt.Sprintf("EXTRACT(DAY FROM %s) = ? AND EXTRACT(MONTH FROM %s) = ?", column, column),
			window.Start.Day(), int(window.Start.Month()),
		)
	case MatchRange:
		query = query.Where(
			fmt.Sprintf("%s BETWEEN ? AND ?", column),
			window.Start.Format(dateLayout), window.End.Format(dateLayout),
		)
	default:
		return nil, errors.Errorf("invalid match mode: %d", mode)
	}

	var employees []models.Employee
	if err := query.Order("company, employee_name").Find(&employees).Error; err != nil {
		return nil, errors.Wrapf(err, "query employees by %s", column)
	}
	return employees, nil
}

// holidayListFor resolves the employee's own holiday list, falling back to
// the company default.
func (s *GormStore) holidayListFor(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error) {
	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return uuid.Nil, err
	}
	if employee.HolidayListID != nil {
		return *employee.HolidayListID, nil
	}

	var company models.Company
	err = s.db.WithContext(ctx).Where("name = ?", employee.Company).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrNoHolidayList
	}
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "load company %s", employee.Company)
	}
	if company.DefaultHolidayList == nil {
		return uuid.Nil, ErrNoHolidayList
	}
	return *company.DefaultHolidayList, nil
}

func (s *GormStore) IsHolidayToday(ctx context.Context, employeeID uuid.UUID, day time.Time, onlyNonWeekly bool) (bool, []string, error) {
	listID, err := s.holidayListFor(ctx, employeeID)
	if err != nil {
		return false, nil, err
	}

	query := s.db.WithContext(ctx).
		Model(&models.Holiday{}).
		Where("holiday_list_id = ? AND holiday_date = ?", listID, day.Format(dateLayout))
	if onlyNonWeekly {
		query = query.Where("weekly_off = ?", false)
	}

	var descriptions []string
	if err := query.Order("description").Pluck("description", &descriptions).Error; err != nil {
		return false, nil, errors.Wrap(err, "load today's holidays")
	}
	return len(descriptions) > 0, descriptions, nil
}

func (s *GormStore) GetHolidaysInRange(ctx context.Context, employeeID uuid.UUID, start, end time.Time, onlyNonWeekly bool) ([]models.Holiday, error) {
	listID, err := s.holidayListFor(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Where("holiday_list_id = ? AND holiday_date BETWEEN ? AND ?", listID, start.Format(dateLayout), end.Format(dateLayout))
	if onlyNonWeekly {
		query = query.Where("weekly_off = ?", false)
	}

	var holidays []models.Holiday
	if err := query.Order("holiday_date").Find(&holidays).Error; err != nil {
		return nil, errors.Wrap(err, "load holidays in range")
	}
	return holidays, nil
}

func (s *GormStore) RecentReminderLogs(ctx context.Context, limit int) ([]models.ReminderLog, error) {
	var logs []models.ReminderLog
	err := s.db.WithContext(ctx).Order("sent_at desc").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list reminder logs")
	}
	return logs, nil
}
