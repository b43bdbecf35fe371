// services/reminder_service.go
package services

import (
	"context"
	"sort"
	"time"

	"hr-reminders/models"
	"hr-reminders/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

const (
	TemplateHolidayReminder     = "holiday_reminder"
	TemplateBirthdayReminder    = "birthday_reminder"
	TemplateAnniversaryReminder = "anniversary_reminder"
)

// ReminderService sends holiday, birthday and work anniversary reminders.
// Every operation walks employees one at a time; a failure for one employee
// or company is logged and counted, never returned.
type ReminderService struct {
	employees EmployeeStore
	holidays  HolidayStore
	mailer    Mailer
	texts     TextMessenger
	log       *logrus.Logger

	lang language.Tag
	loc  *time.Location
	now  func() time.Time
}

type Option func(*ReminderService)

func WithClock(now func() time.Time) Option {
	return func(s *ReminderService) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *ReminderService) { s.loc = loc }
}

func WithLanguage(tag language.Tag) Option {
	return func(s *ReminderService) { s.lang = tag }
}

// WithTextMessenger also sends personal reminders as SMS or WhatsApp.
func WithTextMessenger(m TextMessenger) Option {
	return func(s *ReminderService) { s.texts = m }
}

func NewReminderService(employees EmployeeStore, holidays HolidayStore, mailer Mailer, log *logrus.Logger, opts ...Option) *ReminderService {
	s := &ReminderService{
		employees: employees,
		holidays:  holidays,
		mailer:    mailer,
		log:       log,
		lang:      language.English,
		loc:       time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReminderService) today() time.Time {
	return utils.BeginningOfDay(s.now().In(s.loc))
}

// -----------------
// Holiday reminders
// -----------------

func (s *ReminderService) SendHolidayReminders(ctx context.Context, settings Settings) Summary {
	var sum Summary
	if !settings.SendHolidayReminders {
		return sum
	}

	ids, err := s.employees.ListActiveEmployeeIDs(ctx)
	if err != nil {
		s.log.WithError(err).Error("holiday reminders: failed to list employees")
		sum.Failed++
		return sum
	}

	today := s.today()
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		isHoliday, descriptions, err := s.holidays.IsHolidayToday(ctx, id, today, true)
		if err != nil {
			s.skipOrFail(&sum, err, logrus.Fields{"employee": id}, "holiday reminders: holiday lookup failed")
			continue
		}
		if !isHoliday || len(descriptions) == 0 {
			continue
		}
		s.sendHolidayReminder(ctx, id, descriptions, &sum)
	}

	s.log.WithFields(summaryFields("holiday", sum)).Info("holiday reminders processed")
	return sum
}

func (s *ReminderService) sendHolidayReminder(ctx context.Context, id uuid.UUID, descriptions []string, sum *Summary) {
	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("employee", id).Error("holiday reminders: failed to load employee")
		sum.Failed++
		return
	}
	email := employee.Email()
	if email == "" {
		s.unresolved(sum, employee)
		return
	}

	reminderText, msg := holidayText(descriptions, Conjunction(s.lang))
	s.deliver(ctx, sum, Mail{
		Recipients: []string{email},
		Subject:    "Holiday Reminder",
		Template:   TemplateHolidayReminder,
		Args: map[string]any{
			"reminder_text": reminderText,
			"message":       msg,
		},
		Header: "Today is a holiday for you.",
	})
	s.sendText(ctx, sum, employee, reminderText+" "+msg)
}

// ------------------------------------
// Birthday and work anniversary events
// ------------------------------------

// event describes one kind of date-keyed celebration.
type event struct {
	name      string
	field     DateField
	subject   string
	template  string
	header    string
	personKey string
	text      func(persons []models.Employee, today time.Time) (string, string)
}

var birthdayEvent = event{
	name:      "birthday",
	field:     FieldDateOfBirth,
	subject:   "Birthday Reminder",
	template:  TemplateBirthdayReminder,
	header:    "Birthday Reminder 🎂",
	personKey: "birthday_persons",
	text: func(persons []models.Employee, _ time.Time) (string, string) {
		return birthdayText(persons)
	},
}

var anniversaryEvent = event{
	name:      "work_anniversary",
	field:     FieldDateOfJoining,
	subject:   "Work Anniversary Reminder",
	template:  TemplateAnniversaryReminder,
	header:    "🎊️🎊️ Work Anniversary Reminder 🎊️🎊️",
	personKey: "anniversary_persons",
	text:      anniversaryText,
}

func (s *ReminderService) SendBirthdayReminders(ctx context.Context, settings Settings) Summary {
	if settings.StopBirthdayReminders {
		return Summary{}
	}
	return s.sendEventReminders(ctx, birthdayEvent)
}

func (s *ReminderService) SendWorkAnniversaryReminders(ctx context.Context, settings Settings) Summary {
	if !settings.SendWorkAnniversaryReminders {
		return Summary{}
	}
	return s.sendEventReminders(ctx, anniversaryEvent)
}

// EmployeesHavingEventToday returns active employees whose field falls on
// today's day and month, grouped by company.
func (s *ReminderService) EmployeesHavingEventToday(ctx context.Context, field DateField) (map[string][]models.Employee, error) {
	today := s.today()
	employees, err := s.employees.QueryEmployeesByDateField(ctx, field, MatchDayMonth, Window{Start: today, End: today})
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.Employee)
	for _, e := range employees {
		grouped[e.Company] = append(grouped[e.Company], e)
	}
	return grouped, nil
}

func (s *ReminderService) sendEventReminders(ctx context.Context, ev event) Summary {
	var sum Summary

	grouped, err := s.EmployeesHavingEventToday(ctx, ev.field)
	if err != nil {
		s.log.WithError(err).WithField("event", ev.name).Error("failed to query employees")
		sum.Failed++
		return sum
	}

	companies := make([]string, 0, len(grouped))
	for company := range grouped {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	today := s.today()
	for _, company := range companies {
		if ctx.Err() != nil {
			break
		}
		persons := grouped[company]
		if company == "" {
			s.log.WithError(ErrMissingCompany).WithFields(logrus.Fields{
				"event":     ev.name,
				"employees": len(persons),
			}).Warn("skipping reminder group")
			sum.Skipped += len(persons)
			continue
		}
		s.sendCompanyEvent(ctx, ev, company, persons, today, &sum)
	}

	s.log.WithFields(summaryFields(ev.name, sum)).Info("reminders processed")
	return sum
}

func (s *ReminderService) sendCompanyEvent(ctx context.Context, ev event, company string, persons []models.Employee, today time.Time, sum *Summary) {
	fields := logrus.Fields{"event": ev.name, "company": company}

	audience, err := s.employees.ListActiveEmployeesByCompany(ctx, company)
	if err != nil {
		s.log.WithError(err).WithFields(fields).Error("failed to list company employees")
		sum.Failed++
		return
	}

	recipients := RecipientsExcluding(audience, persons)
	if len(recipients) == 0 {
		s.log.WithFields(fields).Debug("no colleagues to notify")
		sum.Skipped++
	} else {
		s.deliver(ctx, sum, s.eventMail(ev, recipients, persons, today))
	}

	if len(persons) < 2 {
		return
	}
	// people sharing the day hear about each other
	for i, person := range persons {
		email := person.Email()
		if email == "" {
			s.unresolved(sum, person)
			continue
		}
		others := without(persons, i)
		mail := s.eventMail(ev, []string{email}, others, today)
		s.deliver(ctx, sum, mail)
		s.sendText(ctx, sum, person, mail.Args["reminder_text"].(string))
	}
}

func (s *ReminderService) eventMail(ev event, recipients []string, persons []models.Employee, today time.Time) Mail {
	reminderText, msg := ev.text(persons, today)
	return Mail{
		Recipients: recipients,
		Subject:    ev.subject,
		Template:   ev.template,
		Args: map[string]any{
			"reminder_text": reminderText,
			"message":       msg,
			ev.personKey:    personArgs(persons, today),
		},
		Header: ev.header,
	}
}

// PersonArg is the template view of an honoree.
type PersonArg struct {
	Name           string
	CompletedYears int
}

func personArgs(persons []models.Employee, today time.Time) []PersonArg {
	out := make([]PersonArg, 0, len(persons))
	for _, p := range persons {
		out = append(out, PersonArg{Name: p.EmployeeName, CompletedYears: CompletedYears(p.DateOfJoining, today)})
	}
	return out
}

// RecipientsExcluding returns the resolved addresses of audience minus those
// of honorees, deduplicated and sorted. Unresolvable addresses are dropped.
func RecipientsExcluding(audience, honorees []models.Employee) []string {
	excluded := make(map[string]struct{}, len(honorees))
	for _, h := range honorees {
		if email := h.Email(); email != "" {
			excluded[email] = struct{}{}
		}
	}
	seen := make(map[string]struct{}, len(audience))
	out := make([]string, 0, len(audience))
	for _, e := range audience {
		email := e.Email()
		if email == "" {
			continue
		}
		if _, ok := excluded[email]; ok {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

func without(persons []models.Employee, skip int) []models.Employee {
	out := make([]models.Employee, 0, len(persons)-1)
	for i, p := range persons {
		if i != skip {
			out = append(out, p)
		}
	}
	return out
}

// -------------------------
// Advance holiday reminders
// -------------------------

// AdvanceWindow returns the range searched for upcoming holidays.
// Weekly covers the next seven days, Monthly covers today through the same
// day next month.
func AdvanceWindow(frequency string, today time.Time) (Window, bool) {
	today = utils.BeginningOfDay(today)
	switch frequency {
	case models.FrequencyWeekly:
		return Window{Start: utils.AddDays(today, 1), End: utils.AddDays(today, 7)}, true
	case models.FrequencyMonthly:
		return Window{Start: today, End: utils.AddMonths(today, 1)}, true
	default:
		return Window{}, false
	}
}

// HolidayArg is the template view of an upcoming holiday.
type HolidayArg struct {
	Date        string
	Description string
	DaysAway    int
}

func (s *ReminderService) SendAdvanceHolidayReminders(ctx context.Context, settings Settings, frequency string) Summary {
	var sum Summary
	if !settings.SendHolidayRemindersInAdvance || settings.Frequency != frequency {
		return sum
	}
	today := s.today()
	window, ok := AdvanceWindow(frequency, today)
	if !ok {
		s.log.WithField("frequency", frequency).Warn("advance holiday reminders: unknown frequency")
		return sum
	}

	ids, err := s.employees.ListActiveEmployeeIDs(ctx)
	if err != nil {
		s.log.WithError(err).Error("advance holiday reminders: failed to list employees")
		sum.Failed++
		return sum
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		holidays, err := s.holidays.GetHolidaysInRange(ctx, id, window.Start, window.End, true)
		if err != nil {
			s.skipOrFail(&sum, err, logrus.Fields{"employee": id}, "advance holiday reminders: holiday lookup failed")
			continue
		}
		if len(holidays) == 0 {
			continue
		}
		s.sendAdvanceReminder(ctx, id, holidays, frequency, today, &sum)
	}

	s.log.WithFields(summaryFields("advance_holiday", sum)).WithField("frequency", frequency).Info("advance holiday reminders processed")
	return sum
}

func (s *ReminderService) sendAdvanceReminder(ctx context.Context, id uuid.UUID, holidays []models.Holiday, frequency string, today time.Time, sum *Summary) {
	employee, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("employee", id).Error("advance holiday reminders: failed to load employee")
		sum.Failed++
		return
	}
	email := employee.Email()
	if email == "" {
		s.unresolved(sum, employee)
		return
	}

	items := make([]HolidayArg, 0, len(holidays))
	for _, h := range holidays {
		items = append(items, HolidayArg{
			Date:        h.HolidayDate.Format("Monday, 02 January 2006"),
			Description: h.Description,
			DaysAway:    utils.DaysBetween(today, utils.DateIn(h.HolidayDate, today.Location())),
		})
	}

	period := "Week"
	if frequency == models.FrequencyMonthly {
		period = "Month"
	}
	reminderText, msg := advanceHolidayText(employee.EmployeeName)
	s.deliver(ctx, sum, Mail{
		Recipients: []string{email},
		Subject:    "Upcoming Holidays Reminder",
		Template:   TemplateHolidayReminder,
		Args: map[string]any{
			"reminder_text":            reminderText,
			"message":                  msg,
			"advance_holiday_reminder": true,
			"holidays":                 items,
			"frequency":                period,
		},
		Header: "Holidays this " + period + ".",
	})
	s.sendText(ctx, sum, employee, reminderText)
}

// -------
// helpers
// -------

func (s *ReminderService) deliver(ctx context.Context, sum *Summary, mail Mail) {
	entry := s.log.WithFields(logrus.Fields{
		"template":   mail.Template,
		"recipients": len(mail.Recipients),
	})
	if err := s.mailer.Send(ctx, mail); err != nil {
		var partial *DeliveryError
		if errors.As(err, &partial) && partial.Delivered > 0 {
			entry.WithError(err).WithFields(logrus.Fields{
				"delivered": partial.Delivered,
				"failed":    partial.Failed,
			}).Warn("reminder reached only some recipients")
			sum.Sent++
			sum.Failed++
			return
		}
		entry.WithError(err).Error("failed to send reminder")
		sum.Failed++
		return
	}
	entry.Debug("reminder sent")
	sum.Sent++
}

func (s *ReminderService) sendText(ctx context.Context, sum *Summary, employee models.Employee, body string) {
	if s.texts == nil || employee.CellNumber == "" {
		return
	}
	if err := s.texts.SendText(ctx, employee.CellNumber, body); err != nil {
		if errors.Is(err, ErrInvalidPhone) {
			s.log.WithError(err).WithField("employee", employee.ID).Warn("skipping text reminder")
			sum.Skipped++
			return
		}
		s.log.WithError(err).WithField("employee", employee.ID).Warn("failed to send text reminder")
		sum.Failed++
		return
	}
	sum.Sent++
}

func (s *ReminderService) unresolved(sum *Summary, employee models.Employee) {
	s.log.WithError(ErrRecipientUnresolved).WithFields(logrus.Fields{
		"employee": employee.ID,
		"name":     employee.EmployeeName,
	}).Warn("skipping reminder")
	sum.Skipped++
}

func (s *ReminderService) skipOrFail(sum *Summary, err error, fields logrus.Fields, msg string) {
	entry := s.log.WithError(err).WithFields(fields)
	if errors.Is(err, ErrNoHolidayList) {
		entry.Debug(msg)
		sum.Skipped++
		return
	}
	entry.Error(msg)
	sum.Failed++
}

func summaryFields(kind string, sum Summary) logrus.Fields {
	return logrus.Fields{
		"kind":    kind,
		"sent":    sum.Sent,
		"failed":  sum.Failed,
		"skipped": sum.Skipped,
	}
}
