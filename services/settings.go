package services

import "hr-reminders/models"

// Settings is the resolved HR configuration handed to every dispatch call.
type Settings struct {
	SendHolidayReminders          bool   `json:"sendHolidayReminders"`
	StopBirthdayReminders         bool   `json:"stopBirthdayReminders"`
	SendWorkAnniversaryReminders  bool   `json:"sendWorkAnniversaryReminders"`
	SendHolidayRemindersInAdvance bool   `json:"sendHolidayRemindersInAdvance"`
	Frequency                     string `json:"frequency"`
}

// DefaultSettings applies when no settings row exists. Frequency stays empty,
// so advance reminders only go out once someone picks one.
func DefaultSettings() Settings {
	return Settings{
		SendHolidayReminders:          true,
		StopBirthdayReminders:         false,
		SendWorkAnniversaryReminders:  true,
		SendHolidayRemindersInAdvance: true,
	}
}

func SettingsFromModel(row models.HRSettings) Settings {
	s := DefaultSettings()
	if row.SendHolidayReminders != nil {
		s.SendHolidayReminders = *row.SendHolidayReminders
	}
	if row.StopBirthdayReminders != nil {
		s.StopBirthdayReminders = *row.StopBirthdayReminders
	}
	if row.SendWorkAnniversaryReminders != nil {
		s.SendWorkAnniversaryReminders = *row.SendWorkAnniversaryReminders
	}
	if row.SendHolidayRemindersInAdvance != nil {
		s.SendHolidayRemindersInAdvance = *row.SendHolidayRemindersInAdvance
	}
	s.Frequency = row.Frequency
	return s
}

// ApplyTo copies s onto row, setting every flag explicitly.
func (s Settings) ApplyTo(row *models.HRSettings) {
	row.SendHolidayReminders = boolPtr(s.SendHolidayReminders)
	row.StopBirthdayReminders = boolPtr(s.StopBirthdayReminders)
	row.SendWorkAnniversaryReminders = boolPtr(s.SendWorkAnniversaryReminders)
	row.SendHolidayRemindersInAdvance = boolPtr(s.SendHolidayRemindersInAdvance)
	row.Frequency = s.Frequency
}

func boolPtr(b bool) *bool { return &b }
