package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMail(t *testing.T) {
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	t.Run("birthday", func(t *testing.T) {
		reminderText, msg := birthdayText(nil)
		body, err := RenderMail(tmpl, Mail{
			Template: TemplateBirthdayReminder,
			Header:   "Birthday Reminder 🎂",
			Args: map[string]any{
				"reminder_text":    reminderText,
				"message":          msg,
				"birthday_persons": []PersonArg{{Name: "Jim"}, {Name: "<Rim>"}},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, body, "Birthday Reminder 🎂")
		assert.Contains(t, body, "<li>Jim</li>")
		assert.Contains(t, body, "<li>&lt;Rim&gt;</li>")
		assert.Contains(t, body, "our team.<br>Everyone")
	})

	t.Run("anniversary", func(t *testing.T) {
		body, err := RenderMail(tmpl, Mail{
			Template: TemplateAnniversaryReminder,
			Args: map[string]any{
				"reminder_text":       "Today Ann completed 5 years at our Company! 🎉",
				"message":             "hello <b>team</b>",
				"anniversary_persons": []PersonArg{{Name: "Ann", CompletedYears: 5}},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, body, "Ann (5 years)")
		assert.Contains(t, body, "hello &lt;b&gt;team&lt;/b&gt;")
	})

	t.Run("advance holiday list", func(t *testing.T) {
		body, err := RenderMail(tmpl, Mail{
			Template: TemplateHolidayReminder,
			Header:   "Holidays this Week.",
			Args: map[string]any{
				"reminder_text":            "Hey Asha!",
				"message":                  "Below is the list of upcoming holidays for you:",
				"advance_holiday_reminder": true,
				"holidays":                 []HolidayArg{{Date: "Thursday, 18 January 2024", Description: "Pongal", DaysAway: 3}},
				"frequency":                "Week",
			},
		})
		require.NoError(t, err)
		assert.Contains(t, body, "Holidays this Week.")
		assert.Contains(t, body, "Thursday, 18 January 2024")
		assert.Contains(t, body, "in 3 days")
	})

	t.Run("plain holiday has no list", func(t *testing.T) {
		body, err := RenderMail(tmpl, Mail{
			Template: TemplateHolidayReminder,
			Args:     map[string]any{"reminder_text": "x", "message": "Holiday is on the occasion of Diwali."},
		})
		require.NoError(t, err)
		assert.Contains(t, body, "Holiday is on the occasion of Diwali.")
		assert.NotContains(t, body, "<table")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := RenderMail(tmpl, Mail{Template: "missing"})
		assert.Error(t, err)
	})
}
