package services

import (
	"fmt"
	"strings"
	"time"

	"hr-reminders/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const teamReminder = "A friendly reminder of an important date for our team."

// "and" as used when listing holiday descriptions.
var conjunctions = map[language.Tag]string{
	language.German:  "und",
	language.French:  "et",
	language.Spanish: "y",
	language.Dutch:   "en",
	language.Chinese: "和",
}

func init() {
	for tag, word := range conjunctions {
		if err := message.SetString(tag, "and", word); err != nil {
			panic(err)
		}
	}
}

// Conjunction returns the localized "and" for tag, falling back to English.
func Conjunction(tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("and")
}

// JoinList renders items as "A, B <conj> C". A single item is returned
// verbatim and an empty list yields "".
func JoinList(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	head := strings.Join(items[:len(items)-1], ", ")
	return head + " " + conjunction + " " + items[len(items)-1]
}

func holidayText(descriptions []string, conjunction string) (reminderText, msg string) {
	reminderText = "This email is to remind you about today's holiday."
	msg = fmt.Sprintf("Holiday is on the occasion of %s.", JoinList(descriptions, conjunction))
	return reminderText, msg
}

func birthdayText(persons []models.Employee) (reminderText, msg string) {
	names := make([]string, 0, len(persons))
	for _, p := range persons {
		names = append(names, p.EmployeeName)
	}
	people := JoinList(names, "&")

	reminderText = fmt.Sprintf("Today is %s's birthday 🎉", people)
	msg = teamReminder + "<br>" + fmt.Sprintf("Everyone, let’s congratulate %s on their birthday.", people)
	return reminderText, msg
}

// CompletedYears is the number of calendar years between joining and today.
func CompletedYears(joined *time.Time, today time.Time) int {
	if joined == nil {
		return 0
	}
	return today.Year() - joined.Year()
}

func anniversaryText(persons []models.Employee, today time.Time) (reminderText, msg string) {
	parts := make([]string, 0, len(persons))
	for _, p := range persons {
		parts = append(parts, fmt.Sprintf("%s completed %d years", p.EmployeeName, CompletedYears(p.DateOfJoining, today)))
	}
	people := JoinList(parts, "&")

	reminderText = fmt.Sprintf("Today %s at our Company! 🎉", people)
	msg = teamReminder + "<br>" + fmt.Sprintf("Everyone, let’s congratulate %s on their work anniversary!", people)
	return reminderText, msg
}

func advanceHolidayText(employeeName string) (reminderText, msg string) {
	reminderText = fmt.Sprintf("Hey %s! This email is to remind you about the upcoming holidays.", employeeName)
	msg = "Below is the list of upcoming holidays for you:"
	return reminderText, msg
}
