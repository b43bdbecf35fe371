package controllers

import (
	"context"
	"net/http"

	"hr-reminders/models"
	"hr-reminders/services"
	"hr-reminders/utils"

	"github.com/gin-gonic/gin"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context) (services.Settings, error)
	SaveSettings(ctx context.Context, settings services.Settings) (models.HRSettings, error)
}

// UpdateSettingsInput leaves a field unchanged when it is omitted.
type UpdateSettingsInput struct {
	SendHolidayReminders          *bool   `json:"sendHolidayReminders"`
	StopBirthdayReminders         *bool   `json:"stopBirthdayReminders"`
	SendWorkAnniversaryReminders  *bool   `json:"sendWorkAnniversaryReminders"`
	SendHolidayRemindersInAdvance *bool   `json:"sendHolidayRemindersInAdvance"`
	Frequency                     *string `json:"frequency" binding:"omitempty,oneof=Weekly Monthly"`
}

type SettingsController struct {
	Settings SettingsRepository
}

func (s *SettingsController) GetSettings(c *gin.Context) {
	settings, err := s.Settings.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *SettingsController) UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := s.Settings.GetSettings(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if input.SendHolidayReminders != nil {
		settings.SendHolidayReminders = *input.SendHolidayReminders
	}
	if input.StopBirthdayReminders != nil {
		settings.StopBirthdayReminders = *input.StopBirthdayReminders
	}
	if input.SendWorkAnniversaryReminders != nil {
		settings.SendWorkAnniversaryReminders = *input.SendWorkAnniversaryReminders
	}
	if input.SendHolidayRemindersInAdvance != nil {
		settings.SendHolidayRemindersInAdvance = *input.SendHolidayRemindersInAdvance
	}
	if input.Frequency != nil {
		settings.Frequency = *input.Frequency
	}

	if _, err := s.Settings.SaveSettings(c.Request.Context(), settings); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
