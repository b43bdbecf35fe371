// controllers/reminder.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hr-reminders/models"
	"hr-reminders/services"
	"hr-reminders/utils"

	"github.com/gin-gonic/gin"
)

type ReminderRunner interface {
	Run(ctx context.Context, kind services.Kind) (services.Summary, error)
}

type ReminderLogLister interface {
	RecentReminderLogs(ctx context.Context, limit int) ([]models.ReminderLog, error)
}

type ReminderController struct {
	Runner ReminderRunner
	Logs   ReminderLogLister
}

// RunReminders triggers one reminder kind now and returns its summary.
func (r *ReminderController) RunReminders(c *gin.Context) {
	kind := services.Kind(c.Param("kind"))

	summary, err := r.Runner.Run(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, services.ErrUnknownKind) {
			utils.RespondWithError(c, http.StatusNotFound, "Unknown reminder kind")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to run reminders")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":    kind,
		"summary": summary,
	})
}

// GetReminderLogs lists the most recent deliveries, newest first.
func (r *ReminderController) GetReminderLogs(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			utils.RespondWithError(c, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	logs, err := r.Logs.RecentReminderLogs(c.Request.Context(), limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}
