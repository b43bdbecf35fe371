package routes

import (
	"net/http"
	"time"

	"hr-reminders/config"
	"hr-reminders/controllers"
	"hr-reminders/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Log         *logrus.Logger
	SlowRequest time.Duration
	JWTSecret   string

	Auth      *controllers.AuthController
	Settings  *controllers.SettingsController
	Reminders *controllers.ReminderController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.PerformanceLogger(d.Log, d.SlowRequest))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", d.Auth.Login)

		auth.Use(utils.AuthMiddleware(d.JWTSecret))
		auth.GET("/me", d.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(d.JWTSecret))
	{
		api.GET("/settings", d.Settings.GetSettings)
		api.PUT("/settings", d.Settings.UpdateSettings)

		reminders := api.Group("/reminders")
		{
			reminders.POST("/:kind/run", d.Reminders.RunReminders)
		}

		api.GET("/reminder-logs", d.Reminders.GetReminderLogs)
	}

	return r
}
