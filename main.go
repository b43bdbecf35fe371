package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr-reminders/config"
	"hr-reminders/controllers"
	"hr-reminders/routes"
	"hr-reminders/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log := config.NewLogger(cfg.Logging)
	generated, err := cfg.Auth.EnsureJWTSecret()
	if err != nil {
		log.WithError(err).Fatal("failed to set up jwt secret")
	}
	if generated {
		log.Warn("JWT_SECRET is not set, using a random key; sessions end on restart")
	}
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := config.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	if err := config.SeedAdmin(db, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, log); err != nil {
		log.WithError(err).Fatal("failed to seed admin user")
	}

	store := services.NewGormStore(db)

	var mailer services.Mailer
	smtp, err := services.NewSMTPMailer(cfg.SMTP, log)
	if err != nil {
		log.WithError(err).Fatal("failed to set up mailer")
	}
	mailer = smtp

	var texts services.TextMessenger
	if cfg.Twilio.Enabled {
		texts = services.NewTwilioMessenger(cfg.Twilio, log)
	}

	if cfg.DeliveryLogEnabled {
		deliveries := services.NewDeliveryLog(db, log)
		mailer = deliveries.Mailer(mailer)
		if texts != nil {
			texts = deliveries.TextMessenger(texts)
		}
	}

	opts := []services.Option{
		services.WithLocation(cfg.Scheduler.Location()),
		services.WithLanguage(language.Make(cfg.Language)),
	}
	if texts != nil {
		opts = append(opts, services.WithTextMessenger(texts))
	}
	reminders := services.NewReminderService(store, store, mailer, log, opts...)
	runner := services.NewRunner(store, reminders, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scheduler *services.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = services.NewScheduler(cfg.Scheduler, runner, log)
		if err := scheduler.Start(ctx); err != nil {
			log.WithError(err).Fatal("failed to start scheduler")
		}
	}

	r := routes.SetupRouter(routes.Deps{
		Log:         log,
		SlowRequest: cfg.SlowRequest,
		JWTSecret:   cfg.Auth.JWTSecret,
		Auth: &controllers.AuthController{
			DB:        db,
			JWTSecret: cfg.Auth.JWTSecret,
			JWTExpiry: cfg.Auth.JWTExpiry,
			Log:       log,
		},
		Settings:  &controllers.SettingsController{Settings: store},
		Reminders: &controllers.ReminderController{Runner: runner, Logs: store},
	})

	printRoutes(r, log)

	srv := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go func() {
		log.WithField("port", cfg.ServerPort).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	if scheduler != nil {
		scheduler.Stop()
	}
}

func printRoutes(r *gin.Engine, log *logrus.Logger) {
	for _, route := range r.Routes() {
		log.Debugf("%-6s %s", route.Method, route.Path)
	}
}
