package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFiles(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(noEnvFiles(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.ServerPort)
	assert.Equal(t, "0 9 * * *", c.Scheduler.Daily)
	assert.Equal(t, "0 9 * * MON", c.Scheduler.Weekly)
	assert.Equal(t, "0 9 1 * *", c.Scheduler.Monthly)
	assert.Equal(t, 24*time.Hour, c.Auth.JWTExpiry)
	assert.Equal(t, 587, c.SMTP.Port)
	assert.False(t, c.Twilio.Enabled)
	assert.False(t, c.DeliveryLogEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("CRON_DAILY", "30 8 * * *")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DELIVERY_LOG_ENABLED", "true")
	t.Setenv("LOG_FORMAT", "json")

	c, err := Load(noEnvFiles(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", c.ServerPort)
	assert.Equal(t, "30 8 * * *", c.Scheduler.Daily)
	assert.Equal(t, 2525, c.SMTP.Port)
	assert.True(t, c.DeliveryLogEnabled)
	assert.Equal(t, "Asia/Kolkata", c.Scheduler.Location().String())
}

func TestLoadFromEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("REMINDER_LANGUAGE=de\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("REMINDER_LANGUAGE") })

	c, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "de", c.Language)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load(noEnvFiles(t))
		assert.ErrorContains(t, err, "LOG_FORMAT")
	})

	t.Run("twilio without credentials", func(t *testing.T) {
		t.Setenv("TWILIO_ENABLED", "true")
		_, err := Load(noEnvFiles(t))
		assert.ErrorContains(t, err, "TWILIO_ACCOUNT_SID")
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("JWT_EXPIRY", "a day")
		_, err := Load(noEnvFiles(t))
		assert.Error(t, err)
	})
}

func TestUnknownTimezoneFallsBackToUTC(t *testing.T) {
	s := SchedulerOptions{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, s.Location())
}

func TestConnectionString(t *testing.T) {
	d := DatabaseOptions{Host: "db", Port: "5432", User: "hr", Name: "hr", Password: "pw"}
	assert.Equal(t, "host=db port=5432 user=hr dbname=hr password=pw sslmode=disable", d.ConnectionString())

	d.URL = "postgres://hr:pw@db/hr"
	assert.Equal(t, "postgres://hr:pw@db/hr", d.ConnectionString())
}

func TestEnsureJWTSecret(t *testing.T) {
	a := AuthOptions{JWTSecret: "configured"}
	generated, err := a.EnsureJWTSecret()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, "configured", a.JWTSecret)

	a = AuthOptions{}
	generated, err = a.EnsureJWTSecret()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, a.JWTSecret, 44)
}
