package config

import (
	"fmt"
	"os"
	"time"

	"hr-reminders/utils"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type DatabaseOptions struct {
	URL      string `env:"DB_URL"`
	Name     string `env:"DB_NAME" envDefault:"hr_reminders"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`

	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// ConnectionString prefers DB_URL and otherwise builds a key/value DSN.
func (d *DatabaseOptions) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type SMTPOptions struct {
	Host     string `env:"SMTP_HOST" envDefault:"localhost"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"hr@localhost"`
	FromName string `env:"SMTP_FROM_NAME" envDefault:"HR"`
}

type TwilioOptions struct {
	Enabled         bool   `env:"TWILIO_ENABLED" envDefault:"false"`
	WhatsAppEnabled bool   `env:"TWILIO_WHATSAPP_ENABLED" envDefault:"false"`
	AccountSID      string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken       string `env:"TWILIO_AUTH_TOKEN"`
	PhoneNumber     string `env:"TWILIO_PHONE_NUMBER"`
	WhatsAppNumber  string `env:"TWILIO_WHATSAPP_NUMBER"`
}

type SchedulerOptions struct {
	Enabled  bool   `env:"SCHEDULER_ENABLED" envDefault:"true"`
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
	Daily    string `env:"CRON_DAILY" envDefault:"0 9 * * *"`
	Weekly   string `env:"CRON_WEEKLY" envDefault:"0 9 * * MON"`
	Monthly  string `env:"CRON_MONTHLY" envDefault:"0 9 1 * *"`
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (s *SchedulerOptions) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type AuthOptions struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiry     time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

// EnsureJWTSecret fills an empty JWTSecret with a random key and reports
// whether it did. Tokens signed with a generated key do not survive a restart.
func (a *AuthOptions) EnsureJWTSecret() (bool, error) {
	if a.JWTSecret != "" {
		return false, nil
	}
	secret, err := utils.GenerateJWTSecret()
	if err != nil {
		return false, errors.Wrap(err, "generate jwt secret")
	}
	a.JWTSecret = secret
	return true, nil
}

type LoggingOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text or json
}

type Configuration struct {
	Database  DatabaseOptions
	SMTP      SMTPOptions
	Twilio    TwilioOptions
	Scheduler SchedulerOptions
	Auth      AuthOptions
	Logging   LoggingOptions

	ServerPort         string        `env:"PORT" envDefault:"8080"`
	Language           string        `env:"REMINDER_LANGUAGE" envDefault:"en"`
	DeliveryLogEnabled bool          `env:"DELIVERY_LOG_ENABLED" envDefault:"false"`
	SlowRequest        time.Duration `env:"SLOW_REQUEST_THRESHOLD" envDefault:"200ms"`
}

// LoadEnv loads whichever of the given dotenv files exist. Variables already
// present in the environment win.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads .env files and parses the environment into a Configuration.
func Load(envFiles ...string) (*Configuration, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env", ".env.local"}
	}
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, errors.Wrap(err, "load env files")
	}

	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Validate() error {
	if c.ServerPort == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Twilio.Enabled && (c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "") {
		return errors.New("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN are required when TWILIO_ENABLED is set")
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return errors.Errorf("LOG_FORMAT must be 'text' or 'json', got '%s'", c.Logging.Format)
	}
	return nil
}
