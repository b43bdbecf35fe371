package config

import (
	"strings"

	"hr-reminders/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(opts DatabaseOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(opts.ConnectionString()), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "database handle")
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	return db, nil
}

func Migrate(db *gorm.DB, log *logrus.Logger) error {
	err := db.AutoMigrate(
		&models.Company{},
		&models.HolidayList{},
		&models.Holiday{},
		&models.Employee{},
		&models.HRSettings{},
		&models.ReminderLog{},
		&models.User{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	log.Debug("database schema migrated")
	return nil
}

// SeedAdmin creates the admin user on first start when both email and
// password are given. An existing user is left untouched.
func SeedAdmin(db *gorm.DB, email, password string, log *logrus.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "look up admin")
	}
	if count > 0 {
		return nil
	}
	admin := models.User{Email: email, Password: password, Name: "Administrator", IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		return errors.Wrap(err, "create admin")
	}
	log.WithField("email", email).Info("admin user created")
	return nil
}
