package db

import (
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.AttendanceRecord{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
