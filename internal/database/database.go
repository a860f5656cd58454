package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gamerslobby/backend/internal/models"
)

// Connect opens the database, runs migrations and returns the handle. The
// handle is passed explicitly to every repository; there is no package
// global.
func Connect(dsn string) (*gorm.DB, error) {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
		// Unique-index violations surface as gorm.ErrDuplicatedKey, the
		// store-level half of the uniqueness guard.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established.")

	err = db.AutoMigrate(&models.User{}, &models.Game{}, &models.Console{}, &models.Lobby{})
	if err != nil {
		return nil, err
	}

	log.Println("Database migrated successfully.")
	return db, nil
}
