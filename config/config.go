package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maxarisa/family-health-app/models"
)

var DB *gorm.DB

// LoadEnv reads .env if present. Missing file is fine in deployed
// environments where variables come from the platform.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		logrus.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate creates or updates the schema. Shared with the test setup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PrivacySettings{},
		&models.Family{},
		&models.FamilyMember{},
		&models.FamilyInvitation{},
		&models.WaterLog{},
		&models.ExerciseLog{},
		&models.WeightLog{},
		&models.SleepLog{},
		&models.BloodPressureLog{},
		&models.HeartRateLog{},
		&models.TemperatureLog{},
		&models.Goal{},
		&models.Reminder{},
	)
}
