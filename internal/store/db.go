// internal/store/db.go
package store

import (
	"fmt"
	"log"

	"rental-notify/internal/config"
	"rental-notify/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	// Auto-migrate (safe in dev; use migrations in prod)
	err = db.AutoMigrate(
		&models.SyncConfig{},
		&models.User{},
		&models.RentalHost{},
		&models.EmailSuppression{},
		&models.EmailAuditLog{},
		&models.SystemEmailSetting{},
	)
	if err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ Notification DB connected & migrated")

	if err := seedSystemEmailSettings(db); err != nil {
		log.Printf("⚠️ Failed to seed system email settings: %v", err)
	} else {
		log.Println("✅ System email settings seeded")
	}
}

func GetDB() *gorm.DB {
	return db
}
