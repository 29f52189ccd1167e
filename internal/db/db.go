package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/config"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate is also run by the service tests against their own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Service{},
		&models.Booking{},
		&models.Feedback{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// A customer may hold at most one open (pending or accepted) booking per
	// service. Partial index; AutoMigrate cannot express it.
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_bookings_open_per_customer_service
        ON bookings (customer_id, service_id)
        WHERE status IN ('pending', 'accepted')
    `).Error
}
