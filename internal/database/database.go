package database

import (
	"fmt"
	"strings"

	"salonbook/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// CGO-free sqlite driver, registered under the name the gorm dialector
	// opens below.
	_ "modernc.org/sqlite"
)

// Connect opens PostgreSQL for postgres:// DSNs and SQLite for anything else
// (file path or :memory:), so local development and tests run without a
// server.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates the schema and the conflict-guard index. The partial unique
// index is the storage-side gate against double booking: at most one
// non-cancelled booking may hold a (stylist, date, time) slot, so a cancelled
// booking frees it immediately. The same statement is valid on PostgreSQL and
// SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Customer{},
		&domain.Stylist{},
		&domain.Booking{},
		&domain.Rating{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON bookings (stylist_id, date, time)
WHERE status <> 'cancelled'`).Error
	if err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}
	return nil
}
