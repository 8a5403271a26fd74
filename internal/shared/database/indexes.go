package database

import (
	"gorm.io/gorm"
)

// MigrateIndexes adds the indexes AutoMigrate cannot express
func MigrateIndexes(db *gorm.DB) error {
	// Dashboard loads a user's whole collection in creation order
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at, booking_id);
	`).Error
	if err != nil {
		return err
	}

	// Route search matches on lower-cased city names
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_route_templates_cities
		ON route_templates (LOWER(from_city), LOWER(to_city));
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_cancellations_user_processed
		ON cancellations (user_id, processed_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
