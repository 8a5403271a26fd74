package database

import (
	"fmt"

	"busgo/internal/bookings"
	"busgo/internal/cancellation"
	"busgo/internal/inventory"
	"busgo/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users.User{},
		&inventory.RouteTemplate{},
		&bookings.Booking{},
		&bookings.Rating{},
		&cancellation.Cancellation{},
	)
	if err != nil {
		return err
	}
	if err := MigrateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
