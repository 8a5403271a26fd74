package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"busgo/internal/routes"
	"busgo/internal/shared/config"
	"busgo/internal/shared/database"
	"busgo/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting BusGo Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"cancellations",
		"ratings",
		"bookings",
		"route_templates",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedRoutes(ctx); err != nil {
		return fmt.Errorf("failed to seed routes: %w", err)
	}

	// Searches and sessions refer to the old catalogue
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates one admin and two passengers
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		name  string
		phone string
		email string
		role  users.Role
	}{
		{"Admin", "9000000001", "admin@busgo.in", users.RoleAdmin},
		{"Asha Raman", "9876543210", "asha@busgo.in", users.RoleUser},
		{"Karthik S", "9123456789", "", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Name:      userData.name,
			Phone:     userData.phone,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if userData.email != "" {
			email := userData.email
			user.Email = &email
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.phone, err)
		}
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Phone, user.Role)
	}

	return nil
}

// SeedRoutes loads the default SETC catalogue
func (s *Seeder) SeedRoutes(ctx context.Context) error {
	fmt.Println("  🚌 Seeding route templates...")

	repo := routes.NewRepository(s.db.PostgreSQL)
	for _, tpl := range routes.DefaultCatalogue() {
		t := tpl
		if err := repo.Create(ctx, &t); err != nil {
			return fmt.Errorf("failed to create route %s: %w", t.RouteNo, err)
		}
		fmt.Printf("    ✅ Route %s: %s → %s (%s)\n", t.RouteNo, t.From, t.To, t.DepartureTimings)
	}
	return nil
}
