package main

import (
	"log"

	"fundpitch-backend/shared/config"
	"fundpitch-backend/shared/database"
)

func main() {
	log.Println("🌱 Starting database seeding...")

	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Create admin account
	if err := database.CreateAdmin("admin@fundpitch.com", "admin123"); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	// Run demo data seeding
	if err := database.SeedDatabase(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("✅ Database seeding completed successfully!")
}
