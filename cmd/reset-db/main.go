package main

import (
	"log"

	"fundpitch-backend/shared/config"
	"fundpitch-backend/shared/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	log.Println("🗑️ Starting database reset...")

	config.LoadConfig()
	cfg := config.GetConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=" + cfg.DBSSLMode +
		" TimeZone=UTC"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}

	log.Println("🗑️ Dropping all tables...")

	migrator := db.Migrator()
	modelsToDrop := database.MigrationModels()
	// Reverse order so children go before their parents
	for i := len(modelsToDrop) - 1; i >= 0; i-- {
		model := modelsToDrop[i]
		if migrator.HasTable(model) {
			log.Printf("   Dropping table for %T", model)
			if err := migrator.DropTable(model); err != nil {
				log.Fatalf("❌ Failed to drop table for %T: %v", model, err)
			}
		}
	}

	log.Println("✅ Database reset completed - all tables dropped!")
	log.Println("💡 Run 'make seed' to recreate tables and seed data")
}
