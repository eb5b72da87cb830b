package main

import (
	"log"
	"os"
	"strings"

	"budgetapp/store"

	"gorm.io/gorm"
)

// initDB opens the configured database, applies migrations and seeds the
// lookup tables. The handle is returned to the caller; nothing holds it at
// package level.
func initDB() *gorm.DB {
	db, err := store.Open()
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		if err := store.Migrate(db); err != nil {
			log.Printf("migration warning: %v", err)
		}
	}

	// Lookup rows are shared across all users and must exist before any
	// registration can seed default accounts and categories.
	if err := store.SeedLookupTypes(db); err != nil {
		log.Printf("lookup seeding warning: %v", err)
	}
	return db
}
