package store

import (
	"os"

	"budgetapp/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultSQLitePath is the backing store file used when no Postgres DSN is
// configured.
const DefaultSQLitePath = "budget.db"

// SQLitePath returns the configured sqlite file path (env DB_PATH).
func SQLitePath() string {
	if v := os.Getenv("DB_PATH"); v != "" {
		return v
	}
	return DefaultSQLitePath
}

// Open connects to Postgres when DB_DSN is set, otherwise to a local sqlite
// file at DB_PATH (default budget.db).
func Open() (*gorm.DB, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(SQLitePath()), &gorm.Config{})
}

// Migrate creates or updates the schema. Lookup tables go first so the
// foreign keys on accounts and categories can be applied safely.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AccountType{},
		&models.CategoryType{},
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Entry{},
		&models.RefreshToken{},
	)
}

// SeedLookupTypes inserts the global AccountType and CategoryType rows if
// they are missing. Idempotent.
func SeedLookupTypes(db *gorm.DB) error {
	for _, name := range []string{"Chequing", "Savings"} {
		var cnt int64
		if err := db.Model(&models.AccountType{}).Where("name = ?", name).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			if err := db.Create(&models.AccountType{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	for _, name := range []string{"Income", "Expense"} {
		var cnt int64
		if err := db.Model(&models.CategoryType{}).Where("name = ?", name).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			if err := db.Create(&models.CategoryType{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
