package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"budgetapp/models"
	"budgetapp/store"

	"github.com/joho/godotenv"
)

// initdb wipes the backing store and recreates it with the seed lookup rows
// (AccountType: Chequing, Savings; CategoryType: Income, Expense). It asks
// for confirmation first; only an answer starting with Y proceeds.
func main() {
	_ = godotenv.Load()

	fmt.Print("WARNING! Proceeding with this action will drop the database, removing all data. Are you sure you would like to continue? (Y/n): ")
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response == "" || !strings.EqualFold(response[:1], "y") {
		fmt.Println("    |")
		fmt.Println("    ----> Action cancelled")
		return
	}

	if os.Getenv("DB_DSN") == "" {
		// sqlite backing file; a missing file is fine.
		if err := os.Remove(store.SQLitePath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("failed to remove %s: %v", store.SQLitePath(), err)
		}
	}

	db, err := store.Open()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if os.Getenv("DB_DSN") != "" {
		// Postgres has no file to delete; drop the tables instead.
		err := db.Migrator().DropTable(
			&models.Entry{},
			&models.Category{},
			&models.Account{},
			&models.RefreshToken{},
			&models.User{},
			&models.CategoryType{},
			&models.AccountType{},
		)
		if err != nil {
			log.Fatalf("failed to drop tables: %v", err)
		}
	}

	if err := store.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := store.SeedLookupTypes(db); err != nil {
		log.Fatalf("lookup seeding failed: %v", err)
	}

	fmt.Println("    |")
	fmt.Println("    ----> Action completed")
}
