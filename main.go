package main

import (
	"fmt"
	"log"
	"os"

	"budgetapp/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Auto-load ./.env if present before reading vars; existing environment
	// variables win over file values.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}

	// Support a lightweight migrate command: `./budgetapp migrate`
	// It runs AutoMigrate and lookup seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	db := initDB()
	app := newApp(store.New(db), []byte(secret))

	r := gin.Default()
	app.setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
