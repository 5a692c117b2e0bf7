package main

import (
	"flag"
	"log"

	"go-retail-pos/internal/model"
	"go-retail-pos/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "owner@example.com", "email of the account to reset")
	password := flag.String("password", "", "new password (letters and numbers, min 8 chars)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find user
	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *email, err)
	}

	// 4. Hash and update
	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("Failed to set password: %v", err)
	}
	if err := db.Model(&user).Update("password", user.Password).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *email)
}
