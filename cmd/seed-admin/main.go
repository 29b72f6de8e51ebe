// Bootstrap script to create the first admin account
// cmd/seed-admin/main.go
package main

import (
	"flag"
	"log"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	firstName := flag.String("first-name", "System", "admin first name")
	lastName := flag.String("last-name", "Administrator", "admin last name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing int64
	if err := config.DB.Model(&models.User{}).
		Where("email = ? AND delete_at IS NULL", *email).
		Count(&existing).Error; err != nil {
		log.Fatal("Failed to check existing users:", err)
	}
	if existing > 0 {
		log.Fatalf("A user with email %s already exists", *email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	admin := models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  string(hashed),
		RoleID:    models.RoleAdmin,
		IsActive:  true,
		CreateAt:  &now,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Admin account %s created (user_id=%d)", admin.Email, admin.UserID)
}
