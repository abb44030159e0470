package main

import (
	"flag"
	"log"

	"fabrisys-backend/internal/model"
	"fabrisys-backend/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Offline utility: creates the admin user, or resets its password if
// it already exists.
func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// 3. Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 4. Create or reset
	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		user = model.User{
			Username:     *username,
			PasswordHash: string(hashed),
			DisplayName:  "Administrator",
			Role:         model.RoleAdmin,
			Status:       model.UserActive,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		log.Printf("Created admin user %s", *username)
		return
	}

	if err := db.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}
	log.Printf("Password for %s has been reset", *username)
}
