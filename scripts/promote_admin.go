package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Promotes an existing account to admin. The API itself never changes roles;
// this is the out-of-band path for granting additional administrators.

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	Role         string `gorm:"default:'user'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func main() {
	email := flag.String("email", "", "Email of the account to promote")
	dbPath := flag.String("db", "travel.sqlite", "Path to the SQLite database")
	flag.Parse()

	if *email == "" {
		log.Fatal("Usage: promote_admin -email user@example.com [-db travel.sqlite]")
	}

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var user User
	if err := db.Where("email = ?", strings.ToLower(*email)).First(&user).Error; err != nil {
		log.Fatal("No account found for email:", *email)
	}

	if user.Role == "admin" {
		fmt.Printf("Account %s is already an admin\n", user.Email)
		return
	}

	if err := db.Model(&user).Update("role", "admin").Error; err != nil {
		log.Fatal("Failed to promote account:", err)
	}

	fmt.Printf("Account %s promoted to admin\n", user.Email)
}
