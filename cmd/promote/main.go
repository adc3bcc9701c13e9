// Command promote grants Super User rights to an existing account:
//
//	go run ./cmd/promote user@school.example
package main

import (
	"flag"
	"fmt"
	"os"

	"lostfound/internal/config"
	"lostfound/internal/db"
	"lostfound/internal/logger"
	"lostfound/internal/models"

	"github.com/joho/godotenv"
)

func main() {
	flag.Parse()
	email := flag.Arg(0)
	if email == "" {
		fmt.Fprintln(os.Stderr, "usage: promote <email>")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, reading env vars from system")
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}
	logger.Init(cfg.LogLevel)
	db.Init(cfg.DatabaseURL)

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Log.Fatalf("User %q does not exist", email)
	}

	if !user.IsStaff {
		db.DB.Model(&user).Update("is_staff", true)
		logger.Log.Warnf("User %q was not staff, set is_staff=true", email)
	}

	var profile models.UserProfile
	db.DB.Where(models.UserProfile{UserID: user.ID}).FirstOrCreate(&profile)
	if profile.IsSuperUser {
		logger.Log.Warnf("User %q is already a Super User", email)
		return
	}

	if err := db.DB.Model(&profile).Update("is_super_user", true).Error; err != nil {
		logger.Log.Fatalf("Failed to promote %q: %v", email, err)
	}
	logger.Log.Infof("Successfully promoted %q to Super User", email)
}
