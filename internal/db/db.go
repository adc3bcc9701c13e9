package db

import (
	"lostfound/internal/logger"
	"lostfound/internal/models"
	"lostfound/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=lostfound port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}

	logger.Log.Info("Database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Item{},
		&models.ItemImage{},
		&models.Claim{},
		&models.ClaimNotice{},
		&models.StudentLostItem{},
		&models.StudentLostItemImage{},
	)
	if err != nil {
		logger.Log.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Log.Info("Database migration completed")
}

// SeedSuperUser creates the bootstrap Super User account if the email is not
// registered yet. No-op when the credentials are not configured.
func SeedSuperUser(email, password string) {
	if email == "" || password == "" {
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Errorf("Failed to hash bootstrap password: %v", err)
		return
	}

	user := models.User{
		Username: "admin",
		Email:    email,
		Password: hash,
		IsStaff:  true,
	}
	if err := DB.Create(&user).Error; err != nil {
		logger.Log.Errorf("Failed to create bootstrap Super User: %v", err)
		return
	}
	if err := DB.Create(&models.UserProfile{UserID: user.ID, IsSuperUser: true}).Error; err != nil {
		logger.Log.Errorf("Failed to create bootstrap profile: %v", err)
		return
	}
	logger.Log.Infof("Bootstrap Super User %s created", email)
}
