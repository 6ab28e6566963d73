package main

import (
	"gin-taskboard/constants"
	"gin-taskboard/infra"
	"gin-taskboard/models"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	infra.Initialize()
	db := infra.SetupDB()

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Todo{}); err != nil {
		panic("Failed to migrate database")
	}

	// ADMIN_EMAIL/ADMIN_PASSWORDが設定されていれば管理者ユーザーを用意する
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count)
	if count > 0 {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		panic("Failed to hash admin password")
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		panic("Failed to create admin user")
	}
	infra.Logger.Info().Str("email", adminEmail).Msg("Created admin user")
}
