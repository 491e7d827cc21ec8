package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"local-services-server/config"
	"local-services-server/models"
	"local-services-server/utils"
)

// EnsureDefaultAdmin creates the default admin account on first startup.
// It is idempotent: the account is only created when no admin row exists,
// so repeated startups never produce a second admin.
func EnsureDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	if count > 0 {
		return nil
	}

	adminCfg := config.AppConfig.Admin
	hash, err := utils.HashPassword(adminCfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Username:     adminCfg.Username,
		Email:        adminCfg.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Printf("✅ Default admin created: %s", admin.Email)
	return nil
}
