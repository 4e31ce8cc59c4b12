// Package bootstrap seeds the initial operator account on first start.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"ipocket/internal/auth"
	"ipocket/internal/logx"
	"ipocket/internal/model"
)

// EnsureAdmin creates the first admin user when the users table is empty.
// A blank password skips seeding so an unconfigured instance never ships a
// default credential.
func EnsureAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		logx.L().Warn("no users exist and ADMIN_PASSWORD is not set; skipping admin bootstrap")
		return nil
	}
	if username == "" {
		username = "admin"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.UserRoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logx.L().WithField("username", username).Info("bootstrapped admin user")
	return nil
}
