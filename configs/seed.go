package configs

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/entity"
)

// SeedAdmin creates the first admin account when credentials are configured.
func SeedAdmin(db *gorm.DB, email, pass string) error {
	if email == "" || pass == "" {
		logrus.Info("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.WithField("email", email).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}
