package database

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"madaris_backend/internals/constants"
	resultmodel "madaris_backend/internals/features/results/model"
	"madaris_backend/internals/features/results/testtype"
	schoolmodel "madaris_backend/internals/features/schools/model"
	usermodel "madaris_backend/internals/features/users/model"
)

// Migrate creates the schools and users tables plus one result table per
// registered test type, then seeds the initial admin account.
func Migrate() {
	if err := DB.AutoMigrate(
		&schoolmodel.SchoolModel{},
		&usermodel.ManagedUserModel{},
	); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}

	for _, cfg := range testtype.Registry {
		if err := DB.Table(cfg.Table).AutoMigrate(&resultmodel.ResultModel{}); err != nil {
			log.Fatalf("❌ migration failed for %s: %v", cfg.Table, err)
		}
	}

	seedAdmin()
	log.Println("✅ database migrated")
}

// seedAdmin guarantees a usable login on a fresh database. The password is
// expected to be changed on first use.
func seedAdmin() {
	var admin usermodel.ManagedUserModel
	err := DB.First(&admin, "username = ?", "admin").Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("❌ admin seed check failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ admin seed failed: %v", err)
	}
	admin = usermodel.ManagedUserModel{
		Username: "admin",
		Password: string(hash),
		Role:     constants.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("❌ admin seed failed: %v", err)
	}
	log.Println("✅ default admin account created")
}
