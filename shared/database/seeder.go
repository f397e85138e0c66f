package database

import (
	"fmt"
	"log"

	"fundpitch-backend/shared/database/models"
	"fundpitch-backend/shared/database/models/company"
	auth "fundpitch-backend/shared/utils/auth"
)

// CreateAdmin creates the password-login admin account if it doesn't
// exist yet.
func CreateAdmin(email, password string) error {
	var count int64
	DB.Model(&models.User{}).Where("email = ? AND user_type = ?", email, models.UserTypeAdmin).Count(&count)
	if count > 0 {
		log.Printf("✅ Admin %s already exists - skipping", email)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Email:    email,
		UserType: models.UserTypeAdmin,
		Password: hash,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Printf("✅ Admin %s created", email)
	return nil
}

// SeedDatabase inserts a demo founder with a partially filled company
// profile so a fresh environment has something to look at.
func SeedDatabase() error {
	var count int64
	DB.Model(&models.User{}).Where("email = ?", "founder@demo.fundpitch.com").Count(&count)
	if count > 0 {
		log.Println("✅ Demo data already present - skipping")
		return nil
	}

	founder := models.User{
		Email:    "founder@demo.fundpitch.com",
		Phone:    "+919876543210",
		UserType: models.UserTypeFounder,
	}
	if err := DB.Create(&founder).Error; err != nil {
		return fmt.Errorf("failed to create demo founder: %w", err)
	}

	profile := company.Profile{
		UserID:      founder.ID,
		CompanyName: "Acme Robotics",
		Sectors:     "Robotics, Automation",
		Stage:       "Seed",
		About:       "Industrial robotics for small manufacturers.",
		City:        "Chennai",
		State:       "Tamil Nadu",
		Country:     "India",
	}
	if err := DB.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to create demo company profile: %w", err)
	}

	if err := DB.Create(&company.BoardMember{
		ProfileID:   profile.ID,
		Name:        "Asha Raman",
		Designation: "Chairperson",
	}).Error; err != nil {
		return fmt.Errorf("failed to create demo board member: %w", err)
	}

	log.Println("✅ Demo founder and company profile created")
	return nil
}
