package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType classifies what a user does on the platform.
type UserType string

const (
	UserTypeFounder         UserType = "company-founder"
	UserTypeInvestor        UserType = "investor"
	UserTypeAdvisor         UserType = "advisor-smes"
	UserTypeServiceProvider UserType = "service-provider"
	UserTypeWellWisher      UserType = "well-wisher"
	UserTypeOthers          UserType = "others"
	UserTypeAdmin           UserType = "admin"
)

// MaxSelfTypeChanges is how many times a user may change their own type
// before an admin has to approve further changes.
const MaxSelfTypeChanges = 3

type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Phone    string    `json:"phone" gorm:"size:20;index"`
	Email    string    `json:"email" gorm:"size:255;index"`
	UserType UserType  `json:"user_type" gorm:"size:50;not null"`
	// Password is only set for admin accounts; everyone else logs in via OTP.
	Password        string    `json:"-" gorm:"size:255"`
	TypeChangeCount int       `json:"type_change_count" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsFounder reports whether the user owns a company profile.
func (u *User) IsFounder() bool {
	return u.UserType == UserTypeFounder
}

// ValidUserType checks a user type string against the known set.
func ValidUserType(t string) bool {
	switch UserType(t) {
	case UserTypeFounder, UserTypeInvestor, UserTypeAdvisor,
		UserTypeServiceProvider, UserTypeWellWisher, UserTypeOthers, UserTypeAdmin:
		return true
	}
	return false
}
