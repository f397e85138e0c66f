package engagement

import (
	"time"

	"fundpitch-backend/shared/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expression is an investment/collaboration offer an individual posts
// to a company. The company approves it before it shows on dashboards.
type Expression struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CompanyUserID uuid.UUID `json:"company_user_id" gorm:"type:uuid;not null;index"`
	OfferType     string    `json:"offer_type" gorm:"size:100;not null"`
	Message       string    `json:"message" gorm:"type:text"`
	IsApproved    bool      `json:"is_approved" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User models.User `json:"user" gorm:"foreignKey:UserID"`
}

func (e *Expression) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
