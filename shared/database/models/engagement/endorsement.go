package engagement

import (
	"time"

	"fundpitch-backend/shared/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Endorsement is a testimonial an individual leaves for a company,
// optionally with an audio clip and file attachments stored in MinIO.
type Endorsement struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CompanyUserID uuid.UUID `json:"company_user_id" gorm:"type:uuid;not null;index"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	AudioKey      string    `json:"audio_key" gorm:"size:500"`
	IsApproved    bool      `json:"is_approved" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User        models.User             `json:"user" gorm:"foreignKey:UserID"`
	Attachments []EndorsementAttachment `json:"attachments" gorm:"foreignKey:EndorsementID"`
}

func (e *Endorsement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EndorsementAttachment is one file attached to an endorsement.
type EndorsementAttachment struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EndorsementID uuid.UUID `json:"endorsement_id" gorm:"type:uuid;not null;index"`
	ObjectKey     string    `json:"object_key" gorm:"size:500;not null"`
	FileName      string    `json:"file_name" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at"`
}

func (a *EndorsementAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
