package individual

import (
	"time"

	"fundpitch-backend/shared/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxShowcaseDocuments caps the showcase list per individual profile.
const MaxShowcaseDocuments = 5

// Profile is the individual-side counterpart of company.Profile, used
// by investors, advisors, service providers and well-wishers.
type Profile struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`

	FullName     string `json:"full_name" gorm:"size:255"`
	Designation  string `json:"designation" gorm:"size:255"`
	Organization string `json:"organization" gorm:"size:255"`
	Email        string `json:"email" gorm:"size:255"`
	Phone        string `json:"phone" gorm:"size:20"`
	Bio          string `json:"bio" gorm:"type:text"`
	Address      string `json:"address" gorm:"size:500"`
	City         string `json:"city" gorm:"size:100"`
	Country      string `json:"country" gorm:"size:100"`
	PhotoKey     string `json:"photo_key" gorm:"size:500"`
	LinkedinURL  string `json:"linkedin_url" gorm:"size:500"`
	Experience   string `json:"experience" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User models.User `json:"user" gorm:"foreignKey:UserID"`
}

// TableName keeps the company and individual profile tables apart.
func (Profile) TableName() string {
	return "individual_profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ShowcaseDocument is one of up to MaxShowcaseDocuments files an
// individual surfaces on their public profile.
type ShowcaseDocument struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"size:255"`
	ObjectKey string    `json:"object_key" gorm:"size:500;not null"`
	FileName  string    `json:"file_name" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *ShowcaseDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
