package company

import (
	"time"

	"fundpitch-backend/shared/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the descriptive company fields a founder fills in.
// Child collections (board, key management, verticals, products, decks,
// financial documents, subsidiaries) live in their own tables.
type Profile struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`

	CompanyName       string `json:"company_name" gorm:"size:255"`
	Sectors           string `json:"sectors" gorm:"size:500"`
	Stage             string `json:"stage" gorm:"size:100"`
	About             string `json:"about" gorm:"type:text"`
	Address           string `json:"address" gorm:"size:500"`
	City              string `json:"city" gorm:"size:100"`
	State             string `json:"state" gorm:"size:100"`
	Country           string `json:"country" gorm:"size:100"`
	Pincode           string `json:"pincode" gorm:"size:20"`
	Website           string `json:"website" gorm:"size:255"`
	ContactEmail      string `json:"contact_email" gorm:"size:255"`
	ContactPhone      string `json:"contact_phone" gorm:"size:20"`
	PhotoKey          string `json:"photo_key" gorm:"size:500"`
	IncorporationYear string `json:"incorporation_year" gorm:"size:10"`
	EmployeeCount     string `json:"employee_count" gorm:"size:20"`
	MarketCap         string `json:"market_cap" gorm:"size:50"`
	FundingAsk        string `json:"funding_ask" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User models.User `json:"user" gorm:"foreignKey:UserID"`
}

// TableName keeps the company and individual profile tables apart.
func (Profile) TableName() string {
	return "company_profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BoardMember is a company board entry.
type BoardMember struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Designation string    `json:"designation" gorm:"size:255"`
	About       string    `json:"about" gorm:"type:text"`
	PhotoKey    string    `json:"photo_key" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *BoardMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// KeyManagement is a senior management entry.
type KeyManagement struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Designation string    `json:"designation" gorm:"size:255"`
	Email       string    `json:"email" gorm:"size:255"`
	Phone       string    `json:"phone" gorm:"size:20"`
	PhotoKey    string    `json:"photo_key" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *KeyManagement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BusinessVertical names a line of business the company operates in.
type BusinessVertical struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (v *BusinessVertical) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Product is a company product or service entry.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PhotoKey    string    `json:"photo_key" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CorporateDeck is an uploaded pitch/corporate deck reference.
type CorporateDeck struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"size:255"`
	ObjectKey string    `json:"object_key" gorm:"size:500;not null"`
	FileName  string    `json:"file_name" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *CorporateDeck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// FinancialDocument is an uploaded financial statement reference.
type FinancialDocument struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" gorm:"size:255"`
	Year      string    `json:"year" gorm:"size:10"`
	ObjectKey string    `json:"object_key" gorm:"size:500;not null"`
	FileName  string    `json:"file_name" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *FinancialDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
