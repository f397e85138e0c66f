package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeChangeRequestPending  = "pending"
	TypeChangeRequestApproved = "approved"
	TypeChangeRequestRejected = "rejected"
)

// UserTypeChangeRequest is created once a user has exhausted their
// self-service type change quota; an admin decides on it.
type UserTypeChangeRequest struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	RequestedType UserType  `json:"requested_type" gorm:"size:50;not null"`
	Status        string    `json:"status" gorm:"size:20;default:'pending'"`
	DecidedBy     *uuid.UUID `json:"decided_by" gorm:"type:uuid"`
	DecidedAt     *time.Time `json:"decided_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (r *UserTypeChangeRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
