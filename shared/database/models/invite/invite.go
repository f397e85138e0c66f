package invite

import (
	"time"

	"fundpitch-backend/shared/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the single invite lifecycle enum. Transitions only move
// forward: sent → accepted → declined is not allowed, and neither is
// accepted → sent. Approval is a separate company-side flag on top of
// an accepted invite.
type Status string

const (
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Channel names the dispatch medium an invite went out on.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Invite is one edge of the invitation tree rooted at a company.
// Level 0 invites come straight from the company; a level N>0 invite
// must reference an accepted AND approved parent invite.
type Invite struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	// InviteToken is the public token embedded in invite links; the row
	// ID never leaves the backend.
	InviteToken   uuid.UUID  `json:"invite_token" gorm:"type:uuid;uniqueIndex;not null"`
	CompanyUserID uuid.UUID  `json:"company_user_id" gorm:"type:uuid;not null;index"`
	InviterID     uuid.UUID  `json:"inviter_id" gorm:"type:uuid;not null"`
	ParentInviteID *uuid.UUID `json:"parent_invite_id" gorm:"type:uuid;index"`
	InviteLevel    int        `json:"invite_level" gorm:"not null;default:0"`

	InviteeEmail string  `json:"invitee_email" gorm:"size:255;index"`
	InviteePhone string  `json:"invitee_phone" gorm:"size:20;index"`
	InviteeName  string  `json:"invitee_name" gorm:"size:255"`
	Role         string  `json:"role" gorm:"size:100;not null"`
	Channel      Channel `json:"channel" gorm:"size:20;not null"`

	Status         Status `json:"status" gorm:"size:20;default:'sent';index"`
	IsUserApproved bool   `json:"is_user_approved" gorm:"default:false"`
	// SendError records a failed notification dispatch; the invite row
	// itself is kept either way.
	SendError string `json:"send_error" gorm:"type:text"`

	AcceptedUserID *uuid.UUID `json:"accepted_user_id" gorm:"type:uuid;index"`
	AcceptedAt     *time.Time `json:"accepted_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	CompanyUser models.User `json:"company_user" gorm:"foreignKey:CompanyUserID"`
	Parent      *Invite     `json:"parent,omitempty" gorm:"foreignKey:ParentInviteID"`
}

func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.InviteToken == uuid.Nil {
		i.InviteToken = uuid.New()
	}
	return nil
}

// CanChain reports whether the invitee behind this invite may extend
// invites of their own.
func (i *Invite) CanChain() bool {
	return i.Status == StatusAccepted && i.IsUserApproved
}

// Terminal reports whether the invite reached a state it cannot leave.
func (i *Invite) Terminal() bool {
	return i.Status == StatusDeclined || i.CanChain()
}

// Matches reports whether the given identity is the invitee this row
// was addressed to. Either contact field may be empty.
func (i *Invite) Matches(email, phone string) bool {
	if email != "" && i.InviteeEmail == email {
		return true
	}
	if phone != "" && i.InviteePhone == phone {
		return true
	}
	return false
}
