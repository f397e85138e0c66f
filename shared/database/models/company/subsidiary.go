package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubsidiaryNode is one node of the org-chart tree a founder draws for
// their group structure. ParentID is nil for the root node. Cycle
// prevention is left to the editor; MoveNode refuses the one trivially
// detectable case of re-parenting a node onto itself.
type SubsidiaryNode struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID  `json:"profile_id" gorm:"type:uuid;not null;index"`
	Label     string     `json:"label" gorm:"size:255;not null"`
	PositionX float64    `json:"position_x" gorm:"default:0"`
	PositionY float64    `json:"position_y" gorm:"default:0"`
	ParentID  *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (n *SubsidiaryNode) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
