package people

import (
	"time"

	"github.com/google/uuid"
)

type Household struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`

	Name string `gorm:"not null" json:"name"`

	EngagementScore float64    `gorm:"not null;default:0" json:"engagement_score"`
	EngagementLevel string     `gorm:"type:text;not null;default:''" json:"engagement_level"`
	LastScoredAt    *time.Time `gorm:"column:last_scored_at" json:"last_scored_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Household) TableName() string { return "household" }
