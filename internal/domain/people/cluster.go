package people

import (
	"time"

	"github.com/google/uuid"
)

// Cluster is a small group / cell group with an optional leader.
type Cluster struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`

	Name     string     `gorm:"not null" json:"name"`
	LeaderID *uuid.UUID `gorm:"type:uuid" json:"leader_id"`

	HealthScore  float64    `gorm:"not null;default:0" json:"health_score"`
	HealthLevel  string     `gorm:"type:text;not null;default:''" json:"health_level"`
	LastScoredAt *time.Time `gorm:"column:last_scored_at" json:"last_scored_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Cluster) TableName() string { return "cluster" }
