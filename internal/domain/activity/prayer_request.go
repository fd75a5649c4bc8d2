package activity

import (
	"time"

	"github.com/google/uuid"
)

type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyElevated UrgencyLevel = "elevated"
	UrgencyNormal   UrgencyLevel = "normal"
)

type PrayerCategory string

const (
	CategoryHealth       PrayerCategory = "health"
	CategoryFamily       PrayerCategory = "family"
	CategoryFinancial    PrayerCategory = "financial"
	CategoryBereavement  PrayerCategory = "bereavement"
	CategorySpiritual    PrayerCategory = "spiritual"
	CategoryWork         PrayerCategory = "work"
	CategoryRelationship PrayerCategory = "relationship"
	CategoryGeneral      PrayerCategory = "general"
)

type PrayerRequest struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID  `gorm:"type:uuid;not null;index" json:"branch_id"`
	MemberID *uuid.UUID `gorm:"type:uuid;index" json:"member_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`

	// Computed on intake and refreshed when the text changes.
	UrgencyLevel  UrgencyLevel   `gorm:"type:text;not null;default:'normal';index" json:"urgency_level"`
	Category      PrayerCategory `gorm:"type:text;not null;default:'general'" json:"category"`
	PriorityScore float64        `gorm:"not null;default:0" json:"priority_score"`

	Status string `gorm:"type:text;not null;default:'open';index" json:"status"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PrayerRequest) TableName() string { return "prayer_request" }
