package people

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MembershipStatus is the administrative status set by branch staff, not a
// computed classification.
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
)

// LifecycleStage is the computed engagement classification for a member.
type LifecycleStage string

const (
	StageInactive    LifecycleStage = "inactive"
	StageProspect    LifecycleStage = "prospect"
	StageNewMember   LifecycleStage = "new_member"
	StageDormant     LifecycleStage = "dormant"
	StageAtRisk      LifecycleStage = "at_risk"
	StageDisengaging LifecycleStage = "disengaging"
	StageEngaged     LifecycleStage = "engaged"
	StageGrowing     LifecycleStage = "growing"
)

// ParseLifecycleStage maps a stored stage string to a known stage. Corrupt or
// legacy values degrade to Growing (the classifier default) rather than
// halting a batch.
func ParseLifecycleStage(raw string) (LifecycleStage, bool) {
	switch LifecycleStage(strings.TrimSpace(strings.ToLower(raw))) {
	case StageInactive:
		return StageInactive, true
	case StageProspect:
		return StageProspect, true
	case StageNewMember:
		return StageNewMember, true
	case StageDormant:
		return StageDormant, true
	case StageAtRisk:
		return StageAtRisk, true
	case StageDisengaging:
		return StageDisengaging, true
	case StageEngaged:
		return StageEngaged, true
	case StageGrowing:
		return StageGrowing, true
	default:
		return StageGrowing, false
	}
}

// DonorTier is the relative giving rank among a branch's donors over the
// trailing twelve months.
type DonorTier string

const (
	TierTop10  DonorTier = "top_10"
	TierTop25  DonorTier = "top_25"
	TierMiddle DonorTier = "middle"
	TierBottom DonorTier = "bottom"
	TierNone   DonorTier = "none"
)

type Member struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`

	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
	Email     string `gorm:"column:email" json:"email"`
	Phone     string `gorm:"column:phone" json:"phone"`

	MembershipStatus MembershipStatus `gorm:"type:text;not null;default:'active';index" json:"membership_status"`
	JoinedAt         time.Time        `gorm:"not null" json:"joined_at"`
	ConvertedAt      *time.Time       `gorm:"column:converted_at" json:"converted_at"`

	HouseholdID *uuid.UUID `gorm:"type:uuid;index" json:"household_id"`
	ClusterID   *uuid.UUID `gorm:"type:uuid;index" json:"cluster_id"`

	MessagingOptedOut bool `gorm:"not null;default:false" json:"messaging_opted_out"`

	// Computed fields, overwritten on every scoring run.
	ChurnRiskScore         float64    `gorm:"not null;default:0" json:"churn_risk_score"`
	ChurnRiskLevel         string     `gorm:"type:text;not null;default:''" json:"churn_risk_level"`
	EngagementScore        float64    `gorm:"not null;default:0" json:"engagement_score"`
	EngagementLevel        string     `gorm:"type:text;not null;default:''" json:"engagement_level"`
	LifecycleStage         string     `gorm:"type:text;not null;default:'';index" json:"lifecycle_stage"`
	PreviousLifecycleStage string     `gorm:"type:text;not null;default:''" json:"previous_lifecycle_stage"`
	LifecycleConfidence    float64    `gorm:"not null;default:0" json:"lifecycle_confidence"`
	DonorTier              string     `gorm:"type:text;not null;default:'none'" json:"donor_tier"`
	LastScoredAt           *time.Time `gorm:"column:last_scored_at" json:"last_scored_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Member) TableName() string { return "member" }
