package alerting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AlertType string

const (
	AlertChurnRisk           AlertType = "churn_risk"
	AlertAttendanceAnomaly   AlertType = "attendance_anomaly"
	AlertLifecycleConcern    AlertType = "lifecycle_concern"
	AlertClusterHealth       AlertType = "cluster_health"
	AlertHouseholdEngagement AlertType = "household_engagement"
	AlertMessagingDisengaged AlertType = "messaging_disengaged"
	AlertCriticalPrayer      AlertType = "critical_prayer"
)

// AllAlertTypes is the evaluation order for a branch run.
var AllAlertTypes = []AlertType{
	AlertChurnRisk,
	AlertAttendanceAnomaly,
	AlertLifecycleConcern,
	AlertClusterHealth,
	AlertHouseholdEngagement,
	AlertMessagingDisengaged,
	AlertCriticalPrayer,
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SubjectType tags the entity an alert is about. Alerts never hold a raw
// polymorphic pointer; the pair (SubjectType, SubjectID) is resolved through
// the matching repository.
type SubjectType string

const (
	SubjectMember        SubjectType = "member"
	SubjectCluster       SubjectType = "cluster"
	SubjectHousehold     SubjectType = "household"
	SubjectPrayerRequest SubjectType = "prayer_request"
)

// SubjectRef is the tagged reference stored on an alert.
type SubjectRef struct {
	Type SubjectType `json:"type"`
	ID   uuid.UUID   `json:"id"`
}

// AlertPayloadSchemaVersion versions the Factors / Recommendations JSON so
// historical rows stay loadable after field additions.
const AlertPayloadSchemaVersion = 1

type Alert struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index:idx_alert_dedup,priority:1" json:"branch_id"`

	Type     AlertType `gorm:"type:text;not null;index:idx_alert_dedup,priority:2" json:"type"`
	Severity Severity  `gorm:"type:text;not null" json:"severity"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`

	SubjectType SubjectType `gorm:"type:text;not null;index:idx_alert_dedup,priority:3" json:"subject_type"`
	SubjectID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_alert_dedup,priority:4" json:"subject_id"`

	SchemaVersion   int            `gorm:"not null;default:1" json:"schema_version"`
	Factors         datatypes.JSON `gorm:"type:jsonb" json:"factors"`
	Recommendations datatypes.JSON `gorm:"type:jsonb" json:"recommendations"`

	Read         bool `gorm:"not null;default:false" json:"read"`
	Acknowledged bool `gorm:"not null;default:false" json:"acknowledged"`

	CreatedAt time.Time `gorm:"not null;index:idx_alert_dedup,priority:5" json:"created_at"`
}

func (Alert) TableName() string { return "alert" }

func (a *Alert) Subject() SubjectRef {
	return SubjectRef{Type: a.SubjectType, ID: a.SubjectID}
}
