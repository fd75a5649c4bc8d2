package alerting

import (
	"time"

	"github.com/google/uuid"
)

// AlertSetting holds the per-branch configuration for one alert type. Rows
// are created lazily with system defaults the first time a type is evaluated
// for a branch.
type AlertSetting struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alert_setting_branch_type,priority:1" json:"branch_id"`
	Type     AlertType `gorm:"type:text;not null;uniqueIndex:idx_alert_setting_branch_type,priority:2" json:"type"`

	Enabled bool `gorm:"not null;default:true" json:"enabled"`

	// Threshold overrides the system default for the type when set.
	Threshold *float64 `gorm:"column:threshold" json:"threshold"`

	// CooldownHours overrides the system default when set. An explicit zero
	// means the type re-evaluates every run.
	CooldownHours   *int       `gorm:"column:cooldown_hours" json:"cooldown_hours"`
	LastTriggeredAt *time.Time `gorm:"column:last_triggered_at" json:"last_triggered_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AlertSetting) TableName() string { return "alert_setting" }
