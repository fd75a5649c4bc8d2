package forecasting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ForecastTarget string

const (
	TargetAttendance ForecastTarget = "attendance"
	TargetGiving     ForecastTarget = "giving"
)

// ForecastPayloadSchemaVersion versions the Breakdown / Factors JSON.
const ForecastPayloadSchemaVersion = 1

// Forecast is upserted by its natural key (branch, target, scope, period
// start). Actual and Accuracy are filled in later, once the period closes.
type Forecast struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forecast_key,priority:1" json:"branch_id"`

	Target ForecastTarget `gorm:"type:text;not null;uniqueIndex:idx_forecast_key,priority:2" json:"target"`

	// ScopeKey narrows the target: a service type for attendance, a fund for
	// giving, or "all".
	ScopeKey string `gorm:"type:text;not null;default:'all';uniqueIndex:idx_forecast_key,priority:3" json:"scope_key"`

	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_forecast_key,priority:4" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`

	Predicted float64 `gorm:"not null" json:"predicted"`

	ConfidenceScore float64 `gorm:"not null" json:"confidence_score"`
	ConfidenceLower float64 `gorm:"not null" json:"confidence_lower"`
	ConfidenceUpper float64 `gorm:"not null" json:"confidence_upper"`

	SchemaVersion int            `gorm:"not null;default:1" json:"schema_version"`
	Breakdown     datatypes.JSON `gorm:"type:jsonb" json:"breakdown"`
	Factors       datatypes.JSON `gorm:"type:jsonb" json:"factors"`

	Actual   *float64 `gorm:"column:actual" json:"actual"`
	Accuracy *float64 `gorm:"column:accuracy" json:"accuracy"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Forecast) TableName() string { return "forecast" }
