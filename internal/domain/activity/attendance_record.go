package activity

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`

	// MemberID is nil for first-time visitors with no member record yet.
	MemberID *uuid.UUID `gorm:"type:uuid;index" json:"member_id"`

	ServiceDate time.Time `gorm:"not null;index" json:"service_date"`
	ServiceType string    `gorm:"type:text;not null;default:'sunday'" json:"service_type"`
	IsVisitor   bool      `gorm:"not null;default:false" json:"is_visitor"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (AttendanceRecord) TableName() string { return "attendance_record" }
