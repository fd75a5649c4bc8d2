package activity

import (
	"time"

	"github.com/google/uuid"
)

type GroupMeeting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	ClusterID uuid.UUID `gorm:"type:uuid;not null;index" json:"cluster_id"`

	MeetingDate time.Time `gorm:"not null;index" json:"meeting_date"`
	Topic       string    `gorm:"type:text;not null;default:''" json:"topic"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (GroupMeeting) TableName() string { return "group_meeting" }

type GroupMeetingAttendance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (GroupMeetingAttendance) TableName() string { return "group_meeting_attendance" }
