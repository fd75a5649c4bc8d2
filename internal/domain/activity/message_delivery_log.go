package activity

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

type MessageDeliveryLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`

	Channel string         `gorm:"type:text;not null;default:'sms'" json:"channel"`
	Status  DeliveryStatus `gorm:"type:text;not null;index" json:"status"`

	SentAt      time.Time  `gorm:"not null;index" json:"sent_at"`
	DeliveredAt *time.Time `gorm:"column:delivered_at" json:"delivered_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MessageDeliveryLog) TableName() string { return "message_delivery_log" }
