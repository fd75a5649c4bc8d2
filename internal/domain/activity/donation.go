package activity

import (
	"time"

	"github.com/google/uuid"
)

type FundType string

const (
	FundTithe    FundType = "tithe"
	FundOffering FundType = "offering"
	FundSpecial  FundType = "special"
	FundOther    FundType = "other"
)

type Donation struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`

	Amount   float64  `gorm:"not null" json:"amount"`
	FundType FundType `gorm:"type:text;not null;default:'offering'" json:"fund_type"`

	DonatedAt time.Time `gorm:"not null;index" json:"donated_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Donation) TableName() string { return "donation" }
