package roster

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RoleType string

const (
	RoleUsher       RoleType = "usher"
	RoleGreeter     RoleType = "greeter"
	RoleWorship     RoleType = "worship"
	RoleTech        RoleType = "tech"
	RoleChildrens   RoleType = "childrens"
	RoleCommunion   RoleType = "communion"
	RoleIntercessor RoleType = "intercessor"
)

type RosterPool struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`

	RoleType RoleType `gorm:"type:text;not null" json:"role_type"`
	Name     string   `gorm:"not null" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (RosterPool) TableName() string { return "roster_pool" }

type PoolMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PoolID   uuid.UUID `gorm:"type:uuid;not null;index" json:"pool_id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`

	AssignmentCount  int        `gorm:"not null;default:0" json:"assignment_count"`
	ReliabilityScore float64    `gorm:"not null;default:80" json:"reliability_score"`
	ExperienceLevel  int        `gorm:"not null;default:1" json:"experience_level"`
	LastAssignedDate *time.Time `gorm:"column:last_assigned_date" json:"last_assigned_date"`

	MaxMonthlyAssignments int `gorm:"not null;default:2" json:"max_monthly_assignments"`

	// PreferredServiceIDs is a JSON array of service identifiers the member
	// prefers serving at.
	PreferredServiceIDs datatypes.JSON `gorm:"type:jsonb" json:"preferred_service_ids"`

	Active    bool `gorm:"not null;default:true" json:"active"`
	Available bool `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PoolMember) TableName() string { return "roster_pool_member" }

type AssignmentStatus string

const (
	AssignmentPrimary   AssignmentStatus = "primary"
	AssignmentAlternate AssignmentStatus = "alternate"
)

type Assignment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	PoolID   uuid.UUID `gorm:"type:uuid;not null;index" json:"pool_id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`

	RoleType    RoleType         `gorm:"type:text;not null" json:"role_type"`
	ServiceDate time.Time        `gorm:"not null;index" json:"service_date"`
	Status      AssignmentStatus `gorm:"type:text;not null;default:'primary'" json:"status"`

	SuitabilityScore float64 `gorm:"not null;default:0" json:"suitability_score"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Assignment) TableName() string { return "roster_assignment" }
