package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type RosterRepo interface {
	CreatePool(ctx context.Context, tx *gorm.DB, pool *types.RosterPool) error
	ListPools(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.RosterPool, error)
	AddPoolMember(ctx context.Context, tx *gorm.DB, member *types.PoolMember) error
	// ListActivePoolMembers returns active members only; availability is a
	// per-run signal the optimizer weighs, so unavailable members stay in.
	ListActivePoolMembers(ctx context.Context, tx *gorm.DB, poolID uuid.UUID) ([]*types.PoolMember, error)
	// MonthAssignmentCounts counts assignments per member for the calendar
	// month containing the given date, across all pools in the branch.
	MonthAssignmentCounts(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, month time.Time) (map[uuid.UUID]int, error)
	// AssignedMemberIDsOn reports members already holding an assignment on
	// the service date, used for same-date conflict detection.
	AssignedMemberIDsOn(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, serviceDate time.Time) (map[uuid.UUID]bool, error)
	CreateAssignments(ctx context.Context, tx *gorm.DB, assignments []*types.RosterAssignment) error
	// RecordAssignment bumps the pool member's assignment count and stamps
	// the last assigned date. Called for primaries only.
	RecordAssignment(ctx context.Context, tx *gorm.DB, poolMemberID uuid.UUID, assignedDate time.Time) error
	ListAssignments(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, serviceDate time.Time) ([]*types.RosterAssignment, error)
}

type rosterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRosterRepo(db *gorm.DB, baseLog *logger.Logger) RosterRepo {
	return &rosterRepo{db: db, log: baseLog.With("repo", "RosterRepo")}
}

func (rr *rosterRepo) CreatePool(ctx context.Context, tx *gorm.DB, pool *types.RosterPool) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(pool).Error
}

func (rr *rosterRepo) ListPools(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.RosterPool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var pools []*types.RosterPool
	err := transaction.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("role_type ASC, name ASC").
		Find(&pools).Error
	if err != nil {
		return nil, err
	}
	return pools, nil
}

func (rr *rosterRepo) AddPoolMember(ctx context.Context, tx *gorm.DB, member *types.PoolMember) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(member).Error
}

func (rr *rosterRepo) ListActivePoolMembers(ctx context.Context, tx *gorm.DB, poolID uuid.UUID) ([]*types.PoolMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var members []*types.PoolMember
	err := transaction.WithContext(ctx).
		Where("pool_id = ? AND active = ?", poolID, true).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (rr *rosterRepo) MonthAssignmentCounts(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, month time.Time) (map[uuid.UUID]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var rows []struct {
		MemberID uuid.UUID
		Count    int
	}
	err := transaction.WithContext(ctx).
		Model(&types.RosterAssignment{}).
		Select("member_id, COUNT(*) as count").
		Where("branch_id = ? AND service_date >= ? AND service_date < ?", branchID, monthStart, monthEnd).
		Group("member_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.MemberID] = row.Count
	}
	return counts, nil
}

func (rr *rosterRepo) AssignedMemberIDsOn(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, serviceDate time.Time) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	dayStart := time.Date(serviceDate.Year(), serviceDate.Month(), serviceDate.Day(), 0, 0, 0, 0, serviceDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var ids []uuid.UUID
	err := transaction.WithContext(ctx).
		Model(&types.RosterAssignment{}).
		Distinct("member_id").
		Where("branch_id = ? AND service_date >= ? AND service_date < ?", branchID, dayStart, dayEnd).
		Pluck("member_id", &ids).Error
	if err != nil {
		return nil, err
	}

	assigned := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		assigned[id] = true
	}
	return assigned, nil
}

func (rr *rosterRepo) CreateAssignments(ctx context.Context, tx *gorm.DB, assignments []*types.RosterAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(&assignments).Error
}

func (rr *rosterRepo) RecordAssignment(ctx context.Context, tx *gorm.DB, poolMemberID uuid.UUID, assignedDate time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.PoolMember{}).
		Where("id = ?", poolMemberID).
		Updates(map[string]interface{}{
			"assignment_count":   gorm.Expr("assignment_count + 1"),
			"last_assigned_date": assignedDate,
			"updated_at":         time.Now().UTC(),
		}).Error
}

func (rr *rosterRepo) ListAssignments(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, serviceDate time.Time) ([]*types.RosterAssignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	dayStart := time.Date(serviceDate.Year(), serviceDate.Month(), serviceDate.Day(), 0, 0, 0, 0, serviceDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var assignments []*types.RosterAssignment
	err := transaction.WithContext(ctx).
		Where("branch_id = ? AND service_date >= ? AND service_date < ?", branchID, dayStart, dayEnd).
		Order("role_type ASC, status ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
