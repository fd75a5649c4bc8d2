package people

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, members []*types.Member) ([]*types.Member, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, memberIDs []uuid.UUID) ([]*types.Member, error)
	ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.Member, error)
	ListByCluster(ctx context.Context, tx *gorm.DB, clusterID uuid.UUID) ([]*types.Member, error)
	ListByHousehold(ctx context.Context, tx *gorm.DB, householdID uuid.UUID) ([]*types.Member, error)
	UpdateAnalytics(ctx context.Context, tx *gorm.DB, memberID uuid.UUID, updates map[string]interface{}) error
	// DistinctBranchIDs lists every branch that has at least one member,
	// in a stable order.
	DistinctBranchIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, members []*types.Member) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(members) == 0 {
		return []*types.Member{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (mr *memberRepo) GetByIDs(ctx context.Context, tx *gorm.DB, memberIDs []uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if len(memberIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", memberIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("joined_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListByCluster(ctx context.Context, tx *gorm.DB, clusterID uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Where("cluster_id = ?", clusterID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) ListByHousehold(ctx context.Context, tx *gorm.DB, householdID uuid.UUID) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Where("household_id = ?", householdID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateAnalytics overwrites computed score fields. Runs are idempotent: the
// same inputs produce the same column values, so re-running is a no-op.
func (mr *memberRepo) UpdateAnalytics(ctx context.Context, tx *gorm.DB, memberID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("id = ?", memberID).
		Updates(updates).Error
}

func (mr *memberRepo) DistinctBranchIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Member{}).
		Distinct("branch_id").
		Order("branch_id ASC").
		Pluck("branch_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
