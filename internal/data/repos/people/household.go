package people

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type HouseholdRepo interface {
	Create(ctx context.Context, tx *gorm.DB, households []*types.Household) ([]*types.Household, error)
	ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.Household, error)
	UpdateEngagement(ctx context.Context, tx *gorm.DB, householdID uuid.UUID, score float64, level string, scoredAt time.Time) error
}

type householdRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHouseholdRepo(db *gorm.DB, baseLog *logger.Logger) HouseholdRepo {
	return &householdRepo{db: db, log: baseLog.With("repo", "HouseholdRepo")}
}

func (hr *householdRepo) Create(ctx context.Context, tx *gorm.DB, households []*types.Household) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	if len(households) == 0 {
		return []*types.Household{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

func (hr *householdRepo) ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.Household, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var results []*types.Household
	if err := transaction.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (hr *householdRepo) UpdateEngagement(ctx context.Context, tx *gorm.DB, householdID uuid.UUID, score float64, level string, scoredAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Household{}).
		Where("id = ?", householdID).
		Updates(map[string]interface{}{
			"engagement_score": score,
			"engagement_level": level,
			"last_scored_at":   scoredAt,
		}).Error
}
