package prayer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type PrayerRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, requests []*types.PrayerRequest) ([]*types.PrayerRequest, error)
	ListOpen(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.PrayerRequest, error)
	ListOpenByUrgency(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, urgency activity.UrgencyLevel) ([]*types.PrayerRequest, error)
	UpdateAssessment(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, urgency activity.UrgencyLevel, category activity.PrayerCategory, priority float64) error
}

type prayerRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrayerRequestRepo(db *gorm.DB, baseLog *logger.Logger) PrayerRequestRepo {
	return &prayerRequestRepo{db: db, log: baseLog.With("repo", "PrayerRequestRepo")}
}

func (pr *prayerRequestRepo) Create(ctx context.Context, tx *gorm.DB, requests []*types.PrayerRequest) ([]*types.PrayerRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(requests) == 0 {
		return []*types.PrayerRequest{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (pr *prayerRequestRepo) ListOpen(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.PrayerRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.PrayerRequest
	if err := transaction.WithContext(ctx).
		Where("branch_id = ? AND status = ?", branchID, "open").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *prayerRequestRepo) ListOpenByUrgency(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, urgency activity.UrgencyLevel) ([]*types.PrayerRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.PrayerRequest
	if err := transaction.WithContext(ctx).
		Where("branch_id = ? AND status = ? AND urgency_level = ?", branchID, "open", urgency).
		Order("priority_score DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *prayerRequestRepo) UpdateAssessment(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, urgency activity.UrgencyLevel, category activity.PrayerCategory, priority float64) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.PrayerRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"urgency_level":  urgency,
			"category":       category,
			"priority_score": priority,
		}).Error
}
