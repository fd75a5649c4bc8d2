package alerting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type AlertRepo interface {
	Create(ctx context.Context, tx *gorm.DB, alert *types.Alert) (*types.Alert, error)
	// CreateIfAbsent inserts the alert unless one already exists for the same
	// (branch, type, subject) created after the window start. It reports
	// whether a row was inserted. The lookup and insert run in one
	// transaction so concurrent runs cannot both pass the check.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, alert *types.Alert, windowStart time.Time) (bool, error)
	ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, unreadOnly bool) ([]*types.Alert, error)
	MarkRead(ctx context.Context, tx *gorm.DB, alertID uuid.UUID) error
	Acknowledge(ctx context.Context, tx *gorm.DB, alertID uuid.UUID) error
}

type alertRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertRepo(db *gorm.DB, baseLog *logger.Logger) AlertRepo {
	return &alertRepo{db: db, log: baseLog.With("repo", "AlertRepo")}
}

func (ar *alertRepo) Create(ctx context.Context, tx *gorm.DB, alert *types.Alert) (*types.Alert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

func (ar *alertRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, alert *types.Alert, windowStart time.Time) (bool, error) {
	run := func(transaction *gorm.DB) (bool, error) {
		var count int64
		if err := transaction.WithContext(ctx).
			Model(&types.Alert{}).
			Where("branch_id = ? AND type = ? AND subject_type = ? AND subject_id = ? AND created_at > ?",
				alert.BranchID, alert.Type, alert.SubjectType, alert.SubjectID, windowStart).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return false, nil
		}
		if err := transaction.WithContext(ctx).Create(alert).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	if tx != nil {
		return run(tx)
	}

	var created bool
	err := ar.db.Transaction(func(transaction *gorm.DB) error {
		var err error
		created, err = run(transaction)
		return err
	})
	return created, err
}

func (ar *alertRepo) ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, unreadOnly bool) ([]*types.Alert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	query := transaction.WithContext(ctx).Where("branch_id = ?", branchID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var results []*types.Alert
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alertRepo) MarkRead(ctx context.Context, tx *gorm.DB, alertID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Alert{}).
		Where("id = ?", alertID).
		Update("read", true).Error
}

func (ar *alertRepo) Acknowledge(ctx context.Context, tx *gorm.DB, alertID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Alert{}).
		Where("id = ?", alertID).
		Updates(map[string]interface{}{"acknowledged": true, "read": true}).Error
}
