package people

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type ClusterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clusters []*types.Cluster) ([]*types.Cluster, error)
	ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.Cluster, error)
	UpdateHealth(ctx context.Context, tx *gorm.DB, clusterID uuid.UUID, score float64, level string, scoredAt time.Time) error
}

type clusterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClusterRepo(db *gorm.DB, baseLog *logger.Logger) ClusterRepo {
	return &clusterRepo{db: db, log: baseLog.With("repo", "ClusterRepo")}
}

func (cr *clusterRepo) Create(ctx context.Context, tx *gorm.DB, clusters []*types.Cluster) ([]*types.Cluster, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(clusters) == 0 {
		return []*types.Cluster{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&clusters).Error; err != nil {
		return nil, err
	}
	return clusters, nil
}

func (cr *clusterRepo) ListByBranch(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) ([]*types.Cluster, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Cluster
	if err := transaction.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *clusterRepo) UpdateHealth(ctx context.Context, tx *gorm.DB, clusterID uuid.UUID, score float64, level string, scoredAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Cluster{}).
		Where("id = ?", clusterID).
		Updates(map[string]interface{}{
			"health_score":   score,
			"health_level":   level,
			"last_scored_at": scoredAt,
		}).Error
}
