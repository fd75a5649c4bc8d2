package forecasting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/forecasting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type ForecastRepo interface {
	// Upsert writes the forecast by its natural key; re-running a period
	// overwrites the prediction but never touches actual or accuracy.
	Upsert(ctx context.Context, tx *gorm.DB, forecast *types.Forecast) error
	GetByKey(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, target forecasting.ForecastTarget, scopeKey string, periodStart time.Time) (*types.Forecast, error)
	// RecordActual stores the observed value and the derived accuracy once.
	// Recording over an existing actual is a no-op.
	RecordActual(ctx context.Context, tx *gorm.DB, forecastID uuid.UUID, actual, accuracy float64) (bool, error)
	ListRecent(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, target forecasting.ForecastTarget, limit int) ([]*types.Forecast, error)
	// TrailingAccuracy averages accuracy over the most recent closed periods.
	TrailingAccuracy(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, target forecasting.ForecastTarget, window int) (float64, int, error)
}

type forecastRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewForecastRepo(db *gorm.DB, baseLog *logger.Logger) ForecastRepo {
	return &forecastRepo{db: db, log: baseLog.With("repo", "ForecastRepo")}
}

func (fr *forecastRepo) Upsert(ctx context.Context, tx *gorm.DB, forecast *types.Forecast) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "branch_id"}, {Name: "target"}, {Name: "scope_key"}, {Name: "period_start"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"period_end", "predicted", "confidence_score", "confidence_lower",
				"confidence_upper", "breakdown", "factors", "schema_version", "updated_at",
			}),
		}).
		Create(forecast).Error
}

func (fr *forecastRepo) GetByKey(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, target forecasting.ForecastTarget, scopeKey string, periodStart time.Time) (*types.Forecast, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var forecast types.Forecast
	err := transaction.WithContext(ctx).
		Where("branch_id = ? AND target = ? AND scope_key = ? AND period_start = ?",
			branchID, target, scopeKey, periodStart).
		First(&forecast).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &forecast, nil
}

func (fr *forecastRepo) RecordActual(ctx context.Context, tx *gorm.DB, forecastID uuid.UUID, actual, accuracy float64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.Forecast{}).
		Where("id = ? AND actual IS NULL", forecastID).
		Updates(map[string]interface{}{"actual": actual, "accuracy": accuracy})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (fr *forecastRepo) ListRecent(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, target forecasting.ForecastTarget, limit int) ([]*types.Forecast, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Forecast
	query := transaction.WithContext(ctx).
		Where("branch_id = ? AND target = ?", branchID, target).
		Order("period_start DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *forecastRepo) TrailingAccuracy(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, target forecasting.ForecastTarget, window int) (float64, int, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var rows []types.Forecast
	query := transaction.WithContext(ctx).
		Select("accuracy").
		Where("branch_id = ? AND target = ? AND accuracy IS NOT NULL", branchID, target).
		Order("period_start DESC")
	if window > 0 {
		query = query.Limit(window)
	}
	if err := query.Find(&rows).Error; err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}

	var sum float64
	for _, row := range rows {
		sum += *row.Accuracy
	}
	return sum / float64(len(rows)), len(rows), nil
}
