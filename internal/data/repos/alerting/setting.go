package alerting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type AlertSettingRepo interface {
	// GetOrCreate loads the (branch, type) setting, creating it with the
	// given defaults on first use.
	GetOrCreate(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, alertType alerting.AlertType, defaultThreshold float64, defaultCooldownHours int) (*types.AlertSetting, error)
	UpdateThreshold(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, threshold *float64) error
	// UpdateCooldown sets the branch override. A pointer to zero disables the
	// cooldown entirely; nil reverts to the system default.
	UpdateCooldown(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, cooldownHours *int) error
	SetEnabled(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, enabled bool) error
	// MarkTriggered advances last_triggered_at. Callers must only invoke it
	// when at least one alert was actually created in the run.
	MarkTriggered(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, at time.Time) error
}

type alertSettingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertSettingRepo(db *gorm.DB, baseLog *logger.Logger) AlertSettingRepo {
	return &alertSettingRepo{db: db, log: baseLog.With("repo", "AlertSettingRepo")}
}

func (sr *alertSettingRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, alertType alerting.AlertType, defaultThreshold float64, defaultCooldownHours int) (*types.AlertSetting, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var setting types.AlertSetting
	err := transaction.WithContext(ctx).
		Where("branch_id = ? AND type = ?", branchID, alertType).
		First(&setting).Error
	if err == nil {
		return &setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cooldown := defaultCooldownHours
	setting = types.AlertSetting{
		ID:            uuid.New(),
		BranchID:      branchID,
		Type:          alertType,
		Enabled:       true,
		CooldownHours: &cooldown,
	}
	if defaultThreshold > 0 {
		threshold := defaultThreshold
		setting.Threshold = &threshold
	}
	if err := transaction.WithContext(ctx).Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (sr *alertSettingRepo) UpdateThreshold(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, threshold *float64) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AlertSetting{}).
		Where("id = ?", settingID).
		Update("threshold", threshold).Error
}

func (sr *alertSettingRepo) UpdateCooldown(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, cooldownHours *int) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AlertSetting{}).
		Where("id = ?", settingID).
		Update("cooldown_hours", cooldownHours).Error
}

func (sr *alertSettingRepo) SetEnabled(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, enabled bool) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AlertSetting{}).
		Where("id = ?", settingID).
		Update("enabled", enabled).Error
}

func (sr *alertSettingRepo) MarkTriggered(ctx context.Context, tx *gorm.DB, settingID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AlertSetting{}).
		Where("id = ?", settingID).
		Update("last_triggered_at", at).Error
}
