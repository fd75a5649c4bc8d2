package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// DeliveryStats summarises one member's delivery log.
type DeliveryStats struct {
	Sent            int
	Delivered       int
	LastDeliveredAt *time.Time
}

type MessagingHistoryRepo interface {
	MemberDeliveryStats(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) (map[uuid.UUID]DeliveryStats, error)
}

type messagingHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessagingHistoryRepo(db *gorm.DB, baseLog *logger.Logger) MessagingHistoryRepo {
	return &messagingHistoryRepo{db: db, log: baseLog.With("repo", "MessagingHistoryRepo")}
}

func (mr *messagingHistoryRepo) MemberDeliveryStats(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) (map[uuid.UUID]DeliveryStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var rows []types.MessageDeliveryLog
	if err := transaction.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]DeliveryStats)
	for _, row := range rows {
		stats := out[row.MemberID]
		stats.Sent++
		if row.Status == activity.DeliveryDelivered {
			stats.Delivered++
			if row.DeliveredAt != nil {
				if stats.LastDeliveredAt == nil || row.DeliveredAt.After(*stats.LastDeliveredAt) {
					at := *row.DeliveredAt
					stats.LastDeliveredAt = &at
				}
			}
		}
		out[row.MemberID] = stats
	}
	return out, nil
}
