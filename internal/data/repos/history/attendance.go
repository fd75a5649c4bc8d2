package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// AttendanceHistoryRepo serves read-only, branch-scoped, time-windowed
// attendance queries. Scoring math happens in the analytics packages; this
// layer only fetches and buckets.
type AttendanceHistoryRepo interface {
	// MemberAttendanceDates returns service dates per member since the cutoff.
	MemberAttendanceDates(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[uuid.UUID][]time.Time, error)
	// WeeklyTotals returns branch attendance totals per week, newest-first,
	// for the given number of whole weeks ending at asOf.
	WeeklyTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, weeks int, asOf time.Time) ([]float64, error)
	// MemberVisitorTotals splits attendance since the cutoff into member and
	// visitor counts.
	MemberVisitorTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (members int64, visitors int64, err error)
}

type attendanceHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttendanceHistoryRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceHistoryRepo {
	return &attendanceHistoryRepo{db: db, log: baseLog.With("repo", "AttendanceHistoryRepo")}
}

func (ar *attendanceHistoryRepo) MemberAttendanceDates(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[uuid.UUID][]time.Time, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []types.AttendanceRecord
	if err := transaction.WithContext(ctx).
		Where("branch_id = ? AND member_id IS NOT NULL AND service_date >= ?", branchID, since).
		Order("service_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]time.Time)
	for _, row := range rows {
		if row.MemberID == nil {
			continue
		}
		out[*row.MemberID] = append(out[*row.MemberID], row.ServiceDate)
	}
	return out, nil
}

func (ar *attendanceHistoryRepo) WeeklyTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, weeks int, asOf time.Time) ([]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if weeks <= 0 {
		return nil, nil
	}

	since := asOf.AddDate(0, 0, -7*weeks)
	var rows []types.AttendanceRecord
	if err := transaction.WithContext(ctx).
		Select("service_date").
		Where("branch_id = ? AND service_date > ? AND service_date <= ?", branchID, since, asOf).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// Bucket newest-first: index 0 is the most recent whole week.
	totals := make([]float64, weeks)
	for _, row := range rows {
		age := asOf.Sub(row.ServiceDate)
		idx := int(age.Hours() / (24 * 7))
		if idx >= 0 && idx < weeks {
			totals[idx]++
		}
	}
	return totals, nil
}

func (ar *attendanceHistoryRepo) MemberVisitorTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (int64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var members, visitors int64
	if err := transaction.WithContext(ctx).
		Model(&types.AttendanceRecord{}).
		Where("branch_id = ? AND service_date >= ? AND is_visitor = ?", branchID, since, false).
		Count(&members).Error; err != nil {
		return 0, 0, err
	}
	if err := transaction.WithContext(ctx).
		Model(&types.AttendanceRecord{}).
		Where("branch_id = ? AND service_date >= ? AND is_visitor = ?", branchID, since, true).
		Count(&visitors).Error; err != nil {
		return 0, 0, err
	}
	return members, visitors, nil
}
