package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// DonationRow is the minimal projection feature building needs.
type DonationRow struct {
	Amount    float64
	DonatedAt time.Time
}

// LapsedDonor is a donor whose last gift predates the requested window.
type LapsedDonor struct {
	MemberID      uuid.UUID
	LastDonatedAt time.Time
	DonationCount int
	TotalAmount   float64
}

type DonationHistoryRepo interface {
	// MemberDonations returns each member's donation rows, unordered.
	MemberDonations(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) (map[uuid.UUID][]DonationRow, error)
	// MonthlyTotals returns branch giving totals per complete calendar
	// month, newest-first. Index 0 is the last month fully elapsed before
	// asOf; the month containing asOf is excluded.
	MonthlyTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, months int, asOf time.Time) ([]float64, error)
	// FundTotals sums giving by fund type since the cutoff.
	FundTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[string]float64, error)
	// LapsedDonors lists donors whose most recent gift is at least minDays
	// old as of asOf.
	LapsedDonors(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, minDays int, asOf time.Time) ([]LapsedDonor, error)
	// DonorTotals sums each donor's giving since the cutoff, for tiering.
	DonorTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[uuid.UUID]float64, error)
}

type donationHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonationHistoryRepo(db *gorm.DB, baseLog *logger.Logger) DonationHistoryRepo {
	return &donationHistoryRepo{db: db, log: baseLog.With("repo", "DonationHistoryRepo")}
}

func (dr *donationHistoryRepo) MemberDonations(ctx context.Context, tx *gorm.DB, branchID uuid.UUID) (map[uuid.UUID][]DonationRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var rows []types.Donation
	if err := transaction.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID][]DonationRow)
	for _, row := range rows {
		out[row.MemberID] = append(out[row.MemberID], DonationRow{Amount: row.Amount, DonatedAt: row.DonatedAt})
	}
	return out, nil
}

func (dr *donationHistoryRepo) MonthlyTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, months int, asOf time.Time) ([]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if months <= 0 {
		return nil, nil
	}

	// Only complete months count: the bucket at index 0 is the calendar
	// month immediately before the one containing asOf, so a partial
	// in-progress month never skews the series.
	end := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	since := end.AddDate(0, -months, 0)
	var rows []types.Donation
	if err := transaction.WithContext(ctx).
		Select("amount", "donated_at").
		Where("branch_id = ? AND donated_at >= ? AND donated_at < ?", branchID, since, end).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]float64, months)
	for _, row := range rows {
		idx := (end.Year()-row.DonatedAt.Year())*12 + int(end.Month()) - int(row.DonatedAt.Month()) - 1
		if idx >= 0 && idx < months {
			totals[idx] += row.Amount
		}
	}
	return totals, nil
}

func (dr *donationHistoryRepo) FundTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[string]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	type fundRow struct {
		FundType string
		Total    float64
	}
	var rows []fundRow
	if err := transaction.WithContext(ctx).
		Model(&types.Donation{}).
		Select("fund_type, SUM(amount) AS total").
		Where("branch_id = ? AND donated_at >= ?", branchID, since).
		Group("fund_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.FundType] = row.Total
	}
	return out, nil
}

func (dr *donationHistoryRepo) LapsedDonors(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, minDays int, asOf time.Time) ([]LapsedDonor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	cutoff := asOf.AddDate(0, 0, -minDays)
	type donorRow struct {
		MemberID      uuid.UUID
		LastDonatedAt time.Time
		DonationCount int
		TotalAmount   float64
	}
	var rows []donorRow
	if err := transaction.WithContext(ctx).
		Model(&types.Donation{}).
		Select("member_id, MAX(donated_at) AS last_donated_at, COUNT(*) AS donation_count, SUM(amount) AS total_amount").
		Where("branch_id = ?", branchID).
		Group("member_id").
		Having("MAX(donated_at) <= ?", cutoff).
		Order("last_donated_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]LapsedDonor, 0, len(rows))
	for _, row := range rows {
		out = append(out, LapsedDonor{
			MemberID:      row.MemberID,
			LastDonatedAt: row.LastDonatedAt,
			DonationCount: row.DonationCount,
			TotalAmount:   row.TotalAmount,
		})
	}
	return out, nil
}

func (dr *donationHistoryRepo) DonorTotals(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[uuid.UUID]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	type totalRow struct {
		MemberID uuid.UUID
		Total    float64
	}
	var rows []totalRow
	if err := transaction.WithContext(ctx).
		Model(&types.Donation{}).
		Select("member_id, SUM(amount) AS total").
		Where("branch_id = ? AND donated_at >= ?", branchID, since).
		Group("member_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		out[row.MemberID] = row.Total
	}
	return out, nil
}
