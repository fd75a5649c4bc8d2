package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/testutil"
)

func TestDonationHistoryRepo_LapsedDonors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDonationHistoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	lapsed := uuid.New()
	testutil.SeedDonation(t, ctx, tx, branchID, lapsed, 100, asOf.AddDate(0, 0, -120))
	testutil.SeedDonation(t, ctx, tx, branchID, lapsed, 50, asOf.AddDate(0, 0, -95))

	current := uuid.New()
	testutil.SeedDonation(t, ctx, tx, branchID, current, 200, asOf.AddDate(0, 0, -150))
	testutil.SeedDonation(t, ctx, tx, branchID, current, 200, asOf.AddDate(0, 0, -10))

	rows, err := repo.LapsedDonors(ctx, tx, branchID, 90, asOf)
	if err != nil {
		t.Fatalf("LapsedDonors: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("LapsedDonors: expected 1 donor, got %d", len(rows))
	}
	got := rows[0]
	if got.MemberID != lapsed {
		t.Fatalf("LapsedDonors: member = %s, want %s", got.MemberID, lapsed)
	}
	if got.DonationCount != 2 || got.TotalAmount != 150 {
		t.Fatalf("LapsedDonors: count/total = %d/%.0f, want 2/150", got.DonationCount, got.TotalAmount)
	}
	if !got.LastDonatedAt.Equal(asOf.AddDate(0, 0, -95)) {
		t.Fatalf("LapsedDonors: last donated = %v", got.LastDonatedAt)
	}

	// A wider window catches a donor the narrow one excluded.
	rows, err = repo.LapsedDonors(ctx, tx, branchID, 5, asOf)
	if err != nil {
		t.Fatalf("LapsedDonors (narrow): %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("LapsedDonors: 5-day window should catch both donors, got %d", len(rows))
	}
}

func TestDonationHistoryRepo_DonorTotals(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDonationHistoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	since := asOf.AddDate(-1, 0, 0)

	donor := uuid.New()
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 100, asOf.AddDate(0, -1, 0))
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 60, asOf.AddDate(0, -2, 0))
	// Outside the trailing year.
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 999, asOf.AddDate(-2, 0, 0))

	totals, err := repo.DonorTotals(ctx, tx, branchID, since)
	if err != nil {
		t.Fatalf("DonorTotals: %v", err)
	}
	if totals[donor] != 160 {
		t.Fatalf("DonorTotals: got %.0f, want 160", totals[donor])
	}
}

func TestDonationHistoryRepo_MonthlyTotalsNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDonationHistoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	donor := uuid.New()
	asOf := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	// 100 in July, 40 in June. The August gift lands in the month still in
	// progress and must not appear in any bucket.
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 100, time.Date(2026, 7, 22, 0, 0, 0, 0, time.UTC))
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 40, time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC))
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 999, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))

	totals, err := repo.MonthlyTotals(ctx, tx, branchID, 3, asOf)
	if err != nil {
		t.Fatalf("MonthlyTotals: %v", err)
	}
	if len(totals) != 3 {
		t.Fatalf("MonthlyTotals: expected 3 buckets, got %d", len(totals))
	}
	if totals[0] != 100 || totals[1] != 40 || totals[2] != 0 {
		t.Fatalf("MonthlyTotals: got %v, want [100 40 0]", totals)
	}
}
