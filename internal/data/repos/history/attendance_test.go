package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/testutil"
)

func TestAttendanceHistoryRepo_WeeklyTotalsNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAttendanceHistoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	asOf := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	member := uuid.New()

	// Two entries in the most recent week, one three weeks back.
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, asOf.AddDate(0, 0, -2))
	testutil.SeedAttendance(t, ctx, tx, branchID, nil, asOf.AddDate(0, 0, -3))
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, asOf.AddDate(0, 0, -23))
	// Outside the window entirely.
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, asOf.AddDate(0, 0, -40))

	totals, err := repo.WeeklyTotals(ctx, tx, branchID, 4, asOf)
	if err != nil {
		t.Fatalf("WeeklyTotals: %v", err)
	}
	if len(totals) != 4 {
		t.Fatalf("WeeklyTotals: expected 4 buckets, got %d", len(totals))
	}
	if totals[0] != 2 || totals[1] != 0 || totals[2] != 0 || totals[3] != 1 {
		t.Fatalf("WeeklyTotals: got %v, want [2 0 0 1]", totals)
	}
}

func TestAttendanceHistoryRepo_MemberAttendanceDatesSkipsVisitors(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAttendanceHistoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	member := uuid.New()

	first := since.AddDate(0, 0, 10)
	second := since.AddDate(0, 0, 17)
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, second)
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, first)
	// Visitor rows carry no member and must not appear.
	testutil.SeedAttendance(t, ctx, tx, branchID, nil, first)
	// Before the cutoff.
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, since.AddDate(0, 0, -5))

	dates, err := repo.MemberAttendanceDates(ctx, tx, branchID, since)
	if err != nil {
		t.Fatalf("MemberAttendanceDates: %v", err)
	}
	got := dates[member]
	if len(got) != 2 {
		t.Fatalf("MemberAttendanceDates: expected 2 dates, got %d", len(got))
	}
	if !got[0].Equal(first) || !got[1].Equal(second) {
		t.Fatalf("MemberAttendanceDates: dates not ascending: %v", got)
	}
}

func TestAttendanceHistoryRepo_MemberVisitorTotals(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAttendanceHistoryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	since := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	member := uuid.New()

	testutil.SeedAttendance(t, ctx, tx, branchID, &member, since.AddDate(0, 0, 1))
	testutil.SeedAttendance(t, ctx, tx, branchID, &member, since.AddDate(0, 0, 8))
	visitor := testutil.SeedAttendance(t, ctx, tx, branchID, nil, since.AddDate(0, 0, 8))
	if err := tx.Model(visitor).Update("is_visitor", true).Error; err != nil {
		t.Fatalf("mark visitor: %v", err)
	}

	members, visitors, err := repo.MemberVisitorTotals(ctx, tx, branchID, since)
	if err != nil {
		t.Fatalf("MemberVisitorTotals: %v", err)
	}
	if members != 2 || visitors != 1 {
		t.Fatalf("MemberVisitorTotals: got %d/%d, want 2/1", members, visitors)
	}
}
