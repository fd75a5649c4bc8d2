package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/forecasting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/history"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/testutil"
	domainforecasting "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/forecasting"
)

func TestForecastService_GivingCloseOutRecordsMonthActual(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	forecastRepo := forecasting.NewForecastRepo(tx, log)
	svc := NewForecastService(tx, log, config.Default(),
		forecastRepo,
		history.NewAttendanceHistoryRepo(tx, log),
		history.NewDonationHistoryRepo(tx, log))
	ctx := context.Background()

	branchID := uuid.New()
	donor := uuid.New()

	// Giving history through July, then the August gifts the close-out
	// must pick up.
	for m := 1; m <= 7; m++ {
		testutil.SeedDonation(t, ctx, tx, branchID, donor, 300,
			time.Date(2026, time.Month(m), 15, 0, 0, 0, 0, time.UTC))
	}
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 250, time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC))
	testutil.SeedDonation(t, ctx, tx, branchID, donor, 150, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC))

	// July run forecasts August.
	julyClock := time.Date(2026, 7, 10, 6, 0, 0, 0, time.UTC)
	if _, err := svc.ForecastBranch(ctx, branchID, julyClock); err != nil {
		t.Fatalf("ForecastBranch (july): %v", err)
	}
	augustStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	row, err := forecastRepo.GetByKey(ctx, tx, branchID, domainforecasting.TargetGiving, "all", augustStart)
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if row == nil {
		t.Fatalf("july run did not forecast august giving")
	}
	if !row.UpdatedAt.Equal(julyClock) {
		t.Fatalf("updated_at = %v, want the run clock %v", row.UpdatedAt, julyClock)
	}

	// September run closes August out with the real total.
	septClock := time.Date(2026, 9, 10, 6, 0, 0, 0, time.UTC)
	result, err := svc.ForecastBranch(ctx, branchID, septClock)
	if err != nil {
		t.Fatalf("ForecastBranch (september): %v", err)
	}
	if result.ActualsRecorded == 0 {
		t.Fatalf("september run recorded no actuals")
	}
	row, err = forecastRepo.GetByKey(ctx, tx, branchID, domainforecasting.TargetGiving, "all", augustStart)
	if err != nil {
		t.Fatalf("GetByKey (reload): %v", err)
	}
	if row.Actual == nil || *row.Actual != 400 {
		t.Fatalf("august actual = %v, want 400", row.Actual)
	}
	if row.Accuracy == nil {
		t.Fatalf("august accuracy not recorded")
	}
}
