package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/forecast"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos"
	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/forecasting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// weeklyHistoryWeeks and monthlyHistoryMonths bound how far back the engine
// looks when building period totals.
const (
	weeklyHistoryWeeks   = 26
	monthlyHistoryMonths = 24
)

// ForecastRunResult summarises one branch forecast pass.
type ForecastRunResult struct {
	BranchID        uuid.UUID
	ForecastsUpsert int
	ActualsRecorded int
}

type ForecastService interface {
	// ForecastBranch predicts next week's attendance and next month's
	// giving, then closes out any prior periods whose actuals are now known.
	ForecastBranch(ctx context.Context, branchID uuid.UUID, runClock time.Time) (*ForecastRunResult, error)
	// BranchAccuracy reports the trailing mean accuracy for one target.
	BranchAccuracy(ctx context.Context, branchID uuid.UUID, target forecasting.ForecastTarget) (float64, int, error)
}

type forecastService struct {
	db         *gorm.DB
	log        *logger.Logger
	cfg        config.Config
	forecasts  repos.ForecastRepo
	attendance repos.AttendanceHistoryRepo
	donations  repos.DonationHistoryRepo
}

func NewForecastService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg config.Config,
	forecastRepo repos.ForecastRepo,
	attendanceRepo repos.AttendanceHistoryRepo,
	donationRepo repos.DonationHistoryRepo,
) ForecastService {
	return &forecastService{
		db:         db,
		log:        baseLog.With("service", "ForecastService"),
		cfg:        cfg,
		forecasts:  forecastRepo,
		attendance: attendanceRepo,
		donations:  donationRepo,
	}
}

func (s *forecastService) ForecastBranch(ctx context.Context, branchID uuid.UUID, runClock time.Time) (*ForecastRunResult, error) {
	result := &ForecastRunResult{BranchID: branchID}

	if err := s.forecastAttendance(ctx, branchID, runClock, result); err != nil {
		return nil, err
	}
	if err := s.forecastGiving(ctx, branchID, runClock, result); err != nil {
		return nil, err
	}

	s.log.Info("branch forecast",
		"branch_id", branchID,
		"upserts", result.ForecastsUpsert,
		"actuals", result.ActualsRecorded)
	return result, nil
}

func (s *forecastService) forecastAttendance(ctx context.Context, branchID uuid.UUID, runClock time.Time, result *ForecastRunResult) error {
	values, err := s.attendance.WeeklyTotals(ctx, nil, branchID, weeklyHistoryWeeks, runClock)
	if err != nil {
		return err
	}

	periodStart := startOfWeek(runClock).AddDate(0, 0, 7)
	periodEnd := periodStart.AddDate(0, 0, 7)
	prediction := forecast.Predict(values, forecasting.TargetAttendance, periodStart, s.cfg.Forecast)

	// Breakdown follows the recent member/visitor mix.
	memberCount, visitorCount, err := s.attendance.MemberVisitorTotals(ctx, nil, branchID, runClock.AddDate(0, 0, -90))
	if err != nil {
		return err
	}
	breakdown := forecast.ApplyBreakdown(prediction.Prediction, map[string]float64{
		"members":  float64(memberCount),
		"visitors": float64(visitorCount),
	})

	if err := s.upsert(ctx, branchID, forecasting.TargetAttendance, periodStart, periodEnd, prediction, breakdown, runClock); err != nil {
		return err
	}
	result.ForecastsUpsert++

	// Close out last week if it was forecast earlier.
	closedStart := startOfWeek(runClock).AddDate(0, 0, -7)
	actuals, err := s.attendance.WeeklyTotals(ctx, nil, branchID, 1, closedStart.AddDate(0, 0, 7))
	if err != nil {
		return err
	}
	if len(actuals) > 0 {
		recorded, err := s.recordActual(ctx, branchID, forecasting.TargetAttendance, closedStart, actuals[0])
		if err != nil {
			return err
		}
		if recorded {
			result.ActualsRecorded++
		}
	}
	return nil
}

func (s *forecastService) forecastGiving(ctx context.Context, branchID uuid.UUID, runClock time.Time, result *ForecastRunResult) error {
	values, err := s.donations.MonthlyTotals(ctx, nil, branchID, monthlyHistoryMonths, runClock)
	if err != nil {
		return err
	}

	periodStart := startOfMonth(runClock).AddDate(0, 1, 0)
	periodEnd := periodStart.AddDate(0, 1, 0)
	prediction := forecast.Predict(values, forecasting.TargetGiving, periodStart, s.cfg.Forecast)

	fundTotals, err := s.donations.FundTotals(ctx, nil, branchID, runClock.AddDate(0, -6, 0))
	if err != nil {
		return err
	}
	breakdown := forecast.ApplyBreakdown(prediction.Prediction, fundTotals)

	if err := s.upsert(ctx, branchID, forecasting.TargetGiving, periodStart, periodEnd, prediction, breakdown, runClock); err != nil {
		return err
	}
	result.ForecastsUpsert++

	closedStart := startOfMonth(runClock).AddDate(0, -1, 0)
	actuals, err := s.donations.MonthlyTotals(ctx, nil, branchID, 1, closedStart.AddDate(0, 1, 0))
	if err != nil {
		return err
	}
	if len(actuals) > 0 {
		recorded, err := s.recordActual(ctx, branchID, forecasting.TargetGiving, closedStart, actuals[0])
		if err != nil {
			return err
		}
		if recorded {
			result.ActualsRecorded++
		}
	}
	return nil
}

func (s *forecastService) upsert(ctx context.Context, branchID uuid.UUID, target forecasting.ForecastTarget, periodStart, periodEnd time.Time, prediction forecast.Result, breakdown map[string]float64, runClock time.Time) error {
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}
	factorsJSON, err := json.Marshal(prediction)
	if err != nil {
		return err
	}

	row := &types.Forecast{
		ID:              uuid.New(),
		BranchID:        branchID,
		Target:          target,
		ScopeKey:        "all",
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		Predicted:       prediction.Prediction,
		ConfidenceScore: prediction.ConfidenceScore,
		ConfidenceLower: prediction.ConfidenceLower,
		ConfidenceUpper: prediction.ConfidenceUpper,
		SchemaVersion:   forecasting.ForecastPayloadSchemaVersion,
		Breakdown:       datatypes.JSON(breakdownJSON),
		Factors:         datatypes.JSON(factorsJSON),
		UpdatedAt:       runClock,
	}
	return s.forecasts.Upsert(ctx, nil, row)
}

func (s *forecastService) recordActual(ctx context.Context, branchID uuid.UUID, target forecasting.ForecastTarget, periodStart time.Time, actual float64) (bool, error) {
	row, err := s.forecasts.GetByKey(ctx, nil, branchID, target, "all", periodStart)
	if err != nil {
		return false, err
	}
	if row == nil || row.Actual != nil {
		return false, nil
	}
	accuracy := forecast.Accuracy(row.Predicted, actual)
	return s.forecasts.RecordActual(ctx, nil, row.ID, actual, accuracy)
}

func (s *forecastService) BranchAccuracy(ctx context.Context, branchID uuid.UUID, target forecasting.ForecastTarget) (float64, int, error) {
	return s.forecasts.TrailingAccuracy(ctx, nil, branchID, target, s.cfg.Forecast.AccuracyWindow)
}

// startOfWeek truncates to the Monday of the given time's week, UTC.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
