package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/runlock"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/services"
)

// BranchReport is the outcome of one branch's full analytics run.
type BranchReport struct {
	BranchID  uuid.UUID
	Locked    bool
	Err       error
	Scoring   *services.BatchResult
	Alerts    *services.AlertRunResult
	Forecasts *services.ForecastRunResult
	Duration  time.Duration
}

// RunReport aggregates a multi-branch run.
type RunReport struct {
	RunClock time.Time
	Branches []BranchReport
}

func (r *RunReport) Failed() int {
	n := 0
	for _, b := range r.Branches {
		if b.Err != nil {
			n++
		}
	}
	return n
}

type Runner struct {
	log       *logger.Logger
	locker    runlock.Locker
	analytics services.AnalyticsService
	alerts    services.AlertService
	forecasts services.ForecastService

	// Concurrency caps the number of branches processed in parallel.
	Concurrency int
	// LockTTL bounds how long a crashed run can hold a branch.
	LockTTL time.Duration
}

func NewRunner(
	baseLog *logger.Logger,
	locker runlock.Locker,
	analyticsService services.AnalyticsService,
	alertService services.AlertService,
	forecastService services.ForecastService,
) *Runner {
	return &Runner{
		log:         baseLog.With("job", "AnalyticsRunner"),
		locker:      locker,
		analytics:   analyticsService,
		alerts:      alertService,
		forecasts:   forecastService,
		Concurrency: 4,
		LockTTL:     15 * time.Minute,
	}
}

// Run executes the full pipeline for every branch: scoring, then alert
// evaluation over the scoring batch, then forecasting. All branches share
// one run clock captured at entry, so every window in the run is derived
// from the same instant. A branch failure is reported, not fatal to the
// other branches.
func (r *Runner) Run(ctx context.Context, branchIDs []uuid.UUID) *RunReport {
	runClock := time.Now().UTC()
	report := &RunReport{
		RunClock: runClock,
		Branches: make([]BranchReport, len(branchIDs)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	for i, branchID := range branchIDs {
		i, branchID := i, branchID
		g.Go(func() error {
			branch := r.runBranch(gctx, branchID, runClock)
			mu.Lock()
			report.Branches[i] = branch
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	r.log.Info("analytics run finished",
		"branches", len(branchIDs),
		"failed", report.Failed(),
		"run_clock", runClock)
	return report
}

func (r *Runner) runBranch(ctx context.Context, branchID uuid.UUID, runClock time.Time) BranchReport {
	started := time.Now()
	branch := BranchReport{BranchID: branchID}

	release, ok, err := r.locker.Acquire(ctx, branchID.String(), r.LockTTL)
	if err != nil {
		branch.Err = err
		return branch
	}
	if !ok {
		branch.Locked = true
		r.log.Warn("branch locked by another run, skipping", "branch_id", branchID)
		return branch
	}
	defer release()

	batch, err := r.analytics.ScoreBranch(ctx, branchID, runClock)
	if err != nil {
		branch.Err = err
		branch.Duration = time.Since(started)
		return branch
	}
	branch.Scoring = batch

	alertRun, err := r.alerts.EvaluateBranch(ctx, batch)
	if err != nil {
		branch.Err = err
		branch.Duration = time.Since(started)
		return branch
	}
	branch.Alerts = alertRun

	forecastRun, err := r.forecasts.ForecastBranch(ctx, branchID, runClock)
	if err != nil {
		branch.Err = err
		branch.Duration = time.Since(started)
		return branch
	}
	branch.Forecasts = forecastRun

	branch.Duration = time.Since(started)
	return branch
}
