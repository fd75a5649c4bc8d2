package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/db"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/jobs"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/envutil"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/runlock"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/services"
)

func main() {
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("analytics run failed", "error", err)
	}
}

func run(log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbService, err := db.New(log)
	if err != nil {
		return err
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return err
	}
	gdb := dbService.DB()

	var locker runlock.Locker
	if os.Getenv("REDIS_ADDR") != "" {
		locker, err = runlock.New(log)
		if err != nil {
			return err
		}
		defer locker.Close()
	} else {
		log.Warn("REDIS_ADDR not set, running without distributed run locks")
		locker = runlock.NoopLocker{}
	}

	memberRepo := repos.NewMemberRepo(gdb, log)
	householdRepo := repos.NewHouseholdRepo(gdb, log)
	clusterRepo := repos.NewClusterRepo(gdb, log)
	attendanceRepo := repos.NewAttendanceHistoryRepo(gdb, log)
	donationRepo := repos.NewDonationHistoryRepo(gdb, log)
	messagingRepo := repos.NewMessagingHistoryRepo(gdb, log)
	meetingRepo := repos.NewMeetingHistoryRepo(gdb, log)
	prayerRepo := repos.NewPrayerRequestRepo(gdb, log)
	alertRepo := repos.NewAlertRepo(gdb, log)
	settingRepo := repos.NewAlertSettingRepo(gdb, log)
	forecastRepo := repos.NewForecastRepo(gdb, log)

	analyticsService := services.NewAnalyticsService(gdb, log, cfg,
		memberRepo, householdRepo, clusterRepo,
		attendanceRepo, donationRepo, messagingRepo, meetingRepo, prayerRepo)
	alertService := services.NewAlertService(gdb, log, cfg, alertRepo, settingRepo)
	forecastService := services.NewForecastService(gdb, log, cfg, forecastRepo, attendanceRepo, donationRepo)

	branchIDs, err := resolveBranches(ctx, memberRepo)
	if err != nil {
		return err
	}
	if len(branchIDs) == 0 {
		log.Info("no branches to process")
		return nil
	}

	runner := jobs.NewRunner(log, locker, analyticsService, alertService, forecastService)
	runner.Concurrency = envutil.Int("ANALYTICS_CONCURRENCY", runner.Concurrency)

	started := time.Now()
	report := runner.Run(ctx, branchIDs)
	log.Info("done",
		"branches", len(report.Branches),
		"failed", report.Failed(),
		"elapsed", time.Since(started).Round(time.Millisecond))

	if report.Failed() > 0 {
		return fmt.Errorf("%d of %d branches failed", report.Failed(), len(report.Branches))
	}
	return nil
}

// resolveBranches prefers an explicit ANALYTICS_BRANCH_IDS list and falls
// back to every branch that has members.
func resolveBranches(ctx context.Context, memberRepo repos.MemberRepo) ([]uuid.UUID, error) {
	if raw := strings.TrimSpace(os.Getenv("ANALYTICS_BRANCH_IDS")); raw != "" {
		var ids []uuid.UUID
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("parse ANALYTICS_BRANCH_IDS entry %q: %w", part, err)
			}
			ids = append(ids, id)
		}
		return ids, nil
	}
	return memberRepo.DistinctBranchIDs(ctx, nil)
}
