package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/testutil"
	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
)

func TestAlertRepo_CreateIfAbsentDeduplicates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAlertRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	subjectID := uuid.New()
	now := time.Now().UTC()
	windowStart := now.Add(-72 * time.Hour)

	mk := func() *types.Alert {
		return &types.Alert{
			ID:          uuid.New(),
			BranchID:    branchID,
			Type:        alerting.AlertChurnRisk,
			Severity:    alerting.SeverityHigh,
			Title:       "High churn risk",
			SubjectType: alerting.SubjectMember,
			SubjectID:   subjectID,
			CreatedAt:   now,
		}
	}

	created, err := repo.CreateIfAbsent(ctx, tx, mk(), windowStart)
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if !created {
		t.Fatalf("CreateIfAbsent: expected first call to insert")
	}

	created, err = repo.CreateIfAbsent(ctx, tx, mk(), windowStart)
	if err != nil {
		t.Fatalf("CreateIfAbsent (repeat): %v", err)
	}
	if created {
		t.Fatalf("CreateIfAbsent: duplicate within the window must be suppressed")
	}

	// A different subject is a different alert.
	other := mk()
	other.SubjectID = uuid.New()
	created, err = repo.CreateIfAbsent(ctx, tx, other, windowStart)
	if err != nil {
		t.Fatalf("CreateIfAbsent (other subject): %v", err)
	}
	if !created {
		t.Fatalf("CreateIfAbsent: distinct subject should insert")
	}

	alerts, err := repo.ListByBranch(ctx, tx, branchID, false)
	if err != nil {
		t.Fatalf("ListByBranch: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("ListByBranch: expected 2 alerts, got %d", len(alerts))
	}
}

func TestAlertRepo_CreateIfAbsentOutsideWindow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAlertRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	subjectID := uuid.New()
	now := time.Now().UTC()

	old := &types.Alert{
		ID:          uuid.New(),
		BranchID:    branchID,
		Type:        alerting.AlertAttendanceAnomaly,
		Severity:    alerting.SeverityMedium,
		Title:       "Attendance dropped",
		SubjectType: alerting.SubjectMember,
		SubjectID:   subjectID,
		CreatedAt:   now.Add(-100 * time.Hour),
	}
	if _, err := repo.Create(ctx, tx, old); err != nil {
		t.Fatalf("Create: %v", err)
	}

	fresh := &types.Alert{
		ID:          uuid.New(),
		BranchID:    branchID,
		Type:        alerting.AlertAttendanceAnomaly,
		Severity:    alerting.SeverityMedium,
		Title:       "Attendance dropped",
		SubjectType: alerting.SubjectMember,
		SubjectID:   subjectID,
		CreatedAt:   now,
	}
	created, err := repo.CreateIfAbsent(ctx, tx, fresh, now.Add(-72*time.Hour))
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if !created {
		t.Fatalf("CreateIfAbsent: prior alert outside the window must not suppress")
	}
}

func TestAlertRepo_ReadAndAcknowledge(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAlertRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	alert, err := repo.Create(ctx, tx, &types.Alert{
		ID:          uuid.New(),
		BranchID:    branchID,
		Type:        alerting.AlertCriticalPrayer,
		Severity:    alerting.SeverityCritical,
		Title:       "Urgent prayer request",
		SubjectType: alerting.SubjectPrayerRequest,
		SubjectID:   uuid.New(),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	unread, err := repo.ListByBranch(ctx, tx, branchID, true)
	if err != nil {
		t.Fatalf("ListByBranch unread: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("ListByBranch unread: expected 1 alert, got %d", len(unread))
	}

	if err := repo.Acknowledge(ctx, tx, alert.ID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	unread, err = repo.ListByBranch(ctx, tx, branchID, true)
	if err != nil {
		t.Fatalf("ListByBranch after ack: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("ListByBranch after ack: acknowledged alert still unread")
	}
}
