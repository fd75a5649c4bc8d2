package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/testutil"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
)

func TestAlertSettingRepo_GetOrCreate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAlertSettingRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()

	setting, err := repo.GetOrCreate(ctx, tx, branchID, alerting.AlertChurnRisk, 70, 72)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !setting.Enabled {
		t.Fatalf("GetOrCreate: new setting should default to enabled")
	}
	if setting.Threshold == nil || *setting.Threshold != 70 {
		t.Fatalf("GetOrCreate: threshold = %v, want 70", setting.Threshold)
	}
	if setting.CooldownHours == nil || *setting.CooldownHours != 72 {
		t.Fatalf("GetOrCreate: cooldown = %v, want 72", setting.CooldownHours)
	}

	// A second call with different defaults returns the existing row.
	again, err := repo.GetOrCreate(ctx, tx, branchID, alerting.AlertChurnRisk, 99, 1)
	if err != nil {
		t.Fatalf("GetOrCreate (repeat): %v", err)
	}
	if again.ID != setting.ID {
		t.Fatalf("GetOrCreate: expected the same row, got %s and %s", setting.ID, again.ID)
	}
	if *again.Threshold != 70 {
		t.Fatalf("GetOrCreate: existing threshold overwritten to %v", *again.Threshold)
	}
}

func TestAlertSettingRepo_ZeroThresholdStaysUnset(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAlertSettingRepo(db, testutil.Logger(t))
	ctx := context.Background()

	setting, err := repo.GetOrCreate(ctx, tx, uuid.New(), alerting.AlertCriticalPrayer, 0, 0)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if setting.Threshold != nil {
		t.Fatalf("GetOrCreate: zero default threshold should store NULL, got %v", *setting.Threshold)
	}
}

func TestAlertSettingRepo_Updates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAlertSettingRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	setting, err := repo.GetOrCreate(ctx, tx, branchID, alerting.AlertClusterHealth, 40, 168)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	override := 55.0
	if err := repo.UpdateThreshold(ctx, tx, setting.ID, &override); err != nil {
		t.Fatalf("UpdateThreshold: %v", err)
	}
	cooldown := 24
	if err := repo.UpdateCooldown(ctx, tx, setting.ID, &cooldown); err != nil {
		t.Fatalf("UpdateCooldown: %v", err)
	}
	if err := repo.SetEnabled(ctx, tx, setting.ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	triggeredAt := time.Now().UTC().Truncate(time.Second)
	if err := repo.MarkTriggered(ctx, tx, setting.ID, triggeredAt); err != nil {
		t.Fatalf("MarkTriggered: %v", err)
	}

	reloaded, err := repo.GetOrCreate(ctx, tx, branchID, alerting.AlertClusterHealth, 40, 168)
	if err != nil {
		t.Fatalf("GetOrCreate (reload): %v", err)
	}
	if reloaded.Threshold == nil || *reloaded.Threshold != 55 {
		t.Fatalf("threshold = %v, want 55", reloaded.Threshold)
	}
	if reloaded.CooldownHours == nil || *reloaded.CooldownHours != 24 {
		t.Fatalf("cooldown = %v, want 24", reloaded.CooldownHours)
	}
	if reloaded.Enabled {
		t.Fatalf("setting should be disabled")
	}
	if reloaded.LastTriggeredAt == nil || !reloaded.LastTriggeredAt.Equal(triggeredAt) {
		t.Fatalf("last triggered = %v, want %v", reloaded.LastTriggeredAt, triggeredAt)
	}
}
