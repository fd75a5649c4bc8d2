package lifecycle

import (
	"testing"
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
)

func classifyNow() time.Time {
	return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
}

// activeBaseline is a long-tenured, regularly attending member that no rule
// above the engaged check should catch.
func activeBaseline(now time.Time) features.MemberFeatures {
	return features.MemberFeatures{
		MembershipStatus:      people.MembershipActive,
		JoinedAt:              now.AddDate(-2, 0, 0),
		Attendance90d:         8,
		Giving90dCount:        2,
		DaysSinceLastAttended: 5,
		Trend45dPct:           0,
	}
}

func TestClassify_InactiveMembershipWinsOverEverything(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	f.MembershipStatus = people.MembershipInactive

	got := Classify(f, Scores{ChurnRisk: 95, AttendanceAnomaly: 95}, cfg, now)
	if got.Stage != people.StageInactive {
		t.Fatalf("stage = %s, want %s", got.Stage, people.StageInactive)
	}
	if got.Confidence != 95 {
		t.Fatalf("confidence = %.0f, want 95", got.Confidence)
	}
	if got.Rule != "membership_inactive" {
		t.Fatalf("rule = %s", got.Rule)
	}
}

func TestClassify_UnconvertedVisitorIsProspect(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	f.UnconvertedVisitor = true

	got := Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageProspect {
		t.Fatalf("stage = %s, want %s", got.Stage, people.StageProspect)
	}
}

func TestClassify_RecentJoinIsNewMember(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	f.JoinedAt = now.AddDate(0, 0, -cfg.NewMemberDays)

	got := Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageNewMember {
		t.Fatalf("stage = %s, want %s", got.Stage, people.StageNewMember)
	}

	// One day past the window falls through to the remaining rules.
	f.JoinedAt = now.AddDate(0, 0, -(cfg.NewMemberDays + 1))
	got = Classify(f, Scores{}, cfg, now)
	if got.Stage == people.StageNewMember {
		t.Fatalf("member past the new-member window still classified as new")
	}
}

func TestClassify_Dormant(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	f.DaysSinceLastAttended = cfg.DormantDays + 30

	got := Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageDormant {
		t.Fatalf("stage = %s, want %s", got.Stage, people.StageDormant)
	}
	if got.Confidence != 90 {
		t.Fatalf("confidence = %.0f, want 90", got.Confidence)
	}

	// Never attended counts as dormant too, not as an error.
	f.DaysSinceLastAttended = -1
	got = Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageDormant {
		t.Fatalf("never-attended stage = %s, want %s", got.Stage, people.StageDormant)
	}
}

func TestClassify_RiskScoresBeatEngagement(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()
	f := activeBaseline(now)

	got := Classify(f, Scores{ChurnRisk: cfg.AtRiskChurnThreshold}, cfg, now)
	if got.Stage != people.StageAtRisk {
		t.Fatalf("churn at threshold: stage = %s, want %s", got.Stage, people.StageAtRisk)
	}

	got = Classify(f, Scores{AttendanceAnomaly: cfg.AtRiskAnomalyThreshold}, cfg, now)
	if got.Stage != people.StageAtRisk {
		t.Fatalf("anomaly at threshold: stage = %s, want %s", got.Stage, people.StageAtRisk)
	}
}

func TestClassify_Disengaging(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	got := Classify(f, Scores{ChurnRisk: cfg.DisengagingChurnThreshold}, cfg, now)
	if got.Stage != people.StageDisengaging {
		t.Fatalf("moderate churn: stage = %s, want %s", got.Stage, people.StageDisengaging)
	}

	f = activeBaseline(now)
	f.Trend45dPct = cfg.TrendDeclinePct - 5
	got = Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageDisengaging {
		t.Fatalf("steep trend decline: stage = %s, want %s", got.Stage, people.StageDisengaging)
	}
}

func TestClassify_EngagedRequiresTenureAttendanceAndGiving(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	got := Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageEngaged {
		t.Fatalf("stage = %s, want %s", got.Stage, people.StageEngaged)
	}
	if got.Rule != "sustained_engagement" {
		t.Fatalf("rule = %s", got.Rule)
	}

	// Drop giving below the bar and the member lands in growing instead.
	f.Giving90dCount = 0
	got = Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageGrowing {
		t.Fatalf("no giving: stage = %s, want %s", got.Stage, people.StageGrowing)
	}
}

func TestClassify_DefaultIsGrowingLowConfidence(t *testing.T) {
	cfg := config.Default().Lifecycle
	now := classifyNow()

	f := activeBaseline(now)
	f.JoinedAt = now.AddDate(0, -4, 0)
	f.Attendance90d = 1
	f.Giving90dCount = 0

	got := Classify(f, Scores{}, cfg, now)
	if got.Stage != people.StageGrowing {
		t.Fatalf("stage = %s, want %s", got.Stage, people.StageGrowing)
	}
	if got.Rule != "default" {
		t.Fatalf("rule = %s, want default", got.Rule)
	}
	if got.Confidence != 60 {
		t.Fatalf("confidence = %.0f, want 60", got.Confidence)
	}
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 0},
		{"day before anniversary", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), 1},
		{"exact anniversary", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 2},
		{"across year boundary", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 3},
		{"future join clamps to zero", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := monthsBetween(tc.from, tc.to); got != tc.want {
				t.Fatalf("monthsBetween = %d, want %d", got, tc.want)
			}
		})
	}
}
