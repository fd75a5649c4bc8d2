package recommend

import (
	"testing"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/scoring"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
)

func hasAction(recs []Recommendation, action string) bool {
	for _, r := range recs {
		if r.Action == action {
			return true
		}
	}
	return false
}

func TestFor_EveryAlertTypeProducesActions(t *testing.T) {
	cfg := config.Default().Alerts

	for _, alertType := range alerting.AllAlertTypes {
		recs := For(Context{Type: alertType, Severity: alerting.SeverityMedium}, cfg)
		if len(recs) == 0 {
			t.Fatalf("no recommendations for %s", alertType)
		}
		for _, r := range recs {
			if r.Action == "" || r.Priority == "" || r.Assignee == "" {
				t.Fatalf("incomplete recommendation for %s: %+v", alertType, r)
			}
		}
	}
}

func TestFor_UnknownTypeFallsBackToGeneric(t *testing.T) {
	cfg := config.Default().Alerts

	recs := For(Context{Type: alerting.AlertType("mystery")}, cfg)
	if !hasAction(recs, "review_alert") {
		t.Fatalf("expected generic fallback, got %+v", recs)
	}
}

func TestFor_CapsAtConfiguredMaximum(t *testing.T) {
	cfg := config.Default().Alerts
	cfg.MaxRecommendations = 2

	// Critical churn with both factor-driven extras would exceed the cap.
	recs := For(Context{
		Type:     alerting.AlertChurnRisk,
		Severity: alerting.SeverityCritical,
		Factors: []scoring.Factor{
			{Name: "giving_decline"},
			{Name: "no_recent_attendance"},
		},
	}, cfg)
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want cap of 2", len(recs))
	}
	// Immediate actions must survive the cut.
	if recs[0].Priority != PriorityImmediate {
		t.Fatalf("first recommendation priority = %s, want %s", recs[0].Priority, PriorityImmediate)
	}
}

func TestFor_ChurnFactorsDriveExtras(t *testing.T) {
	cfg := config.Default().Alerts

	plain := For(Context{Type: alerting.AlertChurnRisk, Severity: alerting.SeverityHigh}, cfg)
	if hasAction(plain, "review_giving_options") {
		t.Fatalf("giving action present without the giving_decline factor")
	}

	withDecline := For(Context{
		Type:     alerting.AlertChurnRisk,
		Severity: alerting.SeverityHigh,
		Factors:  []scoring.Factor{{Name: "giving_decline"}},
	}, cfg)
	if !hasAction(withDecline, "review_giving_options") {
		t.Fatalf("expected giving action for giving_decline factor, got %+v", withDecline)
	}
}

func TestFor_PrayerCategoryBranches(t *testing.T) {
	cfg := config.Default().Alerts

	cases := []struct {
		category activity.PrayerCategory
		action   string
	}{
		{activity.CategoryHealth, "hospital_visit"},
		{activity.CategoryBereavement, "bereavement_support"},
		{activity.CategoryFinancial, "benevolence_review"},
	}
	for _, tc := range cases {
		recs := For(Context{
			Type:           alerting.AlertCriticalPrayer,
			Severity:       alerting.SeverityCritical,
			PrayerCategory: tc.category,
		}, cfg)
		if !hasAction(recs, tc.action) {
			t.Fatalf("category %s missing action %s: %+v", tc.category, tc.action, recs)
		}
		if !hasAction(recs, "immediate_pastoral_contact") {
			t.Fatalf("category %s missing immediate contact action", tc.category)
		}
	}
}

func TestFor_MessagingOptOutSuppressesAlternateChannel(t *testing.T) {
	cfg := config.Default().Alerts

	optedOut := For(Context{
		Type:    alerting.AlertMessagingDisengaged,
		Factors: []scoring.Factor{{Name: "opted_out"}},
	}, cfg)
	if !hasAction(optedOut, "respect_opt_out") || hasAction(optedOut, "try_alternate_channel") {
		t.Fatalf("opt-out should route to respect_opt_out only, got %+v", optedOut)
	}

	reachable := For(Context{Type: alerting.AlertMessagingDisengaged}, cfg)
	if !hasAction(reachable, "try_alternate_channel") {
		t.Fatalf("reachable member missing alternate-channel action: %+v", reachable)
	}
}
