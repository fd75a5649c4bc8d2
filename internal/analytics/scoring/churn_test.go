package scoring

import (
	"testing"
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
)

func churnCfg() config.ChurnConfig { return config.Default().Churn }

func TestChurnRisk_NoDonationHistory(t *testing.T) {
	f := features.MemberFeatures{DonationCount: 0, DaysSinceLastDonation: -1}
	got := ChurnRisk(f, churnCfg())

	if got.Score != 0 {
		t.Fatalf("expected score 0 for member with no giving history, got %.1f", got.Score)
	}
	if len(got.Factors) != 1 || got.Factors[0].Name != "no_donation_history" {
		t.Fatalf("expected single no_donation_history factor, got %+v", got.Factors)
	}
}

func TestChurnRisk_IntervalPenaltyCapped(t *testing.T) {
	// 10x the typical interval overdue: the penalty must stop at the cap.
	f := features.MemberFeatures{
		DonationCount:         20,
		TypicalIntervalDays:   10,
		DaysSinceLastDonation: 100,
	}
	got := ChurnRisk(f, churnCfg())

	var interval float64
	for _, factor := range got.Factors {
		if factor.Name == "donation_overdue" {
			interval = factor.Value
		}
	}
	if interval != churnCfg().IntervalPenaltyMax {
		t.Fatalf("expected interval penalty capped at %.0f, got %.1f", churnCfg().IntervalPenaltyMax, interval)
	}
}

func TestChurnRisk_RegularDonorWeighted(t *testing.T) {
	// A historically regular donor going quiet is weighted above an
	// occasional one, and the factor records the raw donation count.
	base := features.MemberFeatures{
		DonationCount:         5,
		TypicalIntervalDays:   30,
		DaysSinceLastDonation: 10,
		Attendance90d:         4,
	}
	regular := base
	regular.DonationCount = 15

	baseResult := ChurnRisk(base, churnCfg())
	regularResult := ChurnRisk(regular, churnCfg())
	if regularResult.Score <= baseResult.Score {
		t.Fatalf("regular donor should carry extra weight: base %.1f regular %.1f", baseResult.Score, regularResult.Score)
	}

	found := false
	for _, factor := range regularResult.Factors {
		if factor.Name == "regular_donor" {
			found = true
			if factor.Value != 15 {
				t.Fatalf("regular_donor factor should carry the donation count, got %.1f", factor.Value)
			}
		}
	}
	if !found {
		t.Fatalf("expected regular_donor factor, got %+v", regularResult.Factors)
	}
}

func TestChurnRisk_ScoreBounds(t *testing.T) {
	// Pile on every penalty; the score must stay within [0,100].
	worst := features.MemberFeatures{
		DonationCount:         3,
		TypicalIntervalDays:   7,
		DaysSinceLastDonation: 400,
		Recent3MonthSum:       10,
		Prior3MonthSum:        1000,
		DaysSinceLastAttended: 400,
	}
	got := ChurnRisk(worst, churnCfg())
	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of bounds: %.1f", got.Score)
	}

	best := features.MemberFeatures{
		DonationCount:         30,
		TypicalIntervalDays:   30,
		DaysSinceLastDonation: 5,
		Recent3MonthSum:       2000,
		Prior3MonthSum:        1000,
		DaysSinceLastAttended: 2,
	}
	got = ChurnRisk(best, churnCfg())
	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of bounds: %.1f", got.Score)
	}
}

func TestChurnRisk_Levels(t *testing.T) {
	f := features.MemberFeatures{
		DonationCount:         3,
		TypicalIntervalDays:   7,
		DaysSinceLastDonation: 400,
		Recent3MonthSum:       10,
		Prior3MonthSum:        1000,
		DaysSinceLastAttended: 400,
	}
	got := ChurnRisk(f, churnCfg())
	if got.Score < 70 || got.Level != "high" {
		t.Fatalf("expected high level at score %.1f, got %q", got.Score, got.Level)
	}
}

func TestChurnRisk_GivingDeclineFactor(t *testing.T) {
	f := features.MemberFeatures{
		DonationCount:         10,
		TypicalIntervalDays:   30,
		DaysSinceLastDonation: 10,
		Recent3MonthSum:       300,
		Prior3MonthSum:        1000,
		DaysSinceLastAttended: 5,
	}
	got := ChurnRisk(f, churnCfg())

	found := false
	for _, factor := range got.Factors {
		if factor.Name == "giving_decline" {
			found = true
			if factor.Impact != ImpactIncrease {
				t.Fatalf("giving_decline should increase risk, got %q", factor.Impact)
			}
		}
	}
	if !found {
		t.Fatalf("expected giving_decline factor for a 70%% drop, factors: %+v", got.Factors)
	}
}

func TestChurnRisk_DeterministicForSameInputs(t *testing.T) {
	f := features.MemberFeatures{
		JoinedAt:              time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		DonationCount:         8,
		TypicalIntervalDays:   14,
		DaysSinceLastDonation: 40,
		DaysSinceLastAttended: 30,
	}
	a := ChurnRisk(f, churnCfg())
	b := ChurnRisk(f, churnCfg())
	if a.Score != b.Score || a.Level != b.Level || len(a.Factors) != len(b.Factors) {
		t.Fatalf("same inputs produced different results: %+v vs %+v", a, b)
	}
}
