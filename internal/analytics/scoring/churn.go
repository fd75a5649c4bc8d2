package scoring

import (
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
)

const (
	ChurnLevelHigh   = "high"
	ChurnLevelMedium = "medium"
	ChurnLevelLow    = "low"
)

// ChurnRisk estimates how likely a donor is to disengage from giving.
// Members with no giving history are not churn candidates: they score 0 with
// a single explanatory factor.
func ChurnRisk(f features.MemberFeatures, cfg config.ChurnConfig) ScoreResult {
	result := ScoreResult{}

	if f.DonationCount == 0 {
		result.Level = ChurnLevelLow
		result.addFactor("no_donation_history", "No giving history on record", ImpactNeutral, 0)
		return result
	}

	score := cfg.BaseScore

	// Overdue relative to the member's own giving rhythm.
	if f.TypicalIntervalDays > 0 {
		ratio := float64(f.DaysSinceLastDonation) / f.TypicalIntervalDays
		if ratio > cfg.IntervalRatioTrigger {
			penalty := minF((ratio-1)*cfg.IntervalPenaltyPerRatio, cfg.IntervalPenaltyMax)
			score += penalty
			result.addFactor("donation_overdue",
				"Days since last donation exceed the member's typical giving interval",
				ImpactIncrease, penalty)
		}
	}

	if f.DaysSinceLastDonation > cfg.InactiveDaysTrigger {
		days := float64(f.DaysSinceLastDonation)
		penalty := minF((days-float64(cfg.InactiveDaysTrigger))/30*cfg.InactivePenaltyPer30Day, cfg.InactivePenaltyMax)
		score += penalty
		result.addFactor("prolonged_inactivity",
			"Extended period without any donation",
			ImpactIncrease, penalty)
	}

	// Giving trend: recent three months against the three before that.
	if f.Prior3MonthSum > 0 {
		changePct := (f.Recent3MonthSum - f.Prior3MonthSum) / f.Prior3MonthSum * 100
		if changePct < -cfg.DeclineTriggerPct {
			penalty := minF((-changePct-cfg.DeclineTriggerPct)*cfg.DeclineScale, cfg.DeclinePenaltyMax)
			score += penalty
			result.addFactor("giving_decline",
				"Recent giving is down versus the prior quarter",
				ImpactIncrease, penalty)
		} else if changePct > cfg.GrowthTriggerPct {
			bonus := minF((changePct-cfg.GrowthTriggerPct)*cfg.GrowthScale, cfg.GrowthBonusMax)
			score -= bonus
			result.addFactor("giving_growth",
				"Recent giving is up versus the prior quarter",
				ImpactDecrease, bonus)
		}
	}

	if f.Attendance90d == 0 && f.DaysSinceLastDonation > cfg.NoAttendanceDays {
		score += cfg.NoAttendancePenalty
		result.addFactor("no_recent_attendance",
			"No attendance recorded alongside lapsed giving",
			ImpactIncrease, cfg.NoAttendancePenalty)
	}

	// A historically regular donor going quiet matters more than an
	// occasional one. The factor keeps the raw donation count as its value.
	if f.DonationCount >= cfg.RegularDonorMinDonations {
		score += cfg.RegularDonorPenalty
		result.addFactor("regular_donor",
			"Historically regular donor losing momentum",
			ImpactIncrease, float64(f.DonationCount))
	}

	result.Score = clamp(score, 0, 100)
	result.Level = churnLevel(result.Score)
	return result
}

func churnLevel(score float64) string {
	switch {
	case score >= 70:
		return ChurnLevelHigh
	case score >= 40:
		return ChurnLevelMedium
	default:
		return ChurnLevelLow
	}
}
