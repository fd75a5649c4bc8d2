package scoring

import (
	"math"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
)

const (
	AnomalyBucketCritical = "critical"
	AnomalyBucketHigh     = "high"
	AnomalyBucketMedium   = "medium"
)

// AnomalyResult reports whether a member's recent attendance is anomalous
// relative to their own baseline. Flagged is false when there is too little
// baseline signal or the decline does not reach the configured threshold.
type AnomalyResult struct {
	ScoreResult
	Flagged   bool    `json:"flagged"`
	ChangePct float64 `json:"change_pct"`
	Bucket    string  `json:"bucket"`
}

func AttendanceAnomaly(f features.MemberFeatures, cfg config.AttendanceConfig) AnomalyResult {
	result := AnomalyResult{}

	if f.BaselineWeeklyAvg < cfg.MinBaselineAvg {
		return result
	}

	changePct := (f.RecentWeeklyAvg - f.BaselineWeeklyAvg) / f.BaselineWeeklyAvg * 100
	result.ChangePct = changePct

	if changePct > -cfg.DeclineThresholdPct {
		return result
	}

	result.Flagged = true
	score := 0.5 * math.Min(math.Abs(changePct), 100)
	result.addFactor("attendance_decline",
		"Recent weekly attendance is down against the member's baseline",
		ImpactIncrease, math.Abs(changePct))

	if f.RecentWeeklyAvg == 0 {
		score += cfg.ZeroRecentBonus
		result.addFactor("attendance_stopped",
			"No attendance at all in the comparison window",
			ImpactIncrease, cfg.ZeroRecentBonus)
	}

	// A previously very active member dropping off is weighted above a
	// marginal attender doing the same.
	var activityBonus float64
	switch {
	case f.BaselineWeeklyAvg >= cfg.ActivityTierHigh:
		activityBonus = cfg.ActivityBonusHigh
	case f.BaselineWeeklyAvg >= cfg.ActivityTierMid:
		activityBonus = cfg.ActivityBonusMid
	default:
		activityBonus = cfg.ActivityBonusLow
	}
	score += activityBonus
	result.addFactor("baseline_activity",
		"Weight for how active the member's baseline was",
		ImpactIncrease, activityBonus)

	result.Score = clamp(score, 0, 100)
	result.Bucket = anomalyBucket(changePct, cfg)
	result.Level = result.Bucket
	return result
}

func anomalyBucket(changePct float64, cfg config.AttendanceConfig) string {
	switch {
	case changePct <= -cfg.CriticalDeclinePct:
		return AnomalyBucketCritical
	case changePct <= -cfg.HighDeclinePct:
		return AnomalyBucketHigh
	default:
		return AnomalyBucketMedium
	}
}
