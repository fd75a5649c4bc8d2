package lifecycle

import (
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
)

// Classification is the outcome of running the priority rules for a member.
type Classification struct {
	Stage      people.LifecycleStage `json:"stage"`
	Confidence float64               `json:"confidence"`
	Rule       string                `json:"rule"`
}

// Inputs beyond the feature vector: the churn and anomaly scores computed in
// the same run.
type Scores struct {
	ChurnRisk         float64
	AttendanceAnomaly float64
}

// Classify maps a member's feature vector to exactly one lifecycle stage.
// Rules are evaluated in strict priority order; the first match wins, so the
// outcome is deterministic and total.
func Classify(f features.MemberFeatures, scores Scores, cfg config.LifecycleConfig, now time.Time) Classification {
	if f.MembershipStatus == people.MembershipInactive {
		return Classification{Stage: people.StageInactive, Confidence: 95, Rule: "membership_inactive"}
	}

	// Unconverted visitors classify as prospects. Converted member records
	// can never satisfy this rule; it is retained for visitor-sourced
	// feature vectors.
	if f.UnconvertedVisitor {
		return Classification{Stage: people.StageProspect, Confidence: 90, Rule: "unconverted_visitor"}
	}

	if now.Sub(f.JoinedAt).Hours()/24 <= float64(cfg.NewMemberDays) {
		return Classification{Stage: people.StageNewMember, Confidence: 85, Rule: "recently_joined"}
	}

	if f.DaysSinceLastAttended < 0 || f.DaysSinceLastAttended >= cfg.DormantDays {
		return Classification{Stage: people.StageDormant, Confidence: 90, Rule: "no_recent_attendance"}
	}

	if scores.ChurnRisk >= cfg.AtRiskChurnThreshold || scores.AttendanceAnomaly >= cfg.AtRiskAnomalyThreshold {
		return Classification{Stage: people.StageAtRisk, Confidence: 80, Rule: "risk_scores"}
	}

	if scores.ChurnRisk >= cfg.DisengagingChurnThreshold || f.Trend45dPct < cfg.TrendDeclinePct {
		return Classification{Stage: people.StageDisengaging, Confidence: 75, Rule: "early_decline"}
	}

	tenureMonths := monthsBetween(f.JoinedAt, now)
	if tenureMonths >= cfg.EngagedTenureMonths &&
		f.Attendance90d >= cfg.EngagedAttendance90d &&
		f.Giving90dCount >= cfg.EngagedGiving90d {
		return Classification{Stage: people.StageEngaged, Confidence: 85, Rule: "sustained_engagement"}
	}

	if tenureMonths >= cfg.GrowingTenureMonths && f.Attendance90d >= cfg.GrowingAttendance90d {
		return Classification{Stage: people.StageGrowing, Confidence: 70, Rule: "building_habits"}
	}

	return Classification{Stage: people.StageGrowing, Confidence: 60, Rule: "default"}
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
