package scoring

import (
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
)

const (
	HealthLevelExcellent = "excellent"
	HealthLevelHealthy   = "healthy"
	HealthLevelAttention = "needs_attention"
	HealthLevelCritical  = "critical"
)

// ClusterHealth combines five normalised sub-scores into one weighted
// composite. An empty cluster is a distinct terminal case: it reports
// critical with a single factor instead of dividing weights over nothing.
func ClusterHealth(f features.ClusterFeatures, cfg config.HealthConfig) ScoreResult {
	result := ScoreResult{}

	if f.MemberCount == 0 {
		result.Level = HealthLevelCritical
		result.addFactor("no_members", "Cluster has no members", ImpactNeutral, 0)
		return result
	}

	score := f.AttendanceScore*cfg.ClusterAttendanceWeight +
		f.EngagementScore*cfg.ClusterEngagementWeight +
		f.GrowthScore*cfg.ClusterGrowthWeight +
		f.RetentionScore*cfg.ClusterRetentionWeight +
		f.LeadershipScore*cfg.ClusterLeadershipWeight

	result.addFactor("attendance", "Meeting attendance rate", ImpactNeutral, f.AttendanceScore)
	result.addFactor("engagement", "Average member engagement", ImpactNeutral, f.EngagementScore)
	result.addFactor("growth", "Member count growth", ImpactNeutral, f.GrowthScore)
	result.addFactor("retention", "Member retention", ImpactNeutral, f.RetentionScore)
	result.addFactor("leadership", "Leader presence and engagement", ImpactNeutral, f.LeadershipScore)

	result.Score = clamp(score, 0, 100)
	result.Level = HealthLevel(result.Score, cfg)
	return result
}

// HouseholdEngagement is the household variant of the composite: attendance,
// giving, lifecycle and messaging sub-scores.
func HouseholdEngagement(f features.HouseholdFeatures, cfg config.HealthConfig) ScoreResult {
	result := ScoreResult{}

	if f.MemberCount == 0 {
		result.Level = HealthLevelCritical
		result.addFactor("no_members", "Household has no members", ImpactNeutral, 0)
		return result
	}

	score := f.AttendanceScore*cfg.HouseholdAttendanceWeight +
		f.GivingScore*cfg.HouseholdGivingWeight +
		f.LifecycleScore*cfg.HouseholdLifecycleWeight +
		f.MessagingScore*cfg.HouseholdMessagingWeight

	result.addFactor("attendance", "Household attendance", ImpactNeutral, f.AttendanceScore)
	result.addFactor("giving", "Household giving", ImpactNeutral, f.GivingScore)
	result.addFactor("lifecycle", "Average member lifecycle standing", ImpactNeutral, f.LifecycleScore)
	result.addFactor("messaging", "Messaging engagement", ImpactNeutral, f.MessagingScore)

	result.Score = clamp(score, 0, 100)
	result.Level = HealthLevel(result.Score, cfg)
	return result
}

func HealthLevel(score float64, cfg config.HealthConfig) string {
	switch {
	case score >= cfg.LevelExcellentMin:
		return HealthLevelExcellent
	case score >= cfg.LevelHealthyMin:
		return HealthLevelHealthy
	case score >= cfg.LevelAttentionMin:
		return HealthLevelAttention
	default:
		return HealthLevelCritical
	}
}
