package scoring

import (
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
)

// RosterCandidate is the feature view of one pool member for a target date.
type RosterCandidate struct {
	AssignmentCount       int
	MaxPoolAssignments    int     // highest assignment count in the pool
	ReliabilityScore      float64 // 0..100
	ExperienceLevel       int     // 1..5
	LastAssignedDate      *time.Time
	MonthAssignmentCount  int
	MaxMonthlyAssignments int
	PrefersService        bool
	ConflictSameDate      bool
	Available             bool
}

// RosterSuitability scores a candidate for one role on one date. Unavailable
// members are still scored so their factors show up in warnings; eligibility
// is reported separately.
func RosterSuitability(c RosterCandidate, targetDate time.Time, cfg config.RosterConfig) (ScoreResult, bool) {
	result := ScoreResult{}
	score := cfg.BaseScore

	// Fairness: the fewer past assignments relative to the pool's most
	// assigned member, the bigger the boost.
	if c.MaxPoolAssignments > 0 {
		ratio := float64(c.AssignmentCount) / float64(c.MaxPoolAssignments)
		if ratio > 1 {
			ratio = 1
		}
		fairness := cfg.FairnessMax * (1 - ratio)
		score += fairness
		result.addFactor("fairness", "Assignment count relative to pool peers", ImpactIncrease, fairness)
	} else {
		score += cfg.FairnessMax
		result.addFactor("fairness", "No assignments recorded in this pool yet", ImpactIncrease, cfg.FairnessMax)
	}

	experience := float64(c.ExperienceLevel) * cfg.ExperiencePerLevel
	score += experience
	result.addFactor("experience", "Experience level weight", ImpactIncrease, experience)

	reliability := c.ReliabilityScore / 100 * cfg.ReliabilityMax
	score += reliability
	result.addFactor("reliability", "Historical reliability", ImpactIncrease, reliability)

	if c.LastAssignedDate != nil {
		weeks := targetDate.Sub(*c.LastAssignedDate).Hours() / (24 * 7)
		if weeks > 0 {
			recency := minF(weeks*cfg.RecencyPerWeek, cfg.RecencyMax)
			score += recency
			result.addFactor("recency", "Weeks since last assignment", ImpactIncrease, recency)
		}
	} else {
		score += cfg.RecencyMax
		result.addFactor("recency", "Never assigned before", ImpactIncrease, cfg.RecencyMax)
	}

	if c.ConflictSameDate {
		score -= cfg.ConflictPenalty
		result.addFactor("conflict", "Already assigned to another role on this date", ImpactDecrease, cfg.ConflictPenalty)
	}

	if c.MaxMonthlyAssignments > 0 && c.MonthAssignmentCount >= c.MaxMonthlyAssignments {
		score -= cfg.OverworkPenalty
		result.addFactor("overwork", "Monthly assignment cap reached", ImpactDecrease, cfg.OverworkPenalty)
	}

	if c.PrefersService {
		score += cfg.PreferenceBonus
		result.addFactor("preference", "Prefers serving at this service", ImpactIncrease, cfg.PreferenceBonus)
	}

	result.Score = clamp(score, 0, 100)
	eligible := c.Available && !c.ConflictSameDate
	return result, eligible
}
