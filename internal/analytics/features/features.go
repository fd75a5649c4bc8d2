package features

import (
	"sort"
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
)

// MemberFeatures is the windowed feature vector one member is scored and
// classified from. All fields are derived from history as of a single run
// clock; scorers never look at the database.
type MemberFeatures struct {
	MembershipStatus   people.MembershipStatus
	JoinedAt           time.Time
	UnconvertedVisitor bool
	MessagingOptedOut  bool
	PreviousStage      string

	// Giving.
	DonationCount         int
	DaysSinceLastDonation int // -1 when no giving history
	TypicalIntervalDays   float64
	Recent3MonthSum       float64
	Prior3MonthSum        float64
	Giving90dCount        int

	// Attendance.
	Attendance90d         int
	DaysSinceLastAttended int // -1 when never attended
	BaselineWeeklyAvg     float64
	RecentWeeklyAvg       float64
	Trend45dPct           float64 // recent 45d vs prior 45d, percent change
}

type DeliveryFeatures struct {
	OptedOut              bool
	Sent                  int
	Delivered             int
	DeliveryRatePct       float64
	DaysSinceLastDelivery int // -1 when never delivered
}

// ClusterFeatures feeds the cluster health composite. Sub-scores are already
// normalised to [0,100].
type ClusterFeatures struct {
	MemberCount     int
	AttendanceScore float64
	EngagementScore float64
	GrowthScore     float64
	RetentionScore  float64
	LeadershipScore float64
}

type HouseholdFeatures struct {
	MemberCount     int
	AttendanceScore float64
	GivingScore     float64
	LifecycleScore  float64
	MessagingScore  float64
}

// GivingStats is the per-member giving summary the feature builder derives
// from raw donation timestamps.
type GivingStats struct {
	Count               int
	DaysSinceLast       int
	TypicalIntervalDays float64
	Recent3MonthSum     float64
	Prior3MonthSum      float64
	Count90d            int
}

// BuildGivingStats computes interval and trend statistics from one member's
// donation history. Donations may arrive in any order.
func BuildGivingStats(amounts []float64, donatedAt []time.Time, now time.Time) GivingStats {
	stats := GivingStats{DaysSinceLast: -1}
	if len(donatedAt) == 0 {
		return stats
	}

	idx := make([]int, len(donatedAt))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return donatedAt[idx[a]].Before(donatedAt[idx[b]]) })

	stats.Count = len(donatedAt)
	last := donatedAt[idx[len(idx)-1]]
	stats.DaysSinceLast = int(now.Sub(last).Hours() / 24)

	if len(idx) > 1 {
		var gapSum float64
		for i := 1; i < len(idx); i++ {
			gapSum += donatedAt[idx[i]].Sub(donatedAt[idx[i-1]]).Hours() / 24
		}
		stats.TypicalIntervalDays = gapSum / float64(len(idx)-1)
	}

	threeMonthsAgo := now.AddDate(0, -3, 0)
	sixMonthsAgo := now.AddDate(0, -6, 0)
	ninetyDaysAgo := now.AddDate(0, 0, -90)
	for i, at := range donatedAt {
		switch {
		case at.After(threeMonthsAgo):
			stats.Recent3MonthSum += amounts[i]
		case at.After(sixMonthsAgo):
			stats.Prior3MonthSum += amounts[i]
		}
		if at.After(ninetyDaysAgo) {
			stats.Count90d++
		}
	}
	return stats
}

// WeeklyAverages compares an older baseline window against a recent window of
// attendance counts.
type WeeklyAverages struct {
	BaselineAvg float64
	RecentAvg   float64
}

// BuildWeeklyAverages splits attendance dates into an older baseline window
// and a recent comparison window ending at now. The baseline excludes the
// comparison weeks so a recent drop does not dilute its own reference point.
func BuildWeeklyAverages(attended []time.Time, baselineWeeks, comparisonWeeks int, now time.Time) WeeklyAverages {
	if baselineWeeks <= 0 || comparisonWeeks <= 0 {
		return WeeklyAverages{}
	}
	recentStart := now.AddDate(0, 0, -7*comparisonWeeks)
	baselineStart := recentStart.AddDate(0, 0, -7*baselineWeeks)

	var baselineCount, recentCount int
	for _, at := range attended {
		switch {
		case at.After(recentStart) && !at.After(now):
			recentCount++
		case at.After(baselineStart) && !at.After(recentStart):
			baselineCount++
		}
	}
	return WeeklyAverages{
		BaselineAvg: float64(baselineCount) / float64(baselineWeeks),
		RecentAvg:   float64(recentCount) / float64(comparisonWeeks),
	}
}

// TrendPct compares attendance counts in the trailing window against the
// window before it, as a percent change. Zero prior activity yields 0 rather
// than a division by zero.
func TrendPct(attended []time.Time, windowDays int, now time.Time) float64 {
	if windowDays <= 0 {
		return 0
	}
	mid := now.AddDate(0, 0, -windowDays)
	start := mid.AddDate(0, 0, -windowDays)

	var recent, prior float64
	for _, at := range attended {
		switch {
		case at.After(mid) && !at.After(now):
			recent++
		case at.After(start) && !at.After(mid):
			prior++
		}
	}
	if prior == 0 {
		return 0
	}
	return (recent - prior) / prior * 100
}
