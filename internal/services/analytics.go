package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/lifecycle"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/scoring"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/history"
	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// MemberOutcome is one member's scoring result within a batch. The alert
// pass consumes these instead of re-deriving features from the database.
type MemberOutcome struct {
	MemberID       uuid.UUID
	Churn          scoring.ScoreResult
	Anomaly        scoring.AnomalyResult
	Messaging      scoring.ScoreResult
	Classification lifecycle.Classification
	Transition     lifecycle.TransitionKind
	PreviousStage  string
}

type ClusterOutcome struct {
	ClusterID uuid.UUID
	Health    scoring.ScoreResult
}

type HouseholdOutcome struct {
	HouseholdID uuid.UUID
	Engagement  scoring.ScoreResult
}

type PrayerOutcome struct {
	RequestID  uuid.UUID
	Assessment scoring.PrayerAssessment
}

// BatchResult summarises one branch scoring run. All outcomes share the
// run clock captured when the batch started.
type BatchResult struct {
	BranchID   uuid.UUID
	RunClock   time.Time
	Members    []MemberOutcome
	Clusters   []ClusterOutcome
	Households []HouseholdOutcome
	Prayers    []PrayerOutcome

	MembersScored    int
	ClustersScored   int
	HouseholdsScored int
	PrayersAssessed  int
	MembersSkipped   int
}

type AnalyticsService interface {
	// ScoreBranch runs the full scoring pass for one branch: member churn,
	// attendance anomaly, messaging engagement, lifecycle classification,
	// donor tiers, cluster health, household engagement and prayer intake.
	ScoreBranch(ctx context.Context, branchID uuid.UUID, runClock time.Time) (*BatchResult, error)
	// LapsedDonors lists donors whose last gift is at least minDays old, for
	// stewardship follow-up screens.
	LapsedDonors(ctx context.Context, branchID uuid.UUID, minDays int, asOf time.Time) ([]history.LapsedDonor, error)
}

type analyticsService struct {
	db         *gorm.DB
	log        *logger.Logger
	cfg        config.Config
	memberRepo repos.MemberRepo
	household  repos.HouseholdRepo
	cluster    repos.ClusterRepo
	attendance repos.AttendanceHistoryRepo
	donations  repos.DonationHistoryRepo
	messaging  repos.MessagingHistoryRepo
	meetings   repos.MeetingHistoryRepo
	prayer     repos.PrayerRequestRepo
}

func NewAnalyticsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg config.Config,
	memberRepo repos.MemberRepo,
	householdRepo repos.HouseholdRepo,
	clusterRepo repos.ClusterRepo,
	attendanceRepo repos.AttendanceHistoryRepo,
	donationRepo repos.DonationHistoryRepo,
	messagingRepo repos.MessagingHistoryRepo,
	meetingRepo repos.MeetingHistoryRepo,
	prayerRepo repos.PrayerRequestRepo,
) AnalyticsService {
	return &analyticsService{
		db:         db,
		log:        baseLog.With("service", "AnalyticsService"),
		cfg:        cfg,
		memberRepo: memberRepo,
		household:  householdRepo,
		cluster:    clusterRepo,
		attendance: attendanceRepo,
		donations:  donationRepo,
		messaging:  messagingRepo,
		meetings:   meetingRepo,
		prayer:     prayerRepo,
	}
}

func (s *analyticsService) ScoreBranch(ctx context.Context, branchID uuid.UUID, runClock time.Time) (*BatchResult, error) {
	result := &BatchResult{BranchID: branchID, RunClock: runClock}

	members, err := s.memberRepo.ListByBranch(ctx, nil, branchID)
	if err != nil {
		return nil, err
	}

	historySince := runClock.AddDate(-1, 0, 0)
	attendanceDates, err := s.attendance.MemberAttendanceDates(ctx, nil, branchID, historySince)
	if err != nil {
		return nil, err
	}
	donationRows, err := s.donations.MemberDonations(ctx, nil, branchID)
	if err != nil {
		return nil, err
	}
	deliveryStats, err := s.messaging.MemberDeliveryStats(ctx, nil, branchID)
	if err != nil {
		return nil, err
	}
	donorTotals, err := s.donations.DonorTotals(ctx, nil, branchID, runClock.AddDate(-1, 0, 0))
	if err != nil {
		return nil, err
	}
	tiers := features.AssignDonorTiers(donorTotals)

	for _, member := range members {
		outcome, err := s.scoreMember(ctx, member, attendanceDates[member.ID], donationRows[member.ID], deliveryStats[member.ID], tiers, runClock)
		if err != nil {
			s.log.Warn("member scoring failed", "member_id", member.ID, "error", err)
			result.MembersSkipped++
			continue
		}
		result.Members = append(result.Members, outcome)
		result.MembersScored++
	}

	if err := s.scoreClusters(ctx, branchID, members, result, runClock); err != nil {
		return nil, err
	}
	if err := s.scoreHouseholds(ctx, branchID, members, result, runClock); err != nil {
		return nil, err
	}
	if err := s.assessPrayerRequests(ctx, branchID, result); err != nil {
		return nil, err
	}

	s.log.Info("branch scored",
		"branch_id", branchID,
		"members", result.MembersScored,
		"clusters", result.ClustersScored,
		"households", result.HouseholdsScored,
		"prayers", result.PrayersAssessed,
		"skipped", result.MembersSkipped)
	return result, nil
}

func (s *analyticsService) LapsedDonors(ctx context.Context, branchID uuid.UUID, minDays int, asOf time.Time) ([]history.LapsedDonor, error) {
	return s.donations.LapsedDonors(ctx, nil, branchID, minDays, asOf)
}

func (s *analyticsService) scoreMember(
	ctx context.Context,
	member *types.Member,
	attended []time.Time,
	donationRows []history.DonationRow,
	delivery history.DeliveryStats,
	tiers map[uuid.UUID]people.DonorTier,
	runClock time.Time,
) (MemberOutcome, error) {
	f := buildMemberFeatures(member, attended, donationRows, s.cfg, runClock)

	churn := scoring.ChurnRisk(f, s.cfg.Churn)
	anomaly := scoring.AttendanceAnomaly(f, s.cfg.Attendance)
	messaging := scoring.MessagingEngagement(buildDeliveryFeatures(member, delivery, runClock), s.cfg.Messaging)

	classification := lifecycle.Classify(f, lifecycle.Scores{
		ChurnRisk:         churn.Score,
		AttendanceAnomaly: anomaly.Score,
	}, s.cfg.Lifecycle, runClock)
	transition := lifecycle.DetectTransition(member.LifecycleStage, classification.Stage)

	tier, ok := tiers[member.ID]
	if !ok {
		tier = people.TierNone
	}

	updates := map[string]interface{}{
		"churn_risk_score":         churn.Score,
		"churn_risk_level":         churn.Level,
		"engagement_score":         messaging.Score,
		"engagement_level":         messaging.Level,
		"lifecycle_stage":          string(classification.Stage),
		"previous_lifecycle_stage": member.LifecycleStage,
		"lifecycle_confidence":     classification.Confidence,
		"donor_tier":               string(tier),
		"last_scored_at":           runClock,
	}
	if err := s.memberRepo.UpdateAnalytics(ctx, nil, member.ID, updates); err != nil {
		return MemberOutcome{}, err
	}

	return MemberOutcome{
		MemberID:       member.ID,
		Churn:          churn,
		Anomaly:        anomaly,
		Messaging:      messaging,
		Classification: classification,
		Transition:     transition,
		PreviousStage:  member.LifecycleStage,
	}, nil
}

// buildMemberFeatures assembles the windowed feature vector for one member
// as of the run clock.
func buildMemberFeatures(member *types.Member, attended []time.Time, donationRows []history.DonationRow, cfg config.Config, runClock time.Time) features.MemberFeatures {
	amounts := make([]float64, len(donationRows))
	donatedAt := make([]time.Time, len(donationRows))
	for i, row := range donationRows {
		amounts[i] = row.Amount
		donatedAt[i] = row.DonatedAt
	}
	giving := features.BuildGivingStats(amounts, donatedAt, runClock)

	weekly := features.BuildWeeklyAverages(attended, cfg.Attendance.BaselineWeeks, cfg.Attendance.ComparisonWeeks, runClock)

	daysSinceAttended := -1
	var attendance90d int
	ninetyDaysAgo := runClock.AddDate(0, 0, -90)
	for _, at := range attended {
		days := int(runClock.Sub(at).Hours() / 24)
		if daysSinceAttended < 0 || days < daysSinceAttended {
			daysSinceAttended = days
		}
		if at.After(ninetyDaysAgo) {
			attendance90d++
		}
	}

	return features.MemberFeatures{
		MembershipStatus:      member.MembershipStatus,
		JoinedAt:              member.JoinedAt,
		UnconvertedVisitor:    false,
		MessagingOptedOut:     member.MessagingOptedOut,
		PreviousStage:         member.LifecycleStage,
		DonationCount:         giving.Count,
		DaysSinceLastDonation: giving.DaysSinceLast,
		TypicalIntervalDays:   giving.TypicalIntervalDays,
		Recent3MonthSum:       giving.Recent3MonthSum,
		Prior3MonthSum:        giving.Prior3MonthSum,
		Giving90dCount:        giving.Count90d,
		Attendance90d:         attendance90d,
		DaysSinceLastAttended: daysSinceAttended,
		BaselineWeeklyAvg:     weekly.BaselineAvg,
		RecentWeeklyAvg:       weekly.RecentAvg,
		Trend45dPct:           features.TrendPct(attended, cfg.Lifecycle.TrendWindowDays, runClock),
	}
}

func buildDeliveryFeatures(member *types.Member, stats history.DeliveryStats, runClock time.Time) features.DeliveryFeatures {
	f := features.DeliveryFeatures{
		OptedOut:              member.MessagingOptedOut,
		Sent:                  stats.Sent,
		Delivered:             stats.Delivered,
		DaysSinceLastDelivery: -1,
	}
	if stats.Sent > 0 {
		f.DeliveryRatePct = float64(stats.Delivered) / float64(stats.Sent) * 100
	}
	if stats.LastDeliveredAt != nil {
		f.DaysSinceLastDelivery = int(runClock.Sub(*stats.LastDeliveredAt).Hours() / 24)
	}
	return f
}

func (s *analyticsService) scoreClusters(ctx context.Context, branchID uuid.UUID, members []*types.Member, result *BatchResult, runClock time.Time) error {
	clusters, err := s.cluster.ListByBranch(ctx, nil, branchID)
	if err != nil {
		return err
	}
	if len(clusters) == 0 {
		return nil
	}

	meetingStats, err := s.meetings.ClusterMeetingStats(ctx, nil, branchID, runClock.AddDate(0, 0, -90))
	if err != nil {
		return err
	}

	outcomeByMember := make(map[uuid.UUID]MemberOutcome, len(result.Members))
	for _, o := range result.Members {
		outcomeByMember[o.MemberID] = o
	}

	byCluster := make(map[uuid.UUID][]*types.Member)
	for _, m := range members {
		if m.ClusterID != nil {
			byCluster[*m.ClusterID] = append(byCluster[*m.ClusterID], m)
		}
	}

	for _, cluster := range clusters {
		f := buildClusterFeatures(cluster, byCluster[cluster.ID], meetingStats[cluster.ID], outcomeByMember)
		health := scoring.ClusterHealth(f, s.cfg.Health)
		if err := s.cluster.UpdateHealth(ctx, nil, cluster.ID, health.Score, health.Level, runClock); err != nil {
			return err
		}
		result.Clusters = append(result.Clusters, ClusterOutcome{ClusterID: cluster.ID, Health: health})
		result.ClustersScored++
	}
	return nil
}

// buildClusterFeatures normalises a cluster's window into the five composite
// sub-scores, each on [0,100].
func buildClusterFeatures(cluster *types.Cluster, members []*types.Member, meetings history.MeetingStats, outcomes map[uuid.UUID]MemberOutcome) features.ClusterFeatures {
	f := features.ClusterFeatures{MemberCount: len(members)}
	if len(members) == 0 {
		return f
	}

	// Attendance: average share of the roster present per meeting.
	if meetings.MeetingCount > 0 {
		perMeeting := float64(meetings.AttendanceEntries) / float64(meetings.MeetingCount)
		f.AttendanceScore = clamp100(perMeeting / float64(len(members)) * 100)
	}

	// Engagement: share of members touched by any meeting in the window.
	f.EngagementScore = clamp100(float64(meetings.DistinctAttendees) / float64(len(members)) * 100)

	var churnSum float64
	var positive int
	for _, m := range members {
		if o, ok := outcomes[m.ID]; ok {
			churnSum += o.Churn.Score
			switch o.Classification.Stage {
			case people.StageGrowing, people.StageEngaged, people.StageNewMember:
				positive++
			}
		}
	}

	// Growth: share of members in a healthy lifecycle stage.
	f.GrowthScore = clamp100(float64(positive) / float64(len(members)) * 100)

	// Retention: inverse of the cluster's mean churn risk.
	f.RetentionScore = clamp100(100 - churnSum/float64(len(members)))

	// Leadership: a named leader who shows up in the window scores full.
	switch {
	case cluster.LeaderID == nil:
		f.LeadershipScore = 30
	case meetings.MeetingCount > 0:
		f.LeadershipScore = 100
	default:
		f.LeadershipScore = 60
	}
	return f
}

func (s *analyticsService) scoreHouseholds(ctx context.Context, branchID uuid.UUID, members []*types.Member, result *BatchResult, runClock time.Time) error {
	households, err := s.household.ListByBranch(ctx, nil, branchID)
	if err != nil {
		return err
	}
	if len(households) == 0 {
		return nil
	}

	outcomeByMember := make(map[uuid.UUID]MemberOutcome, len(result.Members))
	for _, o := range result.Members {
		outcomeByMember[o.MemberID] = o
	}

	byHousehold := make(map[uuid.UUID][]*types.Member)
	for _, m := range members {
		if m.HouseholdID != nil {
			byHousehold[*m.HouseholdID] = append(byHousehold[*m.HouseholdID], m)
		}
	}

	donationRows, err := s.donations.MemberDonations(ctx, nil, branchID)
	if err != nil {
		return err
	}
	attendanceDates, err := s.attendance.MemberAttendanceDates(ctx, nil, branchID, runClock.AddDate(0, 0, -90))
	if err != nil {
		return err
	}

	for _, hh := range households {
		f := buildHouseholdFeatures(byHousehold[hh.ID], attendanceDates, donationRows, outcomeByMember, runClock)
		engagement := scoring.HouseholdEngagement(f, s.cfg.Health)
		if err := s.household.UpdateEngagement(ctx, nil, hh.ID, engagement.Score, engagement.Level, runClock); err != nil {
			return err
		}
		result.Households = append(result.Households, HouseholdOutcome{HouseholdID: hh.ID, Engagement: engagement})
		result.HouseholdsScored++
	}
	return nil
}

func buildHouseholdFeatures(members []*types.Member, attendanceDates map[uuid.UUID][]time.Time, donationRows map[uuid.UUID][]history.DonationRow, outcomes map[uuid.UUID]MemberOutcome, runClock time.Time) features.HouseholdFeatures {
	f := features.HouseholdFeatures{MemberCount: len(members)}
	if len(members) == 0 {
		return f
	}

	ninetyDaysAgo := runClock.AddDate(0, 0, -90)
	var attendanceSum, messagingSum float64
	var givers, positive int
	for _, m := range members {
		// Roughly weekly attendance in the window scores full.
		attendanceSum += clamp100(float64(len(attendanceDates[m.ID])) / 12 * 100)

		for _, row := range donationRows[m.ID] {
			if row.DonatedAt.After(ninetyDaysAgo) {
				givers++
				break
			}
		}

		if o, ok := outcomes[m.ID]; ok {
			messagingSum += o.Messaging.Score
			switch o.Classification.Stage {
			case people.StageGrowing, people.StageEngaged, people.StageNewMember:
				positive++
			}
		}
	}

	n := float64(len(members))
	f.AttendanceScore = attendanceSum / n
	f.GivingScore = clamp100(float64(givers) / n * 100)
	f.LifecycleScore = clamp100(float64(positive) / n * 100)
	f.MessagingScore = messagingSum / n
	return f
}

func (s *analyticsService) assessPrayerRequests(ctx context.Context, branchID uuid.UUID, result *BatchResult) error {
	open, err := s.prayer.ListOpen(ctx, nil, branchID)
	if err != nil {
		return err
	}
	for _, req := range open {
		assessment := scoring.AssessPrayerRequest(req.Title, req.Description, s.cfg.Prayer)
		if err := s.prayer.UpdateAssessment(ctx, nil, req.ID, assessment.Urgency, assessment.Category, assessment.PriorityScore); err != nil {
			return err
		}
		result.Prayers = append(result.Prayers, PrayerOutcome{RequestID: req.ID, Assessment: assessment})
		result.PrayersAssessed++
	}
	return nil
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
