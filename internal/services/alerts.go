package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/alerts"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/lifecycle"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/recommend"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/scoring"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos"
	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// AlertRunResult counts what one branch evaluation produced per type.
type AlertRunResult struct {
	BranchID   uuid.UUID
	Created    int
	Suppressed int
	Skipped    int
	ByType     map[alerting.AlertType]int
}

type AlertService interface {
	// EvaluateBranch walks every alert type in order against the scoring
	// batch, creating deduplicated alerts for qualifying subjects.
	EvaluateBranch(ctx context.Context, batch *BatchResult) (*AlertRunResult, error)
}

type alertService struct {
	db       *gorm.DB
	log      *logger.Logger
	cfg      config.Config
	alerts   repos.AlertRepo
	settings repos.AlertSettingRepo
}

func NewAlertService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg config.Config,
	alertRepo repos.AlertRepo,
	settingRepo repos.AlertSettingRepo,
) AlertService {
	return &alertService{
		db:       db,
		log:      baseLog.With("service", "AlertService"),
		cfg:      cfg,
		alerts:   alertRepo,
		settings: settingRepo,
	}
}

// candidate is one qualifying subject for an alert type, with the payload
// the alert row carries.
type candidate struct {
	subjectType alerting.SubjectType
	subjectID   uuid.UUID
	severity    alerting.Severity
	title       string
	description string
	score       float64
	factors     []scoring.Factor
	category    activity.PrayerCategory
}

func (s *alertService) EvaluateBranch(ctx context.Context, batch *BatchResult) (*AlertRunResult, error) {
	result := &AlertRunResult{
		BranchID: batch.BranchID,
		ByType:   make(map[alerting.AlertType]int, len(alerting.AllAlertTypes)),
	}

	for _, alertType := range alerting.AllAlertTypes {
		defaults := s.cfg.Alerts.ForType(string(alertType))
		setting, err := s.settings.GetOrCreate(ctx, nil, batch.BranchID, alertType, defaults.Threshold, defaults.CooldownHours)
		if err != nil {
			return nil, err
		}
		if !setting.Enabled {
			result.Skipped++
			continue
		}

		threshold := alerts.EffectiveThreshold(setting, defaults)
		cooldown := alerts.EffectiveCooldown(setting, defaults)

		// The dedup window doubles as the cooldown window: an identical
		// subject inside it is suppressed, not re-alerted.
		windowStart := batch.RunClock.Add(-cooldown)
		if alerts.CooldownExempt(alertType) || cooldown <= 0 {
			windowStart = batch.RunClock
		}

		candidates := s.qualify(alertType, threshold, batch)
		created := 0
		for _, c := range candidates {
			inserted, err := s.createAlert(ctx, batch, alertType, c, windowStart)
			if err != nil {
				return nil, err
			}
			if inserted {
				created++
			} else {
				result.Suppressed++
			}
		}

		result.Created += created
		result.ByType[alertType] = created

		// A run that created nothing must not advance the cooldown clock,
		// or a suppressed subject could be suppressed forever.
		if created > 0 {
			if err := s.settings.MarkTriggered(ctx, nil, setting.ID, batch.RunClock); err != nil {
				return nil, err
			}
		}
	}

	s.log.Info("branch alerts evaluated",
		"branch_id", batch.BranchID,
		"created", result.Created,
		"suppressed", result.Suppressed,
		"skipped", result.Skipped)
	return result, nil
}

func (s *alertService) qualify(alertType alerting.AlertType, threshold float64, batch *BatchResult) []candidate {
	var out []candidate

	switch alertType {
	case alerting.AlertChurnRisk:
		for _, m := range batch.Members {
			if m.Churn.Score < threshold {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectMember,
				subjectID:   m.MemberID,
				severity:    alerts.SeverityByExcess(m.Churn.Score, threshold, s.cfg.Alerts),
				title:       "High churn risk",
				description: fmt.Sprintf("Churn risk score %.0f is at or above the branch threshold of %.0f.", m.Churn.Score, threshold),
				score:       m.Churn.Score,
				factors:     m.Churn.Factors,
			})
		}

	case alerting.AlertAttendanceAnomaly:
		for _, m := range batch.Members {
			if !m.Anomaly.Flagged || m.Anomaly.Score < threshold {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectMember,
				subjectID:   m.MemberID,
				severity:    alerts.SeverityByExcess(m.Anomaly.Score, threshold, s.cfg.Alerts),
				title:       "Attendance anomaly",
				description: fmt.Sprintf("Attendance changed %.0f%% against the member's own baseline.", m.Anomaly.ChangePct),
				score:       m.Anomaly.Score,
				factors:     m.Anomaly.Factors,
			})
		}

	case alerting.AlertLifecycleConcern:
		for _, m := range batch.Members {
			if m.Transition != lifecycle.TransitionConcerning {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectMember,
				subjectID:   m.MemberID,
				severity:    alerting.SeverityHigh,
				title:       "Concerning lifecycle transition",
				description: fmt.Sprintf("Member moved from %s to %s.", m.PreviousStage, m.Classification.Stage),
				score:       m.Classification.Confidence,
			})
		}

	case alerting.AlertClusterHealth:
		for _, c := range batch.Clusters {
			if c.Health.Score >= threshold {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectCluster,
				subjectID:   c.ClusterID,
				severity:    alerts.SeverityForHealthLevel(c.Health.Level),
				title:       "Cluster health below threshold",
				description: fmt.Sprintf("Cluster health score %.0f fell below the branch threshold of %.0f.", c.Health.Score, threshold),
				score:       c.Health.Score,
				factors:     c.Health.Factors,
			})
		}

	case alerting.AlertHouseholdEngagement:
		for _, h := range batch.Households {
			if h.Engagement.Score >= threshold {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectHousehold,
				subjectID:   h.HouseholdID,
				severity:    alerts.SeverityForHealthLevel(h.Engagement.Level),
				title:       "Household engagement low",
				description: fmt.Sprintf("Household engagement score %.0f fell below the branch threshold of %.0f.", h.Engagement.Score, threshold),
				score:       h.Engagement.Score,
				factors:     h.Engagement.Factors,
			})
		}

	case alerting.AlertMessagingDisengaged:
		for _, m := range batch.Members {
			// Members who were never messaged carry no disengagement signal.
			if hasFactorNamed(m.Messaging.Factors, "no_messages") {
				continue
			}
			if m.Messaging.Score >= threshold {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectMember,
				subjectID:   m.MemberID,
				severity:    alerts.SeverityByExcess(threshold, m.Messaging.Score, s.cfg.Alerts),
				title:       "Messaging disengagement",
				description: fmt.Sprintf("Messaging engagement score %.0f fell below the branch threshold of %.0f.", m.Messaging.Score, threshold),
				score:       m.Messaging.Score,
				factors:     m.Messaging.Factors,
			})
		}

	case alerting.AlertCriticalPrayer:
		for _, p := range batch.Prayers {
			if p.Assessment.Urgency != activity.UrgencyCritical {
				continue
			}
			out = append(out, candidate{
				subjectType: alerting.SubjectPrayerRequest,
				subjectID:   p.RequestID,
				severity:    alerts.SeverityForUrgency(p.Assessment.Urgency),
				title:       "Critical prayer request",
				description: fmt.Sprintf("Prayer request matched critical pattern %q.", p.Assessment.MatchedPattern),
				score:       p.Assessment.PriorityScore,
				category:    p.Assessment.Category,
			})
		}
	}
	return out
}

func (s *alertService) createAlert(ctx context.Context, batch *BatchResult, alertType alerting.AlertType, c candidate, windowStart time.Time) (bool, error) {
	recs := recommend.For(recommend.Context{
		Type:           alertType,
		Severity:       c.severity,
		Score:          c.score,
		Factors:        c.factors,
		PrayerCategory: c.category,
	}, s.cfg.Alerts)

	factorsJSON, err := json.Marshal(c.factors)
	if err != nil {
		return false, err
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return false, err
	}

	alert := &types.Alert{
		ID:              uuid.New(),
		BranchID:        batch.BranchID,
		Type:            alertType,
		Severity:        c.severity,
		Title:           c.title,
		Description:     c.description,
		SubjectType:     c.subjectType,
		SubjectID:       c.subjectID,
		SchemaVersion:   alerting.AlertPayloadSchemaVersion,
		Factors:         datatypes.JSON(factorsJSON),
		Recommendations: datatypes.JSON(recsJSON),
		CreatedAt:       batch.RunClock,
	}
	return s.alerts.CreateIfAbsent(ctx, nil, alert, windowStart)
}

func hasFactorNamed(factors []scoring.Factor, name string) bool {
	for _, f := range factors {
		if f.Name == name {
			return true
		}
	}
	return false
}
