package recommend

import (
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/scoring"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
)

// Recommendation is one ranked follow-up action attached to an alert.
type Recommendation struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // immediate | soon | routine
	Assignee    string `json:"assignee"` // pastor | cluster_leader | admin | care_team
	Icon        string `json:"icon"`
}

const (
	PriorityImmediate = "immediate"
	PrioritySoon      = "soon"
	PriorityRoutine   = "routine"
)

// Context carries the alert's payload into the rule tables.
type Context struct {
	Type           alerting.AlertType
	Severity       alerting.Severity
	Score          float64
	Factors        []scoring.Factor
	PrayerCategory activity.PrayerCategory
}

// For returns the ranked action list for an alert, capped at the configured
// maximum. Every recognised type yields at least one action; unknown types
// fall back to a generic pair.
func For(ctx Context, cfg config.AlertsConfig) []Recommendation {
	var recs []Recommendation
	switch ctx.Type {
	case alerting.AlertChurnRisk:
		recs = churnRecommendations(ctx)
	case alerting.AlertAttendanceAnomaly:
		recs = attendanceRecommendations(ctx)
	case alerting.AlertLifecycleConcern:
		recs = lifecycleRecommendations(ctx)
	case alerting.AlertClusterHealth:
		recs = clusterRecommendations(ctx)
	case alerting.AlertHouseholdEngagement:
		recs = householdRecommendations(ctx)
	case alerting.AlertMessagingDisengaged:
		recs = messagingRecommendations(ctx)
	case alerting.AlertCriticalPrayer:
		recs = prayerRecommendations(ctx)
	default:
		recs = genericRecommendations()
	}
	if len(recs) == 0 {
		recs = genericRecommendations()
	}
	max := cfg.MaxRecommendations
	if max > 0 && len(recs) > max {
		recs = recs[:max]
	}
	return recs
}

func hasFactor(ctx Context, name string) bool {
	for _, f := range ctx.Factors {
		if f.Name == name {
			return true
		}
	}
	return false
}

func churnRecommendations(ctx Context) []Recommendation {
	recs := []Recommendation{}
	if ctx.Severity == alerting.SeverityCritical {
		recs = append(recs, Recommendation{
			Action:      "schedule_pastoral_visit",
			Description: "Arrange a personal visit before the relationship lapses entirely",
			Priority:    PriorityImmediate,
			Assignee:    "pastor",
			Icon:        "home",
		})
	}
	recs = append(recs, Recommendation{
		Action:      "personal_phone_call",
		Description: "Call to check in, without referencing giving directly",
		Priority:    PrioritySoon,
		Assignee:    "cluster_leader",
		Icon:        "phone",
	})
	if hasFactor(ctx, "giving_decline") {
		recs = append(recs, Recommendation{
			Action:      "review_giving_options",
			Description: "Confirm recurring-giving details are current; payment failures often look like decline",
			Priority:    PrioritySoon,
			Assignee:    "admin",
			Icon:        "credit-card",
		})
	}
	if hasFactor(ctx, "no_recent_attendance") {
		recs = append(recs, Recommendation{
			Action:      "invite_to_service",
			Description: "Send a personal invitation to the next service or event",
			Priority:    PrioritySoon,
			Assignee:    "cluster_leader",
			Icon:        "calendar",
		})
	}
	recs = append(recs, Recommendation{
		Action:      "add_to_prayer_list",
		Description: "Add to the care team's weekly prayer list",
		Priority:    PriorityRoutine,
		Assignee:    "care_team",
		Icon:        "heart",
	})
	return recs
}

func attendanceRecommendations(ctx Context) []Recommendation {
	recs := []Recommendation{}
	if ctx.Severity == alerting.SeverityCritical || hasFactor(ctx, "attendance_stopped") {
		recs = append(recs, Recommendation{
			Action:      "wellbeing_check",
			Description: "A sudden full stop often signals illness, relocation or a life event",
			Priority:    PriorityImmediate,
			Assignee:    "pastor",
			Icon:        "alert-circle",
		})
	}
	recs = append(recs,
		Recommendation{
			Action:      "personal_phone_call",
			Description: "Call to ask how they are doing and whether anything has changed",
			Priority:    PrioritySoon,
			Assignee:    "cluster_leader",
			Icon:        "phone",
		},
		Recommendation{
			Action:      "send_followup_message",
			Description: "Send a we-miss-you message with upcoming service details",
			Priority:    PriorityRoutine,
			Assignee:    "admin",
			Icon:        "mail",
		},
	)
	return recs
}

func lifecycleRecommendations(ctx Context) []Recommendation {
	return []Recommendation{
		{
			Action:      "review_member_record",
			Description: "Review the member's recent history before reaching out",
			Priority:    PrioritySoon,
			Assignee:    "cluster_leader",
			Icon:        "user",
		},
		{
			Action:      "assign_care_contact",
			Description: "Assign a care-team member to follow up within the week",
			Priority:    PrioritySoon,
			Assignee:    "care_team",
			Icon:        "users",
		},
	}
}

func clusterRecommendations(ctx Context) []Recommendation {
	recs := []Recommendation{}
	if ctx.Severity == alerting.SeverityCritical {
		recs = append(recs, Recommendation{
			Action:      "meet_cluster_leader",
			Description: "Sit down with the leader to understand what is happening in the group",
			Priority:    PriorityImmediate,
			Assignee:    "pastor",
			Icon:        "users",
		})
	}
	if hasFactor(ctx, "no_members") {
		recs = append(recs, Recommendation{
			Action:      "merge_or_relaunch",
			Description: "Decide whether to merge the empty cluster or relaunch it with new members",
			Priority:    PrioritySoon,
			Assignee:    "pastor",
			Icon:        "git-merge",
		})
	}
	recs = append(recs, Recommendation{
		Action:      "plan_group_activity",
		Description: "Schedule a social activity to rebuild attendance momentum",
		Priority:    PriorityRoutine,
		Assignee:    "cluster_leader",
		Icon:        "calendar",
	})
	return recs
}

func householdRecommendations(ctx Context) []Recommendation {
	return []Recommendation{
		{
			Action:      "family_visit",
			Description: "Plan a household visit; disengagement usually affects the whole family",
			Priority:    PrioritySoon,
			Assignee:    "pastor",
			Icon:        "home",
		},
		{
			Action:      "invite_family_event",
			Description: "Invite the household to the next family-oriented event",
			Priority:    PriorityRoutine,
			Assignee:    "admin",
			Icon:        "calendar",
		},
	}
}

func messagingRecommendations(ctx Context) []Recommendation {
	recs := []Recommendation{
		{
			Action:      "verify_contact_details",
			Description: "Confirm phone number and email are current; failures may be stale contact data",
			Priority:    PrioritySoon,
			Assignee:    "admin",
			Icon:        "edit",
		},
	}
	if hasFactor(ctx, "opted_out") {
		recs = append(recs, Recommendation{
			Action:      "respect_opt_out",
			Description: "Use in-person or call contact only; the member opted out of messaging",
			Priority:    PriorityRoutine,
			Assignee:    "cluster_leader",
			Icon:        "slash",
		})
	} else {
		recs = append(recs, Recommendation{
			Action:      "try_alternate_channel",
			Description: "Switch channel: if SMS fails, try email or a call",
			Priority:    PriorityRoutine,
			Assignee:    "admin",
			Icon:        "repeat",
		})
	}
	return recs
}

func prayerRecommendations(ctx Context) []Recommendation {
	recs := []Recommendation{
		{
			Action:      "immediate_pastoral_contact",
			Description: "Contact the requester today; the request matched critical patterns",
			Priority:    PriorityImmediate,
			Assignee:    "pastor",
			Icon:        "phone-call",
		},
	}
	switch ctx.PrayerCategory {
	case activity.CategoryHealth:
		recs = append(recs, Recommendation{
			Action:      "hospital_visit",
			Description: "Arrange a hospital or home visit with the care team",
			Priority:    PriorityImmediate,
			Assignee:    "care_team",
			Icon:        "activity",
		})
	case activity.CategoryBereavement:
		recs = append(recs, Recommendation{
			Action:      "bereavement_support",
			Description: "Activate bereavement support: meals, visits and funeral assistance",
			Priority:    PriorityImmediate,
			Assignee:    "care_team",
			Icon:        "heart",
		})
	case activity.CategoryFinancial:
		recs = append(recs, Recommendation{
			Action:      "benevolence_review",
			Description: "Refer to the benevolence fund review process",
			Priority:    PrioritySoon,
			Assignee:    "admin",
			Icon:        "dollar-sign",
		})
	}
	recs = append(recs, Recommendation{
		Action:      "add_to_intercessors_list",
		Description: "Add to the intercessory prayer rotation",
		Priority:    PrioritySoon,
		Assignee:    "care_team",
		Icon:        "heart",
	})
	return recs
}

func genericRecommendations() []Recommendation {
	return []Recommendation{
		{
			Action:      "review_alert",
			Description: "Review the alert details and decide on a follow-up",
			Priority:    PrioritySoon,
			Assignee:    "admin",
			Icon:        "eye",
		},
		{
			Action:      "contact_member",
			Description: "Reach out to the person or group the alert concerns",
			Priority:    PriorityRoutine,
			Assignee:    "cluster_leader",
			Icon:        "phone",
		},
	}
}
