package alerts

import (
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
)

// EffectiveThreshold is the branch override when present, else the system
// default for the type.
func EffectiveThreshold(setting *alerting.AlertSetting, def config.AlertTypeDefaults) float64 {
	if setting != nil && setting.Threshold != nil {
		return *setting.Threshold
	}
	return def.Threshold
}

// EffectiveCooldown prefers the setting row when it carries an override. An
// explicit zero override means the type re-evaluates every run.
func EffectiveCooldown(setting *alerting.AlertSetting, def config.AlertTypeDefaults) time.Duration {
	hours := def.CooldownHours
	if setting != nil && setting.CooldownHours != nil {
		hours = *setting.CooldownHours
	}
	return time.Duration(hours) * time.Hour
}

// CooldownExempt marks the types that must be re-evaluated every run no
// matter what the setting says. Critical pastoral alerts cannot wait out a
// cooldown window.
func CooldownExempt(alertType alerting.AlertType) bool {
	return alertType == alerting.AlertCriticalPrayer
}

// SeverityByExcess buckets severity by how far the score clears the
// effective threshold.
func SeverityByExcess(score, threshold float64, cfg config.AlertsConfig) alerting.Severity {
	excess := score - threshold
	switch {
	case excess >= cfg.SeverityCriticalExcess:
		return alerting.SeverityCritical
	case excess >= cfg.SeverityHighExcess:
		return alerting.SeverityHigh
	case excess >= cfg.SeverityMediumExcess:
		return alerting.SeverityMedium
	default:
		return alerting.SeverityLow
	}
}

// SeverityForUrgency is the fixed mapping used by prayer alerts instead of
// threshold excess.
func SeverityForUrgency(urgency activity.UrgencyLevel) alerting.Severity {
	switch urgency {
	case activity.UrgencyCritical:
		return alerting.SeverityCritical
	case activity.UrgencyHigh:
		return alerting.SeverityHigh
	case activity.UrgencyElevated:
		return alerting.SeverityMedium
	default:
		return alerting.SeverityLow
	}
}

// SeverityForHealthLevel maps composite health levels onto alert severity
// for the cluster and household types.
func SeverityForHealthLevel(level string) alerting.Severity {
	switch level {
	case "critical":
		return alerting.SeverityCritical
	case "needs_attention":
		return alerting.SeverityHigh
	default:
		return alerting.SeverityMedium
	}
}
