package scoring

import (
	"math"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
)

const (
	MessagingLevelHigh     = "highly_engaged"
	MessagingLevelEngaged  = "engaged"
	MessagingLevelPassive  = "passive"
	MessagingLevelInactive = "inactive"
)

// MessagingEngagement scores how reachable and responsive a member is over
// the messaging channels. Opted-out members short-circuit to zero.
func MessagingEngagement(f features.DeliveryFeatures, cfg config.MessagingConfig) ScoreResult {
	result := ScoreResult{}

	if f.OptedOut {
		result.Level = MessagingLevelInactive
		result.addFactor("opted_out", "Member has opted out of messaging", ImpactNeutral, 0)
		return result
	}
	if f.Sent == 0 {
		result.Level = MessagingLevelInactive
		result.addFactor("no_messages", "No messages sent to this member yet", ImpactNeutral, 0)
		return result
	}

	score := f.DeliveryRatePct * cfg.DeliveryRateWeight
	result.addFactor("delivery_rate", "Share of sent messages delivered", ImpactIncrease, f.DeliveryRatePct)

	// Delivered volume as a proxy for an engaged, reachable contact.
	if f.Delivered > cfg.ResponseIndicatorMin {
		score += cfg.ResponseIndicatorBonus
		result.addFactor("response_indicator", "Sustained delivered volume", ImpactIncrease, cfg.ResponseIndicatorBonus)
	}

	if f.DaysSinceLastDelivery >= 0 {
		var recency float64
		switch {
		case f.DaysSinceLastDelivery <= 7:
			recency = cfg.RecencyBonus7d
		case f.DaysSinceLastDelivery <= 30:
			recency = cfg.RecencyBonus30d
		case f.DaysSinceLastDelivery <= 60:
			recency = cfg.RecencyBonus60d
		}
		if recency > 0 {
			score += recency
			result.addFactor("recency", "Recent successful delivery", ImpactIncrease, recency)
		}
	}

	consistency := minF(float64(f.Delivered)*cfg.ConsistencyPerDelivered, cfg.ConsistencyBonusMax)
	if consistency > 0 {
		score += consistency
		result.addFactor("consistency", "Consistent delivery history", ImpactIncrease, consistency)
	}

	// Decay in whole-week increments once the channel has gone quiet.
	if f.DaysSinceLastDelivery > cfg.InactivityDecayDays {
		weeks := math.Floor(float64(f.DaysSinceLastDelivery-cfg.InactivityDecayDays) / 7)
		decay := weeks * cfg.InactivityDecayPerWeek
		if decay > 0 {
			score -= decay
			result.addFactor("inactivity_decay", "Weeks without a delivered message", ImpactDecrease, decay)
		}
	}

	result.Score = clamp(score, 0, 100)
	result.Level = messagingLevel(result.Score, cfg)
	return result
}

func messagingLevel(score float64, cfg config.MessagingConfig) string {
	switch {
	case score >= cfg.LevelHighMin:
		return MessagingLevelHigh
	case score >= cfg.LevelEngagedMin:
		return MessagingLevelEngaged
	case score >= cfg.LevelPassiveMin:
		return MessagingLevelPassive
	default:
		return MessagingLevelInactive
	}
}
