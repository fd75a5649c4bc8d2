package forecast

import (
	"math"
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/forecasting"
)

// Result carries a point forecast with its interval and the intermediate
// factors that produced it.
type Result struct {
	Prediction      float64 `json:"prediction"`
	WeightedAverage float64 `json:"weighted_average"`
	SeasonalFactor  float64 `json:"seasonal_factor"`
	SeasonalReason  string  `json:"seasonal_reason"`
	TrendFactor     float64 `json:"trend_factor"`
	ConfidenceScore float64 `json:"confidence_score"`
	ConfidenceLower float64 `json:"confidence_lower"`
	ConfidenceUpper float64 `json:"confidence_upper"`
	DataPoints      int     `json:"data_points"`
}

// Predict produces a forecast for the period starting at periodStart from
// historical period totals ordered newest-first (weeks for attendance,
// months for giving).
func Predict(values []float64, target forecasting.ForecastTarget, periodStart time.Time, cfg config.ForecastConfig) Result {
	out := Result{
		SeasonalFactor: 1,
		TrendFactor:    1,
		DataPoints:     len(values),
	}
	if len(values) == 0 {
		out.ConfidenceScore = cfg.ConfidenceFloor
		return out
	}

	out.WeightedAverage = weightedAverage(values, cfg)
	out.SeasonalFactor, out.SeasonalReason = seasonalFactor(target, periodStart, cfg)
	out.TrendFactor = trendFactor(values, target, cfg)

	prediction := out.WeightedAverage * out.SeasonalFactor * out.TrendFactor
	if prediction < 0 {
		prediction = 0
	}
	out.Prediction = prediction

	lower, upper := confidenceInterval(values, prediction, cfg)
	out.ConfidenceLower = lower
	out.ConfidenceUpper = upper
	out.ConfidenceScore = confidenceScore(values, cfg)
	return out
}

// weightedAverage applies the descending weight vector newest-first; periods
// beyond the configured weights contribute at the tail weight.
func weightedAverage(values []float64, cfg config.ForecastConfig) float64 {
	var sum, weightSum float64
	for i, v := range values {
		w := cfg.TailWeight
		if i < len(cfg.Weights) {
			w = cfg.Weights[i]
		}
		sum += v * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// trendFactor is the ratio of the mean of the recent half of history to the
// mean of the older half, clamped to the target's band to prevent runaway
// extrapolation.
func trendFactor(values []float64, target forecasting.ForecastTarget, cfg config.ForecastConfig) float64 {
	if len(values) < 4 {
		return 1
	}
	half := len(values) / 2
	recent := mean(values[:half])
	older := mean(values[half:])
	if older == 0 {
		return 1
	}
	factor := recent / older

	lo, hi := cfg.AttendanceTrendClampMin, cfg.AttendanceTrendClampMax
	if target == forecasting.TargetGiving {
		lo, hi = cfg.GivingTrendClampMin, cfg.GivingTrendClampMax
	}
	if factor < lo {
		return lo
	}
	if factor > hi {
		return hi
	}
	return factor
}

// confidenceInterval uses a wide fixed band when there is too little signal,
// otherwise a normal approximation around the prediction.
func confidenceInterval(values []float64, prediction float64, cfg config.ForecastConfig) (float64, float64) {
	nonZero := 0
	for _, v := range values {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero < cfg.WideBandMinPoints {
		band := prediction * cfg.WideBandPct / 100
		return math.Max(0, prediction-band), prediction + band
	}

	sd := stddev(values)
	margin := 1.96 * sd / math.Sqrt(float64(len(values)))
	return math.Max(0, prediction-margin), prediction + margin
}

// confidenceScore grades forecast reliability from variance and data volume,
// bounded to the configured floor and ceiling.
func confidenceScore(values []float64, cfg config.ForecastConfig) float64 {
	score := cfg.BaseConfidence

	m := mean(values)
	if m > 0 {
		cv := stddev(values) / m
		score -= cv * cfg.CVPenaltyFactor
	}

	volume := math.Min(float64(len(values))*cfg.VolumeBonusPer, cfg.VolumeBonusMax)
	score += volume

	if len(values) < cfg.MinDataPeriods {
		score -= float64(cfg.MinDataPeriods-len(values)) * cfg.LowDataPenaltyPer
	}

	if score < cfg.ConfidenceFloor {
		return cfg.ConfidenceFloor
	}
	if score > cfg.ConfidenceCeiling {
		return cfg.ConfidenceCeiling
	}
	return score
}

// ApplyBreakdown distributes a total prediction over the historical
// proportional split (fund types for giving, member/visitor for attendance).
func ApplyBreakdown(prediction float64, historical map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(historical))
	var total float64
	for _, v := range historical {
		total += v
	}
	if total == 0 {
		return out
	}
	for key, v := range historical {
		out[key] = prediction * v / total
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
