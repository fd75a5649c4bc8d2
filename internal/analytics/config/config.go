package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/envutil"
)

// Config is the full option set for one analytics run. It is built once per
// run and passed explicitly; engines never read the environment mid-batch.
type Config struct {
	Churn      ChurnConfig      `yaml:"churn"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Health     HealthConfig     `yaml:"health"`
	Messaging  MessagingConfig  `yaml:"messaging"`
	Prayer     PrayerConfig     `yaml:"prayer"`
	Roster     RosterConfig     `yaml:"roster"`
	Forecast   ForecastConfig   `yaml:"forecast"`
	Alerts     AlertsConfig     `yaml:"alerts"`
}

type ChurnConfig struct {
	BaseScore float64 `yaml:"base_score"`

	// Interval penalty: fires when days since last donation exceeds
	// IntervalRatioTrigger times the member's typical donation interval.
	IntervalRatioTrigger    float64 `yaml:"interval_ratio_trigger"`
	IntervalPenaltyPerRatio float64 `yaml:"interval_penalty_per_ratio"`
	IntervalPenaltyMax      float64 `yaml:"interval_penalty_max"`

	InactiveDaysTrigger     int     `yaml:"inactive_days_trigger"`
	InactivePenaltyPer30Day float64 `yaml:"inactive_penalty_per_30_days"`
	InactivePenaltyMax      float64 `yaml:"inactive_penalty_max"`

	DeclineTriggerPct float64 `yaml:"decline_trigger_percent"`
	DeclineScale      float64 `yaml:"decline_scale"`
	DeclinePenaltyMax float64 `yaml:"decline_penalty_max"`
	GrowthTriggerPct  float64 `yaml:"growth_trigger_percent"`
	GrowthScale       float64 `yaml:"growth_scale"`
	GrowthBonusMax    float64 `yaml:"growth_bonus_max"`

	NoAttendanceDays    int     `yaml:"no_attendance_days"`
	NoAttendancePenalty float64 `yaml:"no_attendance_penalty"`

	RegularDonorMinDonations int     `yaml:"regular_donor_min_donations"`
	RegularDonorPenalty      float64 `yaml:"regular_donor_penalty"`
}

type AttendanceConfig struct {
	BaselineWeeks       int     `yaml:"baseline_weeks"`
	ComparisonWeeks     int     `yaml:"comparison_weeks"`
	DeclineThresholdPct float64 `yaml:"decline_threshold_percent"`
	MinBaselineAvg      float64 `yaml:"min_baseline_avg"`
	ZeroRecentBonus     float64 `yaml:"zero_recent_bonus"`

	// Activity bonus tiers by baseline weekly average.
	ActivityTierHigh   float64 `yaml:"activity_tier_high"`
	ActivityTierMid    float64 `yaml:"activity_tier_mid"`
	ActivityBonusHigh  float64 `yaml:"activity_bonus_high"`
	ActivityBonusMid   float64 `yaml:"activity_bonus_mid"`
	ActivityBonusLow   float64 `yaml:"activity_bonus_low"`
	CriticalDeclinePct float64 `yaml:"critical_decline_percent"`
	HighDeclinePct     float64 `yaml:"high_decline_percent"`
}

type LifecycleConfig struct {
	NewMemberDays             int     `yaml:"new_member_days"`
	DormantDays               int     `yaml:"dormant_days"`
	AtRiskChurnThreshold      float64 `yaml:"at_risk_churn_threshold"`
	AtRiskAnomalyThreshold    float64 `yaml:"at_risk_anomaly_threshold"`
	DisengagingChurnThreshold float64 `yaml:"disengaging_churn_threshold"`
	TrendWindowDays           int     `yaml:"trend_window_days"`
	TrendDeclinePct           float64 `yaml:"trend_decline_percent"`
	EngagedTenureMonths       int     `yaml:"engaged_tenure_months"`
	EngagedAttendance90d      int     `yaml:"engaged_attendance_90d"`
	EngagedGiving90d          int     `yaml:"engaged_giving_90d"`
	GrowingTenureMonths       int     `yaml:"growing_tenure_months"`
	GrowingAttendance90d      int     `yaml:"growing_attendance_90d"`
}

type HealthConfig struct {
	ClusterAttendanceWeight float64 `yaml:"cluster_attendance_weight"`
	ClusterEngagementWeight float64 `yaml:"cluster_engagement_weight"`
	ClusterGrowthWeight     float64 `yaml:"cluster_growth_weight"`
	ClusterRetentionWeight  float64 `yaml:"cluster_retention_weight"`
	ClusterLeadershipWeight float64 `yaml:"cluster_leadership_weight"`

	HouseholdAttendanceWeight float64 `yaml:"household_attendance_weight"`
	HouseholdGivingWeight     float64 `yaml:"household_giving_weight"`
	HouseholdLifecycleWeight  float64 `yaml:"household_lifecycle_weight"`
	HouseholdMessagingWeight  float64 `yaml:"household_messaging_weight"`

	LevelExcellentMin float64 `yaml:"level_excellent_min"`
	LevelHealthyMin   float64 `yaml:"level_healthy_min"`
	LevelAttentionMin float64 `yaml:"level_attention_min"`
}

type MessagingConfig struct {
	DeliveryRateWeight     float64 `yaml:"delivery_rate_weight"`
	ResponseIndicatorMin   int     `yaml:"response_indicator_min_delivered"`
	ResponseIndicatorBonus float64 `yaml:"response_indicator_bonus"`

	RecencyBonus7d  float64 `yaml:"recency_bonus_7d"`
	RecencyBonus30d float64 `yaml:"recency_bonus_30d"`
	RecencyBonus60d float64 `yaml:"recency_bonus_60d"`

	ConsistencyPerDelivered float64 `yaml:"consistency_per_delivered"`
	ConsistencyBonusMax     float64 `yaml:"consistency_bonus_max"`

	InactivityDecayDays    int     `yaml:"inactivity_decay_days"`
	InactivityDecayPerWeek float64 `yaml:"inactivity_decay_per_week"`

	LevelHighMin    float64 `yaml:"level_high_min"`
	LevelEngagedMin float64 `yaml:"level_engaged_min"`
	LevelPassiveMin float64 `yaml:"level_passive_min"`
}

type PrayerConfig struct {
	CriticalPriority float64 `yaml:"critical_priority"`
	HighPriority     float64 `yaml:"high_priority"`
	ElevatedPriority float64 `yaml:"elevated_priority"`
	NormalPriority   float64 `yaml:"normal_priority"`
	ConfidenceCap    float64 `yaml:"confidence_cap"`
}

type RosterConfig struct {
	BaseScore          float64 `yaml:"base_score"`
	FairnessMax        float64 `yaml:"fairness_max"`
	ExperiencePerLevel float64 `yaml:"experience_per_level"`
	ReliabilityMax     float64 `yaml:"reliability_max"`
	RecencyPerWeek     float64 `yaml:"recency_per_week"`
	RecencyMax         float64 `yaml:"recency_max"`
	ConflictPenalty    float64 `yaml:"conflict_penalty"`
	OverworkPenalty    float64 `yaml:"overwork_penalty"`
	PreferenceBonus    float64 `yaml:"preference_bonus"`
	AlternateCount     int     `yaml:"alternate_count"`
}

type ForecastConfig struct {
	// Weights apply newest-first; periods beyond the list use TailWeight.
	Weights    []float64 `yaml:"weights"`
	TailWeight float64   `yaml:"tail_weight"`

	AttendanceTrendClampMin float64 `yaml:"attendance_trend_clamp_min"`
	AttendanceTrendClampMax float64 `yaml:"attendance_trend_clamp_max"`
	GivingTrendClampMin     float64 `yaml:"giving_trend_clamp_min"`
	GivingTrendClampMax     float64 `yaml:"giving_trend_clamp_max"`

	BaseConfidence    float64 `yaml:"base_confidence"`
	CVPenaltyFactor   float64 `yaml:"cv_penalty_factor"`
	VolumeBonusPer    float64 `yaml:"volume_bonus_per_period"`
	VolumeBonusMax    float64 `yaml:"volume_bonus_max"`
	MinDataPeriods    int     `yaml:"min_data_periods"`
	LowDataPenaltyPer float64 `yaml:"low_data_penalty_per_missing"`
	ConfidenceFloor   float64 `yaml:"confidence_floor"`
	ConfidenceCeiling float64 `yaml:"confidence_ceiling"`

	WideBandMinPoints int     `yaml:"wide_band_min_points"`
	WideBandPct       float64 `yaml:"wide_band_percent"`

	// Seasonal multipliers indexed January..December.
	AttendanceSeasonal []float64 `yaml:"attendance_seasonal"`
	GivingSeasonal     []float64 `yaml:"giving_seasonal"`

	AccuracyWindow int `yaml:"accuracy_window"`
}

// AlertTypeDefaults carries the system defaults applied when a branch has no
// setting row yet.
type AlertTypeDefaults struct {
	Threshold     float64 `yaml:"threshold"`
	CooldownHours int     `yaml:"cooldown_hours"`
}

type AlertsConfig struct {
	ChurnRisk           AlertTypeDefaults `yaml:"churn_risk"`
	AttendanceAnomaly   AlertTypeDefaults `yaml:"attendance_anomaly"`
	LifecycleConcern    AlertTypeDefaults `yaml:"lifecycle_concern"`
	ClusterHealth       AlertTypeDefaults `yaml:"cluster_health"`
	HouseholdEngagement AlertTypeDefaults `yaml:"household_engagement"`
	MessagingDisengaged AlertTypeDefaults `yaml:"messaging_disengaged"`
	CriticalPrayer      AlertTypeDefaults `yaml:"critical_prayer"`

	// Severity buckets by how far a score exceeds the effective threshold.
	SeverityCriticalExcess float64 `yaml:"severity_critical_excess"`
	SeverityHighExcess     float64 `yaml:"severity_high_excess"`
	SeverityMediumExcess   float64 `yaml:"severity_medium_excess"`

	MaxRecommendations int `yaml:"max_recommendations"`
}

func Default() Config {
	return Config{
		Churn: ChurnConfig{
			BaseScore:                20,
			IntervalRatioTrigger:     2.0,
			IntervalPenaltyPerRatio:  15,
			IntervalPenaltyMax:       40,
			InactiveDaysTrigger:      90,
			InactivePenaltyPer30Day:  10,
			InactivePenaltyMax:       30,
			DeclineTriggerPct:        30,
			DeclineScale:             0.5,
			DeclinePenaltyMax:        20,
			GrowthTriggerPct:         20,
			GrowthScale:              0.5,
			GrowthBonusMax:           15,
			NoAttendanceDays:         90,
			NoAttendancePenalty:      15,
			RegularDonorMinDonations: 12,
			RegularDonorPenalty:      5,
		},
		Attendance: AttendanceConfig{
			BaselineWeeks:       12,
			ComparisonWeeks:     4,
			DeclineThresholdPct: 50,
			MinBaselineAvg:      0.5,
			ZeroRecentBonus:     30,
			ActivityTierHigh:    3,
			ActivityTierMid:     2,
			ActivityBonusHigh:   15,
			ActivityBonusMid:    10,
			ActivityBonusLow:    5,
			CriticalDeclinePct:  75,
			HighDeclinePct:      60,
		},
		Lifecycle: LifecycleConfig{
			NewMemberDays:             90,
			DormantDays:               90,
			AtRiskChurnThreshold:      70,
			AtRiskAnomalyThreshold:    70,
			DisengagingChurnThreshold: 50,
			TrendWindowDays:           45,
			TrendDeclinePct:           -30,
			EngagedTenureMonths:       6,
			EngagedAttendance90d:      4,
			EngagedGiving90d:          1,
			GrowingTenureMonths:       3,
			GrowingAttendance90d:      3,
		},
		Health: HealthConfig{
			ClusterAttendanceWeight:   0.30,
			ClusterEngagementWeight:   0.20,
			ClusterGrowthWeight:       0.20,
			ClusterRetentionWeight:    0.15,
			ClusterLeadershipWeight:   0.15,
			HouseholdAttendanceWeight: 0.35,
			HouseholdGivingWeight:     0.25,
			HouseholdLifecycleWeight:  0.25,
			HouseholdMessagingWeight:  0.15,
			LevelExcellentMin:         80,
			LevelHealthyMin:           60,
			LevelAttentionMin:         40,
		},
		Messaging: MessagingConfig{
			DeliveryRateWeight:      0.40,
			ResponseIndicatorMin:    5,
			ResponseIndicatorBonus:  15,
			RecencyBonus7d:          20,
			RecencyBonus30d:         10,
			RecencyBonus60d:         5,
			ConsistencyPerDelivered: 1,
			ConsistencyBonusMax:     15,
			InactivityDecayDays:     60,
			InactivityDecayPerWeek:  2,
			LevelHighMin:            75,
			LevelEngagedMin:         50,
			LevelPassiveMin:         25,
		},
		Prayer: PrayerConfig{
			CriticalPriority: 90,
			HighPriority:     70,
			ElevatedPriority: 50,
			NormalPriority:   30,
			ConfidenceCap:    95,
		},
		Roster: RosterConfig{
			BaseScore:          50,
			FairnessMax:        20,
			ExperiencePerLevel: 4,
			ReliabilityMax:     15,
			RecencyPerWeek:     2,
			RecencyMax:         10,
			ConflictPenalty:    40,
			OverworkPenalty:    25,
			PreferenceBonus:    5,
			AlternateCount:     3,
		},
		Forecast: ForecastConfig{
			Weights:                 []float64{0.25, 0.20, 0.18, 0.15, 0.12},
			TailWeight:              0.01,
			AttendanceTrendClampMin: 0.8,
			AttendanceTrendClampMax: 1.2,
			GivingTrendClampMin:     0.85,
			GivingTrendClampMax:     1.15,
			BaseConfidence:          80,
			CVPenaltyFactor:         40,
			VolumeBonusPer:          1,
			VolumeBonusMax:          10,
			MinDataPeriods:          8,
			LowDataPenaltyPer:       3,
			ConfidenceFloor:         40,
			ConfidenceCeiling:       95,
			WideBandMinPoints:       3,
			WideBandPct:             30,
			AttendanceSeasonal: []float64{
				1.05, 1.0, 1.05, 1.10, 1.0, 0.90,
				0.85, 0.85, 1.0, 1.05, 1.05, 1.20,
			},
			GivingSeasonal: []float64{
				1.0, 0.95, 1.0, 1.05, 1.0, 0.90,
				0.85, 0.90, 1.0, 1.05, 1.10, 1.30,
			},
			AccuracyWindow: 12,
		},
		Alerts: AlertsConfig{
			ChurnRisk:              AlertTypeDefaults{Threshold: 70, CooldownHours: 72},
			AttendanceAnomaly:      AlertTypeDefaults{Threshold: 50, CooldownHours: 72},
			LifecycleConcern:       AlertTypeDefaults{Threshold: 0, CooldownHours: 168},
			ClusterHealth:          AlertTypeDefaults{Threshold: 40, CooldownHours: 168},
			HouseholdEngagement:    AlertTypeDefaults{Threshold: 40, CooldownHours: 168},
			MessagingDisengaged:    AlertTypeDefaults{Threshold: 25, CooldownHours: 168},
			CriticalPrayer:         AlertTypeDefaults{Threshold: 0, CooldownHours: 0},
			SeverityCriticalExcess: 25,
			SeverityHighExcess:     15,
			SeverityMediumExcess:   5,
			MaxRecommendations:     5,
		},
	}
}

// Load builds the run configuration: defaults, then the optional YAML file
// named by ANALYTICS_CONFIG_PATH, then targeted env overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := envutil.String("ANALYTICS_CONFIG_PATH", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read analytics config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse analytics config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv covers the knobs operators most often tune without shipping a
// config file.
func (c *Config) applyEnv() {
	c.Churn.BaseScore = envutil.Float("CHURN_BASE_SCORE", c.Churn.BaseScore)
	c.Attendance.BaselineWeeks = envutil.Int("ATTENDANCE_BASELINE_WEEKS", c.Attendance.BaselineWeeks)
	c.Attendance.ComparisonWeeks = envutil.Int("ATTENDANCE_COMPARISON_WEEKS", c.Attendance.ComparisonWeeks)
	c.Attendance.DeclineThresholdPct = envutil.Float("ATTENDANCE_DECLINE_THRESHOLD_PERCENT", c.Attendance.DeclineThresholdPct)
	c.Lifecycle.NewMemberDays = envutil.Int("LIFECYCLE_NEW_MEMBER_DAYS", c.Lifecycle.NewMemberDays)
	c.Lifecycle.DormantDays = envutil.Int("LIFECYCLE_DORMANT_DAYS", c.Lifecycle.DormantDays)
	c.Forecast.BaseConfidence = envutil.Float("FORECAST_BASE_CONFIDENCE", c.Forecast.BaseConfidence)
	c.Forecast.MinDataPeriods = envutil.Int("FORECAST_MIN_DATA_PERIODS", c.Forecast.MinDataPeriods)
	c.Alerts.MaxRecommendations = envutil.Int("ALERTS_MAX_RECOMMENDATIONS", c.Alerts.MaxRecommendations)
}

// ForType returns the system defaults for one alert type.
func (a AlertsConfig) ForType(alertType string) AlertTypeDefaults {
	switch alertType {
	case "churn_risk":
		return a.ChurnRisk
	case "attendance_anomaly":
		return a.AttendanceAnomaly
	case "lifecycle_concern":
		return a.LifecycleConcern
	case "cluster_health":
		return a.ClusterHealth
	case "household_engagement":
		return a.HouseholdEngagement
	case "messaging_disengaged":
		return a.MessagingDisengaged
	case "critical_prayer":
		return a.CriticalPrayer
	default:
		return AlertTypeDefaults{Threshold: 50, CooldownHours: 72}
	}
}
