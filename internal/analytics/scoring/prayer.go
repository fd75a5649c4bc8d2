package scoring

import (
	"strings"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
)

// PrayerAssessment is the intake classification for a prayer request:
// urgency from ordered pattern lists, category from keyword frequency.
type PrayerAssessment struct {
	Urgency            activity.UrgencyLevel   `json:"urgency"`
	PriorityScore      float64                 `json:"priority_score"`
	Category           activity.PrayerCategory `json:"category"`
	CategoryConfidence float64                 `json:"category_confidence"`
	MatchedPattern     string                  `json:"matched_pattern"`
}

// Urgency patterns are scanned in severity order; the first critical match
// short-circuits. Substring stems catch inflected forms ("diagnosed",
// "diagnosis").
var criticalPatterns = []string{
	"suicid", "life threatening", "critical condition", "emergency",
	"dying", "accident", "icu", "intensive care", "overdose", "crisis",
}

var highPatterns = []string{
	"surgery", "cancer", "diagnos", "hospice", "stroke", "heart attack",
	"hospital", "severe", "urgent", "terminal",
}

var elevatedPatterns = []string{
	"job loss", "lost my job", "divorce", "separation", "depress",
	"anxiety", "struggling", "eviction", "court", "addiction",
}

var categoryKeywords = map[activity.PrayerCategory][]string{
	activity.CategoryHealth:       {"health", "sick", "illness", "surgery", "cancer", "hospital", "healing", "pain", "doctor", "recovery"},
	activity.CategoryFamily:       {"family", "marriage", "children", "son", "daughter", "parent", "husband", "wife", "home"},
	activity.CategoryFinancial:    {"financial", "money", "debt", "job", "work", "unemployed", "bills", "rent", "provision"},
	activity.CategoryBereavement:  {"death", "passed away", "funeral", "grief", "loss", "mourning", "bereave"},
	activity.CategorySpiritual:    {"faith", "salvation", "spiritual", "prayer life", "backslid", "doubt", "deliverance"},
	activity.CategoryWork:         {"career", "business", "promotion", "interview", "workplace", "colleague"},
	activity.CategoryRelationship: {"relationship", "friend", "conflict", "forgiveness", "reconcil", "breakup"},
}

// AssessPrayerRequest classifies title+description into an urgency level and
// a suggested category.
func AssessPrayerRequest(title, description string, cfg config.PrayerConfig) PrayerAssessment {
	text := strings.ToLower(strings.TrimSpace(title + " " + description))

	assessment := PrayerAssessment{
		Urgency:       activity.UrgencyNormal,
		PriorityScore: cfg.NormalPriority,
	}

	if pattern, ok := firstMatch(text, criticalPatterns); ok {
		assessment.Urgency = activity.UrgencyCritical
		assessment.PriorityScore = cfg.CriticalPriority
		assessment.MatchedPattern = pattern
	} else if pattern, ok := firstMatch(text, highPatterns); ok {
		assessment.Urgency = activity.UrgencyHigh
		assessment.PriorityScore = cfg.HighPriority
		assessment.MatchedPattern = pattern
	} else if pattern, ok := firstMatch(text, elevatedPatterns); ok {
		assessment.Urgency = activity.UrgencyElevated
		assessment.PriorityScore = cfg.ElevatedPriority
		assessment.MatchedPattern = pattern
	}

	assessment.Category, assessment.CategoryConfidence = suggestCategory(text, cfg)
	return assessment
}

func firstMatch(text string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}

// suggestCategory scores each category by keyword frequency. Confidence is
// the winning category's share of all keyword hits, capped so a single-hit
// text never reads as certain.
func suggestCategory(text string, cfg config.PrayerConfig) (activity.PrayerCategory, float64) {
	scores := map[activity.PrayerCategory]int{}
	total := 0
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			n := strings.Count(text, kw)
			scores[category] += n
			total += n
		}
	}
	if total == 0 {
		return activity.CategoryGeneral, 0
	}

	best := activity.CategoryGeneral
	bestScore := 0
	for category, score := range scores {
		if score > bestScore || (score == bestScore && score > 0 && category < best) {
			best = category
			bestScore = score
		}
	}

	confidence := float64(bestScore) / float64(total) * 100
	if confidence > cfg.ConfidenceCap {
		confidence = cfg.ConfidenceCap
	}
	return best, confidence
}
