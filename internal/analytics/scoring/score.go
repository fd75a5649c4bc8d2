package scoring

// Factor explains one contribution to a score. Factors keep their insertion
// order so the most significant drivers render first.
type Factor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Impact      string  `json:"impact"` // increase | decrease | neutral
	Value       float64 `json:"value"`
}

const (
	ImpactIncrease = "increase"
	ImpactDecrease = "decrease"
	ImpactNeutral  = "neutral"
)

type ScoreResult struct {
	Score   float64  `json:"score"`
	Level   string   `json:"level"`
	Factors []Factor `json:"factors"`
}

func (r *ScoreResult) addFactor(name, description, impact string, value float64) {
	r.Factors = append(r.Factors, Factor{Name: name, Description: description, Impact: impact, Value: value})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
