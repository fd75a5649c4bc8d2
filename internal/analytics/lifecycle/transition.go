package lifecycle

import (
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
)

// TransitionKind qualifies a stage change between two scoring runs.
type TransitionKind string

const (
	TransitionNone       TransitionKind = "none"
	TransitionConcerning TransitionKind = "concerning"
	TransitionPositive   TransitionKind = "positive"
	TransitionNeutral    TransitionKind = "neutral"
)

var concerningStages = map[people.LifecycleStage]bool{
	people.StageAtRisk:      true,
	people.StageDormant:     true,
	people.StageDisengaging: true,
}

var positiveStages = map[people.LifecycleStage]bool{
	people.StageGrowing: true,
	people.StageEngaged: true,
}

// DetectTransition compares the new stage against the stored previous stage.
// A transition is concerning when the member moves into a risk stage from
// outside the risk set, positive when they move into growing/engaged from
// outside that set. Unknown previous values parse with a fallback, so corrupt
// history degrades instead of failing the batch.
func DetectTransition(previousRaw string, next people.LifecycleStage) TransitionKind {
	if previousRaw == "" {
		return TransitionNone
	}
	previous, known := people.ParseLifecycleStage(previousRaw)
	if !known {
		return TransitionNone
	}
	if previous == next {
		return TransitionNone
	}
	if concerningStages[next] && !concerningStages[previous] {
		return TransitionConcerning
	}
	if positiveStages[next] && !positiveStages[previous] {
		return TransitionPositive
	}
	return TransitionNeutral
}
