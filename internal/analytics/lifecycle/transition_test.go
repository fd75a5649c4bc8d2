package lifecycle

import (
	"testing"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
)

func TestDetectTransition(t *testing.T) {
	cases := []struct {
		name     string
		previous string
		next     people.LifecycleStage
		want     TransitionKind
	}{
		{"first scoring run", "", people.StageGrowing, TransitionNone},
		{"unchanged stage", "engaged", people.StageEngaged, TransitionNone},
		{"engaged to at_risk", "engaged", people.StageAtRisk, TransitionConcerning},
		{"growing to dormant", "growing", people.StageDormant, TransitionConcerning},
		{"new_member to disengaging", "new_member", people.StageDisengaging, TransitionConcerning},
		{"at_risk to dormant stays inside risk set", "at_risk", people.StageDormant, TransitionNeutral},
		{"dormant back to growing", "dormant", people.StageGrowing, TransitionPositive},
		{"at_risk to engaged", "at_risk", people.StageEngaged, TransitionPositive},
		{"growing to engaged stays inside positive set", "growing", people.StageEngaged, TransitionNeutral},
		{"engaged to inactive", "engaged", people.StageInactive, TransitionNeutral},
		{"corrupt previous value", "banana", people.StageAtRisk, TransitionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectTransition(tc.previous, tc.next); got != tc.want {
				t.Fatalf("DetectTransition(%q, %s) = %s, want %s", tc.previous, tc.next, got, tc.want)
			}
		})
	}
}

func TestParseLifecycleStage_FallsBackToGrowing(t *testing.T) {
	stage, known := people.ParseLifecycleStage("???")
	if known {
		t.Fatalf("unknown value reported as known")
	}
	if stage != people.StageGrowing {
		t.Fatalf("fallback stage = %s, want %s", stage, people.StageGrowing)
	}
}
