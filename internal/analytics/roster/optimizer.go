package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/scoring"
)

// Candidate pairs a pool member identity with its scoring features for the
// target date.
type Candidate struct {
	PoolMemberID uuid.UUID
	MemberID     uuid.UUID
	Features     scoring.RosterCandidate
}

type ScoredCandidate struct {
	Candidate
	Result   scoring.ScoreResult
	Eligible bool
}

// RoleRequest asks for one assignment from one pool.
type RoleRequest struct {
	PoolID     uuid.UUID
	Role       string
	Candidates []Candidate
}

type RoleAssignment struct {
	PoolID     uuid.UUID
	Role       string
	Primary    *ScoredCandidate
	Alternates []ScoredCandidate
	Warnings   []string
}

type Plan struct {
	TargetDate        time.Time
	Assignments       []RoleAssignment
	Warnings          []string
	OptimizationScore float64
}

// Optimize fills each role greedily: score every active candidate, filter to
// the available ones, take the best as primary and retain the next few as
// alternates. Unavailable members are scored (their factors feed warnings)
// but never selected.
func Optimize(requests []RoleRequest, targetDate time.Time, cfg config.RosterConfig) Plan {
	plan := Plan{TargetDate: targetDate}
	var scoreSum float64
	var scoredRoles int

	for _, req := range requests {
		assignment := RoleAssignment{PoolID: req.PoolID, Role: req.Role}

		if len(req.Candidates) == 0 {
			assignment.Warnings = append(assignment.Warnings, fmt.Sprintf("no candidates in pool for role %s", req.Role))
			plan.Assignments = append(plan.Assignments, assignment)
			plan.Warnings = append(plan.Warnings, assignment.Warnings...)
			continue
		}

		scored := make([]ScoredCandidate, 0, len(req.Candidates))
		for _, c := range req.Candidates {
			result, eligible := scoring.RosterSuitability(c.Features, targetDate, cfg)
			scored = append(scored, ScoredCandidate{Candidate: c, Result: result, Eligible: eligible})

			if !c.Features.Available {
				assignment.Warnings = append(assignment.Warnings,
					fmt.Sprintf("member %s unavailable for role %s", c.MemberID, req.Role))
			}
			if c.Features.MaxMonthlyAssignments > 0 && c.Features.MonthAssignmentCount >= c.Features.MaxMonthlyAssignments {
				assignment.Warnings = append(assignment.Warnings,
					fmt.Sprintf("member %s at monthly cap for role %s", c.MemberID, req.Role))
			}
		}

		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].Result.Score > scored[b].Result.Score
		})

		eligible := make([]ScoredCandidate, 0, len(scored))
		for _, s := range scored {
			if s.Eligible {
				eligible = append(eligible, s)
			}
		}

		if len(eligible) == 0 {
			assignment.Warnings = append(assignment.Warnings,
				fmt.Sprintf("no available candidates for role %s", req.Role))
		} else {
			primary := eligible[0]
			assignment.Primary = &primary
			alternates := eligible[1:]
			if len(alternates) > cfg.AlternateCount {
				alternates = alternates[:cfg.AlternateCount]
			}
			assignment.Alternates = alternates
			scoreSum += primary.Result.Score
			scoredRoles++
		}

		plan.Assignments = append(plan.Assignments, assignment)
		plan.Warnings = append(plan.Warnings, assignment.Warnings...)
	}

	if scoredRoles > 0 {
		plan.OptimizationScore = scoreSum / float64(scoredRoles)
	}
	return plan
}

// Conflict is a plan defect found by the separate validation pass.
type Conflict struct {
	MemberID uuid.UUID
	Kind     string // double_booking | unavailable_assigned
	Roles    []string
}

// DetectConflicts validates a plan: the same member holding two primary
// assignments on the date, or an unavailable member assigned anyway.
func DetectConflicts(plan Plan) []Conflict {
	var conflicts []Conflict
	rolesByMember := map[uuid.UUID][]string{}

	for _, a := range plan.Assignments {
		if a.Primary == nil {
			continue
		}
		rolesByMember[a.Primary.MemberID] = append(rolesByMember[a.Primary.MemberID], a.Role)
		if !a.Primary.Features.Available {
			conflicts = append(conflicts, Conflict{
				MemberID: a.Primary.MemberID,
				Kind:     "unavailable_assigned",
				Roles:    []string{a.Role},
			})
		}
	}

	members := make([]uuid.UUID, 0, len(rolesByMember))
	for id := range rolesByMember {
		members = append(members, id)
	}
	sort.Slice(members, func(a, b int) bool { return members[a].String() < members[b].String() })

	for _, id := range members {
		if roles := rolesByMember[id]; len(roles) > 1 {
			conflicts = append(conflicts, Conflict{MemberID: id, Kind: "double_booking", Roles: roles})
		}
	}
	return conflicts
}
