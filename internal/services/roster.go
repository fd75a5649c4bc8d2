package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	rosteropt "github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/roster"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/scoring"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos"
	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/roster"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type RosterService interface {
	// PlanService builds and persists a roster plan for one service date:
	// a primary and ranked alternates per pool, honouring fairness,
	// monthly caps and same-date conflicts.
	PlanService(ctx context.Context, branchID uuid.UUID, serviceDate time.Time, serviceID string) (*rosteropt.Plan, error)
	// Conflicts reports double bookings and unavailable assignees in an
	// already persisted plan for the date.
	Conflicts(ctx context.Context, branchID uuid.UUID, serviceDate time.Time) ([]rosteropt.Conflict, error)
}

type rosterService struct {
	db     *gorm.DB
	log    *logger.Logger
	cfg    config.Config
	roster repos.RosterRepo
}

func NewRosterService(db *gorm.DB, baseLog *logger.Logger, cfg config.Config, rosterRepo repos.RosterRepo) RosterService {
	return &rosterService{
		db:     db,
		log:    baseLog.With("service", "RosterService"),
		cfg:    cfg,
		roster: rosterRepo,
	}
}

func (s *rosterService) PlanService(ctx context.Context, branchID uuid.UUID, serviceDate time.Time, serviceID string) (*rosteropt.Plan, error) {
	pools, err := s.roster.ListPools(ctx, nil, branchID)
	if err != nil {
		return nil, err
	}

	monthCounts, err := s.roster.MonthAssignmentCounts(ctx, nil, branchID, serviceDate)
	if err != nil {
		return nil, err
	}
	alreadyAssigned, err := s.roster.AssignedMemberIDsOn(ctx, nil, branchID, serviceDate)
	if err != nil {
		return nil, err
	}

	var requests []rosteropt.RoleRequest
	for _, pool := range pools {
		members, err := s.roster.ListActivePoolMembers(ctx, nil, pool.ID)
		if err != nil {
			return nil, err
		}

		maxPool := 0
		for _, pm := range members {
			if pm.AssignmentCount > maxPool {
				maxPool = pm.AssignmentCount
			}
		}

		req := rosteropt.RoleRequest{PoolID: pool.ID, Role: string(pool.RoleType)}
		for _, pm := range members {
			req.Candidates = append(req.Candidates, rosteropt.Candidate{
				PoolMemberID: pm.ID,
				MemberID:     pm.MemberID,
				Features: scoring.RosterCandidate{
					AssignmentCount:       pm.AssignmentCount,
					MaxPoolAssignments:    maxPool,
					ReliabilityScore:      pm.ReliabilityScore,
					ExperienceLevel:       pm.ExperienceLevel,
					LastAssignedDate:      pm.LastAssignedDate,
					MonthAssignmentCount:  monthCounts[pm.MemberID],
					MaxMonthlyAssignments: pm.MaxMonthlyAssignments,
					PrefersService:        prefersService(pm, serviceID),
					ConflictSameDate:      alreadyAssigned[pm.MemberID],
					Available:             pm.Available,
				},
			})
		}
		requests = append(requests, req)
	}

	plan := rosteropt.Optimize(requests, serviceDate, s.cfg.Roster)
	if err := s.persistPlan(ctx, branchID, serviceDate, &plan); err != nil {
		return nil, err
	}

	s.log.Info("roster planned",
		"branch_id", branchID,
		"service_date", serviceDate.Format("2006-01-02"),
		"roles", len(plan.Assignments),
		"warnings", len(plan.Warnings),
		"score", plan.OptimizationScore)
	return &plan, nil
}

func (s *rosterService) persistPlan(ctx context.Context, branchID uuid.UUID, serviceDate time.Time, plan *rosteropt.Plan) error {
	var rows []*types.RosterAssignment
	for _, assignment := range plan.Assignments {
		if assignment.Primary != nil {
			rows = append(rows, &types.RosterAssignment{
				ID:               uuid.New(),
				BranchID:         branchID,
				PoolID:           assignment.PoolID,
				MemberID:         assignment.Primary.MemberID,
				RoleType:         roster.RoleType(assignment.Role),
				ServiceDate:      serviceDate,
				Status:           roster.AssignmentPrimary,
				SuitabilityScore: assignment.Primary.Result.Score,
			})
		}
		for _, alt := range assignment.Alternates {
			rows = append(rows, &types.RosterAssignment{
				ID:               uuid.New(),
				BranchID:         branchID,
				PoolID:           assignment.PoolID,
				MemberID:         alt.MemberID,
				RoleType:         roster.RoleType(assignment.Role),
				ServiceDate:      serviceDate,
				Status:           roster.AssignmentAlternate,
				SuitabilityScore: alt.Result.Score,
			})
		}
	}
	if err := s.roster.CreateAssignments(ctx, nil, rows); err != nil {
		return err
	}

	// Only primaries count against fairness and recency.
	for _, assignment := range plan.Assignments {
		if assignment.Primary == nil {
			continue
		}
		if err := s.roster.RecordAssignment(ctx, nil, assignment.Primary.PoolMemberID, serviceDate); err != nil {
			return err
		}
	}
	return nil
}

func (s *rosterService) Conflicts(ctx context.Context, branchID uuid.UUID, serviceDate time.Time) ([]rosteropt.Conflict, error) {
	assignments, err := s.roster.ListAssignments(ctx, nil, branchID, serviceDate)
	if err != nil {
		return nil, err
	}

	// Availability is read back from the pool rows so a member marked
	// unavailable after planning still surfaces as a conflict.
	available := make(map[uuid.UUID]bool)
	seenPools := make(map[uuid.UUID]bool)
	for _, a := range assignments {
		if seenPools[a.PoolID] {
			continue
		}
		seenPools[a.PoolID] = true
		members, err := s.roster.ListActivePoolMembers(ctx, nil, a.PoolID)
		if err != nil {
			return nil, err
		}
		for _, pm := range members {
			available[pm.MemberID] = pm.Available
		}
	}

	plan := rosteropt.Plan{TargetDate: serviceDate}
	for _, a := range assignments {
		if a.Status != roster.AssignmentPrimary {
			continue
		}
		plan.Assignments = append(plan.Assignments, rosteropt.RoleAssignment{
			PoolID: a.PoolID,
			Role:   string(a.RoleType),
			Primary: &rosteropt.ScoredCandidate{
				Candidate: rosteropt.Candidate{
					MemberID: a.MemberID,
					Features: scoring.RosterCandidate{Available: available[a.MemberID]},
				},
				Eligible: true,
			},
		})
	}
	return rosteropt.DetectConflicts(plan), nil
}

func prefersService(pm *types.PoolMember, serviceID string) bool {
	if serviceID == "" || len(pm.PreferredServiceIDs) == 0 {
		return false
	}
	var preferred []string
	if err := json.Unmarshal(pm.PreferredServiceIDs, &preferred); err != nil {
		return false
	}
	for _, id := range preferred {
		if id == serviceID {
			return true
		}
	}
	return false
}
