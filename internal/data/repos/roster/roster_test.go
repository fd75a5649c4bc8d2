package roster

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/testutil"
	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	rosterdom "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/roster"
)

func TestRosterRepo_PoolsAndMembers(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRosterRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	pool := testutil.SeedRosterPool(t, ctx, tx, branchID, rosterdom.RoleUsher)
	member := testutil.SeedMember(t, ctx, tx, branchID, time.Now().UTC().AddDate(-1, 0, 0))
	active := testutil.SeedPoolMember(t, ctx, tx, pool.ID, member.ID)

	// Inactive members must not surface; unavailable ones must.
	inactive := testutil.SeedPoolMember(t, ctx, tx, pool.ID, uuid.New())
	if err := tx.WithContext(ctx).Model(&types.PoolMember{}).
		Where("id = ?", inactive.ID).
		Update("active", false).Error; err != nil {
		t.Fatalf("deactivate pool member: %v", err)
	}
	unavailable := testutil.SeedPoolMember(t, ctx, tx, pool.ID, uuid.New())
	if err := tx.WithContext(ctx).Model(&types.PoolMember{}).
		Where("id = ?", unavailable.ID).
		Update("available", false).Error; err != nil {
		t.Fatalf("mark pool member unavailable: %v", err)
	}

	pools, err := repo.ListPools(ctx, tx, branchID)
	if err != nil {
		t.Fatalf("ListPools: %v", err)
	}
	if len(pools) != 1 || pools[0].ID != pool.ID {
		t.Fatalf("ListPools: expected the seeded pool, got %d rows", len(pools))
	}

	members, err := repo.ListActivePoolMembers(ctx, tx, pool.ID)
	if err != nil {
		t.Fatalf("ListActivePoolMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("ListActivePoolMembers: expected 2 rows, got %d", len(members))
	}
	seen := map[uuid.UUID]bool{}
	for _, pm := range members {
		seen[pm.ID] = true
	}
	if !seen[active.ID] || !seen[unavailable.ID] || seen[inactive.ID] {
		t.Fatalf("ListActivePoolMembers: unexpected membership %v", seen)
	}
}

func TestRosterRepo_MonthAssignmentCounts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRosterRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	pool := testutil.SeedRosterPool(t, ctx, tx, branchID, rosterdom.RoleGreeter)
	memberID := uuid.New()

	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mk := func(day int) *types.RosterAssignment {
		return &types.RosterAssignment{
			ID:          uuid.New(),
			BranchID:    branchID,
			PoolID:      pool.ID,
			MemberID:    memberID,
			RoleType:    rosterdom.RoleGreeter,
			ServiceDate: month.AddDate(0, 0, day-1),
			Status:      rosterdom.AssignmentPrimary,
		}
	}
	// Two in August, one spilling into September.
	err := repo.CreateAssignments(ctx, tx, []*types.RosterAssignment{mk(2), mk(9), mk(33)})
	if err != nil {
		t.Fatalf("CreateAssignments: %v", err)
	}

	counts, err := repo.MonthAssignmentCounts(ctx, tx, branchID, month)
	if err != nil {
		t.Fatalf("MonthAssignmentCounts: %v", err)
	}
	if counts[memberID] != 2 {
		t.Fatalf("MonthAssignmentCounts: got %d, want 2", counts[memberID])
	}
}

func TestRosterRepo_AssignedMemberIDsOn(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRosterRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	pool := testutil.SeedRosterPool(t, ctx, tx, branchID, rosterdom.RoleTech)
	assignedID := uuid.New()
	serviceDate := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	err := repo.CreateAssignments(ctx, tx, []*types.RosterAssignment{{
		ID:          uuid.New(),
		BranchID:    branchID,
		PoolID:      pool.ID,
		MemberID:    assignedID,
		RoleType:    rosterdom.RoleTech,
		ServiceDate: serviceDate.Add(10 * time.Hour),
		Status:      rosterdom.AssignmentPrimary,
	}})
	if err != nil {
		t.Fatalf("CreateAssignments: %v", err)
	}

	assigned, err := repo.AssignedMemberIDsOn(ctx, tx, branchID, serviceDate)
	if err != nil {
		t.Fatalf("AssignedMemberIDsOn: %v", err)
	}
	if !assigned[assignedID] {
		t.Fatalf("AssignedMemberIDsOn: same-day assignment not found")
	}

	nextDay, err := repo.AssignedMemberIDsOn(ctx, tx, branchID, serviceDate.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("AssignedMemberIDsOn (next day): %v", err)
	}
	if len(nextDay) != 0 {
		t.Fatalf("AssignedMemberIDsOn: assignment leaked into the next day")
	}
}

func TestRosterRepo_RecordAssignment(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRosterRepo(db, testutil.Logger(t))
	ctx := context.Background()

	branchID := uuid.New()
	pool := testutil.SeedRosterPool(t, ctx, tx, branchID, rosterdom.RoleWorship)
	member := testutil.SeedMember(t, ctx, tx, branchID, time.Now().UTC().AddDate(-2, 0, 0))
	pm := testutil.SeedPoolMember(t, ctx, tx, pool.ID, member.ID)

	assignedDate := time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC)
	if err := repo.RecordAssignment(ctx, tx, pm.ID, assignedDate); err != nil {
		t.Fatalf("RecordAssignment: %v", err)
	}
	if err := repo.RecordAssignment(ctx, tx, pm.ID, assignedDate.AddDate(0, 0, 7)); err != nil {
		t.Fatalf("RecordAssignment (second): %v", err)
	}

	members, err := repo.ListActivePoolMembers(ctx, tx, pool.ID)
	if err != nil {
		t.Fatalf("ListActivePoolMembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 pool member, got %d", len(members))
	}
	if members[0].AssignmentCount != 2 {
		t.Fatalf("AssignmentCount = %d, want 2", members[0].AssignmentCount)
	}
	if members[0].LastAssignedDate == nil || !members[0].LastAssignedDate.Equal(assignedDate.AddDate(0, 0, 7)) {
		t.Fatalf("LastAssignedDate = %v, want the latest date", members[0].LastAssignedDate)
	}
}
