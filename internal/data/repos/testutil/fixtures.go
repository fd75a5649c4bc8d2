package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
)

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID uuid.UUID, joinedAt time.Time) *types.Member {
	tb.Helper()
	m := &types.Member{
		ID:               uuid.New(),
		BranchID:         branchID,
		FirstName:        "A",
		LastName:         "B",
		MembershipStatus: "active",
		JoinedAt:         joinedAt,
		DonorTier:        "none",
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedHousehold(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID uuid.UUID) *types.Household {
	tb.Helper()
	h := &types.Household{
		ID:       uuid.New(),
		BranchID: branchID,
		Name:     "household",
	}
	if err := tx.WithContext(ctx).Create(h).Error; err != nil {
		tb.Fatalf("seed household: %v", err)
	}
	return h
}

func SeedCluster(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID uuid.UUID) *types.Cluster {
	tb.Helper()
	c := &types.Cluster{
		ID:       uuid.New(),
		BranchID: branchID,
		Name:     "cluster",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cluster: %v", err)
	}
	return c
}

func SeedAttendance(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID uuid.UUID, memberID *uuid.UUID, serviceDate time.Time) *types.AttendanceRecord {
	tb.Helper()
	a := &types.AttendanceRecord{
		ID:          uuid.New(),
		BranchID:    branchID,
		MemberID:    memberID,
		ServiceDate: serviceDate,
		ServiceType: "sunday",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attendance: %v", err)
	}
	return a
}

func SeedDonation(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID, memberID uuid.UUID, amount float64, donatedAt time.Time) *types.Donation {
	tb.Helper()
	d := &types.Donation{
		ID:        uuid.New(),
		BranchID:  branchID,
		MemberID:  memberID,
		Amount:    amount,
		FundType:  activity.FundOffering,
		DonatedAt: donatedAt,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed donation: %v", err)
	}
	return d
}

func SeedDelivery(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID, memberID uuid.UUID, status activity.DeliveryStatus, sentAt time.Time) *types.MessageDeliveryLog {
	tb.Helper()
	d := &types.MessageDeliveryLog{
		ID:       uuid.New(),
		BranchID: branchID,
		MemberID: memberID,
		Channel:  "sms",
		Status:   status,
		SentAt:   sentAt,
	}
	if status == activity.DeliveryDelivered {
		at := sentAt.Add(time.Minute)
		d.DeliveredAt = &at
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed delivery: %v", err)
	}
	return d
}

func SeedPrayerRequest(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID uuid.UUID, title, description string) *types.PrayerRequest {
	tb.Helper()
	p := &types.PrayerRequest{
		ID:           uuid.New(),
		BranchID:     branchID,
		Title:        title,
		Description:  description,
		UrgencyLevel: activity.UrgencyNormal,
		Category:     activity.CategoryGeneral,
		Status:       "open",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed prayer request: %v", err)
	}
	return p
}

func SeedGroupMeeting(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID, clusterID uuid.UUID, meetingDate time.Time, attendeeIDs ...uuid.UUID) *types.GroupMeeting {
	tb.Helper()
	gm := &types.GroupMeeting{
		ID:          uuid.New(),
		BranchID:    branchID,
		ClusterID:   clusterID,
		MeetingDate: meetingDate,
	}
	if err := tx.WithContext(ctx).Create(gm).Error; err != nil {
		tb.Fatalf("seed group meeting: %v", err)
	}
	for _, memberID := range attendeeIDs {
		ga := &types.GroupMeetingAttendance{
			ID:        uuid.New(),
			MeetingID: gm.ID,
			MemberID:  memberID,
		}
		if err := tx.WithContext(ctx).Create(ga).Error; err != nil {
			tb.Fatalf("seed meeting attendance: %v", err)
		}
	}
	return gm
}

func SeedRosterPool(tb testing.TB, ctx context.Context, tx *gorm.DB, branchID uuid.UUID, role types.RoleType) *types.RosterPool {
	tb.Helper()
	p := &types.RosterPool{
		ID:       uuid.New(),
		BranchID: branchID,
		RoleType: role,
		Name:     string(role),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed roster pool: %v", err)
	}
	return p
}

func SeedPoolMember(tb testing.TB, ctx context.Context, tx *gorm.DB, poolID, memberID uuid.UUID) *types.PoolMember {
	tb.Helper()
	pm := &types.PoolMember{
		ID:                    uuid.New(),
		PoolID:                poolID,
		MemberID:              memberID,
		ReliabilityScore:      80,
		ExperienceLevel:       1,
		MaxMonthlyAssignments: 2,
		Active:                true,
		Available:             true,
	}
	if err := tx.WithContext(ctx).Create(pm).Error; err != nil {
		tb.Fatalf("seed pool member: %v", err)
	}
	return pm
}
