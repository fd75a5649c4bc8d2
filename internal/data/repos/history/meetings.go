package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

// MeetingStats summarises a cluster's meeting history inside a window.
type MeetingStats struct {
	MeetingCount      int
	AttendanceEntries int
	DistinctAttendees int
}

type MeetingHistoryRepo interface {
	ClusterMeetingStats(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[uuid.UUID]MeetingStats, error)
}

type meetingHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingHistoryRepo(db *gorm.DB, baseLog *logger.Logger) MeetingHistoryRepo {
	return &meetingHistoryRepo{db: db, log: baseLog.With("repo", "MeetingHistoryRepo")}
}

func (mr *meetingHistoryRepo) ClusterMeetingStats(ctx context.Context, tx *gorm.DB, branchID uuid.UUID, since time.Time) (map[uuid.UUID]MeetingStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var meetings []types.GroupMeeting
	if err := transaction.WithContext(ctx).
		Where("branch_id = ? AND meeting_date >= ?", branchID, since).
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return map[uuid.UUID]MeetingStats{}, nil
	}

	meetingIDs := make([]uuid.UUID, 0, len(meetings))
	clusterOf := make(map[uuid.UUID]uuid.UUID, len(meetings))
	out := make(map[uuid.UUID]MeetingStats)
	for _, m := range meetings {
		meetingIDs = append(meetingIDs, m.ID)
		clusterOf[m.ID] = m.ClusterID
		stats := out[m.ClusterID]
		stats.MeetingCount++
		out[m.ClusterID] = stats
	}

	var entries []types.GroupMeetingAttendance
	if err := transaction.WithContext(ctx).
		Where("meeting_id IN ?", meetingIDs).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]map[uuid.UUID]bool{}
	for _, e := range entries {
		clusterID, ok := clusterOf[e.MeetingID]
		if !ok {
			continue
		}
		stats := out[clusterID]
		stats.AttendanceEntries++
		out[clusterID] = stats

		if seen[clusterID] == nil {
			seen[clusterID] = map[uuid.UUID]bool{}
		}
		seen[clusterID][e.MemberID] = true
	}
	for clusterID, members := range seen {
		stats := out[clusterID]
		stats.DistinctAttendees = len(members)
		out[clusterID] = stats
	}
	return out, nil
}
