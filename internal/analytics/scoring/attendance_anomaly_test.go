package scoring

import (
	"testing"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/features"
)

func attendanceCfg() config.AttendanceConfig { return config.Default().Attendance }

func TestAttendanceAnomaly_SkipsThinBaseline(t *testing.T) {
	f := features.MemberFeatures{BaselineWeeklyAvg: 0.25, RecentWeeklyAvg: 0}
	got := AttendanceAnomaly(f, attendanceCfg())
	if got.Flagged {
		t.Fatalf("baseline below minimum must never flag, got %+v", got)
	}
}

func TestAttendanceAnomaly_MildDeclineNotFlagged(t *testing.T) {
	// -40% is inside the 50% threshold.
	f := features.MemberFeatures{BaselineWeeklyAvg: 1.0, RecentWeeklyAvg: 0.6}
	got := AttendanceAnomaly(f, attendanceCfg())
	if got.Flagged {
		t.Fatalf("-40%% should not flag at a 50%% threshold, got %+v", got)
	}
	if got.ChangePct > -39 || got.ChangePct < -41 {
		t.Fatalf("expected change near -40%%, got %.1f", got.ChangePct)
	}
}

func TestAttendanceAnomaly_SteepDropIsCritical(t *testing.T) {
	// A regular four-times-a-week attender stopping entirely.
	f := features.MemberFeatures{BaselineWeeklyAvg: 4, RecentWeeklyAvg: 0}
	got := AttendanceAnomaly(f, attendanceCfg())

	if !got.Flagged {
		t.Fatalf("-100%% must flag, got %+v", got)
	}
	if got.Bucket != AnomalyBucketCritical {
		t.Fatalf("expected critical bucket at -100%%, got %q", got.Bucket)
	}
	// 0.5*100 decline + 30 stopped + 15 high-activity tier.
	if got.Score != 95 {
		t.Fatalf("expected score 95, got %.1f", got.Score)
	}

	found := false
	for _, factor := range got.Factors {
		if factor.Name == "attendance_stopped" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected attendance_stopped factor, got %+v", got.Factors)
	}
}

func TestAttendanceAnomaly_BucketBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		baseline float64
		recent   float64
		bucket   string
	}{
		{"critical at -75", 4, 1, AnomalyBucketCritical},
		{"high at -60", 2.5, 1, AnomalyBucketHigh},
		{"medium at -50", 2, 1, AnomalyBucketMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := features.MemberFeatures{BaselineWeeklyAvg: tc.baseline, RecentWeeklyAvg: tc.recent}
			got := AttendanceAnomaly(f, attendanceCfg())
			if !got.Flagged {
				t.Fatalf("expected flag, got %+v", got)
			}
			if got.Bucket != tc.bucket {
				t.Fatalf("expected bucket %q, got %q (change %.1f)", tc.bucket, got.Bucket, got.ChangePct)
			}
		})
	}
}

func TestAttendanceAnomaly_ScoreBounds(t *testing.T) {
	f := features.MemberFeatures{BaselineWeeklyAvg: 10, RecentWeeklyAvg: 0}
	got := AttendanceAnomaly(f, attendanceCfg())
	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of bounds: %.1f", got.Score)
	}
}
