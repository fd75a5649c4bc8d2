package repos

import (
	"gorm.io/gorm"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/alerting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/forecasting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/history"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/people"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/prayer"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/data/repos/roster"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type MemberRepo = people.MemberRepo
type HouseholdRepo = people.HouseholdRepo
type ClusterRepo = people.ClusterRepo

type AttendanceHistoryRepo = history.AttendanceHistoryRepo
type DonationHistoryRepo = history.DonationHistoryRepo
type MessagingHistoryRepo = history.MessagingHistoryRepo
type MeetingHistoryRepo = history.MeetingHistoryRepo

type PrayerRequestRepo = prayer.PrayerRequestRepo

type AlertRepo = alerting.AlertRepo
type AlertSettingRepo = alerting.AlertSettingRepo

type ForecastRepo = forecasting.ForecastRepo

type RosterRepo = roster.RosterRepo

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return people.NewMemberRepo(db, baseLog)
}
func NewHouseholdRepo(db *gorm.DB, baseLog *logger.Logger) HouseholdRepo {
	return people.NewHouseholdRepo(db, baseLog)
}
func NewClusterRepo(db *gorm.DB, baseLog *logger.Logger) ClusterRepo {
	return people.NewClusterRepo(db, baseLog)
}

func NewAttendanceHistoryRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceHistoryRepo {
	return history.NewAttendanceHistoryRepo(db, baseLog)
}
func NewDonationHistoryRepo(db *gorm.DB, baseLog *logger.Logger) DonationHistoryRepo {
	return history.NewDonationHistoryRepo(db, baseLog)
}
func NewMessagingHistoryRepo(db *gorm.DB, baseLog *logger.Logger) MessagingHistoryRepo {
	return history.NewMessagingHistoryRepo(db, baseLog)
}
func NewMeetingHistoryRepo(db *gorm.DB, baseLog *logger.Logger) MeetingHistoryRepo {
	return history.NewMeetingHistoryRepo(db, baseLog)
}

func NewPrayerRequestRepo(db *gorm.DB, baseLog *logger.Logger) PrayerRequestRepo {
	return prayer.NewPrayerRequestRepo(db, baseLog)
}

func NewAlertRepo(db *gorm.DB, baseLog *logger.Logger) AlertRepo {
	return alerting.NewAlertRepo(db, baseLog)
}
func NewAlertSettingRepo(db *gorm.DB, baseLog *logger.Logger) AlertSettingRepo {
	return alerting.NewAlertSettingRepo(db, baseLog)
}

func NewForecastRepo(db *gorm.DB, baseLog *logger.Logger) ForecastRepo {
	return forecasting.NewForecastRepo(db, baseLog)
}

func NewRosterRepo(db *gorm.DB, baseLog *logger.Logger) RosterRepo {
	return roster.NewRosterRepo(db, baseLog)
}
