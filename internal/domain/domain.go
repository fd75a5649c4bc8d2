package domain

import (
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/activity"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/alerting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/forecasting"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/people"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/roster"
)

type Member = people.Member
type Household = people.Household
type Cluster = people.Cluster
type MembershipStatus = people.MembershipStatus
type LifecycleStage = people.LifecycleStage
type DonorTier = people.DonorTier

type AttendanceRecord = activity.AttendanceRecord
type Donation = activity.Donation
type FundType = activity.FundType
type MessageDeliveryLog = activity.MessageDeliveryLog
type DeliveryStatus = activity.DeliveryStatus
type PrayerRequest = activity.PrayerRequest
type UrgencyLevel = activity.UrgencyLevel
type PrayerCategory = activity.PrayerCategory
type GroupMeeting = activity.GroupMeeting
type GroupMeetingAttendance = activity.GroupMeetingAttendance

type Alert = alerting.Alert
type AlertSetting = alerting.AlertSetting
type AlertType = alerting.AlertType
type Severity = alerting.Severity
type SubjectType = alerting.SubjectType
type SubjectRef = alerting.SubjectRef

type Forecast = forecasting.Forecast
type ForecastTarget = forecasting.ForecastTarget

type RosterPool = roster.RosterPool
type PoolMember = roster.PoolMember
type RosterAssignment = roster.Assignment
type RoleType = roster.RoleType
type AssignmentStatus = roster.AssignmentStatus
