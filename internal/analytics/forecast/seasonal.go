package forecast

import (
	"time"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/analytics/config"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain/forecasting"
)

// holidayOverride is a date-specific multiplier that beats the monthly index
// when the forecast period contains the holiday.
type holidayOverride struct {
	name       string
	month      time.Month
	dayFrom    int
	dayTo      int
	attendance float64
	giving     float64
}

var holidayOverrides = []holidayOverride{
	{name: "christmas", month: time.December, dayFrom: 22, dayTo: 26, attendance: 1.30, giving: 1.30},
	{name: "new_year_watchnight", month: time.December, dayFrom: 29, dayTo: 31, attendance: 1.25, giving: 1.20},
	{name: "new_year", month: time.January, dayFrom: 1, dayTo: 4, attendance: 1.15, giving: 1.05},
	{name: "thanksgiving_harvest", month: time.November, dayFrom: 20, dayTo: 28, attendance: 1.10, giving: 1.20},
}

// seasonalFactor picks the multiplier for the forecast period: a holiday
// override when one falls in the period's starting week, otherwise the
// monthly index.
func seasonalFactor(target forecasting.ForecastTarget, periodStart time.Time, cfg config.ForecastConfig) (float64, string) {
	periodEnd := periodStart.AddDate(0, 0, 6)
	for _, h := range holidayOverrides {
		if containsHoliday(periodStart, periodEnd, h) {
			if target == forecasting.TargetGiving {
				return h.giving, h.name
			}
			return h.attendance, h.name
		}
	}

	table := cfg.AttendanceSeasonal
	if target == forecasting.TargetGiving {
		table = cfg.GivingSeasonal
	}
	monthIdx := int(periodStart.Month()) - 1
	if monthIdx < 0 || monthIdx >= len(table) {
		return 1, "none"
	}
	return table[monthIdx], "monthly_index"
}

func containsHoliday(from, to time.Time, h holidayOverride) bool {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Month() == h.month && d.Day() >= h.dayFrom && d.Day() <= h.dayTo {
			return true
		}
	}
	return false
}
