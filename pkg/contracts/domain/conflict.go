package domain

import (
	"fmt"
	"time"
)

// ConflictEvent is a conflict record normalized to the first day of its
// month. Several events may share a date.
type ConflictEvent struct {
	Date       time.Time `json:"date" csv:"Date"`
	Fatalities string    `json:"fatalities" csv:"Fatalities"`
}

// MonthPeriod is a calendar month used as an aggregation and join key
type MonthPeriod struct {
	Year  int
	Month time.Month
}

// PeriodOf truncates t to its month
func PeriodOf(t time.Time) MonthPeriod {
	return MonthPeriod{Year: t.Year(), Month: t.Month()}
}

// String formats the period as YYYY-MM
func (p MonthPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Before orders periods chronologically
func (p MonthPeriod) Before(o MonthPeriod) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// FirstDay returns midnight UTC on the first day of the period
func (p MonthPeriod) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// MergedMonthlyRecord is one conflict row joined with the month's summed
// arrivals. Arrivals is nil when no displacement data exists for the month.
type MergedMonthlyRecord struct {
	Period     MonthPeriod `json:"period" csv:"Date"`
	Fatalities string      `json:"fatalities" csv:"Fatalities"`
	Arrivals   *float64    `json:"arrivals,omitempty" csv:"Arrival IDPs"`
}
