//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"math"
	"strconv"
	"time"
)

// Amount is a monetary value in the platform currency.
type Amount float64

// Cents returns the amount rounded to whole cents. Values outside the int64 range
// saturate; NaN saturates high so it never compares below a balance.
func (a Amount) Cents() int64 {
	c := math.Round(float64(a) * 100)
	switch {
	case math.IsNaN(c), c >= math.MaxInt64:
		return math.MaxInt64
	case c <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(c)
	}
}

// String formats the amount with two decimals.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

// Earnings summarises the current user's balance.
type Earnings struct {
	AvailableBalance Amount         `json:"availableBalance"`
	PendingBalance   Amount         `json:"pendingBalance"`
	TotalEarned      Amount         `json:"totalEarned"`
	Currency         string         `json:"currency"`
	Entries          []EarningEntry `json:"entries"`
}

// EarningEntry is one credited line.
type EarningEntry struct {
	Date   time.Time `json:"date"`
	Amount Amount    `json:"amount"`
	Source string    `json:"source"`
}

// AnalyticsPeriod selects the aggregation window.
type AnalyticsPeriod string

const (
	PeriodWeek  AnalyticsPeriod = "7d"
	PeriodMonth AnalyticsPeriod = "30d"
	PeriodYear  AnalyticsPeriod = "365d"
)

// ParseAnalyticsPeriod returns a known period, defaulting to the last 30 days.
func ParseAnalyticsPeriod(s string) AnalyticsPeriod {
	switch AnalyticsPeriod(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return AnalyticsPeriod(s)
	default:
		return PeriodMonth
	}
}

// Analytics is the aggregated traffic and revenue for a period.
type Analytics struct {
	Period    AnalyticsPeriod  `json:"period"`
	Views     int64            `json:"views"`
	Downloads int64            `json:"downloads"`
	Revenue   Amount           `json:"revenue"`
	Series    []AnalyticsPoint `json:"series"`
	TopFiles  []FileStat       `json:"topFiles"`
}

// AnalyticsPoint is one bucket of the time series.
type AnalyticsPoint struct {
	Date      time.Time `json:"date"`
	Views     int64     `json:"views"`
	Downloads int64     `json:"downloads"`
	Revenue   Amount    `json:"revenue"`
}

// FileStat is per-file traffic.
type FileStat struct {
	FileID    string `json:"fileId"`
	Name      string `json:"name"`
	Views     int64  `json:"views"`
	Downloads int64  `json:"downloads"`
	Revenue   Amount `json:"revenue"`
}

// MaxViews returns the largest view count in the series, used to scale bar charts.
func (a Analytics) MaxViews() int64 {
	var m int64
	for _, p := range a.Series {
		if p.Views > m {
			m = p.Views
		}
	}
	return m
}
