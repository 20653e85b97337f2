// internal/metrics/trend.go
package metrics

import (
	"time"

	"github.com/phishguard/phishsim-backend/internal/model"
)

// CampaignTargets pairs a campaign's creation time with its targets for
// bucketing. The caller fetches the rows; this package only partitions them.
type CampaignTargets struct {
	CreatedAt time.Time
	Targets   []model.Target
}

// TrendPoint is one calendar month of the trend report.
type TrendPoint struct {
	Month     time.Time `json:"month"` // first day of the month, UTC
	Campaigns int       `json:"campaigns"`
	Summary
}

// monthKey truncates t to the first instant of its calendar month in UTC.
func monthKey(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTrend partitions campaigns by the calendar month they were created in
// and computes the summary for each of the last `months` months up to now.
// Every month in the range appears; months with no campaigns get a zero-valued
// summary rather than fabricated numbers.
func MonthlyTrend(rows []CampaignTargets, months int, now time.Time, th RiskThresholds) []TrendPoint {
	if months < 1 {
		months = 1
	}

	buckets := make(map[time.Time][]model.Target)
	counts := make(map[time.Time]int)
	for _, row := range rows {
		key := monthKey(row.CreatedAt)
		buckets[key] = append(buckets[key], row.Targets...)
		counts[key]++
	}

	points := make([]TrendPoint, 0, months)
	first := monthKey(now).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0)
		points = append(points, TrendPoint{
			Month:     key,
			Campaigns: counts[key],
			Summary:   Compute(buckets[key], th),
		})
	}
	return points
}
