package report

import (
	"time"

	"tally/internal/model"
)

// Granularity selects the bucket size of a trend series.
type Granularity string

const (
	// Daily buckets one calendar day per entry over a 30-day window.
	Daily Granularity = "daily"
	// Weekly buckets one Monday-start week per entry over a 12-week window.
	Weekly Granularity = "weekly"
	// Monthly buckets one calendar month per entry over a 12-month window.
	Monthly Granularity = "monthly"
)

// Window sizes per granularity.
const (
	dailyBuckets   = 30
	weeklyBuckets  = 12
	monthlyBuckets = 12
)

// Bucket is one entry of a trend series. Key is the period start: an ISO date
// for days and weeks, year-month for months.
type Bucket struct {
	Key    string
	Amount float64
}

// startOfDay truncates t to midnight in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek truncates t to the preceding (or same) Monday at midnight.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// startOfMonth truncates t to the first of its month at midnight.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TrendSeries sums expense amounts into a dense series of trailing buckets
// ending at the period containing now: 30 days, 12 weeks, or 12 months. Every
// period in the window appears, including empty ones with amount 0. An
// unknown granularity yields an empty series.
func TrendSeries(transactions []model.Transaction, granularity Granularity, now time.Time) []Bucket {
	var (
		count  int
		floor  func(time.Time) time.Time
		step   func(time.Time, int) time.Time
		format string
	)

	switch granularity {
	case Daily:
		count = dailyBuckets
		floor = startOfDay
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }
		format = "2006-01-02"
	case Weekly:
		count = weeklyBuckets
		floor = startOfWeek
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }
		format = "2006-01-02"
	case Monthly:
		count = monthlyBuckets
		floor = startOfMonth
		step = func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }
		format = "2006-01"
	default:
		return nil
	}

	last := floor(now)
	index := make(map[string]int, count)
	series := make([]Bucket, count)
	for i := 0; i < count; i++ {
		key := step(last, i-count+1).Format(format)
		series[i] = Bucket{Key: key}
		index[key] = i
	}

	for _, txn := range transactions {
		if txn.Type != model.TypeExpense {
			continue
		}
		key := floor(txn.Date).Format(format)
		if i, ok := index[key]; ok {
			series[i].Amount += txn.Amount
		}
	}

	return series
}
