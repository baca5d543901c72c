package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTimeAgo(t *testing.T) {
	// Wednesday; the week started on Sunday May 12.
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "1 minute ago"},
		{"future", now.Add(time.Hour), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"last minute of the hour", now.Add(-59 * time.Minute), "59 minutes ago"},
		{"one hour", now.Add(-time.Hour), "1 hour ago"},
		{"hours", now.Add(-23 * time.Hour), "23 hours ago"},
		{"yesterday", now.Add(-25 * time.Hour), BucketYesterday},
		{"monday this week", time.Date(2024, time.May, 13, 10, 0, 0, 0, time.UTC), BucketThisWeek},
		{"week start", time.Date(2024, time.May, 12, 0, 30, 0, 0, time.UTC), BucketThisWeek},
		{"saturday before", time.Date(2024, time.May, 11, 23, 0, 0, 0, time.UTC), BucketLastWeek},
		{"last week start", time.Date(2024, time.May, 5, 8, 0, 0, 0, time.UTC), BucketLastWeek},
		{"earlier this month", time.Date(2024, time.May, 4, 8, 0, 0, 0, time.UTC), BucketEarlierThisMonth},
		{"last month", time.Date(2024, time.April, 20, 8, 0, 0, 0, time.UTC), BucketLastMonth},
		{"older", time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC), BucketOlder},
		{"previous year", time.Date(2023, time.May, 14, 8, 0, 0, 0, time.UTC), BucketOlder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTimeAgo(tt.t, now))
		})
	}
}

func TestClassifyTimeAgoAcrossYear(t *testing.T) {
	now := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, BucketLastMonth, ClassifyTimeAgo(time.Date(2023, time.December, 20, 9, 0, 0, 0, time.UTC), now))
	assert.Equal(t, BucketOlder, ClassifyTimeAgo(time.Date(2023, time.November, 20, 9, 0, 0, 0, time.UTC), now))
}

func TestClassifyTimeAgoUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, time.May, 15, 1, 0, 0, 0, loc)
	// 14:00 UTC on May 13 is midnight May 14 local: yesterday, not this week
	ts := time.Date(2024, time.May, 13, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, BucketYesterday, ClassifyTimeAgo(ts, now))
}
