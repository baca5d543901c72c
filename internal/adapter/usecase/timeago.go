package usecase

import (
	"fmt"
	"time"
)

// Time bucket labels for the activity feed.
const (
	BucketYesterday        = "Yesterday"
	BucketThisWeek         = "This week"
	BucketLastWeek         = "Last week"
	BucketEarlierThisMonth = "Earlier this month"
	BucketLastMonth        = "Last month"
	BucketOlder            = "Older"
)

// ClassifyTimeAgo labels t relative to now. Under an hour it counts
// minutes, under a day hours; beyond that it uses calendar boundaries in
// now's location, with weeks starting on Sunday. Future times read as
// "1 minute ago".
func ClassifyTimeAgo(t, now time.Time) string {
	t = t.In(now.Location())
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	if mins := int(diff / time.Minute); mins < 60 {
		if mins <= 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if hours := int(diff / time.Hour); hours < 24 {
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	today := midnight(now)
	day := midnight(t)
	if day.Equal(today.AddDate(0, 0, -1)) {
		return BucketYesterday
	}

	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	if !day.Before(weekStart) {
		return BucketThisWeek
	}
	if !day.Before(weekStart.AddDate(0, 0, -7)) {
		return BucketLastWeek
	}

	if t.Year() == now.Year() && t.Month() == now.Month() {
		return BucketEarlierThisMonth
	}
	prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	if t.Year() == prev.Year() && t.Month() == prev.Month() {
		return BucketLastMonth
	}
	return BucketOlder
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
