package usecase

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
	"donation-kiosk/internal/metrics"
)

const (
	topLocationsLimit = 5
	unknownLabel      = "Unknown"

	// activityTimeLayout is fixed-width so ISO strings sort chronologically.
	activityTimeLayout = "2006-01-02T15:04:05.000Z"
)

// Snapshot is the raw data a dashboard is computed from.
type Snapshot struct {
	Campaigns []domain.Campaign
	Kiosks    []domain.Kiosk
	Recent    []domain.Donation
}

// Aggregator computes dashboard statistics. Everything except the amount
// distribution is derived from the snapshot in memory; the distribution is
// counted server-side with one query per range, issued concurrently.
type Aggregator struct {
	counter port.DonationRangeCounter
	unit    int64
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewAggregator creates an aggregator. unit is the number of minor currency
// units per major unit and scales the amount ranges.
func NewAggregator(counter port.DonationRangeCounter, unit int64, logger *slog.Logger, m *metrics.Metrics) *Aggregator {
	if unit <= 0 {
		unit = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{counter: counter, unit: unit, logger: logger, metrics: m}
}

// Aggregate builds the statistics for one organization.
func (a *Aggregator) Aggregate(ctx context.Context, orgID string, snap Snapshot, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TopLocations:       TopLocations(snap.Kiosks, topLocationsLimit),
		DeviceDistribution: DeviceDistribution(snap.Kiosks),
		AmountDistribution: a.AmountDistribution(ctx, orgID),
	}

	for _, c := range snap.Campaigns {
		stats.TotalRaised += c.Raised
		stats.TotalDonations += c.DonationCount
		if c.Status == domain.CampaignActive {
			stats.ActiveCampaigns++
		}
	}
	for _, k := range snap.Kiosks {
		if k.Status == domain.KioskOnline {
			stats.OnlineKiosks++
		}
	}

	titles := make(map[string]string, len(snap.Campaigns))
	for _, c := range snap.Campaigns {
		titles[c.ID] = c.Title
	}
	activities, unparsed := FormatActivities(snap.Recent, titles, a.unit, now)
	if unparsed > 0 {
		a.logger.Warn("donations with unparseable timestamps",
			slog.String("org_id", orgID),
			slog.Int("count", unparsed))
	}
	stats.RecentActivity = activities
	return stats
}

// AmountRanges returns the six donation buckets 0-100, 100-200, ..., 500+
// expressed in minor units.
func AmountRanges(unit int64) []domain.AmountRange {
	ranges := make([]domain.AmountRange, 0, 6)
	for lo := int64(0); lo < 500; lo += 100 {
		hi := (lo + 100) * unit
		ranges = append(ranges, domain.AmountRange{
			Label: fmt.Sprintf("%d-%d", lo, lo+100),
			Min:   lo * unit,
			Max:   &hi,
		})
	}
	return append(ranges, domain.AmountRange{Label: "500+", Min: 500 * unit})
}

// AmountDistribution counts donations per range. A failed range counts as
// zero and marks the distribution failed; the other ranges are kept.
func (a *Aggregator) AmountDistribution(ctx context.Context, orgID string) domain.AmountDistribution {
	ranges := AmountRanges(a.unit)
	counts := make([]int64, len(ranges))
	failed := make([]bool, len(ranges))

	var g errgroup.Group
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			start := time.Now()
			n, err := a.counter.CountDonations(ctx, orgID, r.Min, r.Max)
			a.metrics.ObserveRangeQuery(time.Since(start), err != nil)
			if err != nil {
				failed[i] = true
				a.logger.Error("donation range count failed",
					slog.String("org_id", orgID),
					slog.String("range", r.Label),
					slog.Any("error", err))
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	dist := domain.AmountDistribution{Buckets: make([]domain.RangeCount, len(ranges))}
	for i, r := range ranges {
		dist.Buckets[i] = domain.RangeCount{Range: r, Count: counts[i]}
		if failed[i] {
			dist.Failed = true
		}
	}
	return dist
}

// TopLocations sums kiosk totals per location and returns the largest
// limit entries. Kiosks that raised nothing do not contribute.
func TopLocations(kiosks []domain.Kiosk, limit int) []domain.LocationStat {
	sums := make(map[string]int64)
	for _, k := range kiosks {
		if k.TotalRaised <= 0 {
			continue
		}
		loc := strings.TrimSpace(k.Location)
		if loc == "" {
			loc = unknownLabel
		}
		sums[loc] += k.TotalRaised
	}

	out := make([]domain.LocationStat, 0, len(sums))
	for loc, raised := range sums {
		out = append(out, domain.LocationStat{Location: loc, Raised: raised})
	}
	slices.SortFunc(out, func(a, b domain.LocationStat) int {
		if c := cmp.Compare(b.Raised, a.Raised); c != 0 {
			return c
		}
		return strings.Compare(a.Location, b.Location)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

var osPatterns = []struct {
	label   string
	needles []string
}{
	{"iOS", []string{"ios", "iphone", "ipad"}},
	{"Android", []string{"android"}},
	{"Windows", []string{"windows"}},
	{"ChromeOS", []string{"chromeos", "chrome os"}},
	{"Linux", []string{"linux"}},
}

// NormalizeDeviceOS maps a free-text OS string onto a canonical label by
// case-insensitive substring match, checked in the order iOS, Android,
// Windows, ChromeOS, Linux. Other values are returned trimmed; empty ones
// become "Unknown".
func NormalizeDeviceOS(os string) string {
	trimmed := strings.TrimSpace(os)
	if trimmed == "" {
		return unknownLabel
	}
	lower := strings.ToLower(trimmed)
	for _, p := range osPatterns {
		for _, n := range p.needles {
			if strings.Contains(lower, n) {
				return p.label
			}
		}
	}
	return trimmed
}

// DeviceDistribution counts kiosks per canonical OS, most common first.
func DeviceDistribution(kiosks []domain.Kiosk) []domain.DeviceStat {
	counts := make(map[string]int)
	for _, k := range kiosks {
		counts[NormalizeDeviceOS(k.DeviceInfo.OS)]++
	}
	out := make([]domain.DeviceStat, 0, len(counts))
	for os, n := range counts {
		out = append(out, domain.DeviceStat{OS: os, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.DeviceStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.OS, b.OS)
	})
	return out
}

// FormatActivities maps donations to feed entries sorted newest first by
// timestamp. Donations whose timestamp cannot be parsed are labelled
// "Older", carry an empty timestamp, sort last and are counted in the
// second return value.
func FormatActivities(donations []domain.Donation, titles map[string]string, unit int64, now time.Time) ([]domain.Activity, int) {
	out := make([]domain.Activity, 0, len(donations))
	unparsed := 0
	for _, d := range donations {
		act := domain.Activity{
			ID:      "donation-" + d.ID,
			Type:    "donation",
			Message: donationMessage(d, titles, unit),
		}
		if ts, ok := d.Timestamp.Time(); ok {
			act.Timestamp = ts.UTC().Format(activityTimeLayout)
			act.TimeAgo = ClassifyTimeAgo(ts, now)
		} else {
			act.TimeAgo = BucketOlder
			unparsed++
		}
		donation := d
		act.Donation = &donation
		out = append(out, act)
	}
	slices.SortStableFunc(out, func(a, b domain.Activity) int {
		return strings.Compare(b.Timestamp, a.Timestamp)
	})
	return out, unparsed
}

func donationMessage(d domain.Donation, titles map[string]string, unit int64) string {
	title := titles[d.CampaignID]
	if title == "" {
		title = "a campaign"
	}
	return fmt.Sprintf("New donation of %s to %s", FormatAmount(d.Amount, unit), title)
}

// FormatAmount renders a minor-unit amount in major units, e.g. 1250 with
// unit 100 as "12.50".
func FormatAmount(amount, unit int64) string {
	if unit <= 1 {
		return fmt.Sprintf("%d", amount)
	}
	digits := len(fmt.Sprintf("%d", unit)) - 1
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%0*d", sign, amount/unit, digits, amount%unit)
}
