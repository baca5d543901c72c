package domain

// Activity is one entry of the dashboard activity feed.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"` // RFC3339, sortable; empty when unknown
	TimeAgo   string    `json:"timeAgo"`
	Donation  *Donation `json:"donation,omitempty"`
}

// LocationStat is the raised total for one kiosk location.
type LocationStat struct {
	Location string `json:"location"`
	Raised   int64  `json:"raised"`
}

// DeviceStat counts kiosks per canonical operating system label.
type DeviceStat struct {
	OS    string `json:"os"`
	Count int    `json:"count"`
}

// AmountRange is a lower-inclusive, upper-exclusive donation amount bucket.
// Max is nil for the open-ended last bucket.
type AmountRange struct {
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   *int64 `json:"max"`
}

// RangeCount is the number of donations falling into Range.
type RangeCount struct {
	Range AmountRange `json:"range"`
	Count int64       `json:"count"`
}

// AmountDistribution carries per-range counts. Failed is set when at least
// one range query failed; that range reports zero.
type AmountDistribution struct {
	Buckets []RangeCount `json:"buckets"`
	Failed  bool         `json:"failed"`
}

// DashboardStats is the aggregated view of one organization. Each section is
// computed independently; SectionErrors names sections that degraded.
type DashboardStats struct {
	TotalRaised        int64              `json:"totalRaised"`
	TotalDonations     int64              `json:"totalDonations"`
	ActiveCampaigns    int                `json:"activeCampaigns"`
	OnlineKiosks       int                `json:"onlineKiosks"`
	TopLocations       []LocationStat     `json:"topLocations"`
	DeviceDistribution []DeviceStat       `json:"deviceDistribution"`
	AmountDistribution AmountDistribution `json:"amountDistribution"`
	RecentActivity     []Activity         `json:"recentActivity"`
	SectionErrors      map[string]string  `json:"sectionErrors,omitempty"`
}
