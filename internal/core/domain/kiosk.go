package domain

import "time"

// KioskStatus is the reported state of a kiosk device.
type KioskStatus string

const (
	KioskOnline      KioskStatus = "online"
	KioskOffline     KioskStatus = "offline"
	KioskMaintenance KioskStatus = "maintenance"
)

// Valid reports whether s is one of the known statuses.
func (s KioskStatus) Valid() bool {
	switch s {
	case KioskOnline, KioskOffline, KioskMaintenance:
		return true
	}
	return false
}

// Kiosk is a donation terminal. AssignedCampaigns and DefaultCampaign form
// the inverse edge of Campaign.AssignedKiosks and are written only by the
// kiosk sync use case. Version is bumped on every edge write.
type Kiosk struct {
	ID                string         `json:"id"`
	OrgID             string         `json:"organizationId"`
	Name              string         `json:"name"`
	Location          string         `json:"location"`
	Status            KioskStatus    `json:"status"`
	LastActive        DateLike       `json:"lastActive"`
	AssignedCampaigns AssignmentList `json:"assignedCampaigns"`
	DefaultCampaign   string         `json:"defaultCampaign,omitempty"`
	TotalRaised       int64          `json:"totalRaised"`
	DeviceInfo        DeviceInfo     `json:"deviceInfo"`
	Version           int64          `json:"version"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// DeviceInfo holds free-text device details reported by the kiosk.
type DeviceInfo struct {
	OS string `json:"os"`
}

// KioskEdge is the inverse-edge slice of a kiosk read for a versioned
// read-modify-write.
type KioskEdge struct {
	KioskID           string
	AssignedCampaigns []string
	DefaultCampaign   string
	Version           int64
}
