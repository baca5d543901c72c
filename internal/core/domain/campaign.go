package domain

import (
	"encoding/json"
	"time"

	"donation-kiosk/internal/core/assignment"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignDraft     CampaignStatus = "draft"
)

// Valid reports whether s is one of the known statuses.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignActive, CampaignPaused, CampaignCompleted, CampaignDraft:
		return true
	}
	return false
}

// Campaign represents a fundraising campaign shown on kiosks.
// Goal and Raised are stored in integer minor currency units (e.g. cents).
type Campaign struct {
	ID             string         `json:"id"`
	OrgID          string         `json:"organizationId"`
	Title          string         `json:"title"`
	Status         CampaignStatus `json:"status"`
	Goal           int64          `json:"goal"`
	Raised         int64          `json:"raised"`
	DonationCount  int64          `json:"donationCount"`
	StartDate      DateLike       `json:"startDate"`
	EndDate        DateLike       `json:"endDate"`
	AssignedKiosks AssignmentList `json:"assignedKiosks"`
	IsGlobal       bool           `json:"isGlobal"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// AssignmentList is a canonical list of identifiers. On decode it accepts a
// scalar, a delimited string or a list and always normalises.
type AssignmentList []string

// UnmarshalJSON never fails on shape; malformed input yields an empty list.
func (a *AssignmentList) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*a = AssignmentList{}
		return nil
	}
	*a = assignment.Normalize(raw)
	return nil
}

// MarshalJSON emits [] rather than null for empty lists.
func (a AssignmentList) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}
