package domain

// Donation is a single completed payment. Amount is in minor currency units.
// Donor fields are passed through untouched.
type Donation struct {
	ID         string   `json:"id"`
	OrgID      string   `json:"organizationId"`
	CampaignID string   `json:"campaignId"`
	KioskID    string   `json:"kioskId,omitempty"`
	Platform   string   `json:"platform,omitempty"`
	Amount     int64    `json:"amount"`
	Timestamp  DateLike `json:"timestamp"`
	DonorName  string   `json:"donorName,omitempty"`
	DonorEmail string   `json:"donorEmail,omitempty"`
	DonorPhone string   `json:"donorPhone,omitempty"`
}
