package port

import (
	"context"

	"donation-kiosk/internal/core/domain"
)

// CampaignUseCase is the inbound port for campaign writes. Every write that
// changes a campaign's kiosk assignment runs the kiosk sync.
type CampaignUseCase interface {
	ListCampaigns(ctx context.Context, orgID string) ([]domain.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	CreateCampaign(ctx context.Context, c *domain.Campaign) (*SyncReport, error)
	UpdateCampaign(ctx context.Context, c *domain.Campaign) (*SyncReport, error)
	DeleteCampaign(ctx context.Context, id string) (*SyncReport, error)
	// SyncAssignments re-checks the kiosks' inverse edge against the stored
	// assignment, which desired must match; kiosks in previous are unlinked
	// if they still list the campaign. It is safe to call repeatedly.
	SyncAssignments(ctx context.Context, campaignID string, desired, previous []string) (*SyncReport, error)
}

// KioskUseCase is the inbound port for kiosk reads and non-edge writes.
type KioskUseCase interface {
	ListKiosks(ctx context.Context, orgID string) ([]domain.Kiosk, error)
	GetKiosk(ctx context.Context, id string) (*domain.Kiosk, error)
	CreateKiosk(ctx context.Context, k *domain.Kiosk) error
	UpdateKiosk(ctx context.Context, k *domain.Kiosk) error
	Heartbeat(ctx context.Context, id string) (*domain.Kiosk, error)
}

// DonationUseCase is the inbound port for donations.
type DonationUseCase interface {
	RecentDonations(ctx context.Context, orgID string, limit int) ([]domain.Donation, error)
	RecordDonation(ctx context.Context, d *domain.Donation) error
}

// DashboardUseCase produces the derived views of an organization.
type DashboardUseCase interface {
	Dashboard(ctx context.Context, orgID string) (*domain.DashboardStats, error)
	Alerts(ctx context.Context, orgID string) ([]domain.SystemAlert, error)
	AuditAssignments(ctx context.Context, orgID string) ([]AssignmentViolation, error)
}

// SyncReport summarises one sync run.
type SyncReport struct {
	CampaignID string            `json:"campaignId"`
	Added      []string          `json:"added"`
	Removed    []string          `json:"removed"`
	Affected   int               `json:"affected"`
	Failed     map[string]string `json:"failed,omitempty"`
	Queued     bool              `json:"queued"`
}

// AssignmentViolation is one kiosk/campaign pair whose two edges disagree.
type AssignmentViolation struct {
	CampaignID string `json:"campaignId"`
	KioskID    string `json:"kioskId"`
	// Side is "campaign" when only the campaign lists the kiosk, "kiosk"
	// when only the kiosk lists the campaign.
	Side string `json:"side"`
}
