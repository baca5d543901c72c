package port

import (
	"context"
	"errors"

	"donation-kiosk/internal/core/domain"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by a versioned write whose expected
	// version no longer matches the stored one.
	ErrVersionConflict = errors.New("version conflict")
)

// CampaignLister reads an organization's campaigns.
type CampaignLister interface {
	ListCampaigns(ctx context.Context, orgID string) ([]domain.Campaign, error)
}

// KioskLister reads an organization's kiosks.
type KioskLister interface {
	ListKiosks(ctx context.Context, orgID string) ([]domain.Kiosk, error)
}

// DonationFeed reads an organization's newest donations.
type DonationFeed interface {
	RecentDonations(ctx context.Context, orgID string, limit int) ([]domain.Donation, error)
}

// CampaignGetter reads one campaign.
type CampaignGetter interface {
	// GetCampaign returns a campaign by id or ErrNotFound.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
}

// CampaignRepository is the campaign collection of the record store.
type CampaignRepository interface {
	CampaignLister
	CampaignGetter
	// CreateCampaign stores a new campaign.
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	// UpdateCampaign overwrites the editable fields of c and returns the
	// kiosk assignment that was stored before the update.
	UpdateCampaign(ctx context.Context, c *domain.Campaign) (previous []string, err error)
	// DeleteCampaign removes a campaign and returns its last kiosk assignment.
	DeleteCampaign(ctx context.Context, id string) (previous []string, err error)
}

// KioskRepository is the kiosk collection of the record store. Its plain
// update path never touches the assignment edge; only ReadKioskEdge and
// PatchKioskEdge do.
type KioskRepository interface {
	KioskLister
	GetKiosk(ctx context.Context, id string) (*domain.Kiosk, error)
	CreateKiosk(ctx context.Context, k *domain.Kiosk) error
	// UpdateKiosk writes name, location, status, last active time and device
	// info. Assigned campaigns and the default campaign are left untouched.
	UpdateKiosk(ctx context.Context, k *domain.Kiosk) error
	KioskEdgeStore
}

// KioskEdgeStore is the read/patch collaborator of the sync engine.
type KioskEdgeStore interface {
	// ReadKioskEdge returns the current assignment edge and version.
	ReadKioskEdge(ctx context.Context, kioskID string) (domain.KioskEdge, error)
	// PatchKioskEdge writes edge.AssignedCampaigns and edge.DefaultCampaign
	// if the stored version still equals edge.Version, bumping the version.
	// It returns ErrVersionConflict otherwise.
	PatchKioskEdge(ctx context.Context, edge domain.KioskEdge) error
}

// DonationRepository is the donation collection of the record store.
type DonationRepository interface {
	DonationFeed
	// RecordDonation stores d and adds its amount to the campaign and kiosk
	// totals in the same transaction.
	RecordDonation(ctx context.Context, d *domain.Donation) error
	DonationRangeCounter
}

// DonationRangeCounter is the server-side aggregate count collaborator.
type DonationRangeCounter interface {
	// CountDonations counts an organization's donations with
	// min <= amount < max. A nil max means no upper bound.
	CountDonations(ctx context.Context, orgID string, min int64, max *int64) (int64, error)
}

// PaymentAccountProvider reports whether an organization has a linked
// payment provider account.
type PaymentAccountProvider interface {
	PaymentAccountLinked(ctx context.Context, orgID string) (bool, error)
}

// ErrInvalidInput marks a rejected write; wrapped errors carry the reason.
var ErrInvalidInput = errors.New("invalid input")
