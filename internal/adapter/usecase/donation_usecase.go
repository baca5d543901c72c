package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
)

const maxRecentLimit = 100

// DonationUseCase implements port.DonationUseCase.
type DonationUseCase struct {
	repo        port.DonationRepository
	invalidator Invalidator
	now         func() time.Time
}

// NewDonationUseCase creates the donation use case. invalidator may be nil.
func NewDonationUseCase(repo port.DonationRepository, invalidator Invalidator) *DonationUseCase {
	return &DonationUseCase{repo: repo, invalidator: invalidator, now: time.Now}
}

// RecentDonations returns up to limit newest donations, capped at 100.
func (u *DonationUseCase) RecentDonations(ctx context.Context, orgID string, limit int) ([]domain.Donation, error) {
	if limit <= 0 || limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return u.repo.RecentDonations(ctx, orgID, limit)
}

// RecordDonation stores a donation and updates the campaign and kiosk totals.
func (u *DonationUseCase) RecordDonation(ctx context.Context, d *domain.Donation) error {
	if d.OrgID == "" || d.CampaignID == "" {
		return fmt.Errorf("%w: organization and campaign are required", port.ErrInvalidInput)
	}
	if d.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", port.ErrInvalidInput)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = domain.Native(u.now().UTC())
	} else if _, ok := d.Timestamp.Time(); !ok {
		return fmt.Errorf("%w: timestamp %q is not a valid date", port.ErrInvalidInput, d.Timestamp.Raw())
	}
	if err := u.repo.RecordDonation(ctx, d); err != nil {
		return fmt.Errorf("record donation: %w", err)
	}
	if u.invalidator != nil {
		u.invalidator.Invalidate(d.OrgID)
	}
	return nil
}
