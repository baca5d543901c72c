package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
)

// KioskUseCase implements port.KioskUseCase. It never writes the assignment
// edge; new kiosks start unassigned and only the kiosk sync links them.
type KioskUseCase struct {
	repo        port.KioskRepository
	invalidator Invalidator
	now         func() time.Time
}

// NewKioskUseCase creates the kiosk use case. invalidator may be nil.
func NewKioskUseCase(repo port.KioskRepository, invalidator Invalidator) *KioskUseCase {
	return &KioskUseCase{repo: repo, invalidator: invalidator, now: time.Now}
}

func (u *KioskUseCase) ListKiosks(ctx context.Context, orgID string) ([]domain.Kiosk, error) {
	return u.repo.ListKiosks(ctx, orgID)
}

func (u *KioskUseCase) GetKiosk(ctx context.Context, id string) (*domain.Kiosk, error) {
	return u.repo.GetKiosk(ctx, id)
}

// CreateKiosk stores a new kiosk. Any assignment in the input is dropped.
func (u *KioskUseCase) CreateKiosk(ctx context.Context, k *domain.Kiosk) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.Status == "" {
		k.Status = domain.KioskOffline
	}
	if err := validateKiosk(k); err != nil {
		return err
	}
	k.AssignedCampaigns = domain.AssignmentList{}
	k.DefaultCampaign = ""
	k.Version = 0
	now := u.now().UTC()
	k.CreatedAt, k.UpdatedAt = now, now

	if err := u.repo.CreateKiosk(ctx, k); err != nil {
		return fmt.Errorf("create kiosk: %w", err)
	}
	u.invalidate(k.OrgID)
	return nil
}

// UpdateKiosk writes the kiosk's descriptive fields and status.
func (u *KioskUseCase) UpdateKiosk(ctx context.Context, k *domain.Kiosk) error {
	existing, err := u.repo.GetKiosk(ctx, k.ID)
	if err != nil {
		return err
	}
	k.OrgID = existing.OrgID
	if err = validateKiosk(k); err != nil {
		return err
	}
	k.UpdatedAt = u.now().UTC()
	if err = u.repo.UpdateKiosk(ctx, k); err != nil {
		return fmt.Errorf("update kiosk %s: %w", k.ID, err)
	}
	u.invalidate(k.OrgID)
	return nil
}

// Heartbeat marks a kiosk online and active now.
func (u *KioskUseCase) Heartbeat(ctx context.Context, id string) (*domain.Kiosk, error) {
	k, err := u.repo.GetKiosk(ctx, id)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	k.Status = domain.KioskOnline
	k.LastActive = domain.Native(now)
	k.UpdatedAt = now
	if err = u.repo.UpdateKiosk(ctx, k); err != nil {
		return nil, fmt.Errorf("heartbeat kiosk %s: %w", id, err)
	}
	u.invalidate(k.OrgID)
	return k, nil
}

func (u *KioskUseCase) invalidate(orgID string) {
	if u.invalidator != nil {
		u.invalidator.Invalidate(orgID)
	}
}

func validateKiosk(k *domain.Kiosk) error {
	var problems []string
	if strings.TrimSpace(k.Name) == "" {
		problems = append(problems, "name is required")
	}
	if k.OrgID == "" {
		problems = append(problems, "organization is required")
	}
	if !k.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", k.Status))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", port.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
