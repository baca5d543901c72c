package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"donation-kiosk/internal/core/assignment"
	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
)

// Invalidator drops derived views of an organization after a write.
type Invalidator interface {
	Invalidate(orgID string)
}

// CampaignUseCase implements port.CampaignUseCase. Every write that can
// change a campaign's kiosk assignment is followed by a kiosk sync against
// the stored assignment; partial sync failures are handed to the retry
// queue.
type CampaignUseCase struct {
	repo        port.CampaignRepository
	syncer      port.AssignmentSyncer
	queue       port.SyncEnqueuer
	invalidator Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewCampaignUseCase creates the campaign use case. queue and invalidator
// may be nil.
func NewCampaignUseCase(repo port.CampaignRepository, syncer port.AssignmentSyncer, queue port.SyncEnqueuer, invalidator Invalidator, logger *slog.Logger) *CampaignUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CampaignUseCase{
		repo:        repo,
		syncer:      syncer,
		queue:       queue,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// ListCampaigns returns the campaigns of an organization.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, orgID string) ([]domain.Campaign, error) {
	return u.repo.ListCampaigns(ctx, orgID)
}

// GetCampaign returns a campaign by id.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, id)
}

// CreateCampaign stores a new campaign and links it to its kiosks.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, c *domain.Campaign) (*port.SyncReport, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.CampaignDraft
	}
	if err := validateCampaign(c); err != nil {
		return nil, err
	}
	c.AssignedKiosks = assignment.Normalize(c.AssignedKiosks)
	now := u.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	if err := u.repo.CreateCampaign(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return u.apply(ctx, c.OrgID, c.ID, nil)
}

// UpdateCampaign overwrites a campaign and syncs the kiosks that gained or
// lost it. The previous assignment is the one stored before this write.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, c *domain.Campaign) (*port.SyncReport, error) {
	existing, err := u.repo.GetCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.OrgID = existing.OrgID
	c.CreatedAt = existing.CreatedAt
	if err = validateCampaign(c); err != nil {
		return nil, err
	}
	c.AssignedKiosks = assignment.Normalize(c.AssignedKiosks)
	c.UpdatedAt = u.now().UTC()

	previous, err := u.repo.UpdateCampaign(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("update campaign %s: %w", c.ID, err)
	}
	return u.apply(ctx, c.OrgID, c.ID, previous)
}

// DeleteCampaign removes a campaign and unlinks it from every kiosk.
func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, id string) (*port.SyncReport, error) {
	existing, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	previous, err := u.repo.DeleteCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete campaign %s: %w", id, err)
	}
	return u.apply(ctx, existing.OrgID, id, previous)
}

// SyncAssignments re-checks the kiosks of a campaign. desired must equal the
// stored assignment; changing the assignment goes through UpdateCampaign.
// previous names extra kiosks to unlink if they still list the campaign, so
// the call repairs edges left behind by an abandoned sync.
func (u *CampaignUseCase) SyncAssignments(ctx context.Context, campaignID string, desired, previous []string) (*port.SyncReport, error) {
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !sameKiosks(desired, c.AssignedKiosks) {
		return nil, fmt.Errorf("%w: desired kiosks differ from the campaign's assignment %v; update the campaign instead",
			port.ErrInvalidInput, []string(c.AssignedKiosks))
	}
	touched := assignment.Normalize([]any{desired, previous})
	out, err := u.syncer.Resync(ctx, campaignID, touched)
	return u.report(c.OrgID, campaignID, out, touched, err)
}

func (u *CampaignUseCase) apply(ctx context.Context, orgID, campaignID string, previous []string) (*port.SyncReport, error) {
	out, err := u.syncer.Apply(ctx, campaignID, previous)
	return u.report(orgID, campaignID, out, previous, err)
}

// report turns a sync outcome into the response. The campaign write is
// already stored, so any sync error queues a resync of every kiosk involved.
func (u *CampaignUseCase) report(orgID, campaignID string, out port.SyncOutcome, previous []string, err error) (*port.SyncReport, error) {
	if u.invalidator != nil {
		defer u.invalidator.Invalidate(orgID)
	}
	report := &port.SyncReport{
		CampaignID: campaignID,
		Added:      nonNil(out.Added),
		Removed:    nonNil(out.Removed),
		Affected:   out.Affected,
	}
	if err == nil {
		return report, nil
	}

	if u.queue != nil {
		report.Queued = u.queue.Enqueue(port.SyncJob{
			CampaignID: campaignID,
			OrgID:      orgID,
			Touched:    assignment.Normalize([]any{out.Desired, previous}),
		})
	}
	var partial *PartialSyncError
	if !errors.As(err, &partial) {
		u.logger.Error("campaign sync failed",
			slog.String("campaign_id", campaignID),
			slog.Bool("queued", report.Queued),
			slog.Any("error", err))
		return report, err
	}
	report.Failed = make(map[string]string, len(partial.Failed))
	for id, ferr := range partial.Failed {
		report.Failed[id] = ferr.Error()
	}
	u.logger.Warn("campaign sync partially applied",
		slog.String("campaign_id", campaignID),
		slog.Int("failed", len(partial.Failed)),
		slog.Bool("queued", report.Queued))
	return report, err
}

func sameKiosks(a, b []string) bool {
	toAdd, toRemove := assignment.Diff(a, b)
	return len(toAdd) == 0 && len(toRemove) == 0
}

func validateCampaign(c *domain.Campaign) error {
	var problems []string
	if strings.TrimSpace(c.Title) == "" {
		problems = append(problems, "title is required")
	}
	if c.OrgID == "" {
		problems = append(problems, "organization is required")
	}
	if !c.Status.Valid() {
		problems = append(problems, fmt.Sprintf("unknown status %q", c.Status))
	}
	if c.Goal < 0 {
		problems = append(problems, "goal must not be negative")
	}
	start, hasStart := c.StartDate.Time()
	end, hasEnd := c.EndDate.Time()
	if !c.StartDate.IsZero() && !hasStart {
		problems = append(problems, "start date is not a valid date")
	}
	if !c.EndDate.IsZero() && !hasEnd {
		problems = append(problems, "end date is not a valid date")
	}
	if hasStart && hasEnd && end.Before(start) {
		problems = append(problems, "end date is before start date")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", port.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
