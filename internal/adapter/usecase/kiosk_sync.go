package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"donation-kiosk/internal/core/assignment"
	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
	"donation-kiosk/internal/metrics"
)

// SyncOptions tunes the kiosk sync.
type SyncOptions struct {
	// MaxRetries is how many times a kiosk write is retried after a
	// version conflict.
	MaxRetries int
	// Concurrency bounds the number of kiosks patched at once.
	Concurrency int
}

// KioskSync keeps every kiosk's assignedCampaigns consistent with the
// campaigns' assignedKiosks. Each kiosk is patched independently with a
// versioned read-modify-write; there is no cross-kiosk transaction, so a
// failed run leaves the other kiosks written and must be retried.
type KioskSync struct {
	store   port.KioskEdgeStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	opts    SyncOptions
}

// NewKioskSync creates a sync engine on top of a kiosk edge store.
func NewKioskSync(store port.KioskEdgeStore, logger *slog.Logger, m *metrics.Metrics, opts SyncOptions) *KioskSync {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &KioskSync{store: store, logger: logger, metrics: m, opts: opts}
}

// PartialSyncError reports the kiosks whose patch failed. Kiosks not listed
// were written (or already consistent) and stay that way. Applied counts
// only the kiosks actually written.
type PartialSyncError struct {
	CampaignID string
	Applied    int
	Failed     map[string]error
}

func (e *PartialSyncError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("sync campaign %s: %d kiosk(s) failed: %s", e.CampaignID, len(ids), strings.Join(ids, ", "))
}

// Unwrap exposes the per-kiosk errors to errors.Is and errors.As.
func (e *PartialSyncError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		errs = append(errs, err)
	}
	return errs
}

// FailedIDs returns the failed kiosk ids in sorted order.
func (e *PartialSyncError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sync applies the delta between desired and previous. When both sets are
// equal nothing is read or written.
func (s *KioskSync) Sync(ctx context.Context, campaignID string, desired, previous []string) (int, error) {
	toAdd, toRemove := assignment.Diff(desired, previous)
	return s.run(ctx, campaignID, toAdd, toRemove)
}

// Converge re-checks every desired kiosk and every touched kiosk that is no
// longer desired. It is the retry form of Sync: it does not trust that a
// previous run applied anything.
func (s *KioskSync) Converge(ctx context.Context, campaignID string, desired, touched []string) (int, error) {
	d := assignment.Normalize(desired)
	_, toRemove := assignment.Diff(d, touched)
	return s.run(ctx, campaignID, d, toRemove)
}

func (s *KioskSync) run(ctx context.Context, campaignID string, toAdd, toRemove []string) (int, error) {
	if campaignID == "" {
		return 0, fmt.Errorf("%w: campaign id is required", port.ErrInvalidInput)
	}
	if len(toAdd) == 0 && len(toRemove) == 0 {
		s.metrics.IncSyncRun("noop")
		return 0, nil
	}

	var (
		mu      sync.Mutex
		applied int
		failed  = make(map[string]error)
		g       errgroup.Group
	)
	limit := s.opts.Concurrency
	if limit <= 0 {
		limit = len(toAdd) + len(toRemove)
	}
	g.SetLimit(limit)

	dispatch := func(kioskID string, add bool) {
		g.Go(func() error {
			var (
				changed bool
				err     error
			)
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			} else if add {
				changed, err = s.patch(ctx, kioskID, func(e *domain.KioskEdge) bool { return linkCampaign(e, campaignID) })
			} else {
				changed, err = s.patch(ctx, kioskID, func(e *domain.KioskEdge) bool { return unlinkCampaign(e, campaignID) })
				if errors.Is(err, port.ErrNotFound) {
					err = nil
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[kioskID] = err
				return nil
			}
			if changed {
				applied++
			}
			return nil
		})
	}
	for _, id := range toAdd {
		dispatch(id, true)
	}
	for _, id := range toRemove {
		dispatch(id, false)
	}
	_ = g.Wait()

	if len(failed) > 0 {
		s.metrics.IncSyncRun("partial")
		s.logger.Warn("kiosk sync incomplete",
			slog.String("campaign_id", campaignID),
			slog.Int("applied", applied),
			slog.Int("failed", len(failed)))
		return applied, &PartialSyncError{CampaignID: campaignID, Applied: applied, Failed: failed}
	}
	s.metrics.IncSyncRun("ok")
	s.logger.Debug("kiosk sync applied",
		slog.String("campaign_id", campaignID),
		slog.Int("added", len(toAdd)),
		slog.Int("removed", len(toRemove)))
	return applied, nil
}

// patch runs one versioned read-modify-write, retrying on version conflict.
// It reports whether the edge was written.
func (s *KioskSync) patch(ctx context.Context, kioskID string, mutate func(*domain.KioskEdge) bool) (bool, error) {
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		edge, err := s.store.ReadKioskEdge(ctx, kioskID)
		if err != nil {
			s.metrics.IncPatch("failed")
			return false, fmt.Errorf("read kiosk %s: %w", kioskID, err)
		}
		edge.KioskID = kioskID
		edge.AssignedCampaigns = assignment.Normalize(edge.AssignedCampaigns)

		if !mutate(&edge) {
			s.metrics.IncPatch("noop")
			return false, nil
		}

		err = s.store.PatchKioskEdge(ctx, edge)
		if err == nil {
			s.metrics.IncPatch("applied")
			return true, nil
		}
		if !errors.Is(err, port.ErrVersionConflict) {
			s.metrics.IncPatch("failed")
			return false, fmt.Errorf("patch kiosk %s: %w", kioskID, err)
		}
		s.metrics.IncPatch("conflict")
		s.logger.Debug("kiosk edge version conflict",
			slog.String("kiosk_id", kioskID),
			slog.Int("attempt", attempt+1))
	}
	return false, fmt.Errorf("patch kiosk %s after %d attempts: %w", kioskID, s.opts.MaxRetries+1, port.ErrVersionConflict)
}

// linkCampaign adds the campaign to the edge and makes it the default when
// the kiosk has none. It reports whether the edge changed.
func linkCampaign(e *domain.KioskEdge, campaignID string) bool {
	changed := false
	if !assignment.Contains(e.AssignedCampaigns, campaignID) {
		e.AssignedCampaigns = append(slices.Clone(e.AssignedCampaigns), campaignID)
		changed = true
	}
	if e.DefaultCampaign == "" {
		e.DefaultCampaign = campaignID
		changed = true
	}
	return changed
}

// unlinkCampaign removes the campaign from the edge. If it was the default,
// the first remaining assignment is promoted, or the default is cleared.
func unlinkCampaign(e *domain.KioskEdge, campaignID string) bool {
	changed := false
	if assignment.Contains(e.AssignedCampaigns, campaignID) {
		e.AssignedCampaigns = assignment.Without(e.AssignedCampaigns, campaignID)
		changed = true
	}
	if e.DefaultCampaign == campaignID {
		e.DefaultCampaign = ""
		if len(e.AssignedCampaigns) > 0 {
			e.DefaultCampaign = e.AssignedCampaigns[0]
		}
		changed = true
	}
	return changed
}
