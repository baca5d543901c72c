package usecase

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"donation-kiosk/internal/core/assignment"
	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
	"donation-kiosk/internal/metrics"
)

// Dashboard section names reported in DashboardStats.SectionErrors.
const (
	SectionCampaigns    = "campaigns"
	SectionKiosks       = "kiosks"
	SectionActivity     = "activity"
	SectionDistribution = "amountDistribution"
)

// DashboardOptions configures the dashboard use case.
type DashboardOptions struct {
	RecentLimit int
	AmountUnit  int64
	CacheTTL    time.Duration
	Alerts      AlertPolicy
}

// DashboardService implements port.DashboardUseCase. Snapshots are fetched
// concurrently and each section degrades on its own when its fetch fails.
type DashboardService struct {
	campaigns  port.CampaignLister
	kiosks     port.KioskLister
	donations  port.DonationFeed
	payments   port.PaymentAccountProvider
	aggregator *Aggregator
	opts       DashboardOptions
	cache      *cache.Cache
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewDashboardService wires the dashboard over the given collaborators.
func NewDashboardService(
	campaigns port.CampaignLister,
	kiosks port.KioskLister,
	donations port.DonationFeed,
	counter port.DonationRangeCounter,
	payments port.PaymentAccountProvider,
	opts DashboardOptions,
	logger *slog.Logger,
	m *metrics.Metrics,
) *DashboardService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}
	if opts.Alerts == (AlertPolicy{}) {
		opts.Alerts = DefaultAlertPolicy
	}
	var c *cache.Cache
	if opts.CacheTTL > 0 {
		c = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return &DashboardService{
		campaigns:  campaigns,
		kiosks:     kiosks,
		donations:  donations,
		payments:   payments,
		aggregator: NewAggregator(counter, opts.AmountUnit, logger, m),
		opts:       opts,
		cache:      c,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
}

func dashboardKey(orgID string) string { return "dashboard:" + orgID }

// Invalidate drops the cached dashboard of an organization.
func (s *DashboardService) Invalidate(orgID string) {
	if s.cache != nil {
		s.cache.Delete(dashboardKey(orgID))
	}
}

// Dashboard returns the aggregated statistics of an organization. Only
// fully successful results are cached.
func (s *DashboardService) Dashboard(ctx context.Context, orgID string) (*domain.DashboardStats, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(dashboardKey(orgID)); ok {
			stats := v.(domain.DashboardStats)
			return &stats, nil
		}
	}

	var (
		snap   Snapshot
		mu     sync.Mutex
		errs   = make(map[string]string)
		g      errgroup.Group
		record = func(section string, err error) {
			mu.Lock()
			defer mu.Unlock()
			errs[section] = err.Error()
			s.logger.Error("dashboard section failed",
				slog.String("org_id", orgID),
				slog.String("section", section),
				slog.Any("error", err))
		}
	)
	g.Go(func() error {
		cs, err := s.campaigns.ListCampaigns(ctx, orgID)
		if err != nil {
			record(SectionCampaigns, err)
			return nil
		}
		snap.Campaigns = cs
		return nil
	})
	g.Go(func() error {
		ks, err := s.kiosks.ListKiosks(ctx, orgID)
		if err != nil {
			record(SectionKiosks, err)
			return nil
		}
		snap.Kiosks = ks
		return nil
	})
	g.Go(func() error {
		ds, err := s.donations.RecentDonations(ctx, orgID, s.opts.RecentLimit)
		if err != nil {
			record(SectionActivity, err)
			return nil
		}
		snap.Recent = ds
		return nil
	})
	_ = g.Wait()

	stats := s.aggregator.Aggregate(ctx, orgID, snap, s.now())
	if stats.AmountDistribution.Failed {
		errs[SectionDistribution] = "one or more amount ranges could not be counted"
	}
	if len(errs) > 0 {
		stats.SectionErrors = errs
	} else if s.cache != nil {
		s.cache.SetDefault(dashboardKey(orgID), stats)
	}
	return &stats, nil
}

// Alerts evaluates the alert rules over fresh snapshots. Unlike the
// dashboard, any fetch failure fails the call.
func (s *DashboardService) Alerts(ctx context.Context, orgID string) ([]domain.SystemAlert, error) {
	var (
		campaigns []domain.Campaign
		kiosks    []domain.Kiosk
		linked    bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		campaigns, err = s.campaigns.ListCampaigns(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		kiosks, err = s.kiosks.ListKiosks(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		linked, err = s.payments.PaymentAccountLinked(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	alerts := s.opts.Alerts.Evaluate(kiosks, campaigns, linked, s.now())
	bySeverity := make(map[string]int)
	for _, a := range alerts {
		bySeverity[string(a.Severity)]++
	}
	s.metrics.SetAlerts(bySeverity)
	return alerts, nil
}

// AuditAssignments lists kiosk/campaign pairs whose edges disagree. Global
// campaigns are exempt on the kiosk side since their membership is implicit.
func (s *DashboardService) AuditAssignments(ctx context.Context, orgID string) ([]port.AssignmentViolation, error) {
	campaigns, err := s.campaigns.ListCampaigns(ctx, orgID)
	if err != nil {
		return nil, err
	}
	kiosks, err := s.kiosks.ListKiosks(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return FindViolations(campaigns, kiosks), nil
}

// FindViolations compares both edges of every assignment.
func FindViolations(campaigns []domain.Campaign, kiosks []domain.Kiosk) []port.AssignmentViolation {
	kioskByID := make(map[string]domain.Kiosk, len(kiosks))
	for _, k := range kiosks {
		kioskByID[k.ID] = k
	}
	campaignByID := make(map[string]domain.Campaign, len(campaigns))
	for _, c := range campaigns {
		campaignByID[c.ID] = c
	}

	out := make([]port.AssignmentViolation, 0)
	for _, c := range campaigns {
		for _, kid := range c.AssignedKiosks {
			k, ok := kioskByID[kid]
			if !ok || !assignment.Contains(k.AssignedCampaigns, c.ID) {
				out = append(out, port.AssignmentViolation{CampaignID: c.ID, KioskID: kid, Side: "campaign"})
			}
		}
	}
	for _, k := range kiosks {
		for _, cid := range k.AssignedCampaigns {
			c, ok := campaignByID[cid]
			if ok && c.IsGlobal {
				continue
			}
			if !ok || !assignment.Contains(c.AssignedKiosks, k.ID) {
				out = append(out, port.AssignmentViolation{CampaignID: cid, KioskID: k.ID, Side: "kiosk"})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CampaignID != out[j].CampaignID {
			return out[i].CampaignID < out[j].CampaignID
		}
		return out[i].KioskID < out[j].KioskID
	})
	return out
}
