package usecase

import (
	"context"
	"slices"
	"sync"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
)

// memEdgeStore is a versioned in-memory kiosk edge store.
type memEdgeStore struct {
	mu        sync.Mutex
	edges     map[string]domain.KioskEdge
	fail      map[string]error
	conflicts map[string]int
	patches   map[string]int
}

func newMemEdgeStore(ids ...string) *memEdgeStore {
	s := &memEdgeStore{
		edges:     make(map[string]domain.KioskEdge),
		fail:      make(map[string]error),
		conflicts: make(map[string]int),
		patches:   make(map[string]int),
	}
	for _, id := range ids {
		s.edges[id] = domain.KioskEdge{KioskID: id}
	}
	return s
}

func (s *memEdgeStore) put(e domain.KioskEdge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[e.KioskID] = e
}

func (s *memEdgeStore) get(id string) domain.KioskEdge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edges[id]
}

func (s *memEdgeStore) patchCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patches[id]
}

func (s *memEdgeStore) ReadKioskEdge(_ context.Context, kioskID string) (domain.KioskEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[kioskID]; err != nil {
		return domain.KioskEdge{}, err
	}
	e, ok := s.edges[kioskID]
	if !ok {
		return domain.KioskEdge{}, port.ErrNotFound
	}
	e.AssignedCampaigns = slices.Clone(e.AssignedCampaigns)
	return e, nil
}

// PatchKioskEdge simulates a concurrent writer while conflicts[id] > 0 by
// bumping the stored version before comparing.
func (s *memEdgeStore) PatchKioskEdge(_ context.Context, edge domain.KioskEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.edges[edge.KioskID]
	if !ok {
		return port.ErrNotFound
	}
	if s.conflicts[edge.KioskID] > 0 {
		s.conflicts[edge.KioskID]--
		cur.Version++
		s.edges[edge.KioskID] = cur
	}
	if cur.Version != edge.Version {
		return port.ErrVersionConflict
	}
	edge.Version = cur.Version + 1
	edge.AssignedCampaigns = slices.Clone(edge.AssignedCampaigns)
	s.edges[edge.KioskID] = edge
	s.patches[edge.KioskID]++
	return nil
}

// memRecords serves the list ports from fixed snapshots.
type memRecords struct {
	campaigns    []domain.Campaign
	kiosks       []domain.Kiosk
	donations    []domain.Donation
	campaignErr  error
	kioskErr     error
	donationErr  error
	linked       bool
	linkedErr    error
	campaignHits int
	mu           sync.Mutex
}

func (m *memRecords) ListCampaigns(context.Context, string) ([]domain.Campaign, error) {
	m.mu.Lock()
	m.campaignHits++
	m.mu.Unlock()
	return m.campaigns, m.campaignErr
}

func (m *memRecords) ListKiosks(context.Context, string) ([]domain.Kiosk, error) {
	return m.kiosks, m.kioskErr
}

func (m *memRecords) RecentDonations(_ context.Context, _ string, limit int) ([]domain.Donation, error) {
	if m.donationErr != nil {
		return nil, m.donationErr
	}
	if limit < len(m.donations) {
		return m.donations[:limit], nil
	}
	return m.donations, nil
}

func (m *memRecords) PaymentAccountLinked(context.Context, string) (bool, error) {
	return m.linked, m.linkedErr
}

func (m *memRecords) hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaignHits
}

// countingInvalidator records invalidated organizations.
type countingInvalidator struct {
	mu   sync.Mutex
	orgs []string
}

func (c *countingInvalidator) Invalidate(orgID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orgs = append(c.orgs, orgID)
}

func (c *countingInvalidator) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.orgs)
}

// countFunc adapts a function to port.DonationRangeCounter.
type countFunc func(ctx context.Context, orgID string, min int64, max *int64) (int64, error)

func (f countFunc) CountDonations(ctx context.Context, orgID string, min int64, max *int64) (int64, error) {
	return f(ctx, orgID, min, max)
}

// countAmounts counts fixed amounts per range like the store does.
func countAmounts(amounts ...int64) countFunc {
	return func(_ context.Context, _ string, min int64, max *int64) (int64, error) {
		var n int64
		for _, a := range amounts {
			if a >= min && (max == nil || a < *max) {
				n++
			}
		}
		return n, nil
	}
}

// memCampaignRepo is an in-memory port.CampaignRepository.
type memCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]domain.Campaign
}

func newMemCampaignRepo(cs ...domain.Campaign) *memCampaignRepo {
	r := &memCampaignRepo{campaigns: make(map[string]domain.Campaign)}
	for _, c := range cs {
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *memCampaignRepo) ListCampaigns(_ context.Context, orgID string) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.OrgID == orgID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCampaignRepo) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &c, nil
}

func (r *memCampaignRepo) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = *c
	return nil
}

func (r *memCampaignRepo) UpdateCampaign(_ context.Context, c *domain.Campaign) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.campaigns[c.ID]
	if !ok {
		return nil, port.ErrNotFound
	}
	r.campaigns[c.ID] = *c
	return prev.AssignedKiosks, nil
}

func (r *memCampaignRepo) DeleteCampaign(_ context.Context, id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.campaigns[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	delete(r.campaigns, id)
	return prev.AssignedKiosks, nil
}

// memKioskRepo is an in-memory port.KioskRepository whose edge lives in
// the embedded edge store.
type memKioskRepo struct {
	*memEdgeStore
	kiosks map[string]domain.Kiosk
}

func newMemKioskRepo(ks ...domain.Kiosk) *memKioskRepo {
	r := &memKioskRepo{memEdgeStore: newMemEdgeStore(), kiosks: make(map[string]domain.Kiosk)}
	for _, k := range ks {
		r.kiosks[k.ID] = k
		r.edges[k.ID] = domain.KioskEdge{KioskID: k.ID, AssignedCampaigns: k.AssignedCampaigns, DefaultCampaign: k.DefaultCampaign}
	}
	return r
}

func (r *memKioskRepo) ListKiosks(_ context.Context, orgID string) ([]domain.Kiosk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Kiosk
	for _, k := range r.kiosks {
		if k.OrgID == orgID {
			out = append(out, r.withEdge(k))
		}
	}
	return out, nil
}

func (r *memKioskRepo) GetKiosk(_ context.Context, id string) (*domain.Kiosk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.kiosks[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	k = r.withEdge(k)
	return &k, nil
}

func (r *memKioskRepo) CreateKiosk(_ context.Context, k *domain.Kiosk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kiosks[k.ID] = *k
	r.edges[k.ID] = domain.KioskEdge{KioskID: k.ID, AssignedCampaigns: k.AssignedCampaigns, DefaultCampaign: k.DefaultCampaign}
	return nil
}

func (r *memKioskRepo) UpdateKiosk(_ context.Context, k *domain.Kiosk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kiosks[k.ID]; !ok {
		return port.ErrNotFound
	}
	r.kiosks[k.ID] = *k
	return nil
}

func (r *memKioskRepo) withEdge(k domain.Kiosk) domain.Kiosk {
	e := r.edges[k.ID]
	k.AssignedCampaigns = slices.Clone(e.AssignedCampaigns)
	k.DefaultCampaign = e.DefaultCampaign
	k.Version = e.Version
	return k
}

// recordingQueue captures enqueued sync jobs.
type recordingQueue struct {
	mu   sync.Mutex
	jobs []port.SyncJob
}

func (q *recordingQueue) Enqueue(job port.SyncJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return true
}
