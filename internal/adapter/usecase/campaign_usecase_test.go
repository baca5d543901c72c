package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
)

type campaignFixture struct {
	campaigns *memCampaignRepo
	kiosks    *memKioskRepo
	queue     *recordingQueue
	inv       *countingInvalidator
	sync      *CampaignSync
	uc        *CampaignUseCase
}

func newCampaignFixture(cs []domain.Campaign, ks ...domain.Kiosk) *campaignFixture {
	f := &campaignFixture{
		campaigns: newMemCampaignRepo(cs...),
		kiosks:    newMemKioskRepo(ks...),
		queue:     &recordingQueue{},
		inv:       &countingInvalidator{},
	}
	f.build(f.kiosks)
	return f
}

// build wires the use case on top of edges, which defaults to the kiosk repo.
func (f *campaignFixture) build(edges port.KioskEdgeStore) {
	kiosks := NewKioskSync(edges, nil, nil, SyncOptions{MaxRetries: 3, Concurrency: 4})
	f.sync = NewCampaignSync(f.campaigns, kiosks)
	f.uc = NewCampaignUseCase(f.campaigns, f.sync, f.queue, f.inv, nil)
	f.uc.now = func() time.Time { return alertNow }
}

func (f *campaignFixture) violations(t *testing.T, orgID string) []port.AssignmentViolation {
	t.Helper()
	cs, err := f.campaigns.ListCampaigns(context.Background(), orgID)
	require.NoError(t, err)
	ks, err := f.kiosks.ListKiosks(context.Background(), orgID)
	require.NoError(t, err)
	return FindViolations(cs, ks)
}

// gatedEdgeStore holds the first patch of one kiosk until release is closed.
type gatedEdgeStore struct {
	port.KioskEdgeStore
	kioskID string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedEdgeStore(store port.KioskEdgeStore, kioskID string) *gatedEdgeStore {
	return &gatedEdgeStore{
		KioskEdgeStore: store,
		kioskID:        kioskID,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (g *gatedEdgeStore) PatchKioskEdge(ctx context.Context, edge domain.KioskEdge) error {
	if edge.KioskID == g.kioskID {
		first := false
		g.once.Do(func() { first = true })
		if first {
			close(g.entered)
			<-g.release
		}
	}
	return g.KioskEdgeStore.PatchKioskEdge(ctx, edge)
}

func TestCreateCampaignLinksKiosks(t *testing.T) {
	f := newCampaignFixture(nil,
		domain.Kiosk{ID: "K1", OrgID: "org-1"},
		domain.Kiosk{ID: "K2", OrgID: "org-1"})

	c := &domain.Campaign{OrgID: "org-1", Title: "Spring", AssignedKiosks: domain.AssignmentList{"K1", "K1", " K2"}}
	report, err := f.uc.CreateCampaign(context.Background(), c)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, domain.CampaignDraft, c.Status)
	assert.Equal(t, domain.AssignmentList{"K1", "K2"}, c.AssignedKiosks)
	assert.Equal(t, alertNow, c.CreatedAt)

	assert.Equal(t, []string{"K1", "K2"}, report.Added)
	assert.Empty(t, report.Removed)
	assert.Equal(t, 2, report.Affected)

	assert.Equal(t, []string{c.ID}, f.kiosks.get("K1").AssignedCampaigns)
	assert.Equal(t, c.ID, f.kiosks.get("K2").DefaultCampaign)
	assert.Equal(t, []string{"org-1"}, f.inv.calls())
}

func TestCreateCampaignValidates(t *testing.T) {
	f := newCampaignFixture(nil)
	tests := []domain.Campaign{
		{OrgID: "org-1"},
		{Title: "No org"},
		{OrgID: "org-1", Title: "Bad status", Status: "archived"},
		{OrgID: "org-1", Title: "Bad goal", Goal: -1},
		{OrgID: "org-1", Title: "Bad date", EndDate: domain.ISO("next friday")},
		{OrgID: "org-1", Title: "Backwards", StartDate: domain.ISO("2024-05-10"), EndDate: domain.ISO("2024-05-01")},
	}
	for _, c := range tests {
		t.Run(c.Title, func(t *testing.T) {
			_, err := f.uc.CreateCampaign(context.Background(), &c)
			assert.ErrorIs(t, err, port.ErrInvalidInput)
		})
	}
}

func TestUpdateCampaignSyncsAgainstStoredAssignment(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", Status: domain.CampaignActive,
			AssignedKiosks: domain.AssignmentList{"K1", "K2"}, CreatedAt: alertNow.Add(-time.Hour)}},
		domain.Kiosk{ID: "K1", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"},
		domain.Kiosk{ID: "K2", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"},
		domain.Kiosk{ID: "K3", OrgID: "org-1"})

	update := &domain.Campaign{ID: "C1", Title: "Spring", Status: domain.CampaignActive,
		AssignedKiosks: domain.AssignmentList{"K2", "K3"}}
	report, err := f.uc.UpdateCampaign(context.Background(), update)
	require.NoError(t, err)

	assert.Equal(t, "org-1", update.OrgID)
	assert.Equal(t, alertNow.Add(-time.Hour), update.CreatedAt)
	assert.Equal(t, []string{"K3"}, report.Added)
	assert.Equal(t, []string{"K1"}, report.Removed)

	assert.Empty(t, f.kiosks.get("K1").AssignedCampaigns)
	assert.Equal(t, 0, f.kiosks.patchCount("K2"))
	assert.Equal(t, []string{"C1"}, f.kiosks.get("K3").AssignedCampaigns)
}

func TestUpdateMissingCampaign(t *testing.T) {
	f := newCampaignFixture(nil)
	_, err := f.uc.UpdateCampaign(context.Background(), &domain.Campaign{ID: "nope", Title: "x"})
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestDeleteCampaignUnlinksEveryKiosk(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", AssignedKiosks: domain.AssignmentList{"K1"}}},
		domain.Kiosk{ID: "K1", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1", "C2"}, DefaultCampaign: "C1"})

	report, err := f.uc.DeleteCampaign(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, []string{"K1"}, report.Removed)

	k1 := f.kiosks.get("K1")
	assert.Equal(t, []string{"C2"}, k1.AssignedCampaigns)
	assert.Equal(t, "C2", k1.DefaultCampaign)

	_, err = f.uc.GetCampaign(context.Background(), "C1")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestPartialSyncIsQueued(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", Status: domain.CampaignActive,
			AssignedKiosks: domain.AssignmentList{"K1"}}},
		domain.Kiosk{ID: "K1", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"},
		domain.Kiosk{ID: "K2", OrgID: "org-1"},
		domain.Kiosk{ID: "K3", OrgID: "org-1"})
	f.kiosks.fail["K3"] = errors.New("write timeout")

	update := &domain.Campaign{ID: "C1", Title: "Spring", Status: domain.CampaignActive,
		AssignedKiosks: domain.AssignmentList{"K2", "K3"}}
	report, err := f.uc.UpdateCampaign(context.Background(), update)

	var partial *PartialSyncError
	require.ErrorAs(t, err, &partial)
	require.NotNil(t, report)
	assert.Contains(t, report.Failed, "K3")
	assert.True(t, report.Queued)
	assert.Equal(t, 2, report.Affected)

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, "C1", job.CampaignID)
	assert.Equal(t, "org-1", job.OrgID)
	assert.Equal(t, []string{"K2", "K3", "K1"}, job.Touched)

	// the campaign write itself is kept
	stored, err := f.uc.GetCampaign(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentList{"K2", "K3"}, stored.AssignedKiosks)
}

func TestSyncAssignmentsUsesCampaignOrg(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-7", Title: "Spring", AssignedKiosks: domain.AssignmentList{"K1"}}},
		domain.Kiosk{ID: "K1", OrgID: "org-7"})

	// K1 was missed by an earlier sync
	report, err := f.uc.SyncAssignments(context.Background(), "C1", []string{"K1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Affected)
	assert.Equal(t, []string{"C1"}, f.kiosks.get("K1").AssignedCampaigns)
	assert.Equal(t, []string{"org-7"}, f.inv.calls())

	_, err = f.uc.SyncAssignments(context.Background(), "missing", []string{"K1"}, nil)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestSyncAssignmentsRejectsForeignDesired(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", AssignedKiosks: domain.AssignmentList{"K1"}}},
		domain.Kiosk{ID: "K1", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"},
		domain.Kiosk{ID: "K2", OrgID: "org-1"})

	_, err := f.uc.SyncAssignments(context.Background(), "C1", []string{"K1", "K2"}, nil)
	assert.ErrorIs(t, err, port.ErrInvalidInput)
	assert.Empty(t, f.kiosks.get("K2").AssignedCampaigns)

	// an empty desired list on an assigned campaign would unlink K1
	_, err = f.uc.SyncAssignments(context.Background(), "C1", nil, []string{"K1"})
	assert.ErrorIs(t, err, port.ErrInvalidInput)
	assert.Equal(t, []string{"C1"}, f.kiosks.get("K1").AssignedCampaigns)
	assert.Empty(t, f.violations(t, "org-1"))
}

func TestSyncAssignmentsUnlinksStaleKiosks(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", AssignedKiosks: domain.AssignmentList{"K1"}}},
		domain.Kiosk{ID: "K1", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"},
		domain.Kiosk{ID: "K9", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"})
	require.NotEmpty(t, f.violations(t, "org-1"))

	report, err := f.uc.SyncAssignments(context.Background(), "C1", []string{"K1"}, []string{"K9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"K9"}, report.Removed)
	assert.Equal(t, 1, report.Affected)

	assert.Empty(t, f.kiosks.get("K9").AssignedCampaigns)
	assert.Empty(t, f.kiosks.get("K9").DefaultCampaign)
	assert.Equal(t, 0, f.kiosks.patchCount("K1"))
	assert.Empty(t, f.violations(t, "org-1"))
}

// TestQueuedResyncAfterNewerEdit fails one kiosk of an edit, lets a newer
// edit empty the campaign, then runs the queued job.
func TestQueuedResyncAfterNewerEdit(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", Status: domain.CampaignActive}},
		domain.Kiosk{ID: "K1", OrgID: "org-1"},
		domain.Kiosk{ID: "K2", OrgID: "org-1"})
	ctx := context.Background()
	f.kiosks.fail["K2"] = errors.New("write timeout")

	_, err := f.uc.UpdateCampaign(ctx, &domain.Campaign{ID: "C1", Title: "Spring", Status: domain.CampaignActive,
		AssignedKiosks: domain.AssignmentList{"K1", "K2"}})
	require.Error(t, err)
	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]

	delete(f.kiosks.fail, "K2")
	_, err = f.uc.UpdateCampaign(ctx, &domain.Campaign{ID: "C1", Title: "Spring", Status: domain.CampaignActive})
	require.NoError(t, err)

	out, err := f.sync.Resync(ctx, job.CampaignID, job.Touched)
	require.NoError(t, err)
	assert.Empty(t, out.Desired)
	assert.Empty(t, out.Added)

	assert.Empty(t, f.kiosks.get("K1").AssignedCampaigns)
	assert.Empty(t, f.kiosks.get("K2").AssignedCampaigns)
	assert.Empty(t, f.violations(t, "org-1"))
}

// TestConcurrentUpdatesEndOnLatestAssignment holds the first update inside
// its kiosk write while a second update empties the campaign.
func TestConcurrentUpdatesEndOnLatestAssignment(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", Status: domain.CampaignActive}},
		domain.Kiosk{ID: "K1", OrgID: "org-1"})
	gate := newGatedEdgeStore(f.kiosks, "K1")
	f.build(gate)
	ctx := context.Background()

	errs := make(chan error, 2)
	go func() {
		_, err := f.uc.UpdateCampaign(ctx, &domain.Campaign{ID: "C1", Title: "Spring", Status: domain.CampaignActive,
			AssignedKiosks: domain.AssignmentList{"K1"}})
		errs <- err
	}()
	select {
	case <-gate.entered:
	case <-time.After(time.Second):
		t.Fatal("first update never reached the kiosk write")
	}

	go func() {
		_, err := f.uc.UpdateCampaign(ctx, &domain.Campaign{ID: "C1", Title: "Spring", Status: domain.CampaignActive})
		errs <- err
	}()
	require.Eventually(t, func() bool {
		c, err := f.campaigns.GetCampaign(ctx, "C1")
		return err == nil && len(c.AssignedKiosks) == 0
	}, time.Second, 5*time.Millisecond)

	close(gate.release)
	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("update did not finish")
		}
	}

	assert.Empty(t, f.kiosks.get("K1").AssignedCampaigns)
	assert.Empty(t, f.violations(t, "org-1"))
}

// TestLateApplyFollowsStoredAssignment runs a sync for an old edit after the
// campaign has moved on.
func TestLateApplyFollowsStoredAssignment(t *testing.T) {
	f := newCampaignFixture(
		[]domain.Campaign{{ID: "C1", OrgID: "org-1", Title: "Spring", AssignedKiosks: domain.AssignmentList{"K2"}}},
		domain.Kiosk{ID: "K1", OrgID: "org-1"},
		domain.Kiosk{ID: "K2", OrgID: "org-1", AssignedCampaigns: domain.AssignmentList{"C1"}, DefaultCampaign: "C1"})

	// the old edit set [K1] over an empty assignment
	out, err := f.sync.Apply(context.Background(), "C1", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"K2"}, out.Desired)
	assert.Zero(t, out.Affected)
	assert.Empty(t, f.kiosks.get("K1").AssignedCampaigns)
	assert.Empty(t, f.violations(t, "org-1"))
}

func TestKeyedLockHonoursContext(t *testing.T) {
	l := newKeyedLock()
	unlock, err := l.lock(context.Background(), "C1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.lock(ctx, "C1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := l.lock(context.Background(), "C2")
	require.NoError(t, err)
	other()

	unlock()
	again, err := l.lock(context.Background(), "C1")
	require.NoError(t, err)
	again()
	assert.Empty(t, l.slots)
}
