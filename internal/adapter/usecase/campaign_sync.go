package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"donation-kiosk/internal/core/assignment"
	"donation-kiosk/internal/core/port"
)

// CampaignSync implements port.AssignmentSyncer on top of the kiosk sync.
// It holds a per-campaign lock for the whole run and reads the campaign's
// assignment after taking it, so a run started for an older write can never
// link kiosks the campaign has since dropped.
type CampaignSync struct {
	campaigns port.CampaignGetter
	kiosks    port.KioskSyncer
	locks     *keyedLock
}

// NewCampaignSync creates the campaign-level sync.
func NewCampaignSync(campaigns port.CampaignGetter, kiosks port.KioskSyncer) *CampaignSync {
	return &CampaignSync{
		campaigns: campaigns,
		kiosks:    kiosks,
		locks:     newKeyedLock(),
	}
}

// Apply syncs the delta between the stored assignment and previous.
func (s *CampaignSync) Apply(ctx context.Context, campaignID string, previous []string) (port.SyncOutcome, error) {
	unlock, err := s.locks.lock(ctx, campaignID)
	if err != nil {
		return port.SyncOutcome{}, err
	}
	defer unlock()

	desired, err := s.storedAssignment(ctx, campaignID)
	if err != nil {
		return port.SyncOutcome{}, err
	}
	out := port.SyncOutcome{Desired: desired}
	out.Added, out.Removed = assignment.Diff(desired, previous)
	out.Affected, err = s.kiosks.Sync(ctx, campaignID, desired, previous)
	return out, err
}

// Resync converges the stored assignment and every touched kiosk.
func (s *CampaignSync) Resync(ctx context.Context, campaignID string, touched []string) (port.SyncOutcome, error) {
	unlock, err := s.locks.lock(ctx, campaignID)
	if err != nil {
		return port.SyncOutcome{}, err
	}
	defer unlock()

	desired, err := s.storedAssignment(ctx, campaignID)
	if err != nil {
		return port.SyncOutcome{}, err
	}
	_, removed := assignment.Diff(desired, touched)
	out := port.SyncOutcome{Desired: desired, Added: desired, Removed: removed}
	out.Affected, err = s.kiosks.Converge(ctx, campaignID, desired, touched)
	return out, err
}

// storedAssignment returns the campaign's kiosks; a deleted campaign has
// none.
func (s *CampaignSync) storedAssignment(ctx context.Context, campaignID string) ([]string, error) {
	c, err := s.campaigns.GetCampaign(ctx, campaignID)
	if errors.Is(err, port.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read campaign %s: %w", campaignID, err)
	}
	return assignment.Normalize(c.AssignedKiosks), nil
}

// keyedLock is a set of mutexes keyed by id whose Lock honours the context.
// Entries are dropped once nobody holds or waits for them.
type keyedLock struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{slots: make(map[string]*lockSlot)}
}

func (l *keyedLock) lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		return func() {
			<-slot.ch
			l.release(key, slot)
		}, nil
	case <-ctx.Done():
		l.release(key, slot)
		return nil, ctx.Err()
	}
}

func (l *keyedLock) release(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
