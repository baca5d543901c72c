package port

import "context"

// KioskSyncer maintains the kiosk side of campaign assignments.
type KioskSyncer interface {
	// Sync applies desired-previous as additions and previous-desired as
	// removals and returns the number of kiosks written.
	Sync(ctx context.Context, campaignID string, desired, previous []string) (int, error)
	// Converge ensures every kiosk in desired lists the campaign and every
	// kiosk in touched but not in desired does not. Unchanged kiosks are not
	// written.
	Converge(ctx context.Context, campaignID string, desired, touched []string) (int, error)
}

// AssignmentSyncer runs kiosk syncs for campaign writes. Runs for one
// campaign never overlap, and each run takes the desired kiosks from the
// campaign as stored when the run starts, never from the caller. A deleted
// campaign has no desired kiosks.
type AssignmentSyncer interface {
	// Apply syncs the delta between the stored assignment and previous, the
	// assignment the write replaced.
	Apply(ctx context.Context, campaignID string, previous []string) (SyncOutcome, error)
	// Resync re-checks every kiosk of the stored assignment plus touched,
	// without trusting any earlier run.
	Resync(ctx context.Context, campaignID string, touched []string) (SyncOutcome, error)
}

// SyncOutcome describes one AssignmentSyncer run.
type SyncOutcome struct {
	// Desired is the stored assignment the run synced to.
	Desired []string
	// Added and Removed are the kiosks checked for linking and unlinking.
	Added   []string
	Removed []string
	// Affected counts the kiosks actually written.
	Affected int
}

// SyncJob is a pending resync of one campaign. It carries only the kiosks
// to re-check; the desired set is read from the campaign when it runs.
type SyncJob struct {
	CampaignID string
	OrgID      string
	Touched    []string
	Attempt    int
}

// SyncEnqueuer accepts sync jobs for background retry. Enqueue reports
// whether the job was accepted.
type SyncEnqueuer interface {
	Enqueue(job SyncJob) bool
}
