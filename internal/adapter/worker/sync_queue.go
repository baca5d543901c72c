package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"donation-kiosk/internal/core/assignment"
	"donation-kiosk/internal/core/port"
	"donation-kiosk/internal/metrics"
)

// Invalidator drops derived views of an organization after a sync.
type Invalidator interface {
	Invalidate(orgID string)
}

// Resyncer converges a campaign's kiosks with its stored assignment.
type Resyncer interface {
	Resync(ctx context.Context, campaignID string, touched []string) (port.SyncOutcome, error)
}

// QueueOptions configures the sync queue.
type QueueOptions struct {
	Workers     int
	Size        int
	MaxAttempts int
	RetryDelay  time.Duration
}

// SyncQueue retries incomplete kiosk syncs in the background. There is at
// most one pending job per campaign; enqueuing a job for a campaign that
// already has one merges them. A campaign's jobs never run concurrently.
// Jobs do not carry a desired set: each run resyncs to the campaign as
// stored at that moment, so a late retry cannot undo a newer edit.
type SyncQueue struct {
	opts        QueueOptions
	ids         chan string
	resyncer    Resyncer
	invalidator Invalidator
	logger      *slog.Logger
	metrics     *metrics.Metrics

	mu      sync.Mutex
	pending map[string]port.SyncJob
	running map[string]bool
	wg      sync.WaitGroup
}

// NewSyncQueue creates a queue. Call Start to launch the workers.
func NewSyncQueue(resyncer Resyncer, invalidator Invalidator, opts QueueOptions, logger *slog.Logger, m *metrics.Metrics) *SyncQueue {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Size <= 0 {
		opts.Size = 64
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SyncQueue{
		opts:        opts,
		ids:         make(chan string, opts.Size),
		resyncer:    resyncer,
		invalidator: invalidator,
		logger:      logger,
		metrics:     m,
		pending:     make(map[string]port.SyncJob),
		running:     make(map[string]bool),
	}
}

// Start launches the worker goroutines. They stop when ctx is cancelled.
func (q *SyncQueue) Start(ctx context.Context) {
	for i := 0; i < q.opts.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
}

// Wait blocks until every worker has returned.
func (q *SyncQueue) Wait() {
	q.wg.Wait()
}

// Enqueue schedules a job. It returns false when the queue is full.
func (q *SyncQueue) Enqueue(job port.SyncJob) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.pending[job.CampaignID]; ok {
		q.pending[job.CampaignID] = merge(existing, job)
		return true
	}
	q.pending[job.CampaignID] = job
	q.metrics.SetQueueDepth(len(q.pending))
	if q.running[job.CampaignID] {
		// Re-dispatched by the worker when the running job finishes.
		return true
	}
	select {
	case q.ids <- job.CampaignID:
		return true
	default:
		delete(q.pending, job.CampaignID)
		q.metrics.SetQueueDepth(len(q.pending))
		q.logger.Warn("sync queue full, dropping job", slog.String("campaign_id", job.CampaignID))
		return false
	}
}

// Pending returns the number of queued jobs.
func (q *SyncQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// merge keeps every kiosk either job touched.
func merge(older, newer port.SyncJob) port.SyncJob {
	out := newer
	out.Touched = assignment.Normalize([]any{older.Touched, newer.Touched})
	if older.Attempt > out.Attempt {
		out.Attempt = older.Attempt
	}
	if out.OrgID == "" {
		out.OrgID = older.OrgID
	}
	return out
}

func (q *SyncQueue) worker(ctx context.Context, id int) {
	defer q.wg.Done()
	q.logger.Debug("sync worker started", slog.Int("worker", id))
	for {
		select {
		case campaignID := <-q.ids:
			q.process(ctx, campaignID)
		case <-ctx.Done():
			q.logger.Debug("sync worker shutting down", slog.Int("worker", id))
			return
		}
	}
}

func (q *SyncQueue) process(ctx context.Context, campaignID string) {
	q.mu.Lock()
	job, ok := q.pending[campaignID]
	if !ok || q.running[campaignID] {
		q.mu.Unlock()
		return
	}
	delete(q.pending, campaignID)
	q.running[campaignID] = true
	q.metrics.SetQueueDepth(len(q.pending))
	q.mu.Unlock()

	out, err := q.resyncer.Resync(ctx, job.CampaignID, job.Touched)

	q.mu.Lock()
	delete(q.running, campaignID)
	q.mu.Unlock()
	q.redispatch(ctx, campaignID)

	if q.invalidator != nil && job.OrgID != "" {
		q.invalidator.Invalidate(job.OrgID)
	}

	if err == nil {
		q.logger.Info("queued sync converged",
			slog.String("campaign_id", campaignID),
			slog.Int("kiosks", out.Affected),
			slog.Int("attempt", job.Attempt+1))
		return
	}

	job.Attempt++
	if job.Attempt >= q.opts.MaxAttempts || ctx.Err() != nil {
		q.logger.Error("queued sync abandoned",
			slog.String("campaign_id", campaignID),
			slog.Int("attempts", job.Attempt),
			slog.Any("error", err))
		return
	}
	q.logger.Warn("queued sync failed, retrying",
		slog.String("campaign_id", campaignID),
		slog.Int("attempt", job.Attempt),
		slog.Duration("delay", q.opts.RetryDelay),
		slog.Any("error", err))
	time.AfterFunc(q.opts.RetryDelay, func() {
		if ctx.Err() == nil {
			q.Enqueue(job)
		}
	})
}

// redispatch pushes a campaign that gained a pending job while it was
// running. A full channel defers the push instead of dropping the job.
func (q *SyncQueue) redispatch(ctx context.Context, campaignID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[campaignID]; !ok || q.running[campaignID] {
		return
	}
	select {
	case q.ids <- campaignID:
	default:
		q.logger.Warn("sync queue full, re-dispatch deferred", slog.String("campaign_id", campaignID))
		time.AfterFunc(q.opts.RetryDelay, func() {
			if ctx.Err() == nil {
				q.redispatch(ctx, campaignID)
			}
		})
	}
}
