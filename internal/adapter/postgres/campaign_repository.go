package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"donation-kiosk/internal/core/domain"
	"donation-kiosk/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, org_id, title, status, goal, raised, donation_count,
    start_date, end_date, assigned_kiosks, is_global, created_at, updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c          domain.Campaign
		start, end *time.Time
		kiosks     []string
	)
	err := row.Scan(
		&c.ID,
		&c.OrgID,
		&c.Title,
		&c.Status,
		&c.Goal,
		&c.Raised,
		&c.DonationCount,
		&start,
		&end,
		&kiosks,
		&c.IsGlobal,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.StartDate = domain.NativePtr(start)
	c.EndDate = domain.NativePtr(end)
	c.AssignedKiosks = domain.AssignmentList(kiosks)
	return c, nil
}

// ListCampaigns returns an organization's campaigns, newest first.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, orgID string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+`
        FROM campaigns WHERE org_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// GetCampaign returns a campaign by id or port.ErrNotFound.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+`
        FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCampaign inserts c.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
    (id, org_id, title, status, goal, raised, donation_count, start_date, end_date,
     assigned_kiosks, is_global, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.ID, c.OrgID, c.Title, c.Status, c.Goal, c.Raised, c.DonationCount,
		c.StartDate.Ptr(), c.EndDate.Ptr(), nonNil(c.AssignedKiosks), c.IsGlobal,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// UpdateCampaign locks the row, remembers the stored kiosk assignment and
// overwrites the editable fields. Totals are owned by RecordDonation and are
// not written here.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c *domain.Campaign) (previous []string, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `SELECT assigned_kiosks FROM campaigns WHERE id = $1 FOR UPDATE`, c.ID).Scan(&previous)
	if errors.Is(err, pgx.ErrNoRows) {
		err = port.ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE campaigns
SET title = $2, status = $3, goal = $4, start_date = $5, end_date = $6,
    assigned_kiosks = $7, is_global = $8, updated_at = $9
WHERE id = $1`,
		c.ID, c.Title, c.Status, c.Goal, c.StartDate.Ptr(), c.EndDate.Ptr(),
		nonNil(c.AssignedKiosks), c.IsGlobal, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return previous, nil
}

// DeleteCampaign removes the campaign and returns its last kiosk assignment.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id string) ([]string, error) {
	var previous []string
	err := r.pool.QueryRow(ctx, `DELETE FROM campaigns WHERE id = $1 RETURNING assigned_kiosks`, id).Scan(&previous)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return previous, nil
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
