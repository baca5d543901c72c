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

// DonationRepository implements port.DonationRepository using pgxpool.
type DonationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository returns a new repository instance.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

// RecentDonations returns at most limit donations, newest first.
func (r *DonationRepository) RecentDonations(ctx context.Context, orgID string, limit int) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, org_id, campaign_id, COALESCE(kiosk_id, ''), COALESCE(platform, ''), amount,
               COALESCE(donor_name, ''), COALESCE(donor_email, ''), COALESCE(donor_phone, ''), created_at
        FROM donations
        WHERE org_id = $1
        ORDER BY created_at DESC
        LIMIT $2`, orgID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Donation, error) {
		var (
			d  domain.Donation
			ts time.Time
		)
		err := row.Scan(
			&d.ID,
			&d.OrgID,
			&d.CampaignID,
			&d.KioskID,
			&d.Platform,
			&d.Amount,
			&d.DonorName,
			&d.DonorEmail,
			&d.DonorPhone,
			&ts,
		)
		d.Timestamp = domain.Native(ts)
		return d, err
	})
}

// CountDonations counts donations with min <= amount < max; a nil max drops
// the upper bound.
func (r *DonationRepository) CountDonations(ctx context.Context, orgID string, min int64, max *int64) (int64, error) {
	var (
		n   int64
		err error
	)
	if max == nil {
		err = r.pool.QueryRow(ctx, `SELECT count(*) FROM donations
        WHERE org_id = $1 AND amount >= $2`, orgID, min).Scan(&n)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT count(*) FROM donations
        WHERE org_id = $1 AND amount >= $2 AND amount < $3`, orgID, min, *max).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count donations [%d, %v): %w", min, max, err)
	}
	return n, nil
}

// RecordDonation inserts d and adds its amount to the campaign and kiosk
// totals in one transaction.
func (r *DonationRepository) RecordDonation(ctx context.Context, d *domain.Donation) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `UPDATE campaigns
SET raised = raised + $3, donation_count = donation_count + 1, updated_at = now()
WHERE id = $1 AND org_id = $2`, d.CampaignID, d.OrgID, d.Amount)
	if err != nil {
		return fmt.Errorf("update campaign totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("campaign %s: %w", d.CampaignID, port.ErrNotFound)
		return err
	}

	if d.KioskID != "" {
		tag, err = tx.Exec(ctx, `UPDATE kiosks SET total_raised = total_raised + $3, updated_at = now()
WHERE id = $1 AND org_id = $2`, d.KioskID, d.OrgID, d.Amount)
		if err != nil {
			return fmt.Errorf("update kiosk totals: %w", err)
		}
		if tag.RowsAffected() == 0 {
			err = fmt.Errorf("kiosk %s: %w", d.KioskID, port.ErrNotFound)
			return err
		}
	}

	_, err = tx.Exec(ctx, `INSERT INTO donations
    (id, org_id, campaign_id, kiosk_id, platform, amount, donor_name, donor_email, donor_phone, created_at)
VALUES ($1,$2,$3,NULLIF($4, ''),NULLIF($5, ''),$6,NULLIF($7, ''),NULLIF($8, ''),NULLIF($9, ''),$10)`,
		d.ID, d.OrgID, d.CampaignID, d.KioskID, d.Platform, d.Amount,
		d.DonorName, d.DonorEmail, d.DonorPhone, d.Timestamp.Ptr())
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// OrganizationRepository implements port.PaymentAccountProvider.
type OrganizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository returns a new repository instance.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

// PaymentAccountLinked reports whether the organization has a payment
// provider account id. An unknown organization is not linked.
func (r *OrganizationRepository) PaymentAccountLinked(ctx context.Context, orgID string) (bool, error) {
	var linked bool
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(payment_account_id, '') <> ''
        FROM organizations WHERE id = $1`, orgID).Scan(&linked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return linked, nil
}
