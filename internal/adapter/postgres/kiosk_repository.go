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

// KioskRepository implements port.KioskRepository using pgxpool. The
// assignment edge is written only by PatchKioskEdge, guarded by the row
// version.
type KioskRepository struct {
	pool *pgxpool.Pool
}

// NewKioskRepository returns a new repository instance.
func NewKioskRepository(pool *pgxpool.Pool) *KioskRepository {
	return &KioskRepository{pool: pool}
}

const kioskColumns = `id, org_id, name, location, status, last_active, assigned_campaigns,
    COALESCE(default_campaign, ''), total_raised, device_os, version, created_at, updated_at`

func scanKiosk(row pgx.Row) (domain.Kiosk, error) {
	var (
		k          domain.Kiosk
		lastActive *time.Time
		campaigns  []string
	)
	err := row.Scan(
		&k.ID,
		&k.OrgID,
		&k.Name,
		&k.Location,
		&k.Status,
		&lastActive,
		&campaigns,
		&k.DefaultCampaign,
		&k.TotalRaised,
		&k.DeviceInfo.OS,
		&k.Version,
		&k.CreatedAt,
		&k.UpdatedAt,
	)
	if err != nil {
		return k, err
	}
	k.LastActive = domain.NativePtr(lastActive)
	k.AssignedCampaigns = domain.AssignmentList(campaigns)
	return k, nil
}

// ListKiosks returns an organization's kiosks ordered by name.
func (r *KioskRepository) ListKiosks(ctx context.Context, orgID string) ([]domain.Kiosk, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+kioskColumns+`
        FROM kiosks WHERE org_id = $1 ORDER BY name`, orgID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Kiosk, error) {
		return scanKiosk(row)
	})
}

// GetKiosk returns a kiosk by id or port.ErrNotFound.
func (r *KioskRepository) GetKiosk(ctx context.Context, id string) (*domain.Kiosk, error) {
	k, err := scanKiosk(r.pool.QueryRow(ctx, `SELECT `+kioskColumns+`
        FROM kiosks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// CreateKiosk inserts k with whatever edge it carries.
func (r *KioskRepository) CreateKiosk(ctx context.Context, k *domain.Kiosk) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO kiosks
    (id, org_id, name, location, status, last_active, assigned_campaigns, default_campaign,
     total_raised, device_os, version, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8, ''),$9,$10,$11,$12,$13)`,
		k.ID, k.OrgID, k.Name, k.Location, k.Status, k.LastActive.Ptr(),
		nonNil(k.AssignedCampaigns), k.DefaultCampaign, k.TotalRaised,
		k.DeviceInfo.OS, k.Version, k.CreatedAt, k.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert kiosk: %w", err)
	}
	return nil
}

// UpdateKiosk writes the non-edge fields of k.
func (r *KioskRepository) UpdateKiosk(ctx context.Context, k *domain.Kiosk) error {
	tag, err := r.pool.Exec(ctx, `UPDATE kiosks
SET name = $2, location = $3, status = $4, last_active = $5, device_os = $6, updated_at = $7
WHERE id = $1`,
		k.ID, k.Name, k.Location, k.Status, k.LastActive.Ptr(), k.DeviceInfo.OS, k.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update kiosk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// ReadKioskEdge returns the kiosk's assignment edge and its version.
func (r *KioskRepository) ReadKioskEdge(ctx context.Context, kioskID string) (domain.KioskEdge, error) {
	edge := domain.KioskEdge{KioskID: kioskID}
	err := r.pool.QueryRow(ctx, `SELECT assigned_campaigns, COALESCE(default_campaign, ''), version
        FROM kiosks WHERE id = $1`, kioskID).Scan(&edge.AssignedCampaigns, &edge.DefaultCampaign, &edge.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return edge, port.ErrNotFound
	}
	return edge, err
}

// PatchKioskEdge writes the edge when the stored version still matches.
func (r *KioskRepository) PatchKioskEdge(ctx context.Context, edge domain.KioskEdge) error {
	tag, err := r.pool.Exec(ctx, `UPDATE kiosks
SET assigned_campaigns = $2, default_campaign = NULLIF($3, ''), version = version + 1, updated_at = now()
WHERE id = $1 AND version = $4`,
		edge.KioskID, nonNil(edge.AssignedCampaigns), edge.DefaultCampaign, edge.Version)
	if err != nil {
		return fmt.Errorf("patch kiosk %s: %w", edge.KioskID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM kiosks WHERE id = $1)`, edge.KioskID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return port.ErrNotFound
	}
	return port.ErrVersionConflict
}
