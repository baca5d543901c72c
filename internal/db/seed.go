package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedOrgID is the organization created by Seed.
const SeedOrgID = "demo-org"

// Seed inserts a demo organization with campaigns, kiosks and donations.
// Kiosk and campaign assignments are written consistently on both sides.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	_, err := db.Exec(ctx, `INSERT INTO organizations (id, name, payment_account_id)
VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, SeedOrgID, "Demo Charity", "acct_demo")
	if err != nil {
		return err
	}

	kioskIDs := []string{"kiosk-1", "kiosk-2", "kiosk-3"}
	campaignIDs := []string{"campaign-1", "campaign-2", "campaign-3"}
	locations := []string{"Main Lobby", "Cafe", ""}
	systems := []string{"iPadOS 17.2", "Android 14", "Windows 11"}

	// campaign-1 runs on every kiosk, campaign-2 on the first two.
	assigned := map[string][]string{
		"campaign-1": kioskIDs,
		"campaign-2": kioskIDs[:2],
		"campaign-3": {},
	}
	for i, id := range campaignIDs {
		status := "active"
		if i == 2 {
			status = "draft"
		}
		_, err = db.Exec(ctx, `INSERT INTO campaigns
    (id, org_id, title, status, goal, start_date, end_date, assigned_kiosks, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now()) ON CONFLICT DO NOTHING`,
			id, SeedOrgID, fmt.Sprintf("Campaign %d", i+1), status, int64(1000*(i+1)),
			now.AddDate(0, 0, -7), now.AddDate(0, 0, 2+14*i), assigned[id])
		if err != nil {
			return err
		}
	}

	for i, id := range kioskIDs {
		var campaigns []string
		for _, cid := range campaignIDs {
			for _, kid := range assigned[cid] {
				if kid == id {
					campaigns = append(campaigns, cid)
				}
			}
		}
		_, err = db.Exec(ctx, `INSERT INTO kiosks
    (id, org_id, name, location, status, last_active, assigned_campaigns, default_campaign,
     device_os, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now()) ON CONFLICT DO NOTHING`,
			id, SeedOrgID, fmt.Sprintf("Kiosk %d", i+1), locations[i], "online",
			now.Add(-time.Duration(i)*time.Hour), campaigns, campaigns[0], systems[i])
		if err != nil {
			return err
		}
	}

	// generate donations and keep the totals in step
	for i := 0; i < 50; i++ {
		kioskID := kioskIDs[r.Intn(len(kioskIDs))]
		campaignID := campaignIDs[r.Intn(2)]
		amount := int64(5 * (1 + r.Intn(140)))
		created := now.Add(-time.Duration(r.Intn(30*24)) * time.Hour)
		_, err = db.Exec(ctx, `INSERT INTO donations
    (id, org_id, campaign_id, kiosk_id, platform, amount, created_at)
VALUES ($1,$2,$3,$4,'kiosk',$5,$6)`, uuid.NewString(), SeedOrgID, campaignID, kioskID, amount, created)
		if err != nil {
			return err
		}
		_, err = db.Exec(ctx, `UPDATE campaigns SET raised = raised + $2, donation_count = donation_count + 1 WHERE id = $1`,
			campaignID, amount)
		if err != nil {
			return err
		}
		_, err = db.Exec(ctx, `UPDATE kiosks SET total_raised = total_raised + $2 WHERE id = $1`, kioskID, amount)
		if err != nil {
			return err
		}
	}
	return nil
}
