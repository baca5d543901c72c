package usecase

import (
	"fmt"
	"time"

	"donation-kiosk/internal/core/domain"
)

// Alert rule names. An alert id is the rule name followed by the entity id.
const (
	RulePaymentAccountMissing = "payment-account-missing"
	RuleKioskOffline          = "kiosk-offline"
	RuleKioskInactive         = "kiosk-inactive"
	RuleKioskEmpty            = "kiosk-empty"
	RuleKioskCampaignsExpired = "kiosk-campaigns-expired"
	RuleCampaignExpiringSoon  = "campaign-expiring-soon"
	RuleCampaignGoalReached   = "campaign-goal-reached"
)

// AlertPolicy holds the time windows used by the alert rules.
type AlertPolicy struct {
	// InactiveAfter is how long a kiosk may go without reporting before it
	// is flagged inactive.
	InactiveAfter time.Duration
	// ExpiringWithin is the look-ahead window for ending campaigns.
	ExpiringWithin time.Duration
}

// DefaultAlertPolicy flags kiosks silent for 24 hours and campaigns ending
// within 3 days.
var DefaultAlertPolicy = AlertPolicy{
	InactiveAfter:  24 * time.Hour,
	ExpiringWithin: 72 * time.Hour,
}

// EvaluateAlerts runs every rule over the snapshots with the default policy.
func EvaluateAlerts(kiosks []domain.Kiosk, campaigns []domain.Campaign, paymentAccountLinked bool, now time.Time) []domain.SystemAlert {
	return DefaultAlertPolicy.Evaluate(kiosks, campaigns, paymentAccountLinked, now)
}

// Evaluate runs the rules in display order: account, then per-kiosk rules,
// then per-campaign rules. It is pure; the same input gives the same ids.
func (p AlertPolicy) Evaluate(kiosks []domain.Kiosk, campaigns []domain.Campaign, paymentAccountLinked bool, now time.Time) []domain.SystemAlert {
	alerts := make([]domain.SystemAlert, 0)

	if !paymentAccountLinked {
		alerts = append(alerts, domain.SystemAlert{
			ID:       RulePaymentAccountMissing,
			Rule:     RulePaymentAccountMissing,
			Severity: domain.SeverityCritical,
			Title:    "Payment account not connected",
			Message:  "Connect a payment account to start accepting donations.",
			Action:   &domain.AlertAction{Label: "Connect account", Target: "/settings/payments"},
		})
	}

	byID := make(map[string]domain.Campaign, len(campaigns))
	for _, c := range campaigns {
		byID[c.ID] = c
	}

	for _, k := range kiosks {
		alerts = append(alerts, p.kioskAlerts(k, byID, now)...)
	}
	for _, c := range campaigns {
		alerts = append(alerts, p.campaignAlerts(c, now)...)
	}
	return alerts
}

func (p AlertPolicy) kioskAlerts(k domain.Kiosk, campaigns map[string]domain.Campaign, now time.Time) []domain.SystemAlert {
	var out []domain.SystemAlert
	name := kioskLabel(k)
	action := &domain.AlertAction{Label: "View kiosk", Target: "/kiosks/" + k.ID}

	switch k.Status {
	case domain.KioskOffline:
		out = append(out, domain.SystemAlert{
			ID:       RuleKioskOffline + "-" + k.ID,
			Rule:     RuleKioskOffline,
			Severity: domain.SeverityWarning,
			Title:    "Kiosk offline",
			Message:  fmt.Sprintf("%s is offline.", name),
			Action:   action,
			Metadata: map[string]any{"kioskId": k.ID, "location": k.Location},
		})
	case domain.KioskMaintenance:
	default:
		if last, ok := k.LastActive.Time(); ok && now.Sub(last) > p.InactiveAfter {
			out = append(out, domain.SystemAlert{
				ID:       RuleKioskInactive + "-" + k.ID,
				Rule:     RuleKioskInactive,
				Severity: domain.SeverityWarning,
				Title:    "Kiosk inactive",
				Message:  fmt.Sprintf("%s has not reported since %s.", name, last.UTC().Format(time.RFC3339)),
				Action:   action,
				Metadata: map[string]any{"kioskId": k.ID, "lastActive": last.UTC().Format(time.RFC3339)},
			})
		}
	}

	if k.Status != domain.KioskOnline && k.Status != domain.KioskMaintenance {
		return out
	}

	if len(k.AssignedCampaigns) == 0 {
		return append(out, domain.SystemAlert{
			ID:       RuleKioskEmpty + "-" + k.ID,
			Rule:     RuleKioskEmpty,
			Severity: domain.SeverityWarning,
			Title:    "No campaigns assigned",
			Message:  fmt.Sprintf("%s has no campaigns to display.", name),
			Action:   &domain.AlertAction{Label: "Assign campaign", Target: "/kiosks/" + k.ID},
			Metadata: map[string]any{"kioskId": k.ID},
		})
	}

	if allExpired(k.AssignedCampaigns, campaigns, now) {
		out = append(out, domain.SystemAlert{
			ID:       RuleKioskCampaignsExpired + "-" + k.ID,
			Rule:     RuleKioskCampaignsExpired,
			Severity: domain.SeverityWarning,
			Title:    "All campaigns ended",
			Message:  fmt.Sprintf("Every campaign on %s has ended.", name),
			Action:   &domain.AlertAction{Label: "Assign campaign", Target: "/kiosks/" + k.ID},
			Metadata: map[string]any{"kioskId": k.ID, "campaignIds": []string(k.AssignedCampaigns)},
		})
	}
	return out
}

// allExpired reports whether every assigned campaign has a known end date
// in the past. Unknown campaigns and missing or unparseable end dates count
// as not expired.
func allExpired(ids []string, campaigns map[string]domain.Campaign, now time.Time) bool {
	for _, id := range ids {
		c, ok := campaigns[id]
		if !ok {
			return false
		}
		end, ok := c.EndDate.Time()
		if !ok || !end.Before(now) {
			return false
		}
	}
	return len(ids) > 0
}

func (p AlertPolicy) campaignAlerts(c domain.Campaign, now time.Time) []domain.SystemAlert {
	if c.Status != domain.CampaignActive {
		return nil
	}
	var out []domain.SystemAlert
	action := &domain.AlertAction{Label: "View campaign", Target: "/campaigns/" + c.ID}

	if end, ok := c.EndDate.Time(); ok && !end.Before(now) && end.Before(now.Add(p.ExpiringWithin)) {
		days := int(end.Sub(now).Hours() / 24)
		out = append(out, domain.SystemAlert{
			ID:       RuleCampaignExpiringSoon + "-" + c.ID,
			Rule:     RuleCampaignExpiringSoon,
			Severity: domain.SeverityInfo,
			Title:    "Campaign ending soon",
			Message:  fmt.Sprintf("%q ends on %s.", c.Title, end.UTC().Format("Jan 2, 2006")),
			Action:   action,
			Metadata: map[string]any{"campaignId": c.ID, "endDate": end.UTC().Format(time.RFC3339), "daysLeft": days},
		})
	}

	if c.Goal > 0 && c.Raised >= c.Goal {
		out = append(out, domain.SystemAlert{
			ID:       RuleCampaignGoalReached + "-" + c.ID,
			Rule:     RuleCampaignGoalReached,
			Severity: domain.SeveritySuccess,
			Title:    "Goal reached",
			Message:  fmt.Sprintf("%q reached its goal.", c.Title),
			Action:   action,
			Metadata: map[string]any{"campaignId": c.ID, "goal": c.Goal, "raised": c.Raised},
		})
	}
	return out
}

func kioskLabel(k domain.Kiosk) string {
	if k.Name != "" {
		return k.Name
	}
	return "Kiosk " + k.ID
}
