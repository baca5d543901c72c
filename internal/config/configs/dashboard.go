package configs

import "time"

// Dashboard configures the derived organization views.
type Dashboard struct {
	// RecentLimit is the number of donations shown in the activity feed.
	RecentLimit int `env:"RECENT_LIMIT" envDefault:"10"`
	// AmountUnit is the number of stored units per displayed currency
	// unit. Amounts are stored in whole currency units by default; set 100
	// when the store keeps cents. Range boundaries and formatted amounts are
	// scaled by it.
	AmountUnit int64 `env:"AMOUNT_UNIT" envDefault:"1"`
	// CacheTTL is how long a computed dashboard is served from memory.
	// Zero disables the cache.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	// InactiveAfter is the kiosk inactivity threshold for alerts.
	InactiveAfter time.Duration `env:"INACTIVE_AFTER" envDefault:"24h"`
	// ExpiringWithin is the look-ahead window for campaign expiry alerts.
	ExpiringWithin time.Duration `env:"EXPIRING_WITHIN" envDefault:"72h"`
}
