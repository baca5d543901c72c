package configs

// HTTP defines configuration for the HTTP server. RateLimit and RateBurst
// configure the per-client token bucket applied to every request; a
// RateLimit of zero disables limiting.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// RateLimit is the sustained requests per second allowed per client.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"20"`
	// RateBurst is the bucket size per client.
	RateBurst int `env:"RATE_BURST" envDefault:"40"`
}
