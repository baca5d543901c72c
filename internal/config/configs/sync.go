package configs

import "time"

// Sync configures the kiosk assignment sync and its retry queue.
type Sync struct {
	MaxRetries   int           `env:"MAX_RETRIES" envDefault:"3"`
	Concurrency  int           `env:"CONCURRENCY" envDefault:"8"`
	QueueWorkers int           `env:"QUEUE_WORKERS" envDefault:"2"`
	QueueSize    int           `env:"QUEUE_SIZE" envDefault:"64"`
	RetryDelay   time.Duration `env:"RETRY_DELAY" envDefault:"2s"`
	// MaxAttempts bounds background retries of one campaign's job.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"5"`
}
