package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TournamentTTL is a safety-net expiry on stored tournaments. The
	// cleanup sweeper deletes records on much tighter thresholds; this
	// only guards against records the sweeper never saw.
	TournamentTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		TournamentTTL: 24 * time.Hour,
	}
}
