package manifest

import "time"

// Config holds manifest storage settings.
type Config struct {
	// Prefix is the object key prefix manifests are stored under.
	Prefix string `mapstructure:"prefix" default:"manifests/"`
	// CacheTTLSeconds is how long decoded manifests are kept in memory. 0 disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
