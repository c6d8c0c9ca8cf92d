package config

import (
	"strings"
	"time"
)

// CacheConfig configures the response cache middleware.  Room search
// responses are the cache target: identical for every anonymous
// caller and invalidated cheaply by the short TTL.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // HTTP methods eligible for caching
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int // responses larger than this are not cached
}

// LoadCacheConfig reads the cache settings with defaults suited to
// the room listing endpoint.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
