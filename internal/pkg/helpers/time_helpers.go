package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// ParseDuration reads a config duration such as "30s", falling back to def
// when the value is empty or malformed.
func ParseDuration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Dur("fallback", def).Msg("Unparsable duration in config")
		return def
	}
	return d
}
