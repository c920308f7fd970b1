package api

import (
	"time"

	"github.com/pders01/crossover/internal/debuglog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings tunes the backend circuit breaker.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit once reached.
	ConsecutiveFailures uint32
	// Cooldown is how long the circuit stays open before a probe is allowed.
	Cooldown time.Duration
}

// DefaultBreakerSettings opens after 5 straight failures and probes again
// after 30 seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		Cooldown:            30 * time.Second,
	}
}

func newBreaker(name string, s BreakerSettings) *gobreaker.CircuitBreaker[[]byte] {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}
	if s.Cooldown <= 0 {
		s.Cooldown = DefaultBreakerSettings().Cooldown
	}

	log := debuglog.WithFields(map[string]interface{}{"component": "breaker", "name": name})

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= s.ConsecutiveFailures
			if trip {
				log.Warnf("opening circuit after %d consecutive failures", counts.ConsecutiveFailures)
			}
			return trip
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			log.Infof("state %s -> %s", from, to)
		},
	})
}
