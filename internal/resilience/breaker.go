package resilience

import (
	"time"

	"github.com/sony/gobreaker"

	"league-data-service/internal/domain"
)

const (
	defaultBreakerThreshold = 5
	defaultBreakerCooldown  = 30 * time.Second
)

// newBreakers builds one circuit breaker per league so a flapping upstream
// for one league never opens the circuit for the others.
func newBreakers(leagues []domain.League, threshold uint32, cooldown time.Duration) map[domain.League]*gobreaker.CircuitBreaker {
	if threshold == 0 {
		threshold = defaultBreakerThreshold
	}
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}

	breakers := make(map[domain.League]*gobreaker.CircuitBreaker, len(leagues))
	for _, league := range leagues {
		breakers[league] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        string(league),
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
		})
	}
	return breakers
}
