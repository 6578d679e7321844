package search

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BreakerState represents the state of the circuit breaker.
type BreakerState int

const (
	// BreakerClosed lets queries through.
	BreakerClosed BreakerState = iota

	// BreakerOpen rejects queries immediately.
	BreakerOpen

	// BreakerHalfOpen lets a single probe query through.
	BreakerHalfOpen
)

// String returns the string representation of the breaker state.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig holds configuration for the circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before opening.
	// Zero disables the breaker.
	MaxFailures int `mapstructure:"breaker_max_failures"`

	// ResetTimeout is how long the breaker stays open before a probe is allowed.
	ResetTimeout time.Duration `mapstructure:"breaker_reset_timeout"`
}

// DefaultBreakerConfig returns the default breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:  5,
		ResetTimeout: 30 * time.Second,
	}
}

// Breaker guards the search backend: after MaxFailures consecutive failures
// it fails fast until ResetTimeout has elapsed, then lets one probe through.
type Breaker struct {
	mu           sync.Mutex
	state        BreakerState
	failureCount int
	openedAt     time.Time
	probing      bool
	config       BreakerConfig
	logger       zerolog.Logger
	now          func() time.Time
}

// NewBreaker creates a circuit breaker.
func NewBreaker(config BreakerConfig, logger zerolog.Logger) *Breaker {
	return &Breaker{
		state:  BreakerClosed,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// Allow reports whether a query may be sent to the backend.
func (b *Breaker) Allow() bool {
	if b == nil || b.config.MaxFailures <= 0 {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true

	case BreakerOpen:
		if b.now().Sub(b.openedAt) < b.config.ResetTimeout {
			return false
		}
		b.transitionTo(BreakerHalfOpen)
		b.probing = true
		b.logger.Info().Msg("Circuit breaker half-open, probing backend")
		return true

	case BreakerHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true

	default:
		return false
	}
}

// RecordSuccess records a successful backend call.
func (b *Breaker) RecordSuccess() {
	if b == nil || b.config.MaxFailures <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount = 0
	b.probing = false
	if b.state != BreakerClosed {
		b.transitionTo(BreakerClosed)
		b.logger.Info().Msg("Circuit breaker closed after successful probe")
	}
}

// RecordFailure records a failed backend call.
func (b *Breaker) RecordFailure(err error) {
	if b == nil || b.config.MaxFailures <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.probing = false

	switch b.state {
	case BreakerClosed:
		if b.failureCount >= b.config.MaxFailures {
			b.open()
			b.logger.Warn().
				Err(err).
				Int("failure_count", b.failureCount).
				Dur("reset_timeout", b.config.ResetTimeout).
				Msg("Circuit breaker opening after max failures")
		}

	case BreakerHalfOpen:
		b.open()
		b.logger.Warn().Err(err).Msg("Circuit breaker re-opening after failed probe")
	}
}

// Abandon releases a probe slot taken by Allow without recording an outcome.
func (b *Breaker) Abandon() {
	if b == nil || b.config.MaxFailures <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
}

// State returns the current state of the breaker.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the breaker and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.transitionTo(BreakerClosed)
	b.failureCount = 0
	b.probing = false
}

func (b *Breaker) open() {
	b.openedAt = b.now()
	b.transitionTo(BreakerOpen)
}

func (b *Breaker) transitionTo(state BreakerState) {
	b.state = state
	breakerState.Set(float64(state))
}
