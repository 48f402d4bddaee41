// Package resilience guards calls to the backing services the search
// service leans on: a circuit breaker in front of the result cache store and
// backoff retry for the initial Postgres and Redis connections.
package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig sets when the breaker trips and how it recovers.
// Zero fields take the defaults: 5 failures, 30s open, 1 trial call.
type CircuitBreakerConfig struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	HalfOpenMaxRequests int
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.HalfOpenMaxRequests <= 0 {
		c.HalfOpenMaxRequests = 1
	}
	return c
}

// CircuitBreaker fails calls fast once FailureThreshold calls in a row have
// failed. When ResetTimeout has passed it lets HalfOpenMaxRequests trial
// calls through; one success closes it again and one failure reopens it.
type CircuitBreaker struct {
	name      string
	cfg       CircuitBreakerConfig
	logger    *slog.Logger
	now       func() time.Time
	mu        sync.Mutex
	state     State
	failures  int
	openUntil time.Time
	trials    int
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:   name,
		cfg:    cfg.withDefaults(),
		logger: logger.WithComponent("circuit-breaker").With("name", name),
		now:    time.Now,
	}
}

// Execute calls fn unless the circuit is open, in which case it returns an
// error wrapping ErrCircuitOpen. An error any ignore func accepts is still
// returned to the caller but does not count against the circuit.
func (cb *CircuitBreaker) Execute(fn func() error, ignore ...func(error) bool) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()
	failed := err != nil
	for _, ig := range ignore {
		if failed && ig(err) {
			failed = false
		}
	}
	cb.record(failed)
	return err
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset closes the circuit and forgets past failures.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.close()
	cb.logger.Info("circuit reset")
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateOpen {
		now := cb.now()
		if now.Before(cb.openUntil) {
			return fmt.Errorf("%w: %s for another %v", ErrCircuitOpen, cb.name, cb.openUntil.Sub(now))
		}
		cb.state = StateHalfOpen
		cb.trials = 0
		cb.logger.Info("circuit half-open, allowing trial calls", "trials", cb.cfg.HalfOpenMaxRequests)
	}
	if cb.state == StateHalfOpen {
		if cb.trials >= cb.cfg.HalfOpenMaxRequests {
			return fmt.Errorf("%w: %s is waiting on trial calls", ErrCircuitOpen, cb.name)
		}
		cb.trials++
	}
	return nil
}

func (cb *CircuitBreaker) record(failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch {
	case !failed && cb.state == StateHalfOpen:
		cb.close()
		cb.logger.Info("circuit closed after successful trial")
	case !failed:
		cb.failures = 0
	case cb.state == StateHalfOpen:
		cb.open()
		cb.logger.Warn("trial call failed, circuit open again", "for", cb.cfg.ResetTimeout)
	default:
		cb.failures++
		if cb.state == StateClosed && cb.failures >= cb.cfg.FailureThreshold {
			cb.open()
			cb.logger.Warn("circuit open", "failures", cb.failures, "for", cb.cfg.ResetTimeout)
		}
	}
}

func (cb *CircuitBreaker) open() {
	cb.state = StateOpen
	cb.openUntil = cb.now().Add(cb.cfg.ResetTimeout)
	cb.trials = 0
}

func (cb *CircuitBreaker) close() {
	cb.state = StateClosed
	cb.failures = 0
	cb.trials = 0
	cb.openUntil = time.Time{}
}
