// Package retry runs a UI action repeatedly with exponential backoff until it
// succeeds or the attempt budget is spent.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// MaxJitter bounds the random delay added to every inter-attempt sleep.
const MaxJitter = 100 * time.Millisecond

// ErrInvalidConfig is returned when a Config cannot drive a retry loop.
var ErrInvalidConfig = errors.New("invalid retry config")

// Action is one attempt at an operation. timeout is the per-attempt deadline
// the action should pass to the browser; zero means no deadline.
type Action func(ctx context.Context, timeout time.Duration) error

// Config controls the retry loop.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultConfig returns the settings used for a standard user.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1000 * time.Millisecond,
	}
}

// Validate reports whether the config can be used.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.InitialDelay < 0 {
		return fmt.Errorf("%w: initial delay must not be negative, got %s", ErrInvalidConfig, c.InitialDelay)
	}
	if c.MaxDelay < c.InitialDelay {
		return fmt.Errorf("%w: max delay %s is below initial delay %s", ErrInvalidConfig, c.MaxDelay, c.InitialDelay)
	}
	return nil
}

// Outcome describes how a retry loop ended.
type Outcome struct {
	Success  bool
	Attempts int
	Elapsed  time.Duration
	// LastErr is the error of the final failed attempt, nil on success.
	LastErr error
}

// ElapsedMs returns Elapsed in whole milliseconds.
func (o Outcome) ElapsedMs() int64 {
	return o.Elapsed.Milliseconds()
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Retrier runs actions under a Config. The zero value is not usable; build one with New.
type Retrier struct {
	sleep   Sleeper
	now     func() time.Time
	jitter  func() time.Duration
	metrics *Metrics
}

// Option customises a Retrier.
type Option func(*Retrier)

// WithSleeper replaces the real timer-based wait.
func WithSleeper(s Sleeper) Option {
	return func(r *Retrier) { r.sleep = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Retrier) { r.now = now }
}

// WithJitter replaces the random jitter source. Results are clamped to [0, MaxJitter).
func WithJitter(j func() time.Duration) Option {
	return func(r *Retrier) { r.jitter = j }
}

// WithMetrics records attempts and outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(r *Retrier) { r.metrics = m }
}

// New creates a Retrier with real time and random jitter unless overridden.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		sleep:  sleepContext,
		now:    time.Now,
		jitter: randomJitter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs action with a default Retrier.
func Do(ctx context.Context, cfg Config, action Action) (Outcome, error) {
	return New().Do(ctx, cfg, action)
}

// Do runs action until it succeeds or cfg.MaxAttempts attempts have failed.
// Action failures are reported through the Outcome; the error is non-nil only
// for an invalid cfg.
func (r *Retrier) Do(ctx context.Context, cfg Config, action Action) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}

	start := r.now()
	delay := cfg.InitialDelay
	attempts := 0
	var lastErr error

	for attempts < cfg.MaxAttempts {
		err := r.attempt(ctx, action, delay)
		r.metrics.IncAttempt()
		if err == nil {
			return r.finish(Outcome{Success: true, Attempts: attempts + 1, Elapsed: r.now().Sub(start)}), nil
		}

		attempts++
		lastErr = err
		if attempts == cfg.MaxAttempts {
			break
		}

		delay = nextDelay(delay, cfg.MaxDelay)
		if err := r.sleep(ctx, addJitter(delay, r.clampedJitter())); err != nil {
			lastErr = fmt.Errorf("retry interrupted after %d attempts: %w", attempts, err)
			break
		}
	}

	return r.finish(Outcome{Attempts: attempts, Elapsed: r.now().Sub(start), LastErr: lastErr}), nil
}

// nextDelay doubles delay up to max without overflowing.
func nextDelay(delay, max time.Duration) time.Duration {
	if delay > max/2 {
		return max
	}
	return delay * 2
}

func addJitter(delay, jitter time.Duration) time.Duration {
	if delay > math.MaxInt64-jitter {
		return math.MaxInt64
	}
	return delay + jitter
}

func (r *Retrier) attempt(ctx context.Context, action Action, timeout time.Duration) error {
	if timeout <= 0 {
		return action(ctx, 0)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return action(attemptCtx, timeout)
}

func (r *Retrier) finish(o Outcome) Outcome {
	r.metrics.ObserveOutcome(o)
	return o
}

func (r *Retrier) clampedJitter() time.Duration {
	j := r.jitter()
	if j < 0 {
		return 0
	}
	if j >= MaxJitter {
		return MaxJitter - time.Millisecond
	}
	return j
}

func randomJitter() time.Duration {
	return time.Duration(rand.Int63n(int64(MaxJitter)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
