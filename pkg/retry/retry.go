package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

type Operation = func(ctx context.Context) error

// Notify is called before each wait with the failed attempt (1-based),
// its error and the delay until the next attempt.
type Notify = func(attempt int, err error, next time.Duration)

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

// NewProbeConfig is tuned for a startup reachability check: a few quick
// attempts, giving up within a couple of seconds.
func NewProbeConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      time.Second,
		Jitter:        25 * time.Millisecond,
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns the wrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type Retrier struct {
	config *Config
	notify Notify
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
	}
}

// WithNotify returns a copy of r reporting failed attempts to fn.
func (r *Retrier) WithNotify(fn Notify) *Retrier {
	return &Retrier{config: r.config, notify: fn}
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var err error
	delay := r.config.InitialDelay
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if attempt == r.config.MaxRetries {
			return err
		}

		jitter := time.Duration(rnd.Float64() * float64(r.config.Jitter))
		nextDelay := delay + jitter
		if nextDelay > r.config.MaxDelay {
			nextDelay = r.config.MaxDelay + jitter
		}

		if r.notify != nil {
			r.notify(attempt+1, err, nextDelay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(nextDelay):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}
	return err
}
