package versionator

import (
	"errors"
	"log/slog"
)

// Option configures engine operations.
type Option func(*config) error

type config struct {
	// logger receives debug records for closure, rewrites and collateral
	// rounds. Nil means silent.
	logger *slog.Logger

	// maxRounds caps collateral rounds; zero derives a bound from the model size.
	maxRounds int
}

// WithLogger sets a structured logger for engine diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	result, err := model.Apply(gavs, versionator.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithMaxRounds caps the number of collateral rounds Apply runs before
// failing with ErrNoFixedPoint.
func WithMaxRounds(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.New("max rounds must be positive")
		}
		c.maxRounds = n
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *config) rounds(poms int) int {
	if c.maxRounds > 0 {
		return c.maxRounds
	}
	return 4*poms + 4
}
