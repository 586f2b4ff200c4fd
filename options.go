package cubekit

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures engine component behavior. The same option set is
// shared by NewStateManager, NewHistoryManager and NewAnimationManager;
// options that don't apply to a component are ignored by it.
type Option func(*config)

type config struct {
	maxHistory           int
	maxRedo              int
	compressionThreshold int
	maxQueueSize         int
	maxConcurrent        int
	perfBudget           time.Duration
	logger               *logrus.Logger
}

func defaultConfig() *config {
	return &config{
		maxHistory:           1000,
		maxRedo:              100,
		compressionThreshold: 50,
		maxQueueSize:         10,
		maxConcurrent:        1,
		perfBudget:           16 * time.Millisecond, // one 60fps frame
		logger:               logrus.StandardLogger(),
	}
}

// WithMaxHistory caps the undo stack. The oldest entries are evicted first
// once the cap is reached.
func WithMaxHistory(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxHistory = n
		}
	}
}

// WithMaxRedo caps the redo stack.
func WithMaxRedo(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRedo = n
		}
	}
}

// WithCompressionThreshold sets how many recent history entries stay
// uncompressed when CompressHistory runs.
func WithCompressionThreshold(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.compressionThreshold = n
		}
	}
}

// WithMaxQueueSize caps the pending animation queue.
func WithMaxQueueSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxQueueSize = n
		}
	}
}

// WithMaxConcurrent sets the concurrent animation cap. The default of 1
// guarantees at most one face is turning at a time.
func WithMaxConcurrent(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxConcurrent = n
		}
	}
}

// WithPerformanceBudget sets the advisory per-operation time budget.
// Exceeding the budget logs a warning; it never fails the operation.
func WithPerformanceBudget(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.perfBudget = d
		}
	}
}

// WithLogger replaces the default logrus standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
