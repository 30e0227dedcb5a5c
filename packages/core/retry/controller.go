// Package retry decides whether a failed hook is re-run in place.
//
// The counter in State is shared by every hook dispatched on a worker and is
// never reset implicitly: a hook that used up retries leaves fewer for the
// hooks that follow it, unless the caller calls Reset between independent
// hook sequences.
package retry

import (
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
)

// Decision is the outcome of a failed invocation.
type Decision int

const (
	// RetryNow re-dispatches the same invocation.
	RetryNow Decision = iota + 1
	// GiveUp stops retrying and keeps the failure recoverable.
	GiveUp
	// Escalate turns the failure into an execution-stopping one.
	Escalate
)

func (d Decision) String() string {
	switch d {
	case RetryNow:
		return "retry"
	case GiveUp:
		return "give-up"
	case Escalate:
		return "escalate"
	}
	return "unknown"
}

// State is the per-worker retry counter.
type State struct {
	count int
}

// Count returns the number of retries consumed so far.
func (s *State) Count() int {
	return s.count
}

// Reset zeroes the counter.
func (s *State) Reset() {
	s.count = 0
}

// Controller applies hook retry policies.
type Controller struct {
	logger *zap.Logger
}

// NewController creates a Controller. A nil logger disables logging.
func NewController(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{logger: logger}
}

// OnFailure records a failure of h and returns what to do next.
func (c *Controller) OnFailure(h *hooks.Hook, st *State) Decision {
	if h.Retry == nil {
		return Escalate
	}

	st.count++
	if st.count <= h.Retry.MaxRetries {
		c.logger.Error("hook failed, retrying",
			zap.String("hook", h.QualifiedName()),
			zap.Int("retryCount", st.count),
			zap.Int("maxRetries", h.Retry.MaxRetries),
		)
		return RetryNow
	}

	c.logger.Warn("hook retries exhausted",
		zap.String("hook", h.QualifiedName()),
		zap.Int("retryCount", st.count),
		zap.Int("maxRetries", h.Retry.MaxRetries),
	)
	return GiveUp
}
