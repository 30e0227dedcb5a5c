package hooks

import "context"

// Func is a hook body bound to its receiver at declaration time.
type Func func(ctx context.Context) error

// RetryPolicy allows a failed hook to be re-run in place.
type RetryPolicy struct {
	MaxRetries int
}

// Hook describes a lifecycle method and the metadata the orchestrator needs
// to decide whether, where and how often to run it.
type Hook struct {
	Name   string
	Class  string
	Kinds  []Kind
	Groups []string
	Retry  *RetryPolicy
	Fn     Func
}

// Method describes a test method. Only its groups matter for scheduling.
type Method struct {
	Name   string
	Groups []string
}

// Has reports whether the hook declares kind k.
func (h *Hook) Has(k Kind) bool {
	for _, kind := range h.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// IsAfter reports whether the hook declares any teardown kind.
func (h *Hook) IsAfter() bool {
	for _, kind := range h.Kinds {
		if kind.IsAfter() {
			return true
		}
	}
	return false
}

// QualifiedName returns Class.Name, or just Name for hooks without a class.
func (h *Hook) QualifiedName() string {
	if h.Class == "" {
		return h.Name
	}
	return h.Class + "." + h.Name
}
