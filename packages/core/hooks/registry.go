package hooks

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNilHook  = errors.New("hook cannot be nil")
	ErrNoName   = errors.New("hook must have a name")
	ErrNoFunc   = errors.New("hook must have a function")
	ErrNoKinds  = errors.New("hook must declare at least one kind")
	ErrBadRetry = errors.New("retry count cannot be negative")
)

// Registry keeps hooks per kind in declaration order.
type Registry struct {
	byKind map[Kind][]*Hook
	all    []*Hook
	mu     sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[Kind][]*Hook),
	}
}

// Register adds a hook under every kind it declares.
func (r *Registry) Register(h *Hook) error {
	if err := validate(h); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[Kind]bool, len(h.Kinds))
	for _, k := range h.Kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		r.byKind[k] = append(r.byKind[k], h)
	}
	r.all = append(r.all, h)
	return nil
}

// MustRegister is like Register but panics on invalid hooks.
func (r *Registry) MustRegister(hooks ...*Hook) *Registry {
	for _, h := range hooks {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
	return r
}

// ForKind returns the hooks declared for k in declaration order.
func (r *Registry) ForKind(k Kind) []*Hook {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Hook(nil), r.byKind[k]...)
}

// Hooks returns every registered hook in declaration order.
func (r *Registry) Hooks() []*Hook {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Hook(nil), r.all...)
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

func validate(h *Hook) error {
	if h == nil {
		return ErrNilHook
	}
	if h.Name == "" {
		return ErrNoName
	}
	if h.Fn == nil {
		return fmt.Errorf("%s: %w", h.QualifiedName(), ErrNoFunc)
	}
	if len(h.Kinds) == 0 {
		return fmt.Errorf("%s: %w", h.QualifiedName(), ErrNoKinds)
	}
	if h.Retry != nil && h.Retry.MaxRetries < 0 {
		return fmt.Errorf("%s: %w", h.QualifiedName(), ErrBadRetry)
	}
	return nil
}
