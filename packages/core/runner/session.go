package runner

import (
	"context"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/retry"
)

// Session is the state one worker carries through hook dispatch: its
// environment and its retry counter. A Session must not be shared between
// goroutines.
type Session struct {
	ID    string
	Env   *environment.State
	Retry *retry.State
}

// NewSession creates a Session around a provider.
func NewSession(p environment.Provider) *Session {
	return &Session{
		ID:    uuid.NewString(),
		Env:   environment.NewState(p),
		Retry: &retry.State{},
	}
}

// Close quits the active driver of the session.
func (s *Session) Close(ctx context.Context) error {
	if d := s.Env.Provider().ActiveDriver(); d != nil {
		return d.Quit(ctx)
	}
	return nil
}

// SessionFactory creates sessions for workers.
type SessionFactory func(ctx context.Context) (*Session, error)
