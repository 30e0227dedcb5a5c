package webdriver

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
)

// Local keeps in-memory sessions.
type Local struct {
	mu       sync.Mutex
	sessions map[string]*LocalSession
	logger   *zap.Logger
}

func NewLocal(logger *zap.Logger) *Local {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{sessions: make(map[string]*LocalSession), logger: logger}
}

// Start implements Starter.
func (l *Local) Start(ctx context.Context, browser string) (environment.Driver, error) {
	s, err := l.NewSession(ctx, browser)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Local) NewSession(ctx context.Context, browser string) (*LocalSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &LocalSession{id: uuid.NewString(), browser: browser, local: l}
	l.mu.Lock()
	l.sessions[s.id] = s
	l.mu.Unlock()

	l.logger.Debug("local session created", zap.String("session", s.id), zap.String("browser", browser))
	return s, nil
}

// Active returns the ids of sessions that have not been quit.
func (l *Local) Active() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.sessions))
	for id := range l.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LocalSession is an in-memory session.
type LocalSession struct {
	id      string
	browser string
	local   *Local
}

func (s *LocalSession) SessionID() string { return s.id }
func (s *LocalSession) Browser() string   { return s.browser }

// Quit forgets the session. Quitting twice returns ErrSessionClosed.
func (s *LocalSession) Quit(context.Context) error {
	s.local.mu.Lock()
	defer s.local.mu.Unlock()
	if _, ok := s.local.sessions[s.id]; !ok {
		return ErrSessionClosed
	}
	delete(s.local.sessions, s.id)
	return nil
}
