package webdriver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
)

const (
	// DefaultTimeout is the default timeout of one WebDriver request
	DefaultTimeout = 60 * time.Second
	// DefaultRate is the default number of sessions created per second
	DefaultRate = 2.0
)

// Error is a WebDriver error response.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("webdriver: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("webdriver: %s: %s", e.Code, e.Message)
}

// Remote creates sessions on a W3C WebDriver endpoint.
type Remote struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	capabilities map[string]any
	logger       *zap.Logger
}

type RemoteOption func(*Remote)

func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) {
		r.httpClient = c
	}
}

func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		r.httpClient.Timeout = d
	}
}

// WithRate limits session creation to perSecond sessions per second. Zero
// or less disables the limit.
func WithRate(perSecond float64) RemoteOption {
	return func(r *Remote) {
		if perSecond <= 0 {
			r.limiter = nil
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithCapabilities adds capabilities to every new session request.
func WithCapabilities(caps map[string]any) RemoteOption {
	return func(r *Remote) {
		for k, v := range caps {
			r.capabilities[k] = v
		}
	}
}

func WithLogger(logger *zap.Logger) RemoteOption {
	return func(r *Remote) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		limiter:      rate.NewLimiter(rate.Limit(DefaultRate), 1),
		capabilities: make(map[string]any),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start implements Starter.
func (r *Remote) Start(ctx context.Context, browser string) (environment.Driver, error) {
	s, err := r.NewSession(ctx, browser)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewSession creates a session for browser.
func (r *Remote) NewSession(ctx context.Context, browser string) (*RemoteSession, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for session slot: %w", err)
		}
	}

	caps := make(map[string]any, len(r.capabilities)+1)
	for k, v := range r.capabilities {
		caps[k] = v
	}
	caps["browserName"] = browser

	payload, err := json.Marshal(map[string]any{
		"capabilities": map[string]any{"alwaysMatch": caps},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding capabilities: %w", err)
	}

	body, err := r.do(ctx, http.MethodPost, "/session", payload)
	if err != nil {
		return nil, err
	}

	// W3C responses wrap the session in "value"; older grids put the id at
	// the top level.
	id := gjson.GetBytes(body, "value.sessionId").String()
	if id == "" {
		id = gjson.GetBytes(body, "sessionId").String()
	}
	if id == "" {
		return nil, ErrNoSessionID
	}

	s := &RemoteSession{
		id:      id,
		browser: gjson.GetBytes(body, "value.capabilities.browserName").String(),
		remote:  r,
	}
	if s.browser == "" {
		s.browser = browser
	}

	r.logger.Debug("webdriver session created", zap.String("session", id), zap.String("browser", s.browser))
	return s, nil
}

func (r *Remote) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := &Error{
			Status:  resp.StatusCode,
			Code:    gjson.GetBytes(body, "value.error").String(),
			Message: gjson.GetBytes(body, "value.message").String(),
		}
		if e.Message == "" {
			e.Message = strings.TrimSpace(string(body))
		}
		return nil, e
	}

	return body, nil
}

// RemoteSession is a session on a WebDriver endpoint.
type RemoteSession struct {
	id      string
	browser string
	remote  *Remote

	mu     sync.Mutex
	closed bool
}

func (s *RemoteSession) SessionID() string { return s.id }
func (s *RemoteSession) Browser() string   { return s.browser }

// Quit deletes the session. Quitting twice returns ErrSessionClosed.
func (s *RemoteSession) Quit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	if _, err := s.remote.do(ctx, http.MethodDelete, "/session/"+s.id, nil); err != nil {
		return fmt.Errorf("deleting session %s: %w", s.id, err)
	}
	s.closed = true

	s.remote.logger.Debug("webdriver session deleted", zap.String("session", s.id))
	return nil
}
