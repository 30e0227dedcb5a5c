package webdriver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
)

var (
	ErrSessionClosed = errors.New("session already closed")
	ErrNoSessionID   = errors.New("response carries no session id")
)

// Starter starts browser sessions.
type Starter interface {
	Start(ctx context.Context, browser string) (environment.Driver, error)
}

// BrowserName maps a driver name to its W3C browserName capability.
func BrowserName(driverName string) string {
	name := strings.ToLower(strings.TrimSpace(driverName))
	switch {
	case strings.HasPrefix(name, "ie"):
		return "internet explorer"
	case name == "edge":
		return "MicrosoftEdge"
	}
	return name
}

// SessionFactory returns a runner.SessionFactory whose sessions start a
// driverName browser on platform, with firefox as the fallback driver.
func SessionFactory(s Starter, driverName, platform string) runner.SessionFactory {
	fallback := func(ctx context.Context) (environment.Driver, error) {
		return s.Start(ctx, environment.Firefox)
	}

	return func(ctx context.Context) (*runner.Session, error) {
		drv, err := s.Start(ctx, BrowserName(driverName))
		if err != nil {
			return nil, fmt.Errorf("starting %s session: %w", driverName, err)
		}
		return runner.NewSession(environment.NewHolder(drv, driverName, platform, fallback)), nil
	}
}
