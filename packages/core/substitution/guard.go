// Package substitution swaps in a fallback firefox driver for hooks the
// active driver cannot run reliably, and restores the original driver when
// the hook is done.
package substitution

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
)

// Incapable reports whether d describes a driver or platform that cannot
// reliably run firefox-only or teardown hooks.
func Incapable(d environment.Descriptor) bool {
	return strings.Contains(d.DriverName, environment.IE) ||
		d.DriverName == environment.Safari ||
		d.PlatformName == environment.Android
}

// NeedsSubstitute reports whether h must run on a fallback driver under d.
func NeedsSubstitute(h *hooks.Hook, d environment.Descriptor) bool {
	if !Incapable(d) {
		return false
	}
	return h.Has(hooks.FirefoxOnly) || h.IsAfter()
}

// Guard performs driver substitution around hook invocations.
type Guard struct {
	logger *zap.Logger
}

// NewGuard creates a Guard. A nil logger disables logging.
func NewGuard(logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{logger: logger}
}

// Window is an open substitution scope. Close must be called exactly once
// the hook returns; extra calls are no-ops.
type Window struct {
	state        *environment.State
	logger       *zap.Logger
	originalName string
	original     environment.Driver
	substituted  bool
	closed       bool
}

// Substituted reports whether the window installed a fallback driver.
func (w *Window) Substituted() bool {
	return w.substituted
}

// Acquire captures the current driver and, if h needs it, installs a
// fallback driver. The returned Window is never nil, even on error, and
// must be closed.
func (g *Guard) Acquire(ctx context.Context, st *environment.State, h *hooks.Hook) (*Window, error) {
	p := st.Provider()
	w := &Window{
		state:        st,
		logger:       g.logger,
		originalName: p.DriverName(),
		original:     p.ActiveDriver(),
	}

	d := st.Descriptor()
	if !NeedsSubstitute(h, d) {
		return w, nil
	}

	fallback, err := p.NewFallbackDriver(ctx)
	if err != nil {
		return w, fmt.Errorf("creating fallback driver for %s: %w", h.QualifiedName(), err)
	}
	if fallback == nil {
		return w, fmt.Errorf("creating fallback driver for %s: provider returned no driver", h.QualifiedName())
	}

	p.SetActiveDriver(fallback)
	p.SetDriverName(environment.Firefox)
	st.MarkSubstitute(true)
	w.substituted = true

	g.logger.Debug("substituted driver",
		zap.String("hook", h.QualifiedName()),
		zap.String("driver", w.originalName),
		zap.String("platform", d.PlatformName),
		zap.String("fallbackSession", fallback.SessionID()),
	)
	return w, nil
}

// Close disposes the substitute driver if one is active and restores the
// original driver and name. The restore happens even if disposal fails.
func (w *Window) Close(ctx context.Context) error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true

	p := w.state.Provider()
	var quitErr error
	if w.state.SubstituteActive() && p.DriverName() == environment.Firefox {
		if drv := p.ActiveDriver(); drv != nil {
			if err := drv.Quit(ctx); err != nil {
				quitErr = fmt.Errorf("quitting substitute driver: %w", err)
			}
		}
	}

	p.SetDriverName(w.originalName)
	p.SetActiveDriver(w.original)
	w.state.MarkSubstitute(false)

	if w.substituted {
		w.logger.Debug("restored driver", zap.String("driver", w.originalName))
	}
	return quitErr
}
