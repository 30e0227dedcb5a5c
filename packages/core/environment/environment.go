package environment

import (
	"context"
	"errors"
)

// Driver names
const (
	Chrome  = "chrome"
	Firefox = "firefox"
	Safari  = "safari"
	IE      = "ie"
)

// Platform names
const (
	Android = "android"
	IOS     = "ios"
	Windows = "windows"
	Mac     = "mac"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=environment.go -destination=mock_environment.gen.go -package=environment

// ErrNoFallback is returned when a Holder has no fallback factory.
var ErrNoFallback = errors.New("no fallback driver factory configured")

// Driver is an automation session handle.
type Driver interface {
	SessionID() string
	Quit(ctx context.Context) error
}

// Provider is the automation session provider owned by one worker.
type Provider interface {
	ActiveDriver() Driver
	SetActiveDriver(Driver)
	DriverName() string
	SetDriverName(string)
	PlatformName() string
	NewFallbackDriver(ctx context.Context) (Driver, error)
}

// FallbackFactory creates the firefox-family driver used for substitution.
type FallbackFactory func(ctx context.Context) (Driver, error)

// Holder is an in-memory Provider.
type Holder struct {
	driver     Driver
	driverName string
	platform   string
	fallback   FallbackFactory
}

// NewHolder creates a Holder for a primary driver.
func NewHolder(driver Driver, driverName, platform string, fallback FallbackFactory) *Holder {
	return &Holder{
		driver:     driver,
		driverName: driverName,
		platform:   platform,
		fallback:   fallback,
	}
}

func (h *Holder) ActiveDriver() Driver       { return h.driver }
func (h *Holder) SetActiveDriver(d Driver)   { h.driver = d }
func (h *Holder) DriverName() string         { return h.driverName }
func (h *Holder) SetDriverName(name string)  { h.driverName = name }
func (h *Holder) PlatformName() string       { return h.platform }

func (h *Holder) NewFallbackDriver(ctx context.Context) (Driver, error) {
	if h.fallback == nil {
		return nil, ErrNoFallback
	}
	return h.fallback(ctx)
}

// Descriptor is a read-only snapshot of a State.
type Descriptor struct {
	DriverName       string `json:"driverName"`
	PlatformName     string `json:"platformName"`
	SubstituteActive bool   `json:"substituteActive"`
	SessionID        string `json:"sessionId,omitempty"`
}

// State is the environment of one worker: its provider plus whether a
// substitute driver is currently installed.
type State struct {
	provider   Provider
	substitute bool
}

// NewState wraps a provider.
func NewState(p Provider) *State {
	return &State{provider: p}
}

// Provider returns the wrapped provider.
func (s *State) Provider() Provider {
	return s.provider
}

// SubstituteActive reports whether a substitute driver is installed.
func (s *State) SubstituteActive() bool {
	return s.substitute
}

// MarkSubstitute sets the substitute flag. Only the substitution guard
// should call it.
func (s *State) MarkSubstitute(active bool) {
	s.substitute = active
}

// Descriptor snapshots the current state.
func (s *State) Descriptor() Descriptor {
	d := Descriptor{
		DriverName:       s.provider.DriverName(),
		PlatformName:     s.provider.PlatformName(),
		SubstituteActive: s.substitute,
	}
	if drv := s.provider.ActiveDriver(); drv != nil {
		d.SessionID = drv.SessionID()
	}
	return d
}

type stateKey struct{}

// WithState returns a context carrying s.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// StateFrom returns the State stored in ctx, if any.
func StateFrom(ctx context.Context) (*State, bool) {
	s, ok := ctx.Value(stateKey{}).(*State)
	return s, ok && s != nil
}
