package substitution

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
)

func hook(kinds ...hooks.Kind) *hooks.Hook {
	return &hooks.Hook{Name: "cleanup", Class: "CartTest", Kinds: kinds}
}

func TestNeedsSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		hook     *hooks.Hook
		driver   string
		platform string
		expected bool
	}{
		{"ie firefox-only", hook(hooks.BeforeMethod, hooks.FirefoxOnly), "ie", "windows", true},
		{"versioned ie firefox-only", hook(hooks.BeforeMethod, hooks.FirefoxOnly), "ie11", "windows", true},
		{"safari firefox-only", hook(hooks.Precondition, hooks.FirefoxOnly), "safari", "mac", true},
		{"android firefox-only", hook(hooks.BeforeClass, hooks.FirefoxOnly), "chrome", "android", true},
		{"chrome firefox-only", hook(hooks.BeforeMethod, hooks.FirefoxOnly), "chrome", "windows", false},
		{"safari after-method", hook(hooks.AfterMethod), "safari", "mac", true},
		{"ie after-class", hook(hooks.AfterClass), "ie", "windows", true},
		{"android after-group", hook(hooks.AfterGroup), "chrome", "android", true},
		{"ie after-suite", hook(hooks.AfterSuite), "ie", "windows", true},
		{"safari before-method", hook(hooks.BeforeMethod), "safari", "mac", false},
		{"chrome after-method", hook(hooks.AfterMethod), "chrome", "mac", false},
		{"firefox on ios after-method", hook(hooks.AfterMethod), "firefox", "ios", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := environment.Descriptor{DriverName: tt.driver, PlatformName: tt.platform}
			assert.Equal(t, tt.expected, NeedsSubstitute(tt.hook, d))
		})
	}
}

func TestGuard_SubstitutesAndRestores(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := environment.NewMockDriver(ctrl)
	fallback := environment.NewMockDriver(ctrl)
	primary.EXPECT().SessionID().Return("primary").AnyTimes()
	fallback.EXPECT().SessionID().Return("fallback").AnyTimes()
	fallback.EXPECT().Quit(gomock.Any()).Return(nil).Times(1)

	holder := environment.NewHolder(primary, "ie11", environment.Windows, func(context.Context) (environment.Driver, error) {
		return fallback, nil
	})
	st := environment.NewState(holder)
	g := NewGuard(nil)
	ctx := context.Background()

	w, err := g.Acquire(ctx, st, hook(hooks.BeforeMethod, hooks.FirefoxOnly))
	require.NoError(t, err)
	assert.True(t, w.Substituted())
	assert.True(t, st.SubstituteActive())
	assert.Equal(t, environment.Firefox, holder.DriverName())
	assert.Equal(t, fallback, holder.ActiveDriver())

	require.NoError(t, w.Close(ctx))
	assert.False(t, st.SubstituteActive())
	assert.Equal(t, "ie11", holder.DriverName())
	assert.Equal(t, primary, holder.ActiveDriver())

	// Closing twice must not quit the substitute again.
	require.NoError(t, w.Close(ctx))
}

func TestGuard_NoSubstitution(t *testing.T) {
	ctrl := gomock.NewController(t)

	primary := environment.NewMockDriver(ctrl)
	primary.EXPECT().SessionID().Return("primary").AnyTimes()
	// Quit must never be called on the primary driver.

	holder := environment.NewHolder(primary, environment.Firefox, environment.Mac, func(context.Context) (environment.Driver, error) {
		t.Fatal("fallback must not be created")
		return nil, nil
	})
	st := environment.NewState(holder)
	g := NewGuard(nil)

	w, err := g.Acquire(context.Background(), st, hook(hooks.AfterMethod))
	require.NoError(t, err)
	assert.False(t, w.Substituted())
	assert.False(t, st.SubstituteActive())

	require.NoError(t, w.Close(context.Background()))
	assert.Equal(t, environment.Firefox, holder.DriverName())
	assert.Equal(t, primary, holder.ActiveDriver())
}

func TestGuard_FallbackFailure(t *testing.T) {
	holder := environment.NewHolder(nil, environment.Safari, environment.Mac, func(context.Context) (environment.Driver, error) {
		return nil, errors.New("grid full")
	})
	st := environment.NewState(holder)
	g := NewGuard(nil)

	w, err := g.Acquire(context.Background(), st, hook(hooks.AfterClass))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid full")
	require.NotNil(t, w)
	assert.False(t, w.Substituted())
	assert.Equal(t, environment.Safari, holder.DriverName())

	require.NoError(t, w.Close(context.Background()))
	assert.Equal(t, environment.Safari, holder.DriverName())
}

func TestGuard_RestoresWhenQuitFails(t *testing.T) {
	ctrl := gomock.NewController(t)

	fallback := environment.NewMockDriver(ctrl)
	fallback.EXPECT().SessionID().Return("fallback").AnyTimes()
	fallback.EXPECT().Quit(gomock.Any()).Return(errors.New("connection reset"))

	holder := environment.NewHolder(nil, environment.Chrome, environment.Android, func(context.Context) (environment.Driver, error) {
		return fallback, nil
	})
	st := environment.NewState(holder)

	w, err := NewGuard(nil).Acquire(context.Background(), st, hook(hooks.AfterMethod))
	require.NoError(t, err)

	err = w.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, environment.Chrome, holder.DriverName())
	assert.Nil(t, holder.ActiveDriver())
	assert.False(t, st.SubstituteActive())
}

func TestGuard_RestoresOnPanic(t *testing.T) {
	ctrl := gomock.NewController(t)

	fallback := environment.NewMockDriver(ctrl)
	fallback.EXPECT().SessionID().Return("fallback").AnyTimes()
	fallback.EXPECT().Quit(gomock.Any()).Return(nil)

	holder := environment.NewHolder(nil, environment.IE, environment.Windows, func(context.Context) (environment.Driver, error) {
		return fallback, nil
	})
	st := environment.NewState(holder)
	g := NewGuard(nil)

	assert.Panics(t, func() {
		w, err := g.Acquire(context.Background(), st, hook(hooks.AfterSuite))
		require.NoError(t, err)
		defer func() { _ = w.Close(context.Background()) }()
		panic("hook exploded")
	})

	assert.Equal(t, environment.IE, holder.DriverName())
	assert.False(t, st.SubstituteActive())
}
