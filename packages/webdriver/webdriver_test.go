package webdriver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/hookspec/packages/core/environment"
)

func TestBrowserName(t *testing.T) {
	tests := map[string]string{
		"chrome":  "chrome",
		"Firefox": "firefox",
		"ie11":    "internet explorer",
		"IE":      "internet explorer",
		"edge":    "MicrosoftEdge",
		"safari":  "safari",
	}
	for in, want := range tests {
		assert.Equal(t, want, BrowserName(in), in)
	}
}

func TestLocal_Sessions(t *testing.T) {
	l := NewLocal(nil)
	ctx := context.Background()

	a, err := l.NewSession(ctx, "chrome")
	require.NoError(t, err)
	b, err := l.NewSession(ctx, "firefox")
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
	assert.Len(t, l.Active(), 2)

	require.NoError(t, a.Quit(ctx))
	assert.ErrorIs(t, a.Quit(ctx), ErrSessionClosed)
	assert.Equal(t, []string{b.SessionID()}, l.Active())
}

func TestLocal_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(nil).NewSession(ctx, "chrome")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionFactory(t *testing.T) {
	l := NewLocal(nil)
	factory := SessionFactory(l, "ie11", "windows")
	ctx := context.Background()

	sess, err := factory(ctx)
	require.NoError(t, err)
	p := sess.Env.Provider()
	assert.Equal(t, "ie11", p.DriverName())
	assert.Equal(t, "windows", p.PlatformName())
	assert.Equal(t, "internet explorer", p.ActiveDriver().(*LocalSession).Browser())

	fb, err := p.NewFallbackDriver(ctx)
	require.NoError(t, err)
	assert.Equal(t, environment.Firefox, fb.(*LocalSession).Browser())

	require.NoError(t, fb.Quit(ctx))
	require.NoError(t, sess.Close(ctx))
	assert.Empty(t, l.Active())
}

type failingStarter struct{}

func (failingStarter) Start(context.Context, string) (environment.Driver, error) {
	return nil, errors.New("grid unavailable")
}

func TestSessionFactory_StartError(t *testing.T) {
	_, err := SessionFactory(failingStarter{}, "chrome", "linux")(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting chrome session: grid unavailable")
}
