package environment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	id    string
	quits int
}

func (d *fakeDriver) SessionID() string { return d.id }

func (d *fakeDriver) Quit(context.Context) error {
	d.quits++
	return nil
}

func TestHolder(t *testing.T) {
	primary := &fakeDriver{id: "primary"}
	fallback := &fakeDriver{id: "fallback"}
	h := NewHolder(primary, "ie11", Windows, func(context.Context) (Driver, error) {
		return fallback, nil
	})

	assert.Equal(t, primary, h.ActiveDriver())
	assert.Equal(t, "ie11", h.DriverName())
	assert.Equal(t, Windows, h.PlatformName())

	d, err := h.NewFallbackDriver(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fallback, d)

	h.SetActiveDriver(d)
	h.SetDriverName(Firefox)
	assert.Equal(t, fallback, h.ActiveDriver())
	assert.Equal(t, Firefox, h.DriverName())
}

func TestHolder_NoFallback(t *testing.T) {
	h := NewHolder(nil, Chrome, Mac, nil)
	_, err := h.NewFallbackDriver(context.Background())
	assert.ErrorIs(t, err, ErrNoFallback)
}

func TestState_Descriptor(t *testing.T) {
	s := NewState(NewHolder(&fakeDriver{id: "s-1"}, Safari, IOS, nil))

	assert.Equal(t, Descriptor{
		DriverName:   Safari,
		PlatformName: IOS,
		SessionID:    "s-1",
	}, s.Descriptor())

	s.MarkSubstitute(true)
	assert.True(t, s.SubstituteActive())
	assert.True(t, s.Descriptor().SubstituteActive)

	noDriver := NewState(NewHolder(nil, Chrome, Mac, nil))
	assert.Empty(t, noDriver.Descriptor().SessionID)
}

func TestStateContext(t *testing.T) {
	_, ok := StateFrom(context.Background())
	assert.False(t, ok)

	s := NewState(NewHolder(nil, Chrome, Mac, nil))
	got, ok := StateFrom(WithState(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}
