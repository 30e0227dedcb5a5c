package webdriver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
	"github.com/abdul-hamid-achik/hookspec/packages/core/runner"
)

func newGrid(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var deleted atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		raw, _ := json.Marshal(body)
		browser := gjson.GetBytes(raw, "capabilities.alwaysMatch.browserName").String()
		if browser == "opera" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"value":{"error":"session not created","message":"no opera nodes"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":{"sessionId":"s-` + browser + `","capabilities":{"browserName":"` + browser + `"}}}`))
	})
	mux.HandleFunc("DELETE /session/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted.Add(1)
		_, _ = w.Write([]byte(`{"value":null}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &deleted
}

func TestRemote_NewSessionAndQuit(t *testing.T) {
	srv, deleted := newGrid(t)
	r := NewRemote(srv.URL+"/", WithRate(0))

	s, err := r.NewSession(context.Background(), "chrome")
	require.NoError(t, err)
	assert.Equal(t, "s-chrome", s.SessionID())
	assert.Equal(t, "chrome", s.Browser())

	require.NoError(t, s.Quit(context.Background()))
	assert.ErrorIs(t, s.Quit(context.Background()), ErrSessionClosed)
	assert.Equal(t, int32(1), deleted.Load())
}

func TestRemote_ErrorResponse(t *testing.T) {
	srv, _ := newGrid(t)
	r := NewRemote(srv.URL, WithRate(0))

	_, err := r.NewSession(context.Background(), "opera")
	require.Error(t, err)

	var wdErr *Error
	require.ErrorAs(t, err, &wdErr)
	assert.Equal(t, http.StatusInternalServerError, wdErr.Status)
	assert.Equal(t, "session not created", wdErr.Code)
	assert.Equal(t, "webdriver: session not created: no opera nodes", wdErr.Error())
}

func TestRemote_LegacySessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sessionId":"legacy-1","status":0,"value":{}}`))
	}))
	defer srv.Close()

	s, err := NewRemote(srv.URL, WithRate(0)).NewSession(context.Background(), "firefox")
	require.NoError(t, err)
	assert.Equal(t, "legacy-1", s.SessionID())
	assert.Equal(t, "firefox", s.Browser())
}

func TestRemote_MissingSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":{}}`))
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL, WithRate(0)).NewSession(context.Background(), "chrome")
	assert.ErrorIs(t, err, ErrNoSessionID)
}

func TestRemote_Capabilities(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		got = body
		_, _ = w.Write([]byte(`{"value":{"sessionId":"x"}}`))
	}))
	defer srv.Close()

	r := NewRemote(srv.URL, WithRate(0), WithCapabilities(map[string]any{"platformName": "linux"}))
	_, err := r.NewSession(context.Background(), "chrome")
	require.NoError(t, err)

	assert.Equal(t, "linux", gjson.GetBytes(got, "capabilities.alwaysMatch.platformName").String())
	assert.Equal(t, "chrome", gjson.GetBytes(got, "capabilities.alwaysMatch.browserName").String())
}

func TestRemote_RateLimitHonorsContext(t *testing.T) {
	srv, _ := newGrid(t)
	r := NewRemote(srv.URL, WithRate(0.001))

	_, err := r.NewSession(context.Background(), "chrome")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = r.NewSession(ctx, "chrome")
	assert.Error(t, err)
}

func TestRemote_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL, WithRate(0), WithTimeout(20*time.Millisecond)).NewSession(context.Background(), "chrome")
	assert.Error(t, err)
}

func TestRemote_SessionsDeletedAfterInterrupt(t *testing.T) {
	srv, deleted := newGrid(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	class := &runner.Class{
		Name: "CheckoutTest",
		Tests: []*runner.Test{{
			Method: hooks.Method{Name: "pay"},
			Fn: func(context.Context, runner.Instance) error {
				cancel()
				return nil
			},
		}},
	}

	r := runner.NewRunner(nil, runner.WithSessionFactory(SessionFactory(NewRemote(srv.URL, WithRate(0)), "chrome", "linux")))
	_, err := r.RunSuite(ctx, runner.NewSuite("shop", class))

	require.NoError(t, err)
	assert.Equal(t, int32(2), deleted.Load())
}
