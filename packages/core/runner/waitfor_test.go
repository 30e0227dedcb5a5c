package runner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitFor_BecomesReady(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	w := &WaitFor{URL: server.URL + "/status", Timeout: 2 * time.Second, Interval: 10 * time.Millisecond}
	require.NoError(t, w.Run(context.Background()))
	assert.GreaterOrEqual(t, hits.Load(), int32(3))
}

func TestWaitFor_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	w := &WaitFor{URL: server.URL, Timeout: 50 * time.Millisecond, Interval: 10 * time.Millisecond}
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestWaitFor_ExpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	w := &WaitFor{URL: server.URL, Status: http.StatusNoContent, Timeout: time.Second, Interval: 10 * time.Millisecond}
	assert.NoError(t, w.Run(context.Background()))
}
