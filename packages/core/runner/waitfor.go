package runner

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultWaitTimeout  = 30 * time.Second
	DefaultWaitInterval = 500 * time.Millisecond
)

// WaitFor polls a URL until it returns the expected status code. It is used
// as a hook body that waits for a browser grid or an application under test.
type WaitFor struct {
	URL      string
	Status   int
	Timeout  time.Duration
	Interval time.Duration
	Client   *http.Client
	Logger   *zap.Logger
}

// Run polls until the service is ready, the timeout elapses or ctx is done.
func (w *WaitFor) Run(ctx context.Context) error {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultWaitInterval
	}
	expectedStatus := w.Status
	if expectedStatus == 0 {
		expectedStatus = http.StatusOK
	}
	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug("waiting for service",
		zap.String("url", w.URL),
		zap.Int("status", expectedStatus),
		zap.Duration("timeout", timeout),
	)

	var lastErr error
	var lastStatus int
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := poll(ctx, client, w.URL)
		if err == nil && status == expectedStatus {
			logger.Debug("service ready", zap.String("url", w.URL))
			return nil
		}
		lastErr, lastStatus = err, status

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("service %s not ready after %v: %v", w.URL, timeout, lastErr)
			}
			return fmt.Errorf("service %s not ready after %v: got status %d, expected %d",
				w.URL, timeout, lastStatus, expectedStatus)
		case <-ticker.C:
		}
	}
}

func poll(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
