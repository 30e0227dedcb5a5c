package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Record(t *testing.T) {
	r := NewRecorder()

	r.Record("before-method", Passed, 1, 10*time.Millisecond)
	r.Record("before-method", Failed, 3, 30*time.Millisecond)
	r.Record("after-method", Skipped, 0, 0)
	r.Record("after-method", Fatal, 1, 5*time.Millisecond)

	summaries := r.Summaries()
	require.Len(t, summaries, 2)

	after := summaries[0]
	assert.Equal(t, "after-method", after.Kind)
	assert.Equal(t, int64(2), after.Hooks)
	assert.Equal(t, int64(1), after.Skipped)
	assert.Equal(t, int64(1), after.Fatal)

	before := summaries[1]
	assert.Equal(t, "before-method", before.Kind)
	assert.Equal(t, int64(2), before.Hooks)
	assert.Equal(t, int64(1), before.Passed)
	assert.Equal(t, int64(1), before.Failed)
	assert.Equal(t, int64(4), before.Attempts)
	assert.InDelta(t, float64(10*time.Millisecond), float64(before.Min), float64(100*time.Microsecond))
	assert.InDelta(t, float64(30*time.Millisecond), float64(before.Max), float64(100*time.Microsecond))
}

func TestRecorder_SkippedNotInLatency(t *testing.T) {
	r := NewRecorder()
	r.Record("before-suite", Skipped, 0, time.Second)

	summaries := r.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, time.Duration(0), summaries[0].Max)
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder()
	r.Record("before-suite", Passed, 1, time.Millisecond)
	r.Reset()
	assert.Empty(t, r.Summaries())
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record("before-class", Passed, 1, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	summaries := r.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1000), summaries[0].Hooks)
}

func TestClampLatency(t *testing.T) {
	assert.Equal(t, int64(minLatencyUs), clampLatency(0))
	assert.Equal(t, int64(maxLatencyUs), clampLatency(time.Hour))
	assert.Equal(t, int64(1500), clampLatency(1500*time.Microsecond))
}
