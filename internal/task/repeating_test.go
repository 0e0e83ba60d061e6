package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepeating(t *testing.T) {
	var calls int64
	repeating := NewRepeating(func() {
		atomic.AddInt64(&calls, 1)
	}, 10*time.Millisecond)

	repeating.Start()
	// Starting twice must not spawn a second loop
	repeating.Start()
	time.Sleep(55 * time.Millisecond)
	repeating.Stop()

	// Let an in-flight execution finish before snapshotting
	time.Sleep(15 * time.Millisecond)
	executed := atomic.LoadInt64(&calls)
	assert.GreaterOrEqual(t, executed, int64(1))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, executed, atomic.LoadInt64(&calls), "no executions may happen after Stop")

	// Stopping twice is a no-op
	repeating.Stop()
}
