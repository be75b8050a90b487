package metrics

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(60), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestUpstream(t *testing.T) {
	var u Upstream
	assert.Equal(t, Snapshot{}, u.Snapshot())

	u.Observe(http.StatusOK, 10*time.Millisecond)
	u.Observe(http.StatusUnauthorized, 20*time.Millisecond)
	u.Observe(http.StatusNotFound, 30*time.Millisecond)
	u.Observe(http.StatusBadGateway, 40*time.Millisecond)
	u.Observe(0, 0)

	snap := u.Snapshot()
	assert.Equal(t, uint64(5), snap.Requests)
	assert.Equal(t, uint64(2), snap.Failures)
	assert.Equal(t, uint64(1), snap.Unauthorized)
	assert.Equal(t, 20*time.Millisecond, snap.AvgLatency)
}
