package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordToolCall(t *testing.T) {
	c := NewCollector()

	c.RecordToolCall("scoreGame", "success", 10*time.Millisecond)
	c.RecordToolCall("scoreGame", "success", 20*time.Millisecond)
	c.RecordToolCall("scoreGame", "error", 5*time.Millisecond)

	stats := c.GetStats()
	tools, ok := stats["tools"].(map[string]interface{})
	require.True(t, ok)
	scoreStats, ok := tools["scoreGame"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, int64(3), scoreStats["calls"])
	assert.Equal(t, int64(1), scoreStats["errors"])
	assert.InDelta(t, 1.0/3.0, scoreStats["error_rate"], 1e-9)
}

func TestCollector_RecordMoveResult(t *testing.T) {
	c := NewCollector()

	c.RecordMoveResult("success")
	c.RecordMoveResult("success")
	c.RecordMoveResult("ko")

	stats := c.GetStats()
	moves, ok := stats["moves"].(map[string]int64)
	require.True(t, ok)
	assert.Equal(t, int64(2), moves["success"])
	assert.Equal(t, int64(1), moves["ko"])
}

func TestCollector_DurationWindowBounded(t *testing.T) {
	c := NewCollector()

	for i := 0; i < 150; i++ {
		c.RecordToolCall("checkMove", "success", time.Millisecond)
	}

	c.mu.RLock()
	n := len(c.toolDurations["checkMove"])
	c.mu.RUnlock()
	assert.Equal(t, 100, n)
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.RecordToolCall("checkMove", "success", time.Millisecond)
	c.RecordMoveResult("success")

	c.Reset()

	stats := c.GetStats()
	tools, ok := stats["tools"].(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, tools)
	moves, ok := stats["moves"].(map[string]int64)
	require.True(t, ok)
	assert.Empty(t, moves)
}

func TestCollector_Concurrency(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordToolCall("playMoves", "success", time.Millisecond)
				c.RecordMoveResult("success")
				_ = c.GetStats()
			}
		}()
	}
	wg.Wait()

	stats := c.GetStats()
	tools := stats["tools"].(map[string]interface{})
	playStats := tools["playMoves"].(map[string]interface{})
	assert.Equal(t, int64(1000), playStats["calls"])
}

func TestPrometheusCollector_Singleton(t *testing.T) {
	p1 := NewPrometheusCollector()
	p2 := NewPrometheusCollector()
	assert.Same(t, p1, p2)
}

func TestPrometheusCollector_RecordsWithoutPanic(t *testing.T) {
	p := NewPrometheusCollector()

	p.RecordToolCall("scoreGame", "success", 0.01)
	p.RecordToolCall("scoreGame", "error", 0.02)
	p.RecordMove("success")
	p.RecordMove("suicide")
	p.RecordCaptures("black", 3)
	p.RecordCaptures("white", 0)
	p.RecordScoring("chinese", 0.001)
	p.RecordHTTPRequest("GET", "/health", "200", 0.005)
	p.RecordCacheHit()
	p.RecordCacheMiss()
	p.SetCacheItems(5)
}
