package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats accumulates request totals and latency for one route/status
// combination.
type RouteStats struct {
	Count         int64
	TotalDuration time.Duration
}

// Metrics keeps in-process request and error counters, broken down by route.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*RouteStats
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*RouteStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest accumulates one completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &RouteStats{}
		m.requests[key] = stats
	}
	stats.Count++
	stats.TotalDuration += duration
}

// RecordError counts one error response by its domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[routeKey(path, method, code)]++
}

// RequestStats returns a copy of the accumulated stats for one route/status.
func (m *Metrics) RequestStats(path, method string, status int) RouteStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stats, ok := m.requests[routeKey(path, method, strconv.Itoa(status))]; ok {
		return *stats
	}
	return RouteStats{}
}

// ErrorCount returns how often the given error code was recorded for a route.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[routeKey(path, method, code)]
}

func routeKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}
