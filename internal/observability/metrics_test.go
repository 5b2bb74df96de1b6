package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordRequestAccumulates(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/resumes/list", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/resumes/list", "POST", 200, 30*time.Millisecond)
	m.RecordRequest("/resumes/list", "POST", 400, 5*time.Millisecond)

	ok := m.RequestStats("/resumes/list", "POST", 200)
	assert.Equal(t, int64(2), ok.Count)
	assert.Equal(t, 40*time.Millisecond, ok.TotalDuration)

	bad := m.RequestStats("/resumes/list", "POST", 400)
	assert.Equal(t, int64(1), bad.Count)

	assert.Zero(t, m.RequestStats("/positions/list", "POST", 200).Count)
}

func TestRecordErrorCountsByCode(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/auth/login", "POST", "RATE_LIMITED")
	m.RecordError("/auth/login", "POST", "RATE_LIMITED")
	m.RecordError("/auth/login", "POST", "UNAUTHORIZED")

	assert.Equal(t, int64(2), m.ErrorCount("/auth/login", "POST", "RATE_LIMITED"))
	assert.Equal(t, int64(1), m.ErrorCount("/auth/login", "POST", "UNAUTHORIZED"))
	assert.Zero(t, m.ErrorCount("/auth/login", "POST", "NOT_FOUND"))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
}
