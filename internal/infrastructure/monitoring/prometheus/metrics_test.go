package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppMetrics_CountersWork(t *testing.T) {
	m := NewAppMetrics(NewCollector(CollectorConfig{Namespace: "adr"}))

	m.ObserveMentionOutcome("matched")
	m.ObserveMentionOutcome("matched")
	m.ObserveMentionOutcome("garbage")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.NormalizationMentionsTotal.WithLabelValues("matched")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.NormalizationMentionsTotal.WithLabelValues("garbage")))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := NewAppMetrics(NewCollector(CollectorConfig{Namespace: "adr"}))

	m.ObserveHTTPRequest("GET", "/api/v1/analytics/top-adrs", "200", 25*time.Millisecond)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/analytics/top-adrs", "200")))
}

func TestRegisterCounter_Idempotent(t *testing.T) {
	c := NewCollector(CollectorConfig{Namespace: "adr"})
	first := c.RegisterCounter("dup_total", "x", "l")
	second := c.RegisterCounter("dup_total", "x", "l")
	assert.Same(t, first, second)
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	c := NewCollector(CollectorConfig{Namespace: "adr"})
	m := NewAppMetrics(c)
	m.ObserveMentionOutcome("matched")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "adr_normalization_mentions_total"))
}
