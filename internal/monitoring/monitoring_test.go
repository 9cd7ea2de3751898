package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSignal(t *testing.T) {
	before := testutil.ToFloat64(signalsTotal.WithLabelValues("Buy", "rule"))
	RecordSignal("Buy", "rule")
	RecordSignal("Buy", "rule")
	assert.Equal(t, before+2, testutil.ToFloat64(signalsTotal.WithLabelValues("Buy", "rule")))
}

func TestGaugesAndCounters(t *testing.T) {
	UpdateThreshold("rsiThresholdBuy", 29)
	assert.Equal(t, 29.0, testutil.ToFloat64(thresholdValue.WithLabelValues("rsiThresholdBuy")))

	UpdatePrice("BTCUSDT", 50000)
	assert.Equal(t, 50000.0, testutil.ToFloat64(currentPrice.WithLabelValues("BTCUSDT")))

	before := testutil.ToFloat64(indicatorErrors.WithLabelValues("ADX(14)", "INSUFFICIENT_DATA"))
	RecordIndicatorError("ADX(14)", "INSUFFICIENT_DATA")
	assert.Equal(t, before+1, testutil.ToFloat64(indicatorErrors.WithLabelValues("ADX(14)", "INSUFFICIENT_DATA")))
}

func TestMetricsHandler_ExposesMetrics(t *testing.T) {
	RecordPositionSize(0.5)
	ObservePipeline(5 * time.Millisecond)
	RecordSignal("Hold", "model")

	rec := httptest.NewRecorder()
	NewMetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, name := range []string{
		"signalbot_signals_total",
		"signalbot_position_size",
		"signalbot_pipeline_duration_seconds",
	} {
		assert.True(t, strings.Contains(body, name), name)
	}
}

func TestHealthChecker(t *testing.T) {
	h := NewHealthChecker()
	assert.Equal(t, "degraded", h.Status().Status)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.RecordEvaluation("Buy", 50000)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "Buy", status.LastDecision)
	assert.Equal(t, 50000.0, status.LastPrice)

	h.RecordError(errors.New("bybit unavailable"))
	assert.Equal(t, "unhealthy", h.Status().Status)
	assert.Equal(t, "bybit unavailable", h.Status().Error)
}
