package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Decision metrics
	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signalbot_signals_total",
			Help: "Total number of decisions by outcome and deciding path",
		},
		[]string{"decision", "path"},
	)

	positionSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signalbot_position_size",
			Help:    "Distribution of proposed position sizes",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	// Indicator metrics
	indicatorErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signalbot_indicator_errors_total",
			Help: "Total number of indicator calculation failures",
		},
		[]string{"indicator", "category"},
	)

	// Tuning metrics
	thresholdValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signalbot_threshold_value",
			Help: "Current value of each fusion threshold",
		},
		[]string{"parameter"},
	)

	// Market data metrics
	currentPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signalbot_current_price",
			Help: "Latest close of the evaluated symbol",
		},
		[]string{"symbol"},
	)

	pipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signalbot_pipeline_duration_seconds",
			Help:    "Time spent evaluating one bar window",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(signalsTotal)
	prometheus.MustRegister(positionSize)
	prometheus.MustRegister(indicatorErrors)
	prometheus.MustRegister(thresholdValue)
	prometheus.MustRegister(currentPrice)
	prometheus.MustRegister(pipelineDuration)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSignal counts a decision
func RecordSignal(decision, path string) {
	signalsTotal.WithLabelValues(decision, path).Inc()
}

// RecordPositionSize observes a proposed size
func RecordPositionSize(size float64) {
	positionSize.Observe(size)
}

// RecordIndicatorError counts a failed indicator by error category
func RecordIndicatorError(indicator, category string) {
	indicatorErrors.WithLabelValues(indicator, category).Inc()
}

// UpdateThreshold publishes a threshold value
func UpdateThreshold(parameter string, value float64) {
	thresholdValue.WithLabelValues(parameter).Set(value)
}

// UpdatePrice updates the current price metric
func UpdatePrice(symbol string, price float64) {
	currentPrice.WithLabelValues(symbol).Set(price)
}

// ObservePipeline records how long one evaluation took
func ObservePipeline(d time.Duration) {
	pipelineDuration.Observe(d.Seconds())
}
