package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker reports the outcome of the most recent evaluation
type HealthChecker struct {
	mu             sync.RWMutex
	lastEvaluation time.Time
	lastDecision   string
	lastPrice      float64
	lastError      string
}

type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	LastEvaluation time.Time `json:"last_evaluation"`
	LastDecision   string    `json:"last_decision,omitempty"`
	LastPrice      float64   `json:"last_price"`
	Uptime         string    `json:"uptime"`
	Error          string    `json:"error,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{}
}

// RecordEvaluation marks a successful evaluation and clears any error
func (h *HealthChecker) RecordEvaluation(decision string, price float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastEvaluation = time.Now()
	h.lastDecision = decision
	h.lastPrice = price
	h.lastError = ""
}

// RecordError marks the last evaluation as failed
func (h *HealthChecker) RecordError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastEvaluation = time.Now()
	h.lastError = err.Error()
}

// Status returns the current health snapshot
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.lastEvaluation.IsZero() {
		status = "degraded"
	}
	if h.lastError != "" {
		status = "unhealthy"
	}
	return HealthStatus{
		Status:         status,
		Timestamp:      time.Now(),
		LastEvaluation: h.lastEvaluation,
		LastDecision:   h.lastDecision,
		LastPrice:      h.lastPrice,
		Uptime:         time.Since(startTime).String(),
		Error:          h.lastError,
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	switch health.Status {
	case "degraded":
		w.WriteHeader(http.StatusServiceUnavailable)
	case "unhealthy":
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}
