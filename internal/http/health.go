package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// StoreCheck is the outcome of pinging the backing store.
type StoreCheck struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"msg"`
	Time    string      `json:"time"`
	Uptime  string      `json:"uptime"`
	Version string      `json:"version,omitempty"`
	Store   *StoreCheck `json:"store,omitempty"`
}

type HealthController struct {
	store   Pinger
	version string
	started time.Time
}

func NewHealthController(store Pinger, version string) *HealthController {
	return &HealthController{
		store:   store,
		version: version,
		started: time.Now(),
	}
}

// Status answers 200 while the store responds to a ping within
// healthCheckTimeout and 503 otherwise.
func (h *HealthController) Status(c *gin.Context) {
	now := time.Now()
	health := HealthResponse{
		Status:  statusSuccess,
		Message: "healthy",
		Time:    now.UTC().Format(time.RFC3339),
		Uptime:  now.Sub(h.started).Round(time.Second).String(),
		Version: h.version,
	}

	if h.store != nil {
		health.Store = h.checkStore(c.Request.Context())
		if health.Store.Status != "ok" {
			health.Status = statusFailed
			health.Message = "store unreachable"
		}
	}

	statusCode := http.StatusOK
	if health.Status != statusSuccess {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, health)
}

func (h *HealthController) checkStore(ctx context.Context) *StoreCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	check := &StoreCheck{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		check.Status = "unreachable"
		check.Error = err.Error()
	}
	return check
}

func Ping(c *gin.Context) {
	respondSuccess(c, http.StatusOK, "pong", nil)
}
