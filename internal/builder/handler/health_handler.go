package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is ready.
type Check func(ctx context.Context) error

// HealthHandler 健康检查与版本信息
type HealthHandler struct {
	version   string
	buildTime string
	checks    map[string]Check
	sessions  func() int
}

func NewHealthHandler(version string, checks map[string]Check) *HealthHandler {
	return &HealthHandler{version: version, buildTime: "unknown", checks: checks}
}

// WithBuildTime sets the build timestamp reported by /version.
func (h *HealthHandler) WithBuildTime(t string) *HealthHandler {
	h.buildTime = t
	return h
}

// WithSessions reports the number of in-memory build sessions on /health/live.
func (h *HealthHandler) WithSessions(count func() int) *HealthHandler {
	h.sessions = count
	return h
}

// Live GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.sessions != nil {
		body["sessions"] = h.sessions()
	}
	c.JSON(http.StatusOK, body)
}

// Ready GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "unavailable"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}

// Version GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.version,
		"build_time": h.buildTime,
	})
}
