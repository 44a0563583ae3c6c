package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resume-extract/internal/extractor/workers"
	"resume-extract/internal/llm"
	"resume-extract/internal/logging"
	"resume-extract/pkg/models"
	"resume-extract/pkg/utils"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	requestID := utils.GenerateRequestID()
	logger := logging.GetGlobalLogger()

	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the pipeline components can take traffic.
// A degraded LLM provider does not make the service unready because the
// rule-based fallback still serves requests.
func ReadinessHandler(poolManager *workers.PoolManager, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}
		status := "ready"
		httpStatus := http.StatusOK

		if poolManager.IsHealthy() {
			checks["workers"] = "ok"
		} else {
			checks["workers"] = "unavailable"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		// A degraded provider is re-probed here so a recovered upstream
		// flips the manager back to healthy without a restart.
		if llmManager.IsHealthy() {
			checks["llm"] = "ok"
		} else if err := llmManager.CheckHealth(c.Request().Context()); err == nil {
			checks["llm"] = "ok"
		} else {
			checks["llm"] = "degraded"
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(httpStatus, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status
func StatusHandler(poolManager *workers.PoolManager, llmManager *llm.Manager, redisClient *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "operational"}

		if poolManager.IsHealthy() {
			checks["workers"] = "operational"
		} else {
			checks["workers"] = "down"
		}

		if llmManager.IsHealthy() {
			checks["llm"] = llmManager.GetProviderName()
		} else {
			checks["llm"] = "degraded"
		}

		if redisClient != nil {
			if err := redisClient.IsHealthy(c.Request().Context()); err != nil {
				checks["cache"] = "unreachable"
			} else {
				checks["cache"] = "operational"
			}
		} else {
			checks["cache"] = "disabled"
		}

		response := models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(http.StatusOK, response)
	}
}
