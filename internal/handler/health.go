package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/arthurazevedods/maker-challenge-server/internal/middleware"
	"github.com/arthurazevedods/maker-challenge-server/internal/model"
	"github.com/arthurazevedods/maker-challenge-server/internal/server"
)

// AckMessage is the body of GET /.
const AckMessage = "Servidor rodando e conectado ao MongoDB!"

// HealthCheckEventType is the New Relic custom event recorded per failed check.
const HealthCheckEventType = "HealthCheckError"

type pingFunc func(ctx context.Context) error

// HealthHandler serves the root acknowledgment and the dependency status.
// A nil ping means the dependency is not configured.
type HealthHandler struct {
	Handler

	pingDatabase pingFunc
	pingRedis    pingFunc
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}

	if s.DB != nil {
		h.pingDatabase = s.DB.Ping
	}
	if s.Redis != nil {
		h.pingRedis = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return h
}

// Ack answers GET / with a static text.
func (h *HealthHandler) Ack(c echo.Context, _ *model.EmptyPayload) (string, error) {
	return AckMessage, nil
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
// - 200 OK when MongoDB answers (Redis failures are reported, not fatal)
// - 503 Service Unavailable when MongoDB does not
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	if cfg.Enabled && cfg.Has("database") {
		if !h.runCheck(c.Request().Context(), &logger, checks, "database", h.pingDatabase, cfg.Timeout) {
			isHealthy = false
		}
	}

	if cfg.Enabled && cfg.Has("redis") && h.pingRedis != nil {
		h.runCheck(c.Request().Context(), &logger, checks, "redis", h.pingRedis, cfg.Timeout)
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// runCheck pings one dependency with its own timeout and stores the result
// under name. It reports whether the dependency answered.
func (h *HealthHandler) runCheck(
	parent context.Context,
	logger *zerolog.Logger,
	checks map[string]interface{},
	name string,
	ping pingFunc,
	timeout time.Duration,
) bool {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()

	var err error
	if ping == nil {
		err = fmt.Errorf("%s is not configured", name)
	} else {
		err = ping(ctx)
	}

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(checkStart).String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(checkStart)).
			Msgf("%s health check failed", name)

		h.recordFailure(map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": time.Since(checkStart).Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": time.Since(checkStart).String(),
	}

	logger.Debug().
		Dur("response_time", time.Since(checkStart)).
		Msgf("%s health check passed", name)

	return true
}

func (h *HealthHandler) recordFailure(attributes map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent(HealthCheckEventType, attributes)
	}
}
