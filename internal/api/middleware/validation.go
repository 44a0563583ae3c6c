package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resume-extract/internal/config"
	"resume-extract/pkg/models"
	"resume-extract/pkg/utils"
)

// RequestValidation tags every request with an ID and rejects uploads larger
// than the configured maximum before any extraction work starts.
func RequestValidation(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			if c.Request().Method == http.MethodPost {
				contentLength := c.Request().ContentLength
				if contentLength > cfg.Extractor.MaxFileSize {
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Message:   "Uploaded file exceeds the maximum allowed size",
						RequestID: requestID,
						Timestamp: time.Now(),
					})
				}
			}

			return next(c)
		}
	}
}
