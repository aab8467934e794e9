package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/xid"

	"lteman/internal/errors"
	"lteman/internal/logger"
)

// requestID assigns a unique ID to every request that lacks one
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = xid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)
			return next(c)
		}
	}
}

// requestLogger is a custom logging middleware
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		entry := logger.WithFields(logger.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"method":     c.Request().Method,
			"path":       c.Request().URL.Path,
			"remote":     c.RealIP(),
			"status":     c.Response().Status,
			"latency":    time.Since(start).String(),
		})

		switch {
		case c.Response().Status >= 500:
			entry.Error("request completed")
		case c.Response().Status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
		return err
	}
}

// ErrorHandler maps typed errors onto HTTP responses
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	if le, ok := err.(*errors.LtemanError); ok {
		code = le.GetHTTPStatus()
		message = le.Error()
	} else if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	} else if err != nil {
		message = err.Error()
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			c.NoContent(code)
		} else {
			c.JSON(code, map[string]interface{}{
				"error":      message,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			})
		}
	}
}
