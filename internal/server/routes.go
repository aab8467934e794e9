package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lteman/internal/errors"
	"lteman/internal/netif"
	"lteman/internal/operations"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.handleHealth)

	api := s.echo.Group("/api")
	api.GET("/status", s.handleStatus)
	api.POST("/core-network", s.handleCoreNetwork)

	events := api.Group("/events")
	events.POST("/config-changed", s.handleEvent(operations.EventConfigChanged))
	events.POST("/update-status", s.handleEvent(operations.EventUpdateStatus))

	actions := api.Group("/actions")
	actions.POST("/attach-ue", s.handleAttachUE)
	actions.POST("/detach-ue", s.handleDetachUE)
	actions.POST("/remove-default-gw", s.handleRemoveDefaultGW)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).String(),
	})
}

func (s *Server) handleStatus(c echo.Context) error {
	status, err := s.ops.Status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (s *Server) handleCoreNetwork(c echo.Context) error {
	var req CoreAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !netif.IsIPv4(req.Address) {
		return errors.InvalidAddress(req.Address)
	}

	err := s.ops.Dispatch(c.Request().Context(), operations.Trigger{
		Event:   operations.EventCoreAddressChanged,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "ok"})
}

func (s *Server) handleEvent(event operations.Event) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.ops.Dispatch(c.Request().Context(), operations.Trigger{Event: event}); err != nil {
			return err
		}
		return c.JSON(http.StatusAccepted, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleAttachUE(c echo.Context) error {
	var req AttachRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.ops.AttachUE(c.Request().Context(), req.IMSI, req.K, req.OPC)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleDetachUE(c echo.Context) error {
	result, err := s.ops.DetachUE(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleRemoveDefaultGW(c echo.Context) error {
	result, err := s.ops.RemoveDefaultGW(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
