package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ridepilot/pkg/logger"
	"ridepilot/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services service.IServiceManager
	log      logger.ILogger
	timeout  time.Duration
}

type loginRequest struct {
	DriverID string `json:"driverId"`
	PIN      string `json:"pin"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver ID and PIN are required"})
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	driver, err := h.services.Driver().Login(ctx, req.DriverID, req.PIN)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "driver": driver})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver ID and PIN are required"})
	case errors.Is(err, service.ErrUnknownDriver):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Driver ID"})
	case errors.Is(err, service.ErrWrongPIN):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid PIN"})
	default:
		h.fail(c, "driver login failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred"})
	}
}

func (h *Handler) AuthByToken(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	driver, err := h.services.Driver().AuthenticateToken(ctx, c.Param("token"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "driver": driver})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	default:
		h.fail(c, "token authentication failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
	}
}

func (h *Handler) RegenerateToken(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	token, err := h.services.Driver().RegenerateToken(ctx, c.Param("driverId"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "newToken": token})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver ID is required"})
	default:
		h.fail(c, "token regeneration failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate token"})
	}
}

func (h *Handler) Projects(c *gin.Context) {
	ctx, cancel := h.context(c)
	defer cancel()

	trips, err := h.services.Trip().ListActive(ctx, c.Param("driverUuid"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"projects": trips})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Driver UUID is required"})
	default:
		h.fail(c, "loading driver projects failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
	}
}

func (h *Handler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	h.log.Error(msg, logger.String("request_id", c.GetString(requestIDKey)), logger.Error(err))
}
