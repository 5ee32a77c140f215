package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HealthController struct {
	ping func(ctx context.Context) error
	log  zerolog.Logger
}

func NewHealthController(ping func(ctx context.Context) error, log zerolog.Logger) *HealthController {
	return &HealthController{ping: ping, log: log}
}

func (h *HealthController) Alive(c *gin.Context) {
	c.String(http.StatusOK, "Backend is alive")
}

func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
