package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HealthHandler reports liveness plus the state of external dependencies.
type HealthHandler struct {
	Redis *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{Redis: redisClient}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	redisOK := h.Redis != nil && h.Redis.Ping(ctx).Err() == nil
	status := http.StatusOK
	if !redisOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"redis":     redisOK,
		"checkedAt": time.Now(),
	})
}
