package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AndrivA89/question-forge/internal/domain"
)

type HealthHandler struct {
	svc CurriculumService
}

func NewHealthHandler(svc CurriculumService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := h.svc.Health(c.Request.Context())
	status := http.StatusOK
	if health.Status != domain.HealthConnected {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
