package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vibecheck/internal/models/response_models"
)

type HealthController struct {
	db                   *gorm.DB
	annotationConfigured bool
}

func NewHealthController(db *gorm.DB, annotationConfigured bool) *HealthController {
	return &HealthController{
		db:                   db,
		annotationConfigured: annotationConfigured,
	}
}

// Check godoc
// @Summary Service health
// @Description Reports store connectivity and annotation configuration
// @Tags Health
// @Produce json
// @Success 200 {object} response_models.HealthResponse
// @Failure 503 {object} response_models.HealthResponse
// @Router /health [get]
func (h *HealthController) Check(c *gin.Context) {
	health := response_models.HealthResponse{
		Status: "ok",
		Checks: response_models.HealthChecks{
			Store:      "healthy",
			Annotation: "healthy",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if sqlDB, err := h.db.DB(); err != nil {
		health.Checks.Store = "failed"
		health.Status = "degraded"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		health.Checks.Store = "failed"
		health.Status = "degraded"
	}

	if !h.annotationConfigured {
		health.Checks.Annotation = "misconfigured"
		health.Status = "degraded"
	}

	if health.Status == "ok" {
		c.JSON(http.StatusOK, health)
		return
	}
	c.JSON(http.StatusServiceUnavailable, health)
}
