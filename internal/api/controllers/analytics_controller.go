package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/models/request_models"
	"vibecheck/internal/services"
	"vibecheck/pkg/utils"
)

type AnalyticsController struct {
	analyticsService services.AnalyticsServiceInterface
}

func NewAnalyticsController(analyticsService services.AnalyticsServiceInterface) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// RecordEvent accepts a client analytics event. The sink is fire-and-forget:
// the request is acknowledged as soon as the payload parses.
func (a *AnalyticsController) RecordEvent(c *gin.Context) {
	var req request_models.AnalyticsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")
	go a.analyticsService.RecordEvent(req.EventType, req.LocationID, req.LocationName, userID, req.Metadata)

	c.JSON(http.StatusAccepted, utils.APIResponse{
		Status: "success",
		Code:   http.StatusAccepted,
	})
}
