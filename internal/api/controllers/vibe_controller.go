package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/models/request_models"
	"vibecheck/internal/models/response_models"
	"vibecheck/internal/services"
	"vibecheck/pkg/utils"
)

type VibeController struct {
	vibeService services.VibeServiceInterface
}

func NewVibeController(vibeService services.VibeServiceInterface) *VibeController {
	return &VibeController{
		vibeService: vibeService,
	}
}

// AnalyzeVibe godoc
// @Summary Annotate a location with an AI vibe summary
// @Description Calls the generative model and merges the annotation into the record
// @Tags Vibe
// @Accept json
// @Produce json
// @Param request body request_models.AnalyzeVibeRequest true "Annotation request"
// @Success 200 {object} response_models.AnalyzeVibeResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /analyze-vibe [post]
func (v *VibeController) AnalyzeVibe(c *gin.Context) {
	var req request_models.AnalyzeVibeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	annotation, err := v.vibeService.Analyze(c.Request.Context(), req)
	if err != nil {
		// Wire shape is fixed for this endpoint: {"error": ...} with 400/500.
		if errors.Is(err, utils.ErrInvalidAnnotation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response_models.AnalyzeVibeResponse{
		Success: true,
		Data:    annotation,
	})
}
