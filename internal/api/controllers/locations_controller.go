package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/models/request_models"
	"vibecheck/internal/services"
	"vibecheck/pkg/utils"
)

type LocationsController struct {
	locationService services.LocationServiceInterface
}

func NewLocationsController(locationService services.LocationServiceInterface) *LocationsController {
	return &LocationsController{
		locationService: locationService,
	}
}

// Submit godoc
// @Summary Submit a new location
// @Description Validate, geocode and persist a place, then enrich it asynchronously
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body request_models.CreateLocationRequest true "Location submission payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /locations [post]
func (l *LocationsController) Submit(c *gin.Context) {
	var req request_models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	submitted, err := l.locationService.Submit(c.Request.Context(), req, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, submitted, "Location saved")
}

func (l *LocationsController) GetByID(c *gin.Context) {
	locationID := c.Param("id")
	if locationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Location ID is required")
		return
	}

	location, err := l.locationService.GetLocationByID(locationID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, location, "Location fetched successfully")
}

func (l *LocationsController) List(c *gin.Context) {
	locations, err := l.locationService.ListLocations(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, locations, "Locations fetched successfully")
}

// Leaderboard godoc
// @Summary Top locations by vibe score
// @Tags Locations
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 50)"
// @Success 200 {object} utils.APIResponse
// @Router /locations/leaderboard [get]
func (l *LocationsController) Leaderboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 50 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-50)")
		return
	}

	locations, err := l.locationService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, locations, "Leaderboard fetched successfully")
}

func (l *LocationsController) Similar(c *gin.Context) {
	locationID := c.Param("id")
	if locationID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Location ID is required")
		return
	}

	limitStr := c.DefaultQuery("limit", "5")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 20 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-20)")
		return
	}

	locations, err := l.locationService.SimilarLocations(c.Request.Context(), locationID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, locations, "Similar locations fetched successfully")
}
