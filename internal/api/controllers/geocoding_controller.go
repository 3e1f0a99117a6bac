package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/models/response_models"
	"vibecheck/internal/services"
	"vibecheck/pkg/utils"
)

type GeocodingController struct {
	geocoder services.GeocodingServiceInterface
}

func NewGeocodingController(geocoder services.GeocodingServiceInterface) *GeocodingController {
	return &GeocodingController{
		geocoder: geocoder,
	}
}

func (g *GeocodingController) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	suggestions, err := g.geocoder.Suggest(c.Request.Context(), query)
	if err != nil {
		// The UI treats transport failures the same as zero results.
		utils.RespondSuccess(c, []response_models.Suggestion{}, "No suggestions available")
		return
	}

	utils.RespondSuccess(c, suggestions, "Suggestions fetched successfully")
}

func (g *GeocodingController) Resolve(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter address is required")
		return
	}

	coords, err := g.geocoder.Resolve(c.Request.Context(), address)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if coords == nil {
		utils.RespondError(c, http.StatusNotFound, "Address could not be resolved")
		return
	}

	utils.RespondSuccess(c, coords, "Address resolved successfully")
}
