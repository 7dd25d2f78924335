package handlers

import (
	"net/http"

	"freight-estimate-service/internal/api/dto"
	"freight-estimate-service/internal/services"

	"github.com/gin-gonic/gin"
)

// Suggest returns the distance-band heuristic for a known trip length.
func Suggest(c *gin.Context) {
	var req dto.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "origin, destination and a non-negative distanceKm are required")
		return
	}

	c.JSON(http.StatusOK, services.SuggestTrip(req.Origin, req.Destination, *req.DistanceKm))
}
