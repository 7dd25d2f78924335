package handlers

import (
	"net/http"

	"freight-estimate-service/internal/api/dto"
	"freight-estimate-service/internal/polyline"

	"github.com/gin-gonic/gin"
)

// DecodePolyline expands an encoded route geometry for map rendering.
func DecodePolyline(c *gin.Context) {
	var req dto.PolylineDecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "geometry is required")
		return
	}

	points, err := polyline.Decode(req.Geometry)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.PolylineDecodeResponse{Points: points})
}
