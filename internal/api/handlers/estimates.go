package handlers

import (
	"context"
	"errors"
	"net/http"

	"freight-estimate-service/internal/api/dto"
	"freight-estimate-service/internal/domain"
	"freight-estimate-service/internal/platform/obs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Estimator is the service behind POST /estimates.
type Estimator interface {
	Estimate(ctx context.Context, req domain.EstimateRequest) (*domain.Estimate, error)
}

type EstimateHandler struct {
	Estimator Estimator
	Logger    *zap.Logger
}

func (h *EstimateHandler) Create(c *gin.Context) {
	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	est, err := h.Estimator.Estimate(c.Request.Context(), req.ToDomain())
	if err != nil {
		status := statusFor(err)

		var locErr *domain.LocationError
		switch {
		case errors.As(err, &locErr):
			writeError(c, status, locErr.Error())
		case status == http.StatusBadRequest:
			writeError(c, status, err.Error())
		default:
			h.Logger.Error("estimate failed",
				zap.String("req_id", obs.RequestID(c.Request.Context())),
				zap.Error(err),
			)
			writeError(c, status, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewEstimateResponse(est))
}
