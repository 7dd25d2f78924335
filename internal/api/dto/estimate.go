package dto

import "freight-estimate-service/internal/domain"

type CargoRequest struct {
	TotalWeightKg float64  `json:"totalWeight" binding:"gte=0"`
	LengthCm      *float64 `json:"length" binding:"omitempty,gte=0"`
	WidthCm       *float64 `json:"width" binding:"omitempty,gte=0"`
	HeightCm      *float64 `json:"height" binding:"omitempty,gte=0"`
	IsFragile     bool     `json:"isFragile"`
	IsHighValue   bool     `json:"isHighValue"`
}

type EstimateRequest struct {
	Origin            string             `json:"origin"`
	Destination       string             `json:"destination"`
	OriginCity        string             `json:"originCity"`
	DestinationCity   string             `json:"destinationCity"`
	OriginCoords      *domain.Coordinate `json:"originCoords"`
	DestinationCoords *domain.Coordinate `json:"destinationCoords"`
	Cargo             *CargoRequest      `json:"cargo"`
}

// ToDomain maps the wire request onto the service input.
func (r EstimateRequest) ToDomain() domain.EstimateRequest {
	out := domain.EstimateRequest{
		Origin:            r.Origin,
		Destination:       r.Destination,
		OriginCity:        r.OriginCity,
		DestinationCity:   r.DestinationCity,
		OriginCoords:      r.OriginCoords,
		DestinationCoords: r.DestinationCoords,
	}
	if r.Cargo != nil {
		out.Cargo = &domain.CargoSpec{
			TotalWeightKg: r.Cargo.TotalWeightKg,
			LengthCm:      r.Cargo.LengthCm,
			WidthCm:       r.Cargo.WidthCm,
			HeightCm:      r.Cargo.HeightCm,
			IsFragile:     r.Cargo.IsFragile,
			IsHighValue:   r.Cargo.IsHighValue,
		}
	}
	return out
}

type EstimateResponse struct {
	DistanceKm        float64               `json:"distanceKm"`
	DurationHours     float64               `json:"durationHours"`
	RouteGeometry     string                `json:"routeGeometry,omitempty"`
	ApproximateRoute  bool                  `json:"approximateRoute"`
	OriginCoords      domain.Coordinate     `json:"originCoords"`
	DestinationCoords domain.Coordinate     `json:"destinationCoords"`
	VehicleType       string                `json:"vehicleType"`
	DriverExperience  string                `json:"driverExperience"`
	FuelCost          float64               `json:"fuelCost"`
	CostBreakdown     *domain.CostBreakdown `json:"costBreakdown,omitempty"`
}

func NewEstimateResponse(e *domain.Estimate) EstimateResponse {
	return EstimateResponse{
		DistanceKm:        e.DistanceKm,
		DurationHours:     e.DurationHours,
		RouteGeometry:     e.RouteGeometry,
		ApproximateRoute:  e.ApproximateRoute,
		OriginCoords:      e.OriginCoords,
		DestinationCoords: e.DestinationCoords,
		VehicleType:       e.VehicleType,
		DriverExperience:  e.DriverExperience,
		FuelCost:          e.FuelCost,
		CostBreakdown:     e.CostBreakdown,
	}
}

type SuggestionRequest struct {
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	DistanceKm  *float64 `json:"distanceKm" binding:"required,gte=0"`
}

type PolylineDecodeRequest struct {
	Geometry string `json:"geometry" binding:"required"`
}

type PolylineDecodeResponse struct {
	Points []domain.Coordinate `json:"points"`
}
