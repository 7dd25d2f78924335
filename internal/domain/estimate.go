package domain

// Input of a full estimate. Either the free-text location or explicit
// coordinates must be given for each end of the trip.
type EstimateRequest struct {
	Origin            string      `validate:"required_without=OriginCoords"`
	Destination       string      `validate:"required_without=DestinationCoords"`
	OriginCity        string      `validate:"omitempty,max=200"`
	DestinationCity   string      `validate:"omitempty,max=200"`
	OriginCoords      *Coordinate `validate:"omitempty"`
	DestinationCoords *Coordinate `validate:"omitempty"`
	Cargo             *CargoSpec  `validate:"omitempty"`
}

// Result of a full estimate. CostBreakdown is nil when no cargo was given.
type Estimate struct {
	DistanceKm        float64
	DurationHours     float64
	RouteGeometry     string
	ApproximateRoute  bool
	OriginCoords      Coordinate
	DestinationCoords Coordinate
	VehicleType       string
	DriverExperience  string
	FuelCost          float64
	CostBreakdown     *CostBreakdown
	Suggestion        Suggestion
}
