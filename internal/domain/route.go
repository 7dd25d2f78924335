package domain

// Represents an estimated road route between two coordinates.
// When the routing provider could not be reached the route is a straight-line
// estimate: Approximate is set and Geometry is empty.
type RouteResult struct {
	DistanceKm    float64
	DurationHours float64
	Geometry      string
	Approximate   bool
}

// HasGeometry reports whether an encoded polyline is available for the route.
func (r RouteResult) HasGeometry() bool { return r.Geometry != "" }
