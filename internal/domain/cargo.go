package domain

import "fmt"

// Describes the shipment being quoted. Dimensions are in centimetres and
// optional; volumetric weight is only derived when all three are present.
type CargoSpec struct {
	TotalWeightKg float64  `json:"totalWeightKg" validate:"gte=0"`
	LengthCm      *float64 `json:"length,omitempty" validate:"omitempty,gte=0"`
	WidthCm       *float64 `json:"width,omitempty" validate:"omitempty,gte=0"`
	HeightCm      *float64 `json:"height,omitempty" validate:"omitempty,gte=0"`
	IsFragile     bool     `json:"isFragile"`
	IsHighValue   bool     `json:"isHighValue"`
}

// HasDimensions reports whether length, width and height are all known.
func (c CargoSpec) HasDimensions() bool {
	return c.LengthCm != nil && c.WidthCm != nil && c.HeightCm != nil
}

// ValidateCargo rejects negative weights and dimensions.
func ValidateCargo(c CargoSpec) error {
	if c.TotalWeightKg < 0 {
		return fmt.Errorf("%w: total weight must be non-negative, got %v", ErrInvalidInput, c.TotalWeightKg)
	}

	dims := []struct {
		name string
		v    *float64
	}{{"length", c.LengthCm}, {"width", c.WidthCm}, {"height", c.HeightCm}}
	for _, d := range dims {
		if d.v != nil && *d.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidInput, d.name, *d.v)
		}
	}

	return nil
}
