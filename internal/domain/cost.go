package domain

// Itemized output of the detailed cost estimator. Money is in whole currency
// units, FuelLiters has one decimal and LoadFactor two.
type CostBreakdown struct {
	VehicleCode      string  `json:"vehicleCode"`
	VehicleType      string  `json:"vehicleType"`
	ActualWeightKg   float64 `json:"actualWeightKg"`
	VolumetricWeight float64 `json:"volumetricWeightKg"`
	ChargeableWeight float64 `json:"chargeableWeightKg"`
	TerrainType      string  `json:"terrainType"`
	TerrainFactor    float64 `json:"terrainFactor"`
	LoadFactor       float64 `json:"loadFactor"`
	FuelLiters       float64 `json:"fuelLiters"`
	FuelCost         float64 `json:"fuelCost"`
	DriverCost       float64 `json:"driverCost"`
	TollCost         float64 `json:"tollCost"`
	MaintenanceCost  float64 `json:"maintenanceCost"`
	Subtotal         float64 `json:"subtotal"`
	InsuranceRate    float64 `json:"insuranceRate"`
	InsuranceCost    float64 `json:"insuranceCost"`
	OverheadCost     float64 `json:"overheadCost"`
	TotalCost        float64 `json:"totalCost"`
}

// Coarse trip suggestion produced by the distance-band heuristic.
type Suggestion struct {
	ExperienceTier string  `json:"driverExperience"`
	VehicleType    string  `json:"vehicleType"`
	RatePerKm      float64 `json:"ratePerKm"`
	FuelCost       float64 `json:"fuelCost"`
	Mountain       bool    `json:"mountain"`
}
