package services

import (
	"math"
	"strings"

	"freight-estimate-service/internal/domain"
)

const (
	volumetricDivisor    = 5000.0
	mountainTerrainRatio = 1.5
	loadPenalty          = 0.25
	dieselPricePerLiter  = 95.0
	tollPerKm            = 2.0
	tollMinDistanceKm    = 100.0
	baseInsuranceRate    = 0.02
	fragileSurcharge     = 0.015
	highValueSurcharge   = 0.025
	overheadRate         = 0.10
)

// mountainKeywords trigger Mountain terrain for the detailed estimator.
var mountainKeywords = []string{
	"ooty", "manali", "shimla", "munnar", "kodaikanal", "darjeeling", "coorg", "mussoorie",
}

// VolumetricWeight returns L*W*H/5000 in kg, or 0 when any dimension is missing.
func VolumetricWeight(c domain.CargoSpec) float64 {
	if !c.HasDimensions() {
		return 0
	}
	return *c.LengthCm * *c.WidthCm * *c.HeightCm / volumetricDivisor
}

// ClassifyTerrain returns the terrain type and fuel factor for a trip.
func ClassifyTerrain(pickupCity, dropCity string) (string, float64) {
	if containsAny(pickupCity, mountainKeywords) || containsAny(dropCity, mountainKeywords) {
		return domain.TerrainMountain, mountainTerrainRatio
	}
	return domain.TerrainPlain, 1.0
}

// SelectVehicle picks the catalog entry for a chargeable weight. Mountain
// terrain always gets the 4x4.
func SelectVehicle(chargeableKg, distanceKm float64, terrain string) domain.VehicleProfile {
	code := domain.VehicleLCV
	switch {
	case terrain == domain.TerrainMountain:
		code = domain.Vehicle4x4
	case chargeableKg > 16000:
		code = domain.VehicleMAT
	case chargeableKg > 7500:
		code = domain.VehicleHDT
	case chargeableKg > 2000:
		code = domain.VehicleMGV
	case chargeableKg > 500 && distanceKm > 150:
		code = domain.VehicleMGV
	}

	v, _ := domain.VehicleByCode(code)
	return v
}

// EstimateCost prices a trip from its route totals and cargo. Inputs are
// assumed valid; see domain.ValidateCargo.
func EstimateCost(
	distanceKm float64,
	durationHours float64,
	cargo domain.CargoSpec,
	pickupCity string,
	dropCity string,
) domain.CostBreakdown {
	volumetric := VolumetricWeight(cargo)
	chargeable := math.Max(cargo.TotalWeightKg, volumetric)

	terrain, terrainFactor := ClassifyTerrain(pickupCity, dropCity)
	vehicle := SelectVehicle(chargeable, distanceKm, terrain)

	loadFactor := 1 + chargeable/float64(vehicle.MaxCapacityKg)*loadPenalty
	consumption := vehicle.FuelConsumptionPer100Km * loadFactor * terrainFactor
	liters := distanceKm / 100 * consumption
	fuel := liters * dieselPricePerLiter

	driver := durationHours * vehicle.DriverHourlyRate

	toll := 0.0
	if distanceKm > tollMinDistanceKm {
		toll = distanceKm * tollPerKm
	}

	maintenance := distanceKm * vehicle.MaintenanceCostPerKm
	subtotal := fuel + driver + toll + maintenance

	rate := baseInsuranceRate
	if cargo.IsFragile {
		rate += fragileSurcharge
	}
	if cargo.IsHighValue {
		rate += highValueSurcharge
	}
	rate = roundTo(rate, 3)

	insurance := subtotal * rate
	overhead := (subtotal + insurance) * overheadRate
	total := subtotal + insurance + overhead

	return domain.CostBreakdown{
		VehicleCode:      vehicle.Code,
		VehicleType:      vehicle.Name,
		ActualWeightKg:   cargo.TotalWeightKg,
		VolumetricWeight: roundTo(volumetric, 2),
		ChargeableWeight: roundTo(chargeable, 2),
		TerrainType:      terrain,
		TerrainFactor:    terrainFactor,
		LoadFactor:       roundTo(loadFactor, 2),
		FuelLiters:       roundTo(liters, 1),
		FuelCost:         math.Round(fuel),
		DriverCost:       math.Round(driver),
		TollCost:         math.Round(toll),
		MaintenanceCost:  math.Round(maintenance),
		Subtotal:         math.Round(subtotal),
		InsuranceRate:    rate,
		InsuranceCost:    math.Round(insurance),
		OverheadCost:     math.Round(overhead),
		TotalCost:        math.Round(total),
	}
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
