package domain

// Vehicle class codes of the fixed catalog.
const (
	VehicleLCV      = "LCV"
	VehicleMGV      = "MGV"
	VehicleHDT      = "HDT"
	VehicleMAT      = "MAT"
	Vehicle4x4      = "4x4"
	TerrainPlain    = "Plain"
	TerrainMountain = "Mountain"
)

// Static reference data for a vehicle class.
type VehicleProfile struct {
	Code                    string
	Name                    string
	MaxCapacityKg           int
	FuelConsumptionPer100Km float64
	MaintenanceCostPerKm    float64
	DriverHourlyRate        float64
}

var vehicleCatalog = []VehicleProfile{
	{Code: VehicleLCV, Name: "Light Commercial Vehicle", MaxCapacityKg: 2000, FuelConsumptionPer100Km: 12, MaintenanceCostPerKm: 3, DriverHourlyRate: 150},
	{Code: VehicleMGV, Name: "Medium Goods Vehicle", MaxCapacityKg: 7500, FuelConsumptionPer100Km: 20, MaintenanceCostPerKm: 5, DriverHourlyRate: 200},
	{Code: VehicleHDT, Name: "Heavy Duty Truck", MaxCapacityKg: 16000, FuelConsumptionPer100Km: 30, MaintenanceCostPerKm: 7.5, DriverHourlyRate: 250},
	{Code: VehicleMAT, Name: "Multi-Axle Trailer", MaxCapacityKg: 25000, FuelConsumptionPer100Km: 38, MaintenanceCostPerKm: 10, DriverHourlyRate: 300},
	{Code: Vehicle4x4, Name: "4x4 Cargo Truck", MaxCapacityKg: 3000, FuelConsumptionPer100Km: 18, MaintenanceCostPerKm: 6, DriverHourlyRate: 250},
}

// Vehicles returns a copy of the catalog in ascending capacity order, 4x4 last.
func Vehicles() []VehicleProfile {
	out := make([]VehicleProfile, len(vehicleCatalog))
	copy(out, vehicleCatalog)
	return out
}

// VehicleByCode looks up a catalog entry.
func VehicleByCode(code string) (VehicleProfile, bool) {
	for _, v := range vehicleCatalog {
		if v.Code == code {
			return v, true
		}
	}
	return VehicleProfile{}, false
}
