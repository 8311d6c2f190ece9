package rules

// GearInvalid marks a gear override that discards the reported count
// instead of replacing it.
const GearInvalid = 0

// ManufacturerGearOverrides maps manufacturers with known-bad gear-count
// reporting to a corrected value, or GearInvalid to null the column.
// Lookup is an exact match on the manufacturer name.
var ManufacturerGearOverrides = map[string]int{
	// BMW listings in this market segment report phantom 8-speed boxes.
	"BMW": GearInvalid,
}

// ModelGearOverrides maps specific model names to a corrected gear count.
// Model overrides are applied after manufacturer overrides.
var ModelGearOverrides = map[string]int{
	// Formentor is only sold here with the 7-speed DSG.
	"Formentor": 7,
}

// OneSpeedHybridManufacturers lists manufacturers whose hybrids use a
// planetary (e-CVT) transmission reported as a single gear; for these a
// gear count of exactly 1 is legitimate on non-electric vehicles.
var OneSpeedHybridManufacturers = map[string]bool{
	"Honda":  true,
	"Lexus":  true,
	"Toyota": true,
}
