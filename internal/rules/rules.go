package rules

import (
	"strings"
	"time"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
)

// canonicalLabels rewrites marketplace labels onto the canonical vocabulary
// used downstream.
type canonicalLabels struct{}

func (r *canonicalLabels) Name() string     { return "canonical_labels" }
func (r *canonicalLabels) Reads() []string  { return []string{"body_type", "fuel"} }
func (r *canonicalLabels) Writes() []string { return []string{"body_type", "fuel"} }

func (r *canonicalLabels) Apply(l *domain.Listing) {
	if l.BodyType == "Off-Road/Pick-up" {
		l.BodyType = "SUV"
	}
	if l.Fuel == "Electric/Gasoline" {
		l.Fuel = domain.FuelHybrid
	}
}

// derivedMetrics computes car age in months and years active on the
// platform from the reference time. Negative ages from clock skew clamp
// to zero; implausible future build dates are handled by the row filter.
type derivedMetrics struct {
	now time.Time
}

func (r *derivedMetrics) Name() string    { return "derived_metrics" }
func (r *derivedMetrics) Reads() []string { return []string{"built_in", "active_since"} }
func (r *derivedMetrics) Writes() []string {
	return []string{"car_age_in_months", "years_active"}
}

func (r *derivedMetrics) Apply(l *domain.Listing) {
	if l.BuiltIn != nil {
		age := (r.now.Year()-l.BuiltIn.Year())*12 + int(r.now.Month()) - int(l.BuiltIn.Month())
		if age < 0 {
			age = 0
		}
		l.CarAgeMonths = domain.IntPtr(age)
	}
	if l.ActiveSince != nil {
		l.YearsActive = domain.IntPtr(r.now.Year() - *l.ActiveSince)
	}
}

// gearTypeForElectric forces the gear type to Automatic for electric
// vehicles; the marketplace frequently mislabels them as Manual.
type gearTypeForElectric struct{}

func (r *gearTypeForElectric) Name() string     { return "gear_type_for_electric" }
func (r *gearTypeForElectric) Reads() []string  { return []string{"fuel"} }
func (r *gearTypeForElectric) Writes() []string { return []string{"gear_type"} }

func (r *gearTypeForElectric) Apply(l *domain.Listing) {
	if l.IsElectric() {
		l.GearType = domain.GearAutomatic
	}
}

// drivetrainInference fills an unknown drivetrain from the free-text
// description, falling back to the dominant layout per fuel type.
type drivetrainInference struct{}

func (r *drivetrainInference) Name() string { return "drivetrain_inference" }
func (r *drivetrainInference) Reads() []string {
	return []string{"drive_train", "description", "fuel"}
}
func (r *drivetrainInference) Writes() []string { return []string{"drive_train"} }

func (r *drivetrainInference) Apply(l *domain.Listing) {
	if l.DriveTrain != "" {
		return
	}
	switch {
	case strings.Contains(l.Description, "AWD") || strings.Contains(l.Description, "4WD"):
		l.DriveTrain = domain.Drivetrain4WD
	case l.IsElectric():
		l.DriveTrain = domain.DrivetrainRear
	default:
		l.DriveTrain = domain.DrivetrainFront
	}
}

// newUsedInference reconciles the used/new tag with age and mileage: a car
// at most a year old with under 1000 km is new regardless of the tag, and
// everything else is used. New cars have zero previous owners.
type newUsedInference struct{}

func (r *newUsedInference) Name() string { return "new_used_inference" }
func (r *newUsedInference) Reads() []string {
	return []string{"used_or_new", "car_age_in_months", "km"}
}
func (r *newUsedInference) Writes() []string {
	return []string{"used_or_new", "previous_owners"}
}

func (r *newUsedInference) Apply(l *domain.Listing) {
	if l.UsedOrNew == domain.ConditionNew {
		l.PreviousOwners = domain.IntPtr(0)
	}

	isNew := l.CarAgeMonths != nil && *l.CarAgeMonths <= 12 &&
		l.KM != nil && *l.KM < 1000
	if isNew {
		l.UsedOrNew = domain.ConditionNew
		l.PreviousOwners = domain.IntPtr(0)
	} else {
		l.UsedOrNew = domain.ConditionUsed
	}
}

// serviceHistoryInference imputes a missing full-service-history flag:
// new vehicles trivially have a complete history, used ones without the
// flag are assumed not to.
type serviceHistoryInference struct{}

func (r *serviceHistoryInference) Name() string { return "service_history_inference" }
func (r *serviceHistoryInference) Reads() []string {
	return []string{"full_service_history", "used_or_new"}
}
func (r *serviceHistoryInference) Writes() []string {
	return []string{"full_service_history"}
}

func (r *serviceHistoryInference) Apply(l *domain.Listing) {
	if l.FullServiceHistory != nil {
		return
	}
	if l.UsedOrNew == domain.ConditionNew {
		l.FullServiceHistory = domain.IntPtr(1)
	} else {
		l.FullServiceHistory = domain.IntPtr(0)
	}
}

// gearCountCorrection collapses known gear-count anomalies. Electric
// vehicles have a single reduction gear; brand- and model-specific
// overrides handle marketplaces reporting wrong counts for particular
// manufacturers; counts implausible for this vehicle class are nulled.
type gearCountCorrection struct{}

func (r *gearCountCorrection) Name() string { return "gear_count_correction" }
func (r *gearCountCorrection) Reads() []string {
	return []string{"gears", "fuel", "manufacturer", "car"}
}
func (r *gearCountCorrection) Writes() []string { return []string{"gears"} }

func (r *gearCountCorrection) Apply(l *domain.Listing) {
	if l.IsElectric() {
		l.Gears = domain.IntPtr(1)
	}

	if override, ok := ManufacturerGearOverrides[l.Manufacturer]; ok {
		l.Gears = overrideValue(override)
	}
	if override, ok := ModelGearOverrides[l.Car]; ok {
		l.Gears = overrideValue(override)
	}

	if l.Gears == nil {
		return
	}
	g := *l.Gears
	switch {
	case g > 8, g >= 2 && g <= 4:
		l.Gears = nil
	case g == 1 && !l.IsElectric() && !OneSpeedHybridManufacturers[l.Manufacturer]:
		l.Gears = nil
	}
}

// emissionCorrection distinguishes genuinely zero emissions from missing
// data: electric vehicles emit zero by definition, while a reported zero on
// anything else means the field was not filled in.
type emissionCorrection struct{}

func (r *emissionCorrection) Name() string { return "emission_correction" }
func (r *emissionCorrection) Reads() []string {
	return []string{"co2_emission_g_per_km", "fuel"}
}
func (r *emissionCorrection) Writes() []string {
	return []string{"co2_emission_g_per_km"}
}

func (r *emissionCorrection) Apply(l *domain.Listing) {
	if l.IsElectric() {
		l.CO2EmissionGPerKM = domain.IntPtr(0)
		return
	}
	if l.CO2EmissionGPerKM != nil && *l.CO2EmissionGPerKM == 0 {
		l.CO2EmissionGPerKM = nil
	}
}

// rangeValidation nulls numeric values outside their plausible range.
// Values are discarded, never clamped to the boundary, and a nulled value
// is never re-derived from the original text.
type rangeValidation struct{}

func (r *rangeValidation) Name() string { return "range_validation" }

func (r *rangeValidation) Reads() []string {
	cols := make([]string, 0, len(intThresholds))
	for _, t := range intThresholds {
		cols = append(cols, t.column)
	}
	return cols
}

func (r *rangeValidation) Writes() []string { return r.Reads() }

func (r *rangeValidation) Apply(l *domain.Listing) {
	for _, t := range intThresholds {
		field := t.field(l)
		if *field != nil && (**field < t.min || **field > t.max) {
			*field = nil
		}
	}
}

// intThresholds is the plausible-range table for numeric columns.
var intThresholds = []struct {
	column   string
	min, max int
	field    func(*domain.Listing) **int
}{
	{"empty_weight_kg", 1000, 3000, func(l *domain.Listing) **int { return &l.EmptyWeightKG }},
	{"km", 0, 400000, func(l *domain.Listing) **int { return &l.KM }},
	{"engine_power_hp", 70, 700, func(l *domain.Listing) **int { return &l.EnginePowerHP }},
	{"engine_size_cc", 600, 8000, func(l *domain.Listing) **int { return &l.EngineSizeCC }},
	{"co2_emission_g_per_km", 0, 300, func(l *domain.Listing) **int { return &l.CO2EmissionGPerKM }},
}

// overrideValue converts a gear override table entry into a column value.
func overrideValue(override int) *int {
	if override == GearInvalid {
		return nil
	}
	return domain.IntPtr(override)
}
