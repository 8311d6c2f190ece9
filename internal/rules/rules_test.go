package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

var testNow = time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)

func applyAll(t *testing.T, l *domain.Listing) {
	t.Helper()
	batch := []domain.Listing{*l}
	NewEngineAt(logger.NewNoop(), testNow).Apply(batch)
	*l = batch[0]
}

func TestCanonicalLabels(t *testing.T) {
	l := domain.Listing{BodyType: "Off-Road/Pick-up", Fuel: "Electric/Gasoline"}
	(&canonicalLabels{}).Apply(&l)

	assert.Equal(t, "SUV", l.BodyType)
	assert.Equal(t, domain.FuelHybrid, l.Fuel)
}

func TestDerivedMetrics(t *testing.T) {
	built := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := domain.Listing{
		BuiltIn:     &built,
		ActiveSince: domain.IntPtr(2015),
	}
	(&derivedMetrics{now: testNow}).Apply(&l)

	require.NotNil(t, l.CarAgeMonths)
	assert.Equal(t, 27, *l.CarAgeMonths)
	require.NotNil(t, l.YearsActive)
	assert.Equal(t, 8, *l.YearsActive)
}

func TestDerivedMetricsClampsNegativeAge(t *testing.T) {
	built := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
	l := domain.Listing{BuiltIn: &built}
	(&derivedMetrics{now: testNow}).Apply(&l)

	require.NotNil(t, l.CarAgeMonths)
	assert.Equal(t, 0, *l.CarAgeMonths)
}

func TestDrivetrainInference(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Listing
		want string
	}{
		{name: "explicit value kept", in: domain.Listing{DriveTrain: domain.DrivetrainRear}, want: domain.DrivetrainRear},
		{name: "awd in description", in: domain.Listing{Description: "Quattro AWD, full options"}, want: domain.Drivetrain4WD},
		{name: "electric defaults to rear", in: domain.Listing{Fuel: domain.FuelElectric}, want: domain.DrivetrainRear},
		{name: "everything else front", in: domain.Listing{Fuel: "Gasoline"}, want: domain.DrivetrainFront},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			(&drivetrainInference{}).Apply(&tt.in)
			assert.Equal(t, tt.want, tt.in.DriveTrain)
		})
	}
}

func TestNewUsedInference(t *testing.T) {
	young := domain.Listing{
		UsedOrNew:      "Used",
		CarAgeMonths:   domain.IntPtr(6),
		KM:             domain.IntPtr(250),
		PreviousOwners: domain.IntPtr(1),
	}
	(&newUsedInference{}).Apply(&young)
	assert.Equal(t, domain.ConditionNew, young.UsedOrNew)
	assert.Equal(t, domain.IntPtr(0), young.PreviousOwners)

	old := domain.Listing{UsedOrNew: "New", CarAgeMonths: domain.IntPtr(30), KM: domain.IntPtr(45000)}
	(&newUsedInference{}).Apply(&old)
	assert.Equal(t, domain.ConditionUsed, old.UsedOrNew)
	assert.Equal(t, domain.IntPtr(0), old.PreviousOwners)

	unknownAge := domain.Listing{UsedOrNew: "Used", KM: domain.IntPtr(500)}
	(&newUsedInference{}).Apply(&unknownAge)
	assert.Equal(t, domain.ConditionUsed, unknownAge.UsedOrNew)
}

func TestServiceHistoryInference(t *testing.T) {
	newCar := domain.Listing{UsedOrNew: domain.ConditionNew}
	(&serviceHistoryInference{}).Apply(&newCar)
	assert.Equal(t, domain.IntPtr(1), newCar.FullServiceHistory)

	usedCar := domain.Listing{UsedOrNew: domain.ConditionUsed}
	(&serviceHistoryInference{}).Apply(&usedCar)
	assert.Equal(t, domain.IntPtr(0), usedCar.FullServiceHistory)

	reported := domain.Listing{UsedOrNew: domain.ConditionUsed, FullServiceHistory: domain.IntPtr(1)}
	(&serviceHistoryInference{}).Apply(&reported)
	assert.Equal(t, domain.IntPtr(1), reported.FullServiceHistory)
}

func TestGearCountCorrection(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Listing
		want *int
	}{
		{name: "volvo 8 speed kept", in: domain.Listing{Manufacturer: "Volvo", Gears: domain.IntPtr(8)}, want: domain.IntPtr(8)},
		{name: "bmw 8 speed discarded", in: domain.Listing{Manufacturer: "BMW", Gears: domain.IntPtr(8)}, want: nil},
		{name: "formentor forced to 7", in: domain.Listing{Manufacturer: "Cupra", Car: "Formentor", Gears: domain.IntPtr(6)}, want: domain.IntPtr(7)},
		{name: "three gears implausible", in: domain.Listing{Manufacturer: "Volvo", Gears: domain.IntPtr(3)}, want: nil},
		{name: "nine gears implausible", in: domain.Listing{Manufacturer: "Volvo", Gears: domain.IntPtr(9)}, want: nil},
		{name: "electric forced to one", in: domain.Listing{Manufacturer: "Tesla", Fuel: domain.FuelElectric, Gears: domain.IntPtr(6)}, want: domain.IntPtr(1)},
		{name: "single gear dropped for plain combustion", in: domain.Listing{Manufacturer: "Volvo", Fuel: "Gasoline", Gears: domain.IntPtr(1)}, want: nil},
		{name: "single gear kept for toyota hybrid", in: domain.Listing{Manufacturer: "Toyota", Fuel: domain.FuelHybrid, Gears: domain.IntPtr(1)}, want: domain.IntPtr(1)},
		{name: "missing stays missing", in: domain.Listing{Manufacturer: "Volvo"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			(&gearCountCorrection{}).Apply(&tt.in)
			assert.Equal(t, tt.want, tt.in.Gears)
		})
	}
}

func TestEmissionCorrection(t *testing.T) {
	electric := domain.Listing{Fuel: domain.FuelElectric}
	(&emissionCorrection{}).Apply(&electric)
	assert.Equal(t, domain.IntPtr(0), electric.CO2EmissionGPerKM)

	zeroReported := domain.Listing{Fuel: "Gasoline", CO2EmissionGPerKM: domain.IntPtr(0)}
	(&emissionCorrection{}).Apply(&zeroReported)
	assert.Nil(t, zeroReported.CO2EmissionGPerKM)

	real := domain.Listing{Fuel: "Gasoline", CO2EmissionGPerKM: domain.IntPtr(120)}
	(&emissionCorrection{}).Apply(&real)
	assert.Equal(t, domain.IntPtr(120), real.CO2EmissionGPerKM)
}

func TestRangeValidation(t *testing.T) {
	l := domain.Listing{
		EmptyWeightKG:     domain.IntPtr(900),
		KM:                domain.IntPtr(450000),
		EnginePowerHP:     domain.IntPtr(231),
		EngineSizeCC:      domain.IntPtr(50),
		CO2EmissionGPerKM: domain.IntPtr(301),
	}
	(&rangeValidation{}).Apply(&l)

	assert.Nil(t, l.EmptyWeightKG)
	assert.Nil(t, l.KM)
	assert.Nil(t, l.EngineSizeCC)
	assert.Nil(t, l.CO2EmissionGPerKM)
	assert.Equal(t, domain.IntPtr(231), l.EnginePowerHP)
}

func TestRangeValidationIdempotent(t *testing.T) {
	l := domain.Listing{KM: domain.IntPtr(399999), EnginePowerHP: domain.IntPtr(70)}
	r := &rangeValidation{}
	r.Apply(&l)
	first := l
	r.Apply(&l)

	assert.Equal(t, first, l)
}

// An electric listing run through the whole sequence: the gear type is
// forced to Automatic, the zero emission survives range validation, and
// the single reduction gear is kept.
func TestEngineElectricEndToEnd(t *testing.T) {
	built := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	l := domain.Listing{
		Manufacturer: "Audi",
		Car:          "Q4 e-tron",
		Fuel:         domain.FuelElectric,
		GearType:     "Manual",
		BuiltIn:      &built,
		KM:           domain.IntPtr(30000),
		Gears:        domain.IntPtr(6),
	}
	applyAll(t, &l)

	assert.Equal(t, domain.GearAutomatic, l.GearType)
	assert.Equal(t, domain.IntPtr(0), l.CO2EmissionGPerKM)
	assert.Equal(t, domain.IntPtr(1), l.Gears)
	assert.Equal(t, domain.DrivetrainRear, l.DriveTrain)
	assert.Equal(t, domain.ConditionUsed, l.UsedOrNew)
	require.NotNil(t, l.CarAgeMonths)
	assert.Equal(t, 17, *l.CarAgeMonths)
}

func TestRulesDeclareReadsAndWrites(t *testing.T) {
	for _, r := range NewEngineAt(logger.NewNoop(), testNow).Rules() {
		assert.NotEmpty(t, r.Name())
		assert.NotEmpty(t, r.Reads(), r.Name())
		assert.NotEmpty(t, r.Writes(), r.Name())
	}
}
