package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{name: "mileage with separator and unit", text: "12,500 km", want: intPtr(12500)},
		{name: "price with currency", text: "€ 23.950,-", want: intPtr(23950)},
		{name: "plain number", text: "1500", want: intPtr(1500)},
		{name: "no digits", text: "- (Gasoline)", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.text))
		})
	}
}

func TestHorsepower(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{name: "with kw prefix", text: "103 kW (140 hp)", want: intPtr(140)},
		{name: "bare hp", text: "140 hp", want: intPtr(140)},
		{name: "uppercase HP not matched", text: "140 HP", want: nil},
		{name: "no hp marker", text: "103 kW", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Horsepower(tt.text))
		})
	}
}

func TestFuelConsumption(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{name: "converts to km per liter", text: "6.5 l/100km (comb.)", want: floatPtr(15.38)},
		{name: "integer figure", text: "5 l/100km", want: floatPtr(20)},
		{name: "zero means missing", text: "0 l/100km", want: nil},
		{name: "no figure", text: "- (Electric)", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FuelConsumption(tt.text))
		})
	}
}

func TestActiveSinceYear(t *testing.T) {
	assert.Equal(t, intPtr(2015), ActiveSinceYear("Active since 2015"))
	assert.Nil(t, ActiveSinceYear("Active since 2015!"))
	assert.Nil(t, ActiveSinceYear(""))
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, intPtr(5), CoerceInt("5"))
	assert.Equal(t, intPtr(5), CoerceInt("5.0"))
	assert.Equal(t, intPtr(5), CoerceInt(" 5 "))
	assert.Nil(t, CoerceInt("five"))
	assert.Nil(t, CoerceInt(""))
}

func TestMonthYear(t *testing.T) {
	got := MonthYear("03/2021")
	require.NotNil(t, got)
	assert.Equal(t, 2021, got.Year())
	assert.Equal(t, time.March, got.Month())

	assert.Nil(t, MonthYear("2021-03"))
	assert.Nil(t, MonthYear(""))
}

func TestTimestamp(t *testing.T) {
	got := Timestamp("2023-05-14 08:30:00")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, time.May, 14, 8, 30, 0, 0, time.UTC), *got)

	assert.Nil(t, Timestamp("14-05-2023"))
	assert.Nil(t, Timestamp(""))
}

func TestZipCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "with space", text: "1234 AB Amsterdam", want: "1234AB"},
		{name: "lowercase no space", text: "5384da Schaijk", want: "5384DA"},
		{name: "embedded in address", text: "Hoofdstraat 1, 9712 GK Groningen, NL", want: "9712GK"},
		{name: "no code", text: "Amsterdam", want: ""},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ZipCode(tt.text))
		})
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
