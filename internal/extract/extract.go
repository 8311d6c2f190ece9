// Package extract provides pure field extractors that parse a single raw
// text value from a scraped listing into a typed value. Extractors never
// fail: malformed or absent input yields nil.
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	digitsRe     = regexp.MustCompile(`\d+`)
	horsepowerRe = regexp.MustCompile(`(\d+)\s*hp`)
	decimalRe    = regexp.MustCompile(`(\d+(\.\d+)?)`)
	trailingYrRe = regexp.MustCompile(`(\d{4})$`)
	dutchZipRe   = regexp.MustCompile(`(?i)\b\d{4}\s?[A-Za-z]{2}\b`)
)

// Date layouts used by the marketplace.
const (
	layoutMonthYear = "01/2006"
	layoutTimestamp = "2006-01-02 15:04:05"
)

// Number concatenates all digit runs in the text (thousands separators
// stripped first) and parses the result as an integer.
// "12,345 km" -> 12345. Empty input or no digits -> nil.
func Number(text string) *int {
	if text == "" {
		return nil
	}
	digits := digitsRe.FindAllString(strings.ReplaceAll(text, ",", ""), -1)
	if len(digits) == 0 {
		return nil
	}
	n, err := strconv.Atoi(strings.Join(digits, ""))
	if err != nil {
		return nil
	}
	return &n
}

// Horsepower extracts the engine power from text like "140 hp (103 kW)".
// The "hp" literal is matched case-sensitively.
func Horsepower(text string) *int {
	if text == "" {
		return nil
	}
	m := horsepowerRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// FuelConsumption converts a liters-per-100km figure like "6.5 l/100km"
// into kilometers per liter, rounded to two decimals. A missing or zero
// figure yields nil.
func FuelConsumption(text string) *float64 {
	m := decimalRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	litersPer100KM, err := strconv.ParseFloat(m[1], 64)
	if err != nil || litersPer100KM == 0 {
		return nil
	}
	kmPerLiter := math.Round(100/litersPer100KM*100) / 100
	return &kmPerLiter
}

// ActiveSinceYear extracts the trailing 4-digit year from text like
// "Active on AutoScout24 since 2015".
func ActiveSinceYear(text string) *int {
	if text == "" {
		return nil
	}
	m := trailingYrRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &year
}

// CoerceInt parses a plain numeric string permissively: integers parse
// directly, decimal figures are truncated, anything else yields nil.
func CoerceInt(text string) *int {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

// MonthYear parses a build date in "MM/YYYY" form. Unparseable -> nil.
func MonthYear(text string) *time.Time {
	t, err := time.Parse(layoutMonthYear, strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &t
}

// Timestamp parses a capture timestamp in "YYYY-MM-DD HH:MM:SS" form.
// Unparseable -> nil.
func Timestamp(text string) *time.Time {
	t, err := time.Parse(layoutTimestamp, strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &t
}

// ZipCode scans the text for a Dutch postal code ("1234 AB" or "1234ab")
// and returns it normalized: no space, uppercase letters. No match -> "".
func ZipCode(text string) string {
	m := dutchZipRe.FindString(text)
	if m == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(m, " ", ""))
}
