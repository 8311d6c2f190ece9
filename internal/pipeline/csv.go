// csv.go implements the on-disk table format shared by the pipeline stages:
// one header row, one row per listing, empty cell = null.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/equipment"
)

// Date layouts used in the output table.
const (
	csvDateLayout      = "2006-01-02"
	csvTimestampLayout = "2006-01-02 15:04:05"
)

// baseColumns is the fixed column order of the output table, before the
// equipment indicator columns.
var baseColumns = []string{
	"manufacturer", "car", "description", "price", "lease_price_per_month",
	"km", "gear_type", "built_in", "car_age_in_months", "fuel",
	"engine_power_hp", "engine_size_cc", "empty_weight_kg",
	"co2_emission_g_per_km", "electric_range", "gears", "cylinders",
	"emission_class", "body_type", "used_or_new", "drive_train",
	"previous_owners", "full_service_history", "car_color",
	"upholstery_color", "upholstery", "seller_type", "seller_name",
	"seller_address", "seller_zip_code", "seller_city", "active_since",
	"years_active", "lon", "lat", "province", "listing_url", "timestamp",
}

// Header returns the full output header: base columns followed by the
// equipment vocabulary in deterministic order.
func Header() []string {
	return append(append([]string{}, baseColumns...), equipment.Columns()...)
}

// WriteCSV writes the listings to path, overwriting any existing file.
func WriteCSV(path string, listings []domain.Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	equipmentCols := equipment.Columns()
	for i := range listings {
		if err := w.Write(row(&listings[i], equipmentCols)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output file: %w", err)
	}
	return nil
}

// ReadCSV reads a table previously written by WriteCSV. The file is our own
// output, so a malformed cell is fatal rather than skipped.
func ReadCSV(path string) ([]domain.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transformed listings: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read transformed listings: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("transformed listings file %s is empty", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}

	listings := make([]domain.Listing, 0, len(records)-1)
	for n, rec := range records[1:] {
		l, parseErr := parseRow(rec, index)
		if parseErr != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, parseErr)
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func row(l *domain.Listing, equipmentCols []string) []string {
	cells := []string{
		l.Manufacturer, l.Car, l.Description,
		formatInt(l.Price), formatInt(l.LeasePricePerMonth), formatInt(l.KM),
		l.GearType, formatDate(l.BuiltIn, csvDateLayout),
		formatInt(l.CarAgeMonths), l.Fuel,
		formatInt(l.EnginePowerHP), formatInt(l.EngineSizeCC),
		formatInt(l.EmptyWeightKG), formatInt(l.CO2EmissionGPerKM),
		formatInt(l.ElectricRange), formatInt(l.Gears), formatInt(l.Cylinders),
		l.EmissionClass, l.BodyType, l.UsedOrNew, l.DriveTrain,
		formatInt(l.PreviousOwners), formatInt(l.FullServiceHistory),
		l.CarColor, l.UpholsteryColor, l.Upholstery,
		l.SellerType, l.SellerName, l.SellerAddress, l.SellerZipCode,
		l.SellerCity, formatInt(l.ActiveSince), formatInt(l.YearsActive),
		formatFloat(l.Longitude), formatFloat(l.Latitude), l.Province,
		l.ListingURL, formatDate(l.Timestamp, csvTimestampLayout),
	}
	for _, col := range equipmentCols {
		cells = append(cells, strconv.Itoa(l.Equipment[col]))
	}
	return cells
}

func parseRow(rec []string, index map[string]int) (domain.Listing, error) {
	cell := func(col string) string {
		if i, ok := index[col]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	l := domain.Listing{
		Manufacturer:    cell("manufacturer"),
		Car:             cell("car"),
		Description:     cell("description"),
		GearType:        cell("gear_type"),
		Fuel:            cell("fuel"),
		EmissionClass:   cell("emission_class"),
		BodyType:        cell("body_type"),
		UsedOrNew:       cell("used_or_new"),
		DriveTrain:      cell("drive_train"),
		CarColor:        cell("car_color"),
		UpholsteryColor: cell("upholstery_color"),
		Upholstery:      cell("upholstery"),
		SellerType:      cell("seller_type"),
		SellerName:      cell("seller_name"),
		SellerAddress:   cell("seller_address"),
		SellerZipCode:   cell("seller_zip_code"),
		SellerCity:      cell("seller_city"),
		Province:        cell("province"),
		ListingURL:      cell("listing_url"),
	}

	var err error
	intFields := []struct {
		col  string
		dest **int
	}{
		{"price", &l.Price}, {"lease_price_per_month", &l.LeasePricePerMonth},
		{"km", &l.KM}, {"car_age_in_months", &l.CarAgeMonths},
		{"engine_power_hp", &l.EnginePowerHP}, {"engine_size_cc", &l.EngineSizeCC},
		{"empty_weight_kg", &l.EmptyWeightKG},
		{"co2_emission_g_per_km", &l.CO2EmissionGPerKM},
		{"electric_range", &l.ElectricRange}, {"gears", &l.Gears},
		{"cylinders", &l.Cylinders}, {"previous_owners", &l.PreviousOwners},
		{"full_service_history", &l.FullServiceHistory},
		{"active_since", &l.ActiveSince}, {"years_active", &l.YearsActive},
	}
	for _, f := range intFields {
		if *f.dest, err = parseIntCell(cell(f.col)); err != nil {
			return l, fmt.Errorf("column %s: %w", f.col, err)
		}
	}

	if l.Longitude, err = parseFloatCell(cell("lon")); err != nil {
		return l, fmt.Errorf("column lon: %w", err)
	}
	if l.Latitude, err = parseFloatCell(cell("lat")); err != nil {
		return l, fmt.Errorf("column lat: %w", err)
	}
	if l.BuiltIn, err = parseDateCell(cell("built_in"), csvDateLayout); err != nil {
		return l, fmt.Errorf("column built_in: %w", err)
	}
	if l.Timestamp, err = parseDateCell(cell("timestamp"), csvTimestampLayout); err != nil {
		return l, fmt.Errorf("column timestamp: %w", err)
	}

	l.Equipment = make(map[string]int, len(equipment.Vocabulary))
	for _, col := range equipment.Columns() {
		if cell(col) == "1" {
			l.Equipment[col] = 1
		} else {
			l.Equipment[col] = 0
		}
	}
	return l, nil
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(v *time.Time, layout string) string {
	if v == nil {
		return ""
	}
	return v.Format(layout)
}

func parseIntCell(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseFloatCell(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseDateCell(s, layout string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
