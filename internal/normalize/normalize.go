// Package normalize turns the raw newline-delimited JSON record stream into
// typed listing rows, applying the field extractors and address resolver to
// every record.
package normalize

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/equipment"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/extract"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

// maxLineSize bounds a single raw JSON line; listing records with full
// equipment lists stay well under this.
const maxLineSize = 1 << 20

// Normalizer reads raw listings and produces typed rows.
type Normalizer struct {
	logger logger.Interface
}

// New creates a new normalizer.
func New(log logger.Interface) *Normalizer {
	return &Normalizer{logger: log}
}

// ReadFile normalizes all records in the NDJSON file at path.
// A missing or unreadable file is fatal for the batch.
func (n *Normalizer) ReadFile(path string) ([]domain.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw listings: %w", err)
	}
	defer f.Close()

	return n.Read(f)
}

// Read normalizes all records from r, one JSON object per line. Malformed
// lines are logged and skipped; the rest of the batch proceeds.
func (n *Normalizer) Read(r io.Reader) ([]domain.Listing, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var listings []domain.Listing
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw domain.RawListing
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			n.logger.Warn("skipping malformed JSON line", "line", lineNo, "error", err)
			continue
		}
		listings = append(listings, Record(raw))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read raw listings: %w", err)
	}

	return listings, nil
}

// Record converts one raw listing into a typed row. Field extraction never
// fails; unparseable values become nulls.
func Record(raw domain.RawListing) domain.Listing {
	addr := extract.ResolveAddress(raw.SellerAddress1, raw.SellerAddress2, raw.SellerType)

	zip := addr.ZipCode
	if zip != "" {
		zip = extract.ZipCode(zip)
	} else {
		zip = zipFromFragments(raw)
	}

	return domain.Listing{
		Manufacturer:          strings.TrimSpace(raw.Manufacturer),
		Car:                   strings.TrimSpace(raw.Car),
		Description:           strings.TrimSpace(raw.Description),
		Price:                 extract.Number(raw.Price),
		LeasePricePerMonth:    extract.Number(raw.LeasePricePerMonth),
		KM:                    extract.Number(raw.KM),
		GearType:              strings.TrimSpace(raw.GearType),
		BuiltIn:               extract.MonthYear(raw.BuiltIn),
		Fuel:                  strings.TrimSpace(raw.Fuel),
		EnginePowerHP:         extract.Horsepower(raw.EnginePower),
		SellerType:            strings.TrimSpace(raw.SellerType),
		BodyType:              strings.TrimSpace(raw.BodyType),
		UsedOrNew:             strings.TrimSpace(raw.UsedOrNew),
		DriveTrain:            strings.TrimSpace(raw.DriveTrain),
		Seats:                 extract.CoerceInt(raw.Seats),
		Doors:                 extract.CoerceInt(raw.Doors),
		PreviousOwners:        extract.CoerceInt(raw.PreviousOwners),
		FullServiceHistory:    serviceHistoryFlag(raw.FullServiceHistory),
		EngineSizeCC:          extract.Number(raw.EngineSize),
		Gears:                 extract.CoerceInt(raw.Gears),
		Cylinders:             extract.CoerceInt(raw.Cylinders),
		EmptyWeightKG:         extract.Number(raw.EmptyWeight),
		EmissionClass:         strings.TrimSpace(raw.EmissionClass),
		FuelConsumptionKMPerL: extract.FuelConsumption(raw.FuelConsumption),
		CO2EmissionGPerKM:     extract.Number(raw.CO2Emission),
		ElectricRange:         extract.Number(raw.ElectricRange),
		CarColor:              strings.TrimSpace(raw.CarColor),
		UpholsteryColor:       strings.TrimSpace(raw.UpholsteryColor),
		Upholstery:            strings.TrimSpace(raw.Upholstery),
		Equipment:             equipment.Encode(raw.Equipment),
		SellerName:            strings.TrimSpace(raw.SellerName),
		ActiveSince:           extract.ActiveSinceYear(raw.ActiveSince),
		SellerAddress:         addr.Display,
		SellerZipCode:         zip,
		SellerCity:            addr.City,
		ListingURL:            strings.TrimSpace(raw.ListingURL),
		Timestamp:             extract.Timestamp(raw.Timestamp),
	}
}

// zipFromFragments falls back to scanning the seller-type-appropriate raw
// fragment for a bare Dutch postal code when the structured address parse
// found nothing.
func zipFromFragments(raw domain.RawListing) string {
	switch strings.TrimSpace(raw.SellerType) {
	case domain.SellerPrivate:
		return extract.ZipCode(raw.SellerAddress1)
	case domain.SellerDealer:
		return extract.ZipCode(raw.SellerAddress2)
	default:
		return ""
	}
}

// serviceHistoryFlag converts the raw "Full service history" text into a
// binary flag: "Yes" -> 1, "No" -> 0, anything else -> null.
func serviceHistoryFlag(text string) *int {
	switch strings.TrimSpace(text) {
	case "Yes":
		return domain.IntPtr(1)
	case "No":
		return domain.IntPtr(0)
	default:
		return nil
	}
}
