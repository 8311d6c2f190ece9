// Package domain contains the core data model for the car listing pipeline.
package domain

import "time"

// Seller types as reported by the marketplace.
const (
	SellerPrivate = "Private seller"
	SellerDealer  = "Dealer"
)

// Fuel and categorical labels referenced by pipeline rules.
const (
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"

	GearAutomatic = "Automatic"

	ConditionNew  = "New"
	ConditionUsed = "Used"

	DrivetrainFront = "Front"
	DrivetrainRear  = "Rear"
	Drivetrain4WD   = "4WD"
)

// RawListing is one scraped car advertisement as emitted by the crawler.
// Every field is free text and may be absent; nothing is pre-validated.
type RawListing struct {
	Manufacturer       string   `json:"manufacturer"`
	Car                string   `json:"car"`
	Description        string   `json:"description"`
	Price              string   `json:"price"`
	LeasePricePerMonth string   `json:"lease_price_per_month"`
	KM                 string   `json:"km"`
	GearType           string   `json:"gear_type"`
	BuiltIn            string   `json:"built_in"`
	Fuel               string   `json:"fuel"`
	EnginePower        string   `json:"engine_power"`
	SellerType         string   `json:"seller_type"`
	BodyType           string   `json:"body_type"`
	UsedOrNew          string   `json:"used_or_new"`
	DriveTrain         string   `json:"drive_train"`
	Seats              string   `json:"seats"`
	Doors              string   `json:"doors"`
	PreviousOwners     string   `json:"previous_owners"`
	FullServiceHistory string   `json:"full_service_history"`
	NonSmoker          string   `json:"non-smoker"`
	EngineSize         string   `json:"engine_size"`
	Gears              string   `json:"gears"`
	Cylinders          string   `json:"cylinders"`
	EmptyWeight        string   `json:"empty_weight"`
	EmissionClass      string   `json:"emission_class"`
	FuelConsumption    string   `json:"fuel_consumption"`
	CO2Emission        string   `json:"co2_emission"`
	ElectricRange      string   `json:"electric_range"`
	CarColor           string   `json:"car_color"`
	ManufacturerColor  string   `json:"manufacturer_color"`
	Paint              string   `json:"paint"`
	UpholsteryColor    string   `json:"upholstery_color"`
	Upholstery         string   `json:"upholstery"`
	Equipment          []string `json:"equipment"`
	SellerName         string   `json:"seller_name"`
	ActiveSince        string   `json:"active_since"`
	SellerAddress1     string   `json:"seller_address_1"`
	SellerAddress2     string   `json:"seller_address_2"`
	ListingURL         string   `json:"listing_url"`
	Timestamp          string   `json:"timestamp"`
}

// Listing is one typed row of the output table. Nullable numeric and date
// columns use pointers; for text columns the empty string means missing.
type Listing struct {
	Manufacturer          string
	Car                   string
	Description           string
	Price                 *int
	LeasePricePerMonth    *int
	KM                    *int
	GearType              string
	BuiltIn               *time.Time
	Fuel                  string
	EnginePowerHP         *int
	SellerType            string
	BodyType              string
	UsedOrNew             string
	DriveTrain            string
	Seats                 *int
	Doors                 *int
	PreviousOwners        *int
	FullServiceHistory    *int
	EngineSizeCC          *int
	Gears                 *int
	Cylinders             *int
	EmptyWeightKG         *int
	EmissionClass         string
	FuelConsumptionKMPerL *float64
	CO2EmissionGPerKM     *int
	ElectricRange         *int
	CarColor              string
	UpholsteryColor       string
	Upholstery            string
	Equipment             map[string]int
	SellerName            string
	ActiveSince           *int
	SellerAddress         string
	SellerZipCode         string
	SellerCity            string
	CarAgeMonths          *int
	YearsActive           *int
	Longitude             *float64
	Latitude              *float64
	Province              string
	ListingURL            string
	Timestamp             *time.Time
}

// IsElectric reports whether the listing's fuel type is electric.
func (l *Listing) IsElectric() bool {
	return l.Fuel == FuelElectric
}

// RowKey is the natural key identifying one real-world observation of a
// listing. Rows sharing a key are duplicates; the latest timestamp wins.
type RowKey struct {
	KM         int
	Price      int
	Car        string
	ListingURL string
}

// Key builds the deduplication key for the listing. Null km or price are
// folded to -1 so that rows with missing key fields never collide with
// real observations.
func (l *Listing) Key() RowKey {
	k := RowKey{KM: -1, Price: -1, Car: l.Car, ListingURL: l.ListingURL}
	if l.KM != nil {
		k.KM = *l.KM
	}
	if l.Price != nil {
		k.Price = *l.Price
	}
	return k
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// TimePtr returns a pointer to v.
func TimePtr(v time.Time) *time.Time { return &v }
