// Package filter drops rows that cannot be trusted and deduplicates
// repeated observations of the same listing. Stages run in a fixed order:
// required-field drop, categorical exclusion drop, duplicate drop — later
// stages rely on the guarantees of earlier ones.
package filter

import (
	"sort"
	"time"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

// Exclusion tables. These are data, not law: extend them without touching
// the filter logic.
var (
	// ExcludedGearTypes drops gearbox labels with too few trustworthy rows.
	ExcludedGearTypes = map[string]bool{
		"Semi-automatic": true,
	}

	// ExcludedFuels drops fuel labels known to be data-entry errors.
	ExcludedFuels = map[string]bool{
		"Electric/Diesel": true,
	}

	// RetiredEmissionClasses drops classes no longer sold new in this market.
	RetiredEmissionClasses = map[string]bool{
		"Euro 4":  true,
		"Euro 5":  true,
		"Euro 6c": true,
	}

	// ExcludedModels drops model codes with sample sizes too small to keep.
	ExcludedModels = map[string]bool{
		"UX 300h": true,
		"UX 300e": true,
	}
)

// maxFutureBuild is how far in the future a build date may lie before the
// row is considered corrupt.
const maxFutureBuild = 30 * 24 * time.Hour

// Counts reports row counts at each filtering stage so an operator can
// sanity-check large drops.
type Counts struct {
	Before       int
	AfterFilters int
	AfterDedup   int
}

// Filter applies the row filters and deduplication.
type Filter struct {
	logger logger.Interface
	now    time.Time
}

// New creates a filter evaluating time-dependent predicates against now.
func New(log logger.Interface, now time.Time) *Filter {
	return &Filter{logger: log, now: now}
}

// Apply runs all three stages and returns the surviving rows plus stage
// counts. The input slice is not modified.
func (f *Filter) Apply(listings []domain.Listing) ([]domain.Listing, Counts) {
	counts := Counts{Before: len(listings)}

	kept := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if !hasRequiredFields(&listings[i]) {
			continue
		}
		if f.excluded(&listings[i]) {
			continue
		}
		kept = append(kept, listings[i])
	}
	counts.AfterFilters = len(kept)

	deduped := dedupe(kept)
	counts.AfterDedup = len(deduped)

	f.logger.Info("row filtering complete",
		"rows_before", counts.Before,
		"rows_after_filters", counts.AfterFilters,
		"rows_after_dedup", counts.AfterDedup,
	)
	return deduped, counts
}

// requiredFields documents the completeness contract: a surviving row has a
// non-null value in every one of these columns.
var requiredFields = []string{
	"manufacturer", "car", "price", "km", "gear_type",
	"built_in", "fuel", "body_type", "seller_zip_code",
}

// RequiredFields returns the required-field column names.
func RequiredFields() []string {
	cols := make([]string, len(requiredFields))
	copy(cols, requiredFields)
	return cols
}

func hasRequiredFields(l *domain.Listing) bool {
	return l.Manufacturer != "" &&
		l.Car != "" &&
		l.Price != nil &&
		l.KM != nil &&
		l.GearType != "" &&
		l.BuiltIn != nil &&
		l.Fuel != "" &&
		l.BodyType != "" &&
		l.SellerZipCode != ""
}

// excluded reports whether the row matches any categorical exclusion.
// Null compared to anything is never true, so rows with missing optional
// fields pass predicates that reference them.
func (f *Filter) excluded(l *domain.Listing) bool {
	switch {
	case ExcludedGearTypes[l.GearType]:
		return true
	case ExcludedFuels[l.Fuel]:
		return true
	case RetiredEmissionClasses[l.EmissionClass]:
		return true
	case ExcludedModels[l.Car]:
		return true
	case l.Fuel == "Gasoline" && l.ElectricRange != nil && *l.ElectricRange > 0:
		return true
	case l.BuiltIn != nil && l.BuiltIn.After(f.now.Add(maxFutureBuild)):
		return true
	default:
		return false
	}
}

// dedupe keeps, for each natural key, the observation with the latest
// timestamp. Rows without a timestamp sort first so a dated observation
// always wins over an undated one. Output is ordered by timestamp ascending
// with the listing URL as a deterministic tie-break.
func dedupe(listings []domain.Listing) []domain.Listing {
	sorted := make([]domain.Listing, len(listings))
	copy(sorted, listings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timestampBefore(sorted[i].Timestamp, sorted[j].Timestamp)
	})

	latest := make(map[domain.RowKey]domain.Listing, len(sorted))
	for i := range sorted {
		latest[sorted[i].Key()] = sorted[i]
	}

	out := make([]domain.Listing, 0, len(latest))
	for _, l := range latest {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if ti, tj := out[i].Timestamp, out[j].Timestamp; !timesEqual(ti, tj) {
			return timestampBefore(ti, tj)
		}
		return out[i].ListingURL < out[j].ListingURL
	})
	return out
}

func timestampBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
