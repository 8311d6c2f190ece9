package geocode

import (
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

// Resolver resolves a postal code to a location. Satisfied by *Client.
type Resolver interface {
	Lookup(zipCode string) (*Location, error)
}

// Enricher fills coordinates and province on listings from their seller
// postal code.
type Enricher struct {
	logger   logger.Interface
	resolver Resolver
	cache    *Cache
}

// NewEnricher creates an enricher backed by the given resolver and cache.
func NewEnricher(log logger.Interface, resolver Resolver, cache *Cache) *Enricher {
	return &Enricher{logger: log, resolver: resolver, cache: cache}
}

// Enrich resolves every distinct postal code in the batch and writes
// longitude, latitude, and province onto the listings. The seller city is
// only filled when the address parse left it empty. A postal code that
// fails to resolve is logged and its rows keep null geography; the batch
// never aborts over one bad code.
func (e *Enricher) Enrich(listings []domain.Listing) error {
	resolved := make(map[string]*Location)
	misses := 0

	for i := range listings {
		zip := listings[i].SellerZipCode
		if zip == "" {
			continue
		}

		loc, seen := resolved[zip]
		if !seen {
			loc = e.resolve(zip)
			resolved[zip] = loc
			if loc == nil {
				misses++
			}
		}
		if loc == nil {
			continue
		}

		listings[i].Longitude = domain.FloatPtr(loc.Longitude)
		listings[i].Latitude = domain.FloatPtr(loc.Latitude)
		listings[i].Province = loc.Province
		if listings[i].SellerCity == "" {
			listings[i].SellerCity = loc.City
		}
	}

	e.logger.Info("geocode enrichment complete",
		"distinct_zip_codes", len(resolved),
		"unresolved", misses,
	)
	return e.cache.Save()
}

// resolve checks the cache before going to the network. A nil return means
// the code could not be resolved this run.
func (e *Enricher) resolve(zip string) *Location {
	if loc, ok := e.cache.Get(zip); ok {
		return &loc
	}

	loc, err := e.resolver.Lookup(zip)
	if err != nil {
		e.logger.Warn("postal code lookup failed", "zip_code", zip, "error", err)
		return nil
	}
	e.cache.Put(zip, *loc)
	return loc
}
