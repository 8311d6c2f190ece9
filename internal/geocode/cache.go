package geocode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
)

// cacheHeader is the column order of the cache file.
var cacheHeader = []string{"zip_code", "lon", "lat", "city", "province"}

// Cache is a file-backed postal-code lookup cache. It is loaded once at
// stage start and written back in full; a single writer owns the file for
// the duration of a run.
type Cache struct {
	path    string
	entries map[string]Location
	dirty   bool
}

// LoadCache reads the cache file at path. A missing file yields an empty
// cache; it will be created on the first Save.
func LoadCache(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]Location)}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open geocode cache: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read geocode cache: %w", err)
	}
	for i, rec := range records {
		if i == 0 || len(rec) < len(cacheHeader) {
			continue
		}
		lon, lonErr := strconv.ParseFloat(rec[1], 64)
		lat, latErr := strconv.ParseFloat(rec[2], 64)
		if lonErr != nil || latErr != nil {
			return nil, fmt.Errorf("geocode cache row %d: bad coordinates", i+1)
		}
		c.entries[rec[0]] = Location{
			Longitude: lon,
			Latitude:  lat,
			City:      rec[3],
			Province:  rec[4],
		}
	}
	return c, nil
}

// Get returns the cached location for zipCode, if any.
func (c *Cache) Get(zipCode string) (Location, bool) {
	loc, ok := c.entries[zipCode]
	return loc, ok
}

// Put records a resolved location. The cache is only written back to disk
// by Save.
func (c *Cache) Put(zipCode string, loc Location) {
	c.entries[zipCode] = loc
	c.dirty = true
}

// Len returns the number of cached postal codes.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save writes the cache back to its file if any entries were added.
// Rows are sorted by postal code so the file diffs cleanly between runs.
func (c *Cache) Save() error {
	if !c.dirty {
		return nil
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("create geocode cache: %w", err)
	}
	defer f.Close()

	zips := make([]string, 0, len(c.entries))
	for zip := range c.entries {
		zips = append(zips, zip)
	}
	sort.Strings(zips)

	w := csv.NewWriter(f)
	if err := w.Write(cacheHeader); err != nil {
		return fmt.Errorf("write geocode cache header: %w", err)
	}
	for _, zip := range zips {
		loc := c.entries[zip]
		rec := []string{
			zip,
			strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			loc.City,
			loc.Province,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write geocode cache row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush geocode cache: %w", err)
	}
	c.dirty = false
	return nil
}
