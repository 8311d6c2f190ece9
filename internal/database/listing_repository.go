package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
)

// ListingRepository handles database operations for cleaned car listings.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new repository with the given connection.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Ping checks database connectivity.
func (r *ListingRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EnsureSchema creates the listings table if it does not exist.
func (r *ListingRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS car_listings (
			id SERIAL PRIMARY KEY,
			manufacturer TEXT,
			car TEXT,
			price INTEGER,
			lease_price_per_month INTEGER,
			km INTEGER,
			gear_type TEXT,
			built_in DATE,
			car_age_in_months INTEGER,
			fuel TEXT,
			body_type TEXT,
			seller_type TEXT,
			seller_name TEXT,
			years_active_on_platform INTEGER,
			zip_code TEXT,
			city TEXT,
			province TEXT,
			lat DOUBLE PRECISION,
			lon DOUBLE PRECISION,
			listing_url TEXT UNIQUE,
			timestamp TIMESTAMP
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure car_listings schema: %w", err)
	}
	return nil
}

// InsertListings inserts the listings, skipping any whose listing URL is
// already present. Returns the number of rows actually inserted. The batch
// runs in one transaction so a failed upload leaves the table untouched.
func (r *ListingRepository) InsertListings(ctx context.Context, listings []domain.Listing) (int, error) {
	query := `
		INSERT INTO car_listings (
			manufacturer, car, price, lease_price_per_month, km, gear_type,
			built_in, car_age_in_months, fuel, body_type, seller_type,
			seller_name, years_active_on_platform, zip_code, city, province,
			lat, lon, listing_url, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (listing_url) DO NOTHING
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upload transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for i := range listings {
		l := &listings[i]
		res, execErr := tx.ExecContext(ctx, query,
			nullText(l.Manufacturer),
			nullText(l.Car),
			l.Price,
			l.LeasePricePerMonth,
			l.KM,
			nullText(l.GearType),
			l.BuiltIn,
			l.CarAgeMonths,
			nullText(l.Fuel),
			nullText(l.BodyType),
			nullText(l.SellerType),
			nullText(l.SellerName),
			l.YearsActive,
			nullText(l.SellerZipCode),
			nullText(l.SellerCity),
			nullText(l.Province),
			l.Latitude,
			l.Longitude,
			l.ListingURL,
			l.Timestamp,
		)
		if execErr != nil {
			return 0, fmt.Errorf("insert listing %s: %w", l.ListingURL, execErr)
		}
		n, affErr := res.RowsAffected()
		if affErr != nil {
			return 0, fmt.Errorf("insert listing %s: %w", l.ListingURL, affErr)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upload transaction: %w", err)
	}
	return inserted, nil
}

// nullText maps the empty string, which means missing throughout the
// pipeline, to SQL NULL.
func nullText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
