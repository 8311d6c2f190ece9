package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
)

func newMockRepository(t *testing.T) (*ListingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewListingRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func testListing(url string) domain.Listing {
	built := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	ts := time.Date(2023, time.May, 14, 8, 30, 0, 0, time.UTC)
	return domain.Listing{
		Manufacturer:  "Volvo",
		Car:           "XC40",
		Price:         domain.IntPtr(42500),
		KM:            domain.IntPtr(12500),
		GearType:      "Automatic",
		BuiltIn:       &built,
		Fuel:          "Gasoline",
		BodyType:      "SUV",
		SellerType:    domain.SellerDealer,
		SellerName:    "Autobedrijf Jansen",
		SellerZipCode: "9712GK",
		SellerCity:    "Groningen",
		Province:      "Groningen",
		Latitude:      domain.FloatPtr(53.2194),
		Longitude:     domain.FloatPtr(6.5665),
		ListingURL:    url,
		Timestamp:     &ts,
	}
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS car_listings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertListings(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO car_listings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second listing conflicts on listing_url and affects no rows.
	mock.ExpectExec("INSERT INTO car_listings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	inserted, err := repo.InsertListings(context.Background(), []domain.Listing{
		testListing("https://example.com/1"),
		testListing("https://example.com/2"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertListingsRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO car_listings").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.InsertListings(context.Background(), []domain.Listing{
		testListing("https://example.com/1"),
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertListingsEmptyBatch(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	inserted, err := repo.InsertListings(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
