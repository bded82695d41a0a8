// File: internal/food/repository_test.go
package food

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&FoodListing{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM foods")
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedListing(t *testing.T, repo Repository, name string, status ListingStatus, expiry time.Time, quantity int) *FoodListing {
	t.Helper()
	listing := &FoodListing{
		FoodName:        name,
		FoodQuantity:    quantity,
		PickupLocation:  "Community Center",
		ExpiredDateTime: expiry,
		FoodStatus:      status,
		DonorID:         uuid.New(),
		DonorName:       "Dana Donor",
		DonorEmail:      "donor@example.com",
	}
	require.NoError(t, repo.Create(context.Background(), listing))
	return listing
}

func TestCreateAssignsID(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	listing := seedListing(t, repo, "Bread", StatusAvailable, time.Now().Add(24*time.Hour), 2)
	assert.NotEqual(t, uuid.Nil, listing.ID)

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", found.FoodName)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindAvailableFiltersStatusAndExpiry(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	future := time.Now().Add(24 * time.Hour)

	seedListing(t, repo, "Fresh Soup", StatusAvailable, future, 3)
	seedListing(t, repo, "Claimed Pasta", StatusUnavailable, future, 3)
	seedListing(t, repo, "Expired Salad", StatusAvailable, time.Now().Add(-time.Hour), 3)

	listings, err := repo.FindAvailable(context.Background(), SearchQuery{}, time.Now())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Fresh Soup", listings[0].FoodName)
}

func TestFindAvailableSearchIsCaseInsensitive(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	future := time.Now().Add(24 * time.Hour)

	seedListing(t, repo, "Vegetable Soup", StatusAvailable, future, 3)
	seedListing(t, repo, "Fruit Salad", StatusAvailable, future, 3)

	listings, err := repo.FindAvailable(context.Background(), SearchQuery{Search: "SOUP"}, time.Now())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Vegetable Soup", listings[0].FoodName)
}

func TestFindAvailableSortsByExpiry(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	seedListing(t, repo, "Later", StatusAvailable, time.Now().Add(72*time.Hour), 3)
	seedListing(t, repo, "Sooner", StatusAvailable, time.Now().Add(24*time.Hour), 3)

	ascending, err := repo.FindAvailable(context.Background(), SearchQuery{Sort: "expiryDate"}, time.Now())
	require.NoError(t, err)
	require.Len(t, ascending, 2)
	assert.Equal(t, "Sooner", ascending[0].FoodName)

	descending, err := repo.FindAvailable(context.Background(), SearchQuery{Sort: "-expiryDate"}, time.Now())
	require.NoError(t, err)
	require.Len(t, descending, 2)
	assert.Equal(t, "Later", descending[0].FoodName)
}

func TestFindFeaturedOrdersByQuantity(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	future := time.Now().Add(24 * time.Hour)

	seedListing(t, repo, "Small Batch", StatusAvailable, future, 1)
	seedListing(t, repo, "Big Batch", StatusAvailable, future, 10)
	seedListing(t, repo, "Medium Batch", StatusAvailable, future, 5)

	featured, err := repo.FindFeatured(context.Background(), 2, time.Now())
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "Big Batch", featured[0].FoodName)
	assert.Equal(t, "Medium Batch", featured[1].FoodName)
}

func TestMarkUnavailableClaimsExactlyOnce(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	listing := seedListing(t, repo, "Bread", StatusAvailable, time.Now().Add(24*time.Hour), 2)

	claimed, err := repo.MarkUnavailable(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claim sees the flipped status and loses.
	claimed, err = repo.MarkUnavailable(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.False(t, claimed)

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, found.FoodStatus)
}

func TestUpdateDoesNotOverwriteConcurrentClaim(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	listing := seedListing(t, repo, "Bread", StatusAvailable, time.Now().Add(24*time.Hour), 2)

	// Owner loads the row, then a request claims the listing.
	stale, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	require.Equal(t, StatusAvailable, stale.FoodStatus)

	claimed, err := repo.MarkUnavailable(context.Background(), listing.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	// Saving the stale row must not flip the status back to available.
	stale.FoodQuantity = 9
	require.NoError(t, repo.Update(context.Background(), stale))

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, found.FoodStatus)
	assert.Equal(t, 9, found.FoodQuantity)

	claimed, err = repo.MarkUnavailable(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestRestoreAvailableRevertsClaim(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	listing := seedListing(t, repo, "Bread", StatusAvailable, time.Now().Add(24*time.Hour), 2)

	claimed, err := repo.MarkUnavailable(context.Background(), listing.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.RestoreAvailable(context.Background(), listing.ID))

	found, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, found.FoodStatus)
}

func TestDeleteMissingListingReturnsNotFound(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCountExpiredAvailable(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))

	seedListing(t, repo, "Expired One", StatusAvailable, time.Now().Add(-2*time.Hour), 1)
	seedListing(t, repo, "Expired Claimed", StatusUnavailable, time.Now().Add(-2*time.Hour), 1)
	seedListing(t, repo, "Fresh", StatusAvailable, time.Now().Add(24*time.Hour), 1)

	count, err := repo.CountExpiredAvailable(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindByDonorEmail(t *testing.T) {
	repo := NewGORMRepository(setupTestDB(t))
	future := time.Now().Add(24 * time.Hour)

	mine := seedListing(t, repo, "Mine", StatusAvailable, future, 1)
	other := &FoodListing{
		FoodName:        "Theirs",
		FoodQuantity:    1,
		PickupLocation:  "Elsewhere",
		ExpiredDateTime: future,
		FoodStatus:      StatusAvailable,
		DonorID:         uuid.New(),
		DonorName:       "Other",
		DonorEmail:      "other@example.com",
	}
	require.NoError(t, repo.Create(context.Background(), other))

	listings, err := repo.FindByDonorEmail(context.Background(), mine.DonorEmail)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Mine", listings[0].FoodName)
}
