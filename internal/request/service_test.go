// File: internal/request/service_test.go
package request

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodshare_backend/internal/common"
	"foodshare_backend/internal/food"
)

// MockFoodRepository mocks the food repository methods the coordinator uses.
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) Create(ctx context.Context, listing *food.FoodListing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockFoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*food.FoodListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*food.FoodListing), args.Error(1)
}

func (m *MockFoodRepository) FindAvailable(ctx context.Context, query food.SearchQuery, now time.Time) ([]food.FoodListing, error) {
	args := m.Called(ctx, query, now)
	return nil, args.Error(1)
}

func (m *MockFoodRepository) FindFeatured(ctx context.Context, limit int, now time.Time) ([]food.FoodListing, error) {
	args := m.Called(ctx, limit, now)
	return nil, args.Error(1)
}

func (m *MockFoodRepository) FindByDonorEmail(ctx context.Context, email string) ([]food.FoodListing, error) {
	args := m.Called(ctx, email)
	return nil, args.Error(1)
}

func (m *MockFoodRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]food.FoodListing, error) {
	args := m.Called(ctx, ids)
	return nil, args.Error(1)
}

func (m *MockFoodRepository) FindAllForSync(ctx context.Context) ([]food.FoodListing, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockFoodRepository) Update(ctx context.Context, listing *food.FoodListing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockFoodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFoodRepository) MarkUnavailable(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFoodRepository) RestoreAvailable(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFoodRepository) CountExpiredAvailable(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockRequestRepository mocks the request ledger repository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *FoodRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockRequestRepository) FindByRequesterEmail(ctx context.Context, email string) ([]FoodRequest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FoodRequest), args.Error(1)
}

func availableListing(donorID uuid.UUID) *food.FoodListing {
	listing := &food.FoodListing{
		FoodName:        "Vegetable Soup",
		FoodImage:       "https://example.com/soup.jpg",
		FoodQuantity:    3,
		PickupLocation:  "Community Center",
		ExpiredDateTime: time.Now().Add(24 * time.Hour),
		FoodStatus:      food.StatusAvailable,
		DonorID:         donorID,
		DonorName:       "Dana Donor",
		DonorEmail:      "donor@example.com",
	}
	listing.ID = uuid.New()
	return listing
}

func TestSubmitRequestSuccess(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	listing := availableListing(uuid.New())
	requester := RequesterProfile{ID: uuid.New(), Email: "requester@example.com"}

	foods.On("FindByID", mock.Anything, listing.ID).Return(listing, nil).Once()
	foods.On("MarkUnavailable", mock.Anything, listing.ID).Return(true, nil).Once()
	requests.On("Create", mock.Anything, mock.AnythingOfType("*request.FoodRequest")).Return(nil).Once()

	recorded, err := svc.SubmitRequest(context.Background(), requester, SubmitRequest{FoodID: listing.ID})
	require.NoError(t, err)
	assert.Equal(t, listing.ID, recorded.FoodID)
	assert.Equal(t, "Vegetable Soup", recorded.FoodName)
	assert.Equal(t, "Dana Donor", recorded.DonatorName)
	assert.Equal(t, "donor@example.com", recorded.DonatorEmail)
	assert.Equal(t, requester.Email, recorded.RequesterEmail)
	assert.Equal(t, StatusRequested, recorded.Status)
	foods.AssertExpectations(t)
	requests.AssertExpectations(t)
}

func TestSubmitRequestNotFound(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	id := uuid.New()
	foods.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: uuid.New(), Email: "r@example.com"}, SubmitRequest{FoodID: id})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestSubmitRequestSurfacesLookupFailures(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	id := uuid.New()
	foods.On("FindByID", mock.Anything, id).Return(nil, errors.New("connection refused")).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: uuid.New(), Email: "r@example.com"}, SubmitRequest{FoodID: id})
	require.Error(t, err)

	// A transient lookup failure must not masquerade as a missing listing.
	_, ok := common.IsAPIError(err)
	assert.False(t, ok)
}

func TestSubmitRequestConflictWhenExpired(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	listing := availableListing(uuid.New())
	listing.ExpiredDateTime = time.Now().Add(-time.Hour)

	foods.On("FindByID", mock.Anything, listing.ID).Return(listing, nil).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: uuid.New(), Email: "r@example.com"}, SubmitRequest{FoodID: listing.ID})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	foods.AssertNotCalled(t, "MarkUnavailable")
	requests.AssertNotCalled(t, "Create")
}

func TestSubmitRequestConflictWhenUnavailable(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	listing := availableListing(uuid.New())
	listing.FoodStatus = food.StatusUnavailable

	foods.On("FindByID", mock.Anything, listing.ID).Return(listing, nil).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: uuid.New(), Email: "r@example.com"}, SubmitRequest{FoodID: listing.ID})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	foods.AssertNotCalled(t, "MarkUnavailable")
}

func TestSubmitRequestForbiddenForOwnListing(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	donorID := uuid.New()
	listing := availableListing(donorID)

	foods.On("FindByID", mock.Anything, listing.ID).Return(listing, nil).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: donorID, Email: "donor@example.com"}, SubmitRequest{FoodID: listing.ID})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)
	foods.AssertNotCalled(t, "MarkUnavailable")
}

func TestSubmitRequestConflictWhenClaimLost(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	listing := availableListing(uuid.New())

	foods.On("FindByID", mock.Anything, listing.ID).Return(listing, nil).Once()
	foods.On("MarkUnavailable", mock.Anything, listing.ID).Return(false, nil).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: uuid.New(), Email: "r@example.com"}, SubmitRequest{FoodID: listing.ID})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	requests.AssertNotCalled(t, "Create")
}

func TestSubmitRequestRestoresListingWhenLedgerWriteFails(t *testing.T) {
	foods := new(MockFoodRepository)
	requests := new(MockRequestRepository)
	svc := NewService(requests, foods, zap.NewNop())

	listing := availableListing(uuid.New())

	foods.On("FindByID", mock.Anything, listing.ID).Return(listing, nil).Once()
	foods.On("MarkUnavailable", mock.Anything, listing.ID).Return(true, nil).Once()
	requests.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	foods.On("RestoreAvailable", mock.Anything, listing.ID).Return(nil).Once()

	_, err := svc.SubmitRequest(context.Background(), RequesterProfile{ID: uuid.New(), Email: "r@example.com"}, SubmitRequest{FoodID: listing.ID})
	require.Error(t, err)
	foods.AssertExpectations(t)
}

// casFoodRepo is a minimal in-memory food repository whose claim is a real
// compare-and-swap, for exercising concurrent submissions.
type casFoodRepo struct {
	listing  *food.FoodListing
	claimed  atomic.Bool
	restored atomic.Bool
}

func (r *casFoodRepo) Create(ctx context.Context, l *food.FoodListing) error { return nil }
func (r *casFoodRepo) FindByID(ctx context.Context, id uuid.UUID) (*food.FoodListing, error) {
	copied := *r.listing
	return &copied, nil
}
func (r *casFoodRepo) FindAvailable(ctx context.Context, q food.SearchQuery, now time.Time) ([]food.FoodListing, error) {
	return nil, nil
}
func (r *casFoodRepo) FindFeatured(ctx context.Context, limit int, now time.Time) ([]food.FoodListing, error) {
	return nil, nil
}
func (r *casFoodRepo) FindByDonorEmail(ctx context.Context, email string) ([]food.FoodListing, error) {
	return nil, nil
}
func (r *casFoodRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]food.FoodListing, error) {
	return nil, nil
}
func (r *casFoodRepo) FindAllForSync(ctx context.Context) ([]food.FoodListing, error) {
	return nil, nil
}
func (r *casFoodRepo) Update(ctx context.Context, l *food.FoodListing) error { return nil }
func (r *casFoodRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (r *casFoodRepo) MarkUnavailable(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.claimed.CompareAndSwap(false, true), nil
}
func (r *casFoodRepo) RestoreAvailable(ctx context.Context, id uuid.UUID) error {
	r.restored.Store(true)
	return nil
}
func (r *casFoodRepo) CountExpiredAvailable(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// recordingRequestRepo collects created ledger rows.
type recordingRequestRepo struct {
	mu   sync.Mutex
	rows []*FoodRequest
}

func (r *recordingRequestRepo) Create(ctx context.Context, req *FoodRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, req)
	return nil
}

func (r *recordingRequestRepo) FindByRequesterEmail(ctx context.Context, email string) ([]FoodRequest, error) {
	return nil, nil
}

func TestSubmitRequestConcurrentClaimsExactlyOneWins(t *testing.T) {
	listing := availableListing(uuid.New())
	foods := &casFoodRepo{listing: listing}
	requests := &recordingRequestRepo{}
	svc := NewService(requests, foods, zap.NewNop())

	const racers = 8
	var wg sync.WaitGroup
	var successes atomic.Int32
	var conflicts atomic.Int32

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			requester := RequesterProfile{ID: uuid.New(), Email: "racer@example.com"}
			_, err := svc.SubmitRequest(context.Background(), requester, SubmitRequest{FoodID: listing.ID})
			if err == nil {
				successes.Add(1)
				return
			}
			if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == "CONFLICT" {
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(racers-1), conflicts.Load())
	assert.Len(t, requests.rows, 1)
	assert.False(t, foods.restored.Load())
}
