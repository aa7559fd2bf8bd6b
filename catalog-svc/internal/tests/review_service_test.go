package tests

import (
	"context"
	"testing"

	"delish/catalog-svc/internal/domain"
	"delish/catalog-svc/internal/mocks"
	"delish/catalog-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewService(t *testing.T) (*service.ReviewService, *mocks.ReviewRepository, *mocks.ReviewCache) {
	repo := mocks.NewReviewRepository(t)
	cache := mocks.NewReviewCache(t)
	return service.NewReviewService(repo, cache), repo, cache
}

func TestCreateReview(t *testing.T) {
	svc, repo, cache := newReviewService(t)
	ctx := context.Background()

	repo.On("HasDeliveredOrder", customer.ID, 7, 55).Return(true, nil)
	cache.On("ReviewMarkerKey", customer.ID, 55).Return("review:42:55")
	cache.On("Exists", ctx, "review:42:55").Return(false, nil)
	repo.On("HasReview", customer.ID, 55).Return(false, nil)
	repo.On("InsertReview", mock.MatchedBy(func(review *domain.Review) bool {
		return review.UserID == customer.ID && review.Rating == 4
	})).Return(nil)
	repo.On("RecomputeRating", 7).Return(domain.RatingSummary{RestaurantID: 7, Average: 4.2, Count: 13}, nil)
	cache.On("CacheRating", ctx, domain.RatingSummary{RestaurantID: 7, Average: 4.2, Count: 13}).Return(nil)
	cache.On("SetMarker", ctx, "review:42:55").Return(nil)

	review := &domain.Review{RestaurantID: 7, OrderID: 55, Rating: 4, Comment: "Great thali"}
	err := svc.Create(ctx, customer, review)
	assert.NoError(t, err)
}

func TestCreateReview_NoDeliveredOrder(t *testing.T) {
	svc, repo, _ := newReviewService(t)

	repo.On("HasDeliveredOrder", customer.ID, 7, 55).Return(false, nil)

	err := svc.Create(context.Background(), customer, &domain.Review{RestaurantID: 7, OrderID: 55, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrNoDeliveredOrder)
	repo.AssertNotCalled(t, "InsertReview", mock.Anything)
}

func TestCreateReview_DuplicateViaCache(t *testing.T) {
	svc, repo, cache := newReviewService(t)
	ctx := context.Background()

	repo.On("HasDeliveredOrder", customer.ID, 7, 55).Return(true, nil)
	cache.On("ReviewMarkerKey", customer.ID, 55).Return("review:42:55")
	cache.On("Exists", ctx, "review:42:55").Return(true, nil)

	err := svc.Create(ctx, customer, &domain.Review{RestaurantID: 7, OrderID: 55, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	repo.AssertNotCalled(t, "HasReview", mock.Anything, mock.Anything)
}

func TestCreateReview_DuplicateViaDatabase(t *testing.T) {
	// A cold cache must not let a second review through: the database check
	// stays authoritative.
	svc, repo, cache := newReviewService(t)
	ctx := context.Background()

	repo.On("HasDeliveredOrder", customer.ID, 7, 55).Return(true, nil)
	cache.On("ReviewMarkerKey", customer.ID, 55).Return("review:42:55")
	cache.On("Exists", ctx, "review:42:55").Return(false, nil)
	repo.On("HasReview", customer.ID, 55).Return(true, nil)

	err := svc.Create(ctx, customer, &domain.Review{RestaurantID: 7, OrderID: 55, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	repo.AssertNotCalled(t, "InsertReview", mock.Anything)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	svc, _, _ := newReviewService(t)

	for _, rating := range []int{0, 6, -1} {
		err := svc.Create(context.Background(), customer, &domain.Review{RestaurantID: 7, OrderID: 55, Rating: rating})
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	}
}

func TestRating_CacheHit(t *testing.T) {
	svc, repo, cache := newReviewService(t)
	ctx := context.Background()

	cache.On("Rating", ctx, 7).Return(&domain.RatingSummary{RestaurantID: 7, Average: 4.5, Count: 20}, nil)

	summary, err := svc.Rating(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, 4.5, summary.Average)
	repo.AssertNotCalled(t, "RecomputeRating", mock.Anything)
}

func TestRating_CacheMiss(t *testing.T) {
	svc, repo, cache := newReviewService(t)
	ctx := context.Background()

	cache.On("Rating", ctx, 7).Return(nil, assert.AnError)
	repo.On("RecomputeRating", 7).Return(domain.RatingSummary{RestaurantID: 7, Average: 3.9, Count: 8}, nil)
	cache.On("CacheRating", ctx, domain.RatingSummary{RestaurantID: 7, Average: 3.9, Count: 8}).Return(nil)

	summary, err := svc.Rating(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, 8, summary.Count)
}
