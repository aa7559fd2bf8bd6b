package service

import (
	"context"

	"delish/catalog-svc/internal/domain"
)

type ReviewService struct {
	repo  ReviewRepository
	cache ReviewCache
}

func NewReviewService(repo ReviewRepository, cache ReviewCache) *ReviewService {
	return &ReviewService{repo: repo, cache: cache}
}

// Create accepts a review only from a customer with a delivered order from
// the restaurant, one review per order. The redis marker short-circuits the
// duplicate check; the database check remains authoritative.
func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return domain.ErrInvalidRating
	}
	review.UserID = actor.ID

	delivered, err := s.repo.HasDeliveredOrder(actor.ID, review.RestaurantID, review.OrderID)
	if err != nil {
		return err
	}
	if !delivered {
		return domain.ErrNoDeliveredOrder
	}

	markerKey := ""
	if s.cache != nil {
		markerKey = s.cache.ReviewMarkerKey(actor.ID, review.OrderID)
		if exists, _ := s.cache.Exists(ctx, markerKey); exists {
			return domain.ErrDuplicateReview
		}
	}
	reviewed, err := s.repo.HasReview(actor.ID, review.OrderID)
	if err != nil {
		return err
	}
	if reviewed {
		return domain.ErrDuplicateReview
	}

	if err := s.repo.InsertReview(review); err != nil {
		return err
	}

	summary, err := s.repo.RecomputeRating(review.RestaurantID)
	if err == nil && s.cache != nil {
		_ = s.cache.CacheRating(ctx, summary)
	}
	if s.cache != nil && markerKey != "" {
		_ = s.cache.SetMarker(ctx, markerKey)
	}
	return nil
}

func (s *ReviewService) List(restaurantID int) ([]domain.Review, error) {
	return s.repo.ListReviews(restaurantID)
}

// Rating serves the cached aggregate when present, recomputing from Postgres
// on a miss and repopulating the cache.
func (s *ReviewService) Rating(ctx context.Context, restaurantID int) (domain.RatingSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Rating(ctx, restaurantID); err == nil && cached != nil {
			return *cached, nil
		}
	}
	summary, err := s.repo.RecomputeRating(restaurantID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	if s.cache != nil {
		_ = s.cache.CacheRating(ctx, summary)
	}
	return summary, nil
}
