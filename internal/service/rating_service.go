package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"campus-food-backend/internal/domain"

	"github.com/google/uuid"
)

// RatingService owns both rating-update paths: the review-driven full
// rescan and the direct incremental average. The two formulas are
// intentionally separate and must not be merged.
type RatingService struct {
	repo      ReviewRepository
	cache     StatsCache
	publisher EventPublisher
}

func NewRatingService(repo ReviewRepository, cache StatsCache, publisher EventPublisher) *RatingService {
	return &RatingService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// round1 rounds half to even at one decimal place.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

func (s *RatingService) CreateReview(ctx context.Context, req domain.Review) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	now := time.Now().UTC()
	review := domain.Review{
		StoreID:    req.StoreID,
		StoreName:  req.StoreName,
		ItemID:     req.ItemID,
		ItemName:   req.ItemName,
		Rating:     req.Rating,
		Comment:    req.Comment,
		UserName:   req.UserName,
		UserAvatar: req.UserAvatar,
		Status:     domain.ReviewApproved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if review.UserAvatar == "" {
		review.UserAvatar = "👤"
	}

	if err := s.repo.InsertReview(&review); err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	if err := s.RecomputeItemRating(ctx, review.StoreID, review.ItemID); err != nil {
		log.Printf("Warning: failed to recompute rating for store %d item %d: %v",
			review.StoreID, review.ItemID, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.Event{
			EventID:   uuid.NewString(),
			Type:      domain.EventNewReview,
			StoreID:   review.StoreID,
			ItemID:    review.ItemID,
			Rating:    review.Rating,
			Timestamp: now,
		})
	}

	return &review, nil
}

func (s *RatingService) ListReviews(filter domain.ReviewFilter) ([]domain.Review, error) {
	return s.repo.ListReviews(filter)
}

func (s *RatingService) ReviewStats(storeID, itemID int) (domain.ReviewStats, error) {
	reviews, err := s.repo.ListApprovedItemReviews(storeID, itemID)
	if err != nil {
		return domain.ReviewStats{}, err
	}
	return averageOf(reviews), nil
}

func averageOf(reviews []domain.Review) domain.ReviewStats {
	if len(reviews) == 0 {
		return domain.ReviewStats{Rating: domain.DefaultRating, Count: 0}
	}
	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	return domain.ReviewStats{
		Rating: round1(total / float64(len(reviews))),
		Count:  len(reviews),
	}
}

// RecomputeItemRating rescans all approved reviews for the item and
// rewrites the embedded menu entry. A nonexistent store is a no-op.
func (s *RatingService) RecomputeItemRating(ctx context.Context, storeID, itemID int) error {
	reviews, err := s.repo.ListApprovedItemReviews(storeID, itemID)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}
	stats := averageOf(reviews)

	menu, err := s.repo.GetMenu(storeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	found := false
	for i := range menu {
		if menu[i].ID == itemID {
			menu[i].Rating = stats.Rating
			menu[i].ReviewCount = stats.Count
			found = true
			break
		}
	}

	if err := s.repo.SaveMenu(storeID, menu); err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}

	if found {
		s.mirrorStats(ctx, storeID, itemID, stats)
	}
	return nil
}

// RateItem is the incremental weighted-average path. It never consults
// the reviews collection.
func (s *RatingService) RateItem(ctx context.Context, storeID, itemID int, rating float64) (domain.ReviewStats, error) {
	if rating < 1 || rating > 5 {
		return domain.ReviewStats{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	menu, err := s.repo.GetMenu(storeID)
	if err != nil {
		return domain.ReviewStats{}, err
	}

	var stats domain.ReviewStats
	found := false
	for i := range menu {
		if menu[i].ID != itemID {
			continue
		}
		oldRating := menu[i].Rating
		oldCount := menu[i].ReviewCount
		newCount := oldCount + 1
		newRating := round1(((oldRating * float64(oldCount)) + rating) / float64(newCount))

		menu[i].Rating = newRating
		menu[i].ReviewCount = newCount
		stats = domain.ReviewStats{Rating: newRating, Count: newCount}
		found = true
		break
	}
	if !found {
		return domain.ReviewStats{}, fmt.Errorf("%w: menu item %d", ErrNotFound, itemID)
	}

	if err := s.repo.SaveMenu(storeID, menu); err != nil {
		return domain.ReviewStats{}, fmt.Errorf("failed to save menu: %w", err)
	}

	s.mirrorStats(ctx, storeID, itemID, stats)
	return stats, nil
}

// mirrorStats pushes the recomputed numbers into the cache. The cache is
// never read back by a rating write path, so failures are only logged.
func (s *RatingService) mirrorStats(ctx context.Context, storeID, itemID int, stats domain.ReviewStats) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetItemStats(ctx, storeID, itemID, stats.Rating, stats.Count); err != nil {
		log.Printf("Warning: failed to cache item stats: %v", err)
	}
	if err := s.cache.UpdateLeaderboard(ctx, storeID, itemID, stats.Rating); err != nil {
		log.Printf("Warning: failed to update leaderboard: %v", err)
	}
}

func (s *RatingService) TopRated(ctx context.Context, limit int) ([]domain.TopRatedItem, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []domain.TopRatedItem
	if s.cache != nil {
		cached, err := s.cache.TopRated(ctx, limit)
		if err == nil && len(cached) > 0 {
			entries = cached
		}
	}
	if entries == nil {
		fromStore, err := s.repo.TopRatedItems(limit)
		if err != nil {
			return nil, err
		}
		return fromStore, nil
	}

	// Cache entries carry ids only; item names come from the store.
	for i := range entries {
		menu, err := s.repo.GetMenu(entries[i].StoreID)
		if err != nil {
			continue
		}
		for _, item := range menu {
			if item.ID == entries[i].ItemID {
				entries[i].ItemName = item.Name
				break
			}
		}
	}
	return entries, nil
}

var _ RatingServiceInterface = (*RatingService)(nil)
