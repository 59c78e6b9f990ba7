package ports

import (
	"context"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// ListSubscriptionsFilter carries paging for the subscription listing.
type ListSubscriptionsFilter struct {
	Page  int // 1-based
	Limit int
}

// SubscriptionRepository persists subscriptions. Misses return
// domain.ErrSubscriptionNotFound.
type SubscriptionRepository interface {
	// Create inserts s and sets s.ID.
	Create(ctx context.Context, s *domain.Subscription) error
	FindByID(ctx context.Context, id string) (*domain.Subscription, error)
	// List returns one page sorted by subscription date, newest first, and the total count.
	List(ctx context.Context, filter ListSubscriptionsFilter) ([]*domain.Subscription, int64, error)
	Update(ctx context.Context, s *domain.Subscription) error
}
