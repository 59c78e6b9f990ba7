package ports

import (
	"context"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

type CreateSubscriptionInput struct {
	Name             string
	Description      string
	Price            string
	Duration         string
	UserNumber       string
	SubscriptionType string
}

// CreateSubscriptionResult is returned even when the payment fails, so the
// caller can report the persisted record.
type CreateSubscriptionResult struct {
	Subscription *domain.Subscription
	Payment      *domain.Payment
}

type UpdateSubscriptionInput struct {
	Name             string
	Email            string
	Phone            string
	SubscriptionType string
	Duration         string
	PaymentMethod    string
}

type ListSubscriptionsInput struct {
	Page  int
	Limit int
}

// ListSubscriptionsResult mirrors the mongoose-paginate envelope clients
// already consume.
type ListSubscriptionsResult struct {
	Docs        []*domain.Subscription
	TotalDocs   int64
	Limit       int
	Page        int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    *int
	NextPage    *int
}

type SubscriptionService interface {
	Create(ctx context.Context, in CreateSubscriptionInput) (*CreateSubscriptionResult, error)
	List(ctx context.Context, in ListSubscriptionsInput) (*ListSubscriptionsResult, error)
	Get(ctx context.Context, id string) (*domain.Subscription, error)
	Update(ctx context.Context, id string, in UpdateSubscriptionInput) (*domain.Subscription, error)
	UpdateStatus(ctx context.Context, id, status, paymentStatus string) (*domain.Subscription, error)
}
