package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	// maxPage keeps the skip offset well inside int range.
	maxPage = 1_000_000
)

type SubscriptionService struct {
	repo    ports.SubscriptionRepository
	gateway ports.PaymentGateway
	log     zerolog.Logger
	now     func() time.Time
}

func NewSubscriptionService(repo ports.SubscriptionRepository, gateway ports.PaymentGateway, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, gateway: gateway, log: log, now: time.Now}
}

// Create persists a pending subscription, then collects the price from
// UserNumber. The price must match the pricing table for the plan. On a gateway failure the record is marked Failed and a
// *domain.PaymentError is returned.
func (s *SubscriptionService) Create(ctx context.Context, in ports.CreateSubscriptionInput) (*ports.CreateSubscriptionResult, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.UserNumber) == "" {
		return nil, fmt.Errorf("%w: name and userNumber are required", domain.ErrValidation)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("%w: price must be a positive number", domain.ErrValidation)
	}

	subType := domain.SubscriptionType(in.SubscriptionType)
	amount, err := domain.SubscriptionAmount(subType, in.Duration)
	if err != nil {
		return nil, err
	}
	if price != float64(amount) {
		return nil, fmt.Errorf("%w: price must be %d for %s %s", domain.ErrValidation, amount, subType, in.Duration)
	}

	sub := &domain.Subscription{
		Name:             in.Name,
		Description:      in.Description,
		Price:            in.Price,
		Duration:         in.Duration,
		UserNumber:       in.UserNumber,
		SubscriptionType: subType,
		Status:           domain.SubscriptionPending,
		Date:             s.now().UTC(),
		Amount:           amount,
		PaymentStatus:    domain.PaymentPending,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	payment, payErr := s.gateway.Cashin(ctx, ports.CashinRequest{Amount: price, Number: in.UserNumber})
	if payErr != nil {
		sub.PaymentStatus = domain.PaymentFailed
		if err := s.repo.Update(ctx, sub); err != nil {
			s.log.Error().Err(err).Str("subscription_id", sub.ID).Msg("failed to mark payment as failed")
		}
		s.log.Warn().Err(payErr).Str("subscription_id", sub.ID).Msg("cash-in failed")
		return nil, &domain.PaymentError{Subscription: sub, Err: payErr}
	}

	paidAt := s.now().UTC()
	sub.PaymentStatus = domain.PaymentPaid
	sub.PaymentDate = &paidAt
	sub.PaymentRef = payment.Ref
	if err := s.repo.Update(ctx, sub); err != nil {
		// The money moved; surface the ref so the record can be reconciled.
		s.log.Error().Err(err).Str("subscription_id", sub.ID).Str("payment_ref", payment.Ref).Msg("failed to record payment")
		return nil, fmt.Errorf("record payment %s: %w", payment.Ref, err)
	}

	s.log.Info().Str("subscription_id", sub.ID).Str("payment_ref", payment.Ref).Msg("subscription paid")
	return &ports.CreateSubscriptionResult{Subscription: sub, Payment: payment}, nil
}

func (s *SubscriptionService) List(ctx context.Context, in ports.ListSubscriptionsInput) (*ports.ListSubscriptionsResult, error) {
	page, limit := in.Page, in.Limit
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	docs, total, err := s.repo.List(ctx, ports.ListSubscriptionsFilter{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if docs == nil {
		docs = []*domain.Subscription{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}
	res := &ports.ListSubscriptionsResult{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
	if res.HasPrevPage {
		prev := page - 1
		res.PrevPage = &prev
	}
	if res.HasNextPage {
		next := page + 1
		res.NextPage = &next
	}
	return res, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id string) (*domain.Subscription, error) {
	return s.repo.FindByID(ctx, id)
}

// Update replaces the contact and plan fields and reprices the subscription.
func (s *SubscriptionService) Update(ctx context.Context, id string, in ports.UpdateSubscriptionInput) (*domain.Subscription, error) {
	subType := domain.SubscriptionType(in.SubscriptionType)
	amount, err := domain.SubscriptionAmount(subType, in.Duration)
	if err != nil {
		return nil, err
	}
	if in.PaymentMethod != "" && !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidPaymentMethod
	}

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sub.Name = in.Name
	sub.Email = in.Email
	sub.Phone = in.Phone
	sub.SubscriptionType = subType
	sub.Duration = in.Duration
	sub.Amount = amount
	sub.Date = now
	sub.PaymentMethod = in.PaymentMethod
	if in.PaymentMethod != "" {
		sub.PaymentStatus = domain.PaymentPending
		sub.PaymentDate = nil
	} else {
		sub.PaymentStatus = domain.PaymentNotApplicable
		sub.PaymentDate = &now
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	return sub, nil
}

// UpdateStatus overwrites the approval and payment status.
func (s *SubscriptionService) UpdateStatus(ctx context.Context, id, status, paymentStatus string) (*domain.Subscription, error) {
	st := domain.SubscriptionStatus(status)
	if !st.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Status = st
	sub.PaymentStatus = paymentStatus
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update subscription status: %w", err)
	}
	return sub, nil
}
