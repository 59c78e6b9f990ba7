package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges name, phone and address into the stored account.
func (s *AccountService) Update(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	domain.ApplyProfile(account, domain.IndividualProfile{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	})

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", id).Msg("account deleted")
	return account, nil
}

// SetAuthorApproval records an admin decision on an author account.
func (s *AccountService) SetAuthorApproval(ctx context.Context, id string, status domain.AuthorStatus) (*domain.Account, error) {
	if status != domain.AuthorApproved && status != domain.AuthorRejected {
		return nil, fmt.Errorf("%w: approval must be %q or %q", domain.ErrValidation, domain.AuthorApproved, domain.AuthorRejected)
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.UserType != domain.UserTypeAuthor {
		return nil, domain.ErrNotAnAuthor
	}

	account.IsAuthor = status
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("set author approval: %w", err)
	}

	s.log.Info().Str("account_id", id).Str("status", string(status)).Msg("author approval updated")
	return account, nil
}
