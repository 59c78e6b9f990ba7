package ports

import (
	"context"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// UpdateAccountInput holds the editable account fields. Empty values keep
// what is stored.
type UpdateAccountInput struct {
	Name    string
	Phone   string
	Address domain.Address
}

// AccountService covers account administration.
type AccountService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, id string, in UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, id string) (*domain.Account, error)
	SetAuthorApproval(ctx context.Context, id string, status domain.AuthorStatus) (*domain.Account, error)
}
