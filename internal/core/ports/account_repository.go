package ports

import (
	"context"
	"time"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// AccountRepository persists accounts. Lookups that miss return
// domain.ErrAccountNotFound; a duplicate email returns domain.ErrAccountExists.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	// Update overwrites the profile fields of the stored account. The
	// password, reset code and last login are left alone; they change only
	// through the methods below.
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) (*domain.Account, error)

	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetPassword(ctx context.Context, id, passwordHash string) error
	// SetResetCode stores the digest of a freshly issued reset code,
	// replacing any outstanding one.
	SetResetCode(ctx context.Context, id, digest string, expiresAt time.Time) error
	// ConsumeResetCode sets the password only while digest is still the
	// outstanding code, and clears the code in the same write. It returns
	// domain.ErrInvalidOTP when the code was already used or replaced.
	ConsumeResetCode(ctx context.Context, id, digest, passwordHash string) error
}
