package ports

import (
	"context"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// SignupInput carries the registration form. Type-specific fields are
// ignored when they do not apply to UserType.
type SignupInput struct {
	Email              string
	Password           string
	ConfirmPassword    string
	UserType           string
	Name               string
	Phone              string
	RegistrationNumber string
	ContactPerson      string
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// VerifyProfileInput is the profile-completion form of the caller. At most
// one of Photo and Document is processed, Photo first.
type VerifyProfileInput struct {
	AccountID string
	Fields    domain.ProfileFields
	Photo     *Upload
	Document  *Upload
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error
	VerifyProfile(ctx context.Context, in VerifyProfileInput) (*domain.Account, error)
}
