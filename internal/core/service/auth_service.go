package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
	"github.com/movieplatform/movie-api/internal/pkg/otp"
)

// PasswordHasher hashes passwords and one-time codes alike.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// CodeGenerator issues reset codes and checks them against stored digests.
type CodeGenerator interface {
	Generate() (otp.Code, error)
	Valid(digest, supplied string, expiresAt time.Time) bool
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(accountID, role string) (string, error)
}

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	Accounts ports.AccountRepository
	Hasher   PasswordHasher
	Codes    CodeGenerator
	Tokens   TokenIssuer
	Mailer   ports.Mailer
	Notifier ports.Notifier
	Storage  ports.ObjectStorage
	Throttle ports.ResetThrottle
}

// AuthService implements signup, login, password recovery and profile
// verification.
type AuthService struct {
	AuthDeps
	log zerolog.Logger
	now func() time.Time
}

func NewAuthService(deps AuthDeps, log zerolog.Logger) *AuthService {
	return &AuthService{AuthDeps: deps, log: log, now: time.Now}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if err := checkPasswordLength(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.Accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrAccountExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	userType, err := domain.ParseSignupUserType(in.UserType)
	if err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := s.now().UTC()
	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		UserType:     userType,
		Role:         userType.DefaultRole(),
		CreatedAt:    now,
		LastLogin:    now,
	}
	switch userType {
	case domain.UserTypeOrganization:
		account.RegistrationNumber = in.RegistrationNumber
		account.ContactPerson = in.ContactPerson
	case domain.UserTypeAuthor:
		account.IsAuthor = domain.AuthorPending
	}

	created, err := s.Accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.Notifier.Enqueue(welcomeMessage(created.Email))

	token, err := s.Tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, fmt.Errorf("signup: issue token: %w", err)
	}

	s.log.Info().Str("account_id", created.ID).Str("user_type", string(userType)).Msg("account registered")
	return &ports.AuthResult{Token: token, Account: created}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	account, err := s.Accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	account.LastLogin = s.now().UTC()
	if err := s.Accounts.TouchLastLogin(ctx, account.ID, account.LastLogin); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to record last login")
	}

	token, err := s.Tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}
	return &ports.AuthResult{Token: token, Account: account}, nil
}

// ForgotPassword mails a fresh reset code. The code itself is never returned.
// The cooldown is given back when the code could not be delivered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (err error) {
	account, err := s.Accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	allowed, err := s.Throttle.Allow(ctx, account.Email)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("reset throttle unavailable, continuing")
	case !allowed:
		return domain.ErrTooManyRequests
	default:
		defer func() {
			if err != nil {
				s.releaseThrottle(ctx, account)
			}
		}()
	}

	code, err := s.Codes.Generate()
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	digest, err := s.Hasher.Hash(code.Value)
	if err != nil {
		return fmt.Errorf("forgot password: hash code: %w", err)
	}

	if err := s.Accounts.SetResetCode(ctx, account.ID, digest, code.ExpiresAt); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	if err := s.Mailer.Send(ctx, resetCodeMessage(account.Email, code)); err != nil {
		return fmt.Errorf("forgot password: send code: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Time("expires_at", code.ExpiresAt).Msg("reset code issued")
	return nil
}

func (s *AuthService) releaseThrottle(ctx context.Context, account *domain.Account) {
	if err := s.Throttle.Release(context.WithoutCancel(ctx), account.Email); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to release reset throttle")
	}
}

// ResetPassword consumes a reset code. Any failed check yields
// domain.ErrInvalidOTP and leaves the account untouched. The code is
// consumed in the same write that sets the password, so it works once.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	account, err := s.Accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if !s.Codes.Valid(account.OTPHash, code, account.OTPExpiresAt) {
		s.log.Info().Str("account_id", account.ID).Msg("reset code rejected")
		return domain.ErrInvalidOTP
	}
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}

	if err := s.Accounts.ConsumeResetCode(ctx, account.ID, account.OTPHash, hash); err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			s.log.Info().Str("account_id", account.ID).Msg("reset code already consumed")
			return err
		}
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	account, err := s.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !s.Hasher.Verify(currentPassword, account.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}

	if err := s.Accounts.SetPassword(ctx, account.ID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// VerifyProfile completes the caller's profile and marks it verified.
// Verified accounts are returned unchanged.
func (s *AuthService) VerifyProfile(ctx context.Context, in ports.VerifyProfileInput) (*domain.Account, error) {
	account, err := s.Accounts.FindByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if account.IsVerified {
		return account, nil
	}

	domain.ApplyProfile(account, domain.ProfileFor(account.UserType, in.Fields))

	switch {
	case in.Photo != nil:
		in.Photo.Kind = ports.UploadPhoto
		url, err := s.Storage.Upload(ctx, *in.Photo)
		if err != nil {
			return nil, fmt.Errorf("verify profile: upload photo: %w", err)
		}
		account.Photo = url
	case in.Document != nil:
		in.Document.Kind = ports.UploadDocument
		url, err := s.Storage.Upload(ctx, *in.Document)
		if err != nil {
			return nil, fmt.Errorf("verify profile: upload document: %w", err)
		}
		account.Documents = append(account.Documents, url)
	}

	account.IsVerified = true
	if err := s.Accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("verify profile: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("profile verified")
	return account, nil
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func welcomeMessage(to string) ports.MailMessage {
	return ports.MailMessage{
		To:      to,
		Subject: "Welcome to Movie site",
		Text:    "Thank you for signing up!",
	}
}

func resetCodeMessage(to string, code otp.Code) ports.MailMessage {
	return ports.MailMessage{
		To:      to,
		Subject: "Password OTP Code Reset",
		Text: fmt.Sprintf(
			"Use this %s to change your password. It is valid for five minutes and expires at %s.",
			code.Value, code.ExpiresAt.Format(time.RFC1123),
		),
	}
}
