package domain

import (
	"errors"
	"fmt"
)

// Validation errors map to 400.
var (
	ErrValidation              = errors.New("validation failed")
	ErrPasswordMismatch        = errors.New("password and confirm password do not match")
	ErrInvalidUserType         = errors.New("invalid user type")
	ErrInvalidSubscriptionType = errors.New("invalid subscription type")
	ErrInvalidDuration         = errors.New("invalid subscription duration")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidStatus           = errors.New("invalid subscription status")
	ErrNotAnAuthor             = errors.New("account is not an author")
)

var (
	ErrAccountNotFound      = errors.New("user not found")
	ErrAccountExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("wrong password")
	ErrInvalidOTP           = errors.New("invalid or expired otp")
	ErrForbidden            = errors.New("access forbidden")
	ErrTooManyRequests      = errors.New("too many requests, try again later")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPaymentFailed        = errors.New("payment failed")
)

// IsValidation reports whether err belongs to the 400 family.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrPasswordMismatch,
		ErrInvalidUserType,
		ErrInvalidSubscriptionType,
		ErrInvalidDuration,
		ErrInvalidPaymentMethod,
		ErrInvalidStatus,
		ErrNotAnAuthor,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// PaymentError carries the subscription that stayed persisted after the
// gateway refused a cash-in. It matches ErrPaymentFailed.
type PaymentError struct {
	Subscription *Subscription
	Err          error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPaymentFailed, e.Err)
}

func (e *PaymentError) Unwrap() []error {
	return []error{ErrPaymentFailed, e.Err}
}
