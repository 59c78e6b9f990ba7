package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantKnown bool
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, true},
		{"validation", fmt.Errorf("%w: email is required", domain.ErrValidation), http.StatusBadRequest, true},
		{"mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest, true},
		{"user type", domain.ErrInvalidUserType, http.StatusBadRequest, true},
		{"account missing", fmt.Errorf("lookup: %w", domain.ErrAccountNotFound), http.StatusNotFound, true},
		{"subscription missing", domain.ErrSubscriptionNotFound, http.StatusNotFound, true},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized, true},
		{"bad otp", domain.ErrInvalidOTP, http.StatusUnauthorized, true},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, true},
		{"duplicate", domain.ErrAccountExists, http.StatusConflict, true},
		{"throttled", domain.ErrTooManyRequests, http.StatusTooManyRequests, true},
		{"payment", &domain.PaymentError{Err: errors.New("declined")}, http.StatusInternalServerError, true},
		{"unknown", errors.New("mongo exploded"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg, known := ErrorStatus(tt.err)
			if code != tt.wantCode || known != tt.wantKnown {
				t.Fatalf("ErrorStatus(%v) = %d, %v; want %d, %v", tt.err, code, known, tt.wantCode, tt.wantKnown)
			}
			if !known && msg != "internal server error" {
				t.Fatalf("unknown errors must not leak details, got %q", msg)
			}
		})
	}
}

func TestErrorStatus_PaymentFailureHidesGatewayText(t *testing.T) {
	err := fmt.Errorf("create: %w", &domain.PaymentError{Err: errors.New("paypack: 401 bad client secret xyz")})

	_, msg, _ := ErrorStatus(err)
	if msg != domain.ErrPaymentFailed.Error() {
		t.Fatalf("expected %q, got %q", domain.ErrPaymentFailed.Error(), msg)
	}
}
