package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// ErrorStatus maps err to an HTTP status and a client-safe message. ok is
// false for errors with no known mapping; those must be logged and reported
// as a generic 500.
func ErrorStatus(err error) (code int, msg string, ok bool) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, domain.ErrAccountNotFound.Error(), true
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		return http.StatusNotFound, domain.ErrSubscriptionNotFound.Error(), true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), true
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusUnauthorized, domain.ErrInvalidOTP.Error(), true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error(), true
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, domain.ErrAccountExists.Error(), true
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests, domain.ErrTooManyRequests.Error(), true
	case errors.Is(err, domain.ErrPaymentFailed):
		// Gateway detail stays in the service log.
		return http.StatusInternalServerError, domain.ErrPaymentFailed.Error(), true
	}
	return http.StatusInternalServerError, "internal server error", false
}
