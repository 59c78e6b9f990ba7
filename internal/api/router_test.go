package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/api/handler"
	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
	"github.com/movieplatform/movie-api/internal/pkg/token"
)

type stubVerifier struct{}

// Verify accepts one client and one admin fixture token.
func (stubVerifier) Verify(raw string) (*token.Claims, error) {
	switch raw {
	case "client-token":
		return &token.Claims{AccountID: "a1", Role: domain.RoleClient}, nil
	case "admin-token":
		return &token.Claims{AccountID: "root", Role: domain.RoleAdmin}, nil
	}
	return nil, token.ErrInvalidToken
}

type stubAccounts struct {
	ports.AccountService
}

func (stubAccounts) Get(_ context.Context, id string) (*domain.Account, error) {
	if id == "a1" {
		return &domain.Account{ID: id}, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (stubAccounts) Delete(_ context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

type stubSubscriptions struct {
	ports.SubscriptionService
}

func (stubSubscriptions) List(_ context.Context, in ports.ListSubscriptionsInput) (*ports.ListSubscriptionsResult, error) {
	return &ports.ListSubscriptionsResult{Docs: []*domain.Subscription{}, Limit: 10, Page: 1, TotalPages: 1}, nil
}

func (stubSubscriptions) Get(_ context.Context, id string) (*domain.Subscription, error) {
	return nil, errors.New("boom")
}

// The echoprometheus middleware registers its collectors globally, so the
// router is built exactly once for all cases.
func TestRouter(t *testing.T) {
	e := NewRouter(Deps{
		Accounts:      stubAccounts{},
		Subscriptions: stubSubscriptions{},
		Tokens:        stubVerifier{},
		Readiness: map[string]handler.DependencyCheck{
			"mongo": func(context.Context) error { return nil },
		},
		Log: zerolog.Nop(),
	})

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"me without token", http.MethodGet, "/api/v1/user/me", "", http.StatusUnauthorized},
		{"me with bad token", http.MethodGet, "/api/v1/user/me", "forged", http.StatusUnauthorized},
		{"me", http.MethodGet, "/api/v1/user/me", "client-token", http.StatusOK},
		{"get unknown account", http.MethodGet, "/api/v1/user/zzz", "client-token", http.StatusNotFound},
		{"delete as client", http.MethodDelete, "/api/v1/user/delete/a2", "client-token", http.StatusForbidden},
		{"delete as admin", http.MethodDelete, "/api/v1/user/delete/a2", "admin-token", http.StatusOK},
		{"author status as client", http.MethodGet, "/api/v1/user/author/status", "client-token", http.StatusForbidden},
		{"edit another account as client", http.MethodPut, "/api/v1/user/edit/a2", "client-token", http.StatusForbidden},
		{"update status as client", http.MethodPut, "/api/v1/sub/updateStatus/s1", "client-token", http.StatusForbidden},
		{"update status without token", http.MethodPut, "/api/v1/sub/updateStatus/s1", "", http.StatusUnauthorized},
		{"public subscription list", http.MethodGet, "/api/v1/sub/all", "", http.StatusOK},
		{"create requires token", http.MethodPost, "/api/v1/sub/create", "", http.StatusUnauthorized},
		{"unexpected error", http.MethodGet, "/api/v1/sub/s1", "", http.StatusInternalServerError},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("%s %s: expected %d, got %d: %s", tt.method, tt.path, tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}
