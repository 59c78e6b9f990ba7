package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		allowed   []string
		wantAllow bool
	}{
		{"author on author route", domain.RoleAuthor, []string{domain.RoleAuthor}, true},
		{"admin among several", domain.RoleAdmin, []string{domain.RoleAuthor, domain.RoleAdmin}, true},
		{"client on admin route", domain.RoleClient, []string{domain.RoleAdmin}, false},
		{"organization on author route", domain.RoleOrganization, []string{domain.RoleAuthor}, false},
		{"missing role", "", []string{domain.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != "" {
				c.Set("role", tt.role)
			}

			called := false
			handler := RBAC(tt.allowed...)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tt.wantAllow {
				if err != nil || !called {
					t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
				}
				return
			}
			if called {
				t.Fatalf("should not reach next handler")
			}
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
