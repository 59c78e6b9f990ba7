package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

type stubAccountService struct {
	listFn     func(ctx context.Context) ([]*domain.Account, error)
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn   func(ctx context.Context, id string) (*domain.Account, error)
	approvalFn func(ctx context.Context, id string, status domain.AuthorStatus) (*domain.Account, error)
}

func (s *stubAccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) Update(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubAccountService) Delete(ctx context.Context, id string) (*domain.Account, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubAccountService) SetAuthorApproval(ctx context.Context, id string, status domain.AuthorStatus) (*domain.Account, error) {
	return s.approvalFn(ctx, id, status)
}

func TestAccountHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		listFn: func(ctx context.Context) ([]*domain.Account, error) {
			return []*domain.Account{{ID: "a2"}, {ID: "a1"}}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/all", nil)
	rec := httptest.NewRecorder()
	run(t, h.List, e.NewContext(req, rec))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if users, _ := decode(t, rec)["users"].([]any); len(users) != 2 {
		t.Fatalf("expected 2 users, got %v", users)
	}
}

func TestAccountHandler_Me_UsesTokenIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "a1" {
				t.Fatalf("expected caller id, got %q", id)
			}
			return &domain.Account{ID: id, Email: "ana@example.com"}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withClaims(c, "a1", domain.RoleClient)
	run(t, h.Me, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	run(t, h.Get, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["error"] != "user not found" {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestAccountHandler_Edit(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
			if id != "a1" || in.Phone != "0788" || in.Address.District != "Gasabo" || in.Name != "" {
				t.Fatalf("unexpected args: %s %+v", id, in)
			}
			return &domain.Account{ID: id, Name: "Ana", Phone: in.Phone}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := jsonRequest(http.MethodPut, "/api/v1/user/edit/a1", `{"phone":"0788","district":"Gasabo"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	withClaims(c, "a1", domain.RoleClient)
	run(t, h.Edit, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_Edit_OwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		role     string
		wantCode int
	}{
		{"other client", "a2", domain.RoleClient, http.StatusForbidden},
		{"other author", "a2", domain.RoleAuthor, http.StatusForbidden},
		{"admin", "root", domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			called := false
			stub := &stubAccountService{
				updateFn: func(ctx context.Context, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
					called = true
					return &domain.Account{ID: id, Phone: in.Phone}, nil
				},
			}
			h := NewAccountHandler(stub)

			req := jsonRequest(http.MethodPut, "/api/v1/user/edit/a1", `{"phone":"0788"}`)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("a1")
			withClaims(c, tt.callerID, tt.role)
			run(t, h.Edit, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if called != (tt.wantCode == http.StatusOK) {
				t.Fatalf("service called=%v for status %d", called, rec.Code)
			}
		})
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		deleteFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return &domain.Account{ID: id}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/user/delete/a9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a9")
	run(t, h.Delete, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user, _ := decode(t, rec)["user"].(map[string]any)
	if user["id"] != "a9" {
		t.Fatalf("expected deleted record in response, got %+v", user)
	}
}

func TestAccountHandler_SetAuthorApproval(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{"approve", `{"isAuthor":"yes"}`, nil, http.StatusOK},
		{"unknown decision", `{"isAuthor":"maybe"}`, nil, http.StatusBadRequest},
		{"not an author", `{"isAuthor":"no"}`, domain.ErrNotAnAuthor, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAccountService{
				approvalFn: func(ctx context.Context, id string, status domain.AuthorStatus) (*domain.Account, error) {
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					if status != domain.AuthorApproved {
						t.Fatalf("unexpected status %q", status)
					}
					return &domain.Account{ID: id, IsAuthor: status}, nil
				},
			}
			h := NewAccountHandler(stub)

			req := jsonRequest(http.MethodPut, "/api/v1/user/author/a3/approval", tt.body)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("a3")
			run(t, h.SetAuthorApproval, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAccountHandler_AuthorStatus(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return &domain.Account{ID: id, IsAuthor: domain.AuthorPending}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/author/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	withClaims(c, "a3", domain.RoleAuthor)
	run(t, h.AuthorStatus, c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["isAuthor"] != "pending" {
		t.Fatalf("unexpected status: %v", resp["isAuthor"])
	}
}
