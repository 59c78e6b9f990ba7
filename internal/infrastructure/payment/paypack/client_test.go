package paypack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieplatform/movie-api/internal/core/ports"
)

type fakePaypack struct {
	authorizeCalls atomic.Int32
	cashinCalls    atomic.Int32
	rejectFirst    atomic.Bool
	cashinStatus   int
	lastMode       string
	lastBody       cashinRequest
}

func (f *fakePaypack) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/agents/authorize", func(w http.ResponseWriter, r *http.Request) {
		f.authorizeCalls.Add(1)
		var in authorizeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.ClientID != "id" || in.ClientSecret != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(authorizeResponse{
			Access:  "token-" + string(rune('0'+f.authorizeCalls.Load())),
			Expires: time.Now().Add(time.Hour).Unix(),
		})
	})
	mux.HandleFunc("POST /transactions/cashin", func(w http.ResponseWriter, r *http.Request) {
		f.cashinCalls.Add(1)
		if f.rejectFirst.CompareAndSwap(true, false) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.lastMode = r.Header.Get("X-Webhook-Mode")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastBody))
		if f.cashinStatus != 0 {
			w.WriteHeader(f.cashinStatus)
			_, _ = w.Write([]byte(`{"message":"insufficient balance"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(transactionResponse{
			Amount:    f.lastBody.Amount,
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Kind:      "CASHIN",
			Ref:       "d0b1a2c3",
			Status:    "pending",
		})
	})
	return mux
}

func newTestClient(t *testing.T, f *fakePaypack, secret string) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:      srv.URL + "/",
		ClientID:     "id",
		ClientSecret: secret,
		Environment:  "development",
	}, zerolog.Nop())
}

func TestClient_Cashin(t *testing.T) {
	f := &fakePaypack{}
	c := newTestClient(t, f, "secret")

	p, err := c.Cashin(context.Background(), ports.CashinRequest{Amount: 1000, Number: "0784600762"})
	require.NoError(t, err)

	assert.Equal(t, "d0b1a2c3", p.Ref)
	assert.Equal(t, 1000.0, p.Amount)
	assert.Equal(t, "CASHIN", p.Kind)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "development", f.lastMode)
	assert.Equal(t, cashinRequest{Amount: 1000, Number: "0784600762"}, f.lastBody)
}

func TestClient_ReusesToken(t *testing.T) {
	f := &fakePaypack{}
	c := newTestClient(t, f, "secret")

	for i := 0; i < 3; i++ {
		_, err := c.Cashin(context.Background(), ports.CashinRequest{Amount: 100, Number: "078"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.authorizeCalls.Load())
}

func TestClient_RenewsRejectedToken(t *testing.T) {
	f := &fakePaypack{}
	c := newTestClient(t, f, "secret")
	f.rejectFirst.Store(true)

	_, err := c.Cashin(context.Background(), ports.CashinRequest{Amount: 100, Number: "078"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.authorizeCalls.Load())
	assert.Equal(t, int32(2), f.cashinCalls.Load())
}

func TestClient_BadCredentials(t *testing.T) {
	f := &fakePaypack{}
	c := newTestClient(t, f, "wrong")

	_, err := c.Cashin(context.Background(), ports.CashinRequest{Amount: 100, Number: "078"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Equal(t, int32(0), f.cashinCalls.Load())
}

func TestClient_GatewayRejectsCashin(t *testing.T) {
	f := &fakePaypack{cashinStatus: http.StatusBadRequest}
	c := newTestClient(t, f, "secret")

	_, err := c.Cashin(context.Background(), ports.CashinRequest{Amount: 100, Number: "078"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")
}

func TestClient_ExpiredTokenIsRefreshed(t *testing.T) {
	f := &fakePaypack{}
	c := newTestClient(t, f, "secret")

	_, err := c.Cashin(context.Background(), ports.CashinRequest{Amount: 100, Number: "078"})
	require.NoError(t, err)

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = c.Cashin(context.Background(), ports.CashinRequest{Amount: 100, Number: "078"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.authorizeCalls.Load())
}
