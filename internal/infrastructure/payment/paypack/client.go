// Package paypack is a client for the Paypack mobile-money API.
package paypack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/core/domain"
	"github.com/movieplatform/movie-api/internal/core/ports"
)

const (
	defaultBaseURL = "https://payments.paypack.rw/api"
	defaultTimeout = 15 * time.Second
	// Tokens are refreshed this long before Paypack would reject them.
	expiryLeeway = 30 * time.Second
)

var errUnauthorized = errors.New("paypack: unauthorized")

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// Environment is sent as X-Webhook-Mode ("development" or "production").
	Environment string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
	now        func() time.Time

	mu      sync.Mutex
	access  string
	expires time.Time
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
		now:        time.Now,
	}
}

type authorizeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type authorizeResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Expires int64  `json:"expires"`
}

type cashinRequest struct {
	Amount float64 `json:"amount"`
	Number string  `json:"number"`
}

type transactionResponse struct {
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Ref       string    `json:"ref"`
	Status    string    `json:"status"`
}

// Cashin asks Paypack to pull req.Amount from the wallet req.Number. A
// rejected cached token is renewed once before giving up.
func (c *Client) Cashin(ctx context.Context, req ports.CashinRequest) (*domain.Payment, error) {
	tx, err := c.cashin(ctx, req)
	if errors.Is(err, errUnauthorized) {
		c.invalidate()
		tx, err = c.cashin(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("ref", tx.Ref).Str("status", tx.Status).Float64("amount", tx.Amount).Msg("paypack cash-in accepted")
	return &domain.Payment{
		Ref:       tx.Ref,
		Amount:    tx.Amount,
		Status:    tx.Status,
		Kind:      tx.Kind,
		CreatedAt: tx.CreatedAt,
	}, nil
}

func (c *Client) cashin(ctx context.Context, req ports.CashinRequest) (*transactionResponse, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	var tx transactionResponse
	err = c.post(ctx, "/transactions/cashin", cashinRequest{Amount: req.Amount, Number: req.Number}, token, &tx)
	if err != nil {
		return nil, fmt.Errorf("paypack cashin: %w", err)
	}
	return &tx, nil
}

// token returns a cached access token, authorizing when none is valid.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.access != "" && c.now().Add(expiryLeeway).Before(c.expires) {
		return c.access, nil
	}

	var res authorizeResponse
	err := c.post(ctx, "/auth/agents/authorize", authorizeRequest{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
	}, "", &res)
	if err != nil {
		return "", fmt.Errorf("paypack authorize: %w", err)
	}
	if res.Access == "" {
		return "", errors.New("paypack authorize: empty access token")
	}

	c.access = res.Access
	c.expires = time.Unix(res.Expires, 0)
	return c.access, nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.access = ""
	c.mu.Unlock()
}

func (c *Client) post(ctx context.Context, path string, in any, token string, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if c.cfg.Environment != "" {
		httpReq.Header.Set("X-Webhook-Mode", c.cfg.Environment)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		return errUnauthorized
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func handleErrorResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, payload.Message)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
