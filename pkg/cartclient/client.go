// Package cartclient is the storefront-side companion of the shop API:
// it wraps the REST endpoints behind a session that holds the bearer
// token and keeps a local cart mirror in sync with the server.
package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/daspi/bookshop/pkg/booksclient"
)

var ErrUnauthenticated = errors.New("cartclient: not logged in")

type Session struct {
	apiBase    string
	httpClient *http.Client
	books      *booksclient.Client
	log        *slog.Logger

	mu    sync.Mutex
	token string
	items []Line
}

// Line is one entry of the local cart mirror. Price is the unit price
// the server holds for the line (or the resolved vendor price for
// lines not yet acknowledged).
type Line struct {
	Book     booksclient.Volume
	Quantity uint
	Price    float64
}

func NewSession(apiBase string, books *booksclient.Client, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		apiBase: apiBase,
		books:   books,
		log:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// do runs one API call. A 401 or 404 tears the session down, matching
// the storefront behavior of forcing a fresh login.
func (s *Session) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiBase+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		s.mu.Lock()
		s.token = ""
		s.mu.Unlock()
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return fmt.Errorf("api status %d: %s", resp.StatusCode, msg)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// Authenticated reports whether the session currently holds a token.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Logout drops the token; the local cart mirror is kept, matching the
// storefront's guest-cart behavior.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
