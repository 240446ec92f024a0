// Package reststore implements store.DataService against a generic REST
// backend. It is the placeholder second adapter behind the interface: JSON
// bodies, a bearer token on every request and any non-2xx status mapped to
// an error. Swapping it in for the MySQL adapter requires no caller
// changes.
package reststore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecowave/ecowave-hub/internal/store"
)

var _ store.DataService = (*Store)(nil)

// Store is the REST-backed DataService adapter.
type Store struct {
	base   string
	token  string
	client *http.Client
}

// New constructs a Store for the given base URL and bearer token.
func New(baseURL, token string) *Store {
	return &Store{
		base:   strings.TrimRight(baseURL, "/"),
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// errBody is the backend's error envelope; plain-text bodies are used
// verbatim when the envelope does not parse.
type errBody struct {
	Error string `json:"error"`
}

// do performs one request. in (when non-nil) is marshaled as the JSON
// body; out (when non-nil) receives the decoded response body.
func (s *Store) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.base+path, body)
	if err != nil {
		return err
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return s.asError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// asError maps an error response onto the shared sentinels where the
// status is unambiguous, and otherwise surfaces the backend's message.
func (s *Store) asError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	var eb errBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		msg = eb.Error
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return store.ErrNotFound
	case http.StatusUnauthorized:
		return store.ErrInvalidCredentials
	case http.StatusConflict:
		return store.ErrConflict
	}
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("rest backend: %s", msg)
}

// Ping issues a minimal read against the backend's health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, "/healthz", nil, nil)
}
