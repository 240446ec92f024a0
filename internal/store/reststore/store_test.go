package reststore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecowave/ecowave-hub/internal/store"
)

func TestGetUserSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "7", "email": "a@b.c"})
	}))
	defer srv.Close()

	s := New(srv.URL, "sekrit")
	u, err := s.GetUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if gotAuth != "Bearer sekrit" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotPath != "/users/7" {
		t.Errorf("path = %q", gotPath)
	}
	if u.ID != 7 || u.Email != "a@b.c" {
		t.Errorf("user = %+v", u)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "not found", status: http.StatusNotFound, want: store.ErrNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, want: store.ErrInvalidCredentials},
		{name: "conflict", status: http.StatusConflict, want: store.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"nope"}`, tt.status)
			}))
			defer srv.Close()

			s := New(srv.URL, "")
			_, err := s.GetUser(context.Background(), 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestErrorSurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	s := New(srv.URL, "")
	_, err := s.ListUsers(context.Background())
	if err == nil || err.Error() != "rest backend: quota exceeded" {
		t.Errorf("err = %v", err)
	}
}

func TestReviewSubmissionNormalizesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "3", "status": " APPROVED "})
	}))
	defer srv.Close()

	s := New(srv.URL, "")
	sub, err := s.ReviewSubmission(context.Background(), 3, true)
	if err != nil {
		t.Fatalf("ReviewSubmission: %v", err)
	}
	if sub.Status != "approved" {
		t.Errorf("status = %q, want %q", sub.Status, "approved")
	}
}

func TestPingHitsHealthz(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(srv.URL, "").Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if path != "/healthz" {
		t.Errorf("path = %q", path)
	}
}
