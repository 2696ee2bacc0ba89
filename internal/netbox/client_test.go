package netbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "test-token", WithRetryPolicy(RetryPolicy{
		Retries:   2,
		BaseDelay: time.Millisecond,
		MaxDelay:  5 * time.Millisecond,
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestNewRejectsBadURL(t *testing.T) {
	cases := []string{"", "localhost:8001", "ftp://example.com", "://bad"}
	for _, u := range cases {
		if _, err := New(u, "token"); err == nil {
			t.Errorf("New(%q): expected error", u)
		}
	}
}

func TestStatusSendsToken(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/api/status/", func(w http.ResponseWriter, req *http.Request) {
		got = req.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	c, _ := newTestClient(t, r)
	if err := c.Status(context.Background()); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got != "Token test-token" {
		t.Errorf("Authorization = %q, want %q", got, "Token test-token")
	}
}

func TestStatusAuthFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/status/", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"detail": "Invalid token"}`, http.StatusForbidden)
	})

	c, _ := newTestClient(t, r)
	err := c.Status(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuth(err) {
		t.Errorf("IsAuth(%v) = false, want true", err)
	}
}

func TestFind(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/dcim/sites/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("limit") != "1" {
			t.Errorf("limit = %q, want 1", req.URL.Query().Get("limit"))
		}
		switch req.URL.Query().Get("name") {
		case "dc-east":
			w.Write([]byte(`{"count": 1, "results": [{"id": 42, "name": "dc-east"}]}`))
		default:
			w.Write([]byte(`{"count": 0, "results": []}`))
		}
	})

	c, _ := newTestClient(t, r)

	obj, err := c.Find(context.Background(), "dcim/sites", url.Values{"name": {"dc-east"}})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if obj == nil || obj.ID != 42 {
		t.Fatalf("Find = %+v, want ID 42", obj)
	}

	obj, err = c.Find(context.Background(), "dcim/sites", url.Values{"name": {"missing"}})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if obj != nil {
		t.Errorf("Find = %+v, want nil for no match", obj)
	}
}

func TestCreate(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/dcim/sites/", func(w http.ResponseWriter, req *http.Request) {
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 7, "name": "dc-west"}`))
	})

	c, _ := newTestClient(t, r)
	obj, err := c.Create(context.Background(), "dcim/sites", map[string]any{"name": "dc-west"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if obj.ID != 7 {
		t.Errorf("ID = %d, want 7", obj.ID)
	}
}

func TestCreateDuplicateClassification(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/dcim/sites/", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, `{"name": ["site with this name already exists."]}`, http.StatusBadRequest)
	})

	c, _ := newTestClient(t, r)
	_, err := c.Create(context.Background(), "dcim/sites", map[string]any{"name": "dup"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDuplicate(err) {
		t.Errorf("IsDuplicate(%v) = false, want true", err)
	}
	if IsTransient(err) {
		t.Errorf("IsTransient(%v) = true, want false", err)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int64
	r := chi.NewRouter()
	r.Get("/api/status/", func(w http.ResponseWriter, req *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "bad gateway", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	})

	c, _ := newTestClient(t, r)
	if err := c.Status(context.Background()); err != nil {
		t.Fatalf("Status after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int64
	r := chi.NewRouter()
	r.Get("/api/status/", func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	c, _ := newTestClient(t, r)
	err := c.Status(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	// Initial attempt plus two retries.
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if !IsTransient(err) {
		t.Errorf("IsTransient(%v) = false, want true", err)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int64
	r := chi.NewRouter()
	r.Post("/api/dcim/sites/", func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		http.Error(w, `{"name": ["This field is required."]}`, http.StatusBadRequest)
	})

	c, _ := newTestClient(t, r)
	if _, err := c.Create(context.Background(), "dcim/sites", map[string]any{}); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestRetryRespectsContext(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/status/", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	c, srv := newTestClient(t, r)
	_ = srv

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Status(ctx); err == nil {
		t.Fatal("expected error with canceled context")
	}
}
