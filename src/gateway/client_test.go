package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// staticTokens satisfies TokenSource with a fixed token.
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:       baseURL,
		Tokens:        staticTokens{token: "test-token"},
		ResourceGroup: "default",
		RetryInterval: 10 * time.Millisecond,
		RetryCeiling:  100 * time.Millisecond,
	})
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotGroup string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotGroup = r.Header.Get("AI-Resource-Group")
		fmt.Fprint(w, `{"count":0,"resources":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.ListDeployments(context.Background()); err != nil {
		t.Fatalf("ListDeployments() error = %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
	if gotGroup != "default" {
		t.Errorf("AI-Resource-Group = %q, want default", gotGroup)
	}
}

func TestRetrySucceedsImmediately(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"count":0,"resources":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	start := time.Now()
	if _, err := client.ListDeployments(context.Background()); err != nil {
		t.Fatalf("ListDeployments() error = %v", err)
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
	// A success must not incur a retry sleep
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("success took %s, expected no retry delay", elapsed)
	}
}

func TestRetryRecoversFromServerError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"count":0,"resources":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	if _, err := client.ListDeployments(context.Background()); err != nil {
		t.Fatalf("ListDeployments() error = %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestRetryExhaustsWindow(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.ListDeployments(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retry window")
	}
	if got := atomic.LoadInt32(&hits); got < 2 {
		t.Errorf("expected multiple attempts, got %d", got)
	}
}

func TestClientErrorNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"error":{"message":"no such deployment","code":"not_found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.GetDeployment(context.Background(), "d-missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Code != "not_found" {
		t.Errorf("Code = %q, want not_found", apiErr.Code)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("4xx must not be retried, got %d requests", got)
	}
}

func TestRetryContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:       srv.URL,
		Tokens:        staticTokens{token: "test-token"},
		RetryInterval: 50 * time.Millisecond,
		RetryCeiling:  10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.ListDeployments(ctx)
	if err == nil {
		t.Fatal("expected error after context cancellation")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %s, expected prompt abort", elapsed)
	}
}

func TestTokenFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the gateway without a token")
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL: srv.URL,
		Tokens:  staticTokens{err: errors.New("auth server down")},
	})

	_, err := client.ListDeployments(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}
