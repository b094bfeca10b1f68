package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, b *Builder) *HTTPSClient {
	t.Helper()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return c
}

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/config" {
			t.Errorf("expected /config, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("env") != "prod" {
			t.Errorf("expected env=prod, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"registry": "main"})
	}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder())
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    srv.URL + "/config",
		Query:  map[string]string{"env": "prod"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "main") {
		t.Errorf("response body should contain main, got %s", string(resp.Body))
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("unexpected content type %q", resp.Headers["Content-Type"])
	}
}

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder())
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		URL:    srv.URL + "/items",
		Body:   map[string]string{"name": "alpine"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestClient_Do_RedirectNotFollowed(t *testing.T) {
	var targetHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/target" {
			targetHits.Add(1)
			return
		}
		http.Redirect(w, r, "/target", http.StatusFound)
	}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder())
	resp, err := c.Do(context.Background(), Request{URL: srv.URL + "/start"})
	if err != nil {
		t.Fatalf("redirect must not be an error: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected 302, got %d", resp.StatusCode)
	}
	if !resp.IsRedirect() {
		t.Error("expected IsRedirect=true")
	}
	if resp.Headers["Location"] != "/target" {
		t.Errorf("expected Location /target, got %q", resp.Headers["Location"])
	}
	if targetHits.Load() != 0 {
		t.Error("redirect target must not be requested")
	}
}

func TestClient_Do_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder())
	resp, err := c.Do(context.Background(), Request{URL: srv.URL})
	if !IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden || string(resp.Body) != "denied" {
		t.Errorf("expected response alongside error, got %+v", resp)
	}
}

func TestClient_Do_ForwardAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer caller" {
			t.Errorf("Authorization = %q", got)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder())
	if _, err := c.Do(context.Background(), Request{URL: srv.URL, Auth: ForwardAuth("Bearer caller")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_EnforceHTTPS_RejectsPlaintext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder().EnforceHTTPS(true))
	_, err := c.Do(context.Background(), Request{URL: srv.URL})
	if !errors.Is(err, ErrHTTPSRequired) {
		t.Fatalf("expected ErrHTTPSRequired, got %v", err)
	}
	if hits.Load() != 0 {
		t.Error("plaintext target must not be contacted")
	}
}

func TestClient_EnforceHTTPS_AllowsTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder().EnforceHTTPS(true))
	if _, err := c.Do(context.Background(), Request{URL: srv.URL}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_StrictTLSRejectsUnknownAuthority(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(t, NewBuilder().AcceptInvalidCerts(false))
	_, err := c.Do(context.Background(), Request{URL: srv.URL})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, NewBuilder())
	_, err := c.Do(context.Background(), Request{URL: url})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, NewBuilder())
	_, err := c.Do(ctx, Request{URL: srv.URL})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestClient_InvalidURL(t *testing.T) {
	c := newTestClient(t, NewBuilder())
	_, err := c.Do(context.Background(), Request{URL: "://bad"})
	var clientErr *Error
	if !errors.As(err, &clientErr) || clientErr.Code != ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
