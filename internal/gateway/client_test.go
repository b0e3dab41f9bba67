package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestClient_ListProviders(t *testing.T) {
	var gotKey, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/providers" {
			t.Errorf("path = %q, want /v1/providers", r.URL.Path)
		}
		gotKey = r.Header.Get("x-portkey-api-key")
		gotRequestID = r.Header.Get("x-request-id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"slug":"anthropic","name":"Anthropic"},{"slug":"bedrock-prod","name":"Bedrock"}]}`))
	}))
	defer server.Close()

	client := NewClient("pk-live-1", WithBaseURL(server.URL))
	providers, err := client.ListProviders(context.Background())
	if err != nil {
		t.Fatalf("ListProviders() error = %v", err)
	}
	if len(providers) != 2 || providers[0].Slug != "anthropic" || providers[1].Slug != "bedrock-prod" {
		t.Fatalf("ListProviders() = %#v", providers)
	}
	if gotKey != "pk-live-1" {
		t.Fatalf("x-portkey-api-key = %q", gotKey)
	}
	if gotRequestID == "" {
		t.Fatal("x-request-id header missing")
	}
}

func TestClient_FetchCatalog(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/providers":
			_, _ = w.Write([]byte(`{"data":[{"slug":"anthropic","name":"Anthropic"}]}`))
		case "/v1/configs":
			_, _ = w.Write([]byte(`{"data":[{"id":"pc-1","name":"prod"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient("pk-live-1", WithBaseURL(server.URL))
	catalog, err := client.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog() error = %v", err)
	}
	if len(catalog.Providers) != 1 || len(catalog.Configs) != 1 {
		t.Fatalf("FetchCatalog() = %#v", catalog)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("FetchCatalog() made %d calls, want 2", got)
	}
}

func TestClient_UnauthorizedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bogus", WithBaseURL(server.URL))
	if err := client.ValidateKey(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ValidateKey() error = %v, want ErrUnauthorized", err)
	}
}

func TestClient_ServerErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("pk-live-1", WithBaseURL(server.URL))
	_, err := client.ListConfigs(context.Background())
	if err == nil {
		t.Fatal("ListConfigs() error = nil, want failure")
	}
	if want := "upstream exploded"; !strings.Contains(err.Error(), want) {
		t.Fatalf("ListConfigs() error = %q, want it to contain %q", err, want)
	}
}

func TestWithBaseURL_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("k", WithBaseURL("https://gw.example/"))
	if client.baseURL != "https://gw.example" {
		t.Fatalf("baseURL = %q", client.baseURL)
	}
}
