package paragraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCachedIDSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL, APIKey: "key-1"})
	resolver := NewResolver(client, "pub_1", "my-pub", nil)

	id, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pub_1", id)
	assert.Equal(t, "my-pub", resolver.Slug())
	assert.Equal(t, int32(0), calls.Load())
}

func TestResolveDiscoversFromFeed(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"post_1","publication":{"slug":"my-pub"}}]}`))
	})
	mux.HandleFunc("/publications/slug/my-pub", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pub_1","slug":"my-pub"}`))
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL, APIKey: "key-1"})
	resolver := NewResolver(client, "", "", nil)

	id, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pub_1", id)
	assert.Equal(t, "my-pub", resolver.Slug())
	assert.Equal(t, int32(2), calls.Load())

	// Second resolve must come from the cache.
	id, err = resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pub_1", id)
	assert.Equal(t, int32(2), calls.Load())
}

func TestResolveFallsBackToCustomDomain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"post_1","publication":{"customDomain":"blog.example.com"}}]}`))
	})
	mux.HandleFunc("/publications/domain/blog.example.com", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pub_2"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL, APIKey: "key-1"})
	resolver := NewResolver(client, "", "", nil)

	id, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pub_2", id)
}

func TestResolveEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL, APIKey: "key-1"})
	resolver := NewResolver(client, "", "", nil)

	_, err := resolver.Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not auto-discover")
	assert.Contains(t, err.Error(), "PARAGRAPH_PUBLICATION_ID")
}

func TestResolveFeedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"feed down"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL, APIKey: "key-1"})
	resolver := NewResolver(client, "", "", nil)

	_, err := resolver.Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not auto-discover")
	assert.Contains(t, err.Error(), "feed down")
}
