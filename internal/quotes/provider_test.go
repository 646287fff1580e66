package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	provider := NewProvider(Config{
		URL:      server.URL,
		Category: "inspirational",
		APIKey:   "test-key",
		Timeout:  time.Second,
	}, nil)
	provider.pickFunc = func(n int) int { return n - 1 }
	return provider, &calls
}

func TestFetchRemoteQuote(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "inspirational", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"quote":"Stay hungry.","author":"Someone","category":"inspirational"}]`))
	})

	quote := provider.Fetch(context.Background())

	assert.Equal(t, Quote{Text: "Stay hungry.", Author: "Someone"}, quote)
}

func TestFetchFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Missing API Key."}`))
			},
		},
		{
			name: "empty list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "blank quote",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"quote":"  ","author":"Nobody"}]`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, calls := newTestProvider(t, tt.handler)

			quote := provider.Fetch(context.Background())

			assert.Equal(t, FallbackQuotes[len(FallbackQuotes)-1], quote)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "failures are never retried")
		})
	}
}

func TestFetchFallsBackOnTransportError(t *testing.T) {
	provider := NewProvider(Config{URL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil)
	provider.pickFunc = func(int) int { return 2 }

	quote := provider.Fetch(context.Background())

	assert.Equal(t, FallbackQuotes[2], quote)
}

func TestFetchRemoteErrors(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := provider.fetchRemote(context.Background())
	require.ErrorIs(t, err, ErrStatus)

	provider, _ = newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	_, err = provider.fetchRemote(context.Background())
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestFallbackQuotes(t *testing.T) {
	require.Len(t, FallbackQuotes, 5)
	assert.Equal(t, "Walt Disney", Initial().Author)

	for i := 0; i < 50; i++ {
		assert.Contains(t, FallbackQuotes, RandomFallback())
	}
}
