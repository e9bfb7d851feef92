package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/XIVMarket_Go/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{Provider: "test", BaseURL: srv.URL + "/", Timeout: timeout, RPS: 1000, Burst: 1000})
}

func TestGetJSON_Success(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("string")
		gotUA = r.UserAgent()
		_, _ = w.Write([]byte(`{"ID":5057,"Name":"Bronze Ingot"}`))
	}, time.Second)

	var out struct {
		ID   int
		Name string
	}
	err := c.GetJSON(context.Background(), "/Item/5057", url.Values{"string": {"銅 錠"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, 5057, out.ID)
	assert.Equal(t, "Bronze Ingot", out.Name)
	assert.Equal(t, "/Item/5057", gotPath)
	assert.Equal(t, "銅 錠", gotQuery)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestGetJSON_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    error
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			timeout: time.Second,
			want:    domain.ErrItemNotFound,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			timeout: time.Second,
			want:    domain.ErrUpstream,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"ID":`)) },
			timeout: time.Second,
			want:    domain.ErrMalformedResponse,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			want:    domain.ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler, tt.timeout)
			var out map[string]interface{}
			err := c.GetJSON(context.Background(), "/x", nil, &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestGetRaw_TimeoutIsDistinct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, 20*time.Millisecond)

	_, err := c.GetRaw(context.Background(), "/slow", nil)

	require.Error(t, err)
	assert.True(t, domain.IsTimeout(err))
	assert.False(t, errors.Is(err, domain.ErrItemNotFound))
}

func TestGetRaw_RateLimitWaitPastDeadlineIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(Options{Provider: "p", BaseURL: srv.URL, Timeout: 50 * time.Millisecond, RPS: 0.1, Burst: 1})

	_, err := c.GetRaw(context.Background(), "/first", nil)
	require.NoError(t, err)

	_, err = c.GetRaw(context.Background(), "/second", nil)

	require.Error(t, err)
	assert.True(t, domain.IsTimeout(err))
	assert.False(t, errors.Is(err, domain.ErrUpstream))
}

func TestGetRaw_CanceledWhileRateLimitedIsNotTimeout(t *testing.T) {
	c := NewClient(Options{Provider: "p", BaseURL: "http://127.0.0.1:1", Timeout: time.Second, RPS: 0.1, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetRaw(ctx, "/any", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, domain.IsTimeout(err))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{Provider: "p", BaseURL: "http://example.com///"})

	assert.Equal(t, "http://example.com", c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, DefaultBurst, c.Limiter.Burst())
	assert.NotNil(t, c.HTTP)
}
