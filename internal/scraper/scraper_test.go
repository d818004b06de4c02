package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-genie/internal/httputil"
	"github.com/pdiddy/research-genie/pkg/types"
)

func init() {
	httputil.DefaultBaseDelay = time.Millisecond
}

func newTestClient(url string) *Client {
	return New(types.ScraperConfig{
		URL:        url + "/",
		HTTPConfig: types.HTTPConfig{UserAgent: "research-genie-test"},
	}, nil)
}

func TestSearch(t *testing.T) {
	var got scrapeRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scrape", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "research-genie-test", r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"papers":[
			{"title":"T1","abstract":"A1","authors":["X","Y"],"year":2020,"url":"https://e.org/1"},
			{"title":"T2","abstract":"A2"}
		],"source":"arxiv"}`))
	}))
	defer ts.Close()

	papers, err := newTestClient(ts.URL).Search(context.Background(), "quantum computing research", 5)
	require.NoError(t, err)

	assert.Equal(t, scrapeRequest{Query: "quantum computing research", MaxResults: 5}, got)
	require.Len(t, papers, 2)
	assert.Equal(t, "T1", papers[0].Title)
	assert.Equal(t, []string{"X", "Y"}, papers[0].Authors)
	require.NotNil(t, papers[0].Year)
	assert.Equal(t, 2020, *papers[0].Year)
	assert.Nil(t, papers[1].Year)
	assert.Empty(t, papers[1].Authors)
}

func TestSearchMissingPapersKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	papers, err := newTestClient(ts.URL).Search(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("scraper crashed\n"))
			},
			wantErr: "scraper returned HTTP 500: scraper crashed",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"papers": [`))
			},
			wantErr: "decoding scrape response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := newTestClient(ts.URL).Search(context.Background(), "q", 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchRetriesThrottled(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"papers":[{"title":"T"}]}`))
	}))
	defer ts.Close()

	papers, err := newTestClient(ts.URL).Search(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Len(t, papers, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearchUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newTestClient(url).Search(context.Background(), "q", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrape request")
}

func TestHealthy(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	assert.True(t, newTestClient(ok.URL).Healthy(context.Background()))

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()
	assert.False(t, newTestClient(bad.URL).Healthy(context.Background()))

	gone := httptest.NewServer(http.NotFoundHandler())
	gone.Close()
	assert.False(t, newTestClient(gone.URL).Healthy(context.Background()))
}

func TestNewDefaults(t *testing.T) {
	c := New(types.ScraperConfig{}, nil)
	assert.Equal(t, DefaultURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
