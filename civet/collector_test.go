package civet

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idaholab/civet-docs/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shaEventsHandler(t *testing.T, jobsBySHA map[string][]Job) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		sha := filepath.Base(r.URL.Path)
		payload := map[string]any{
			"events": []map[string]any{
				{"jobs": jobsBySHA[sha]},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}
}

func TestCollectorFetchesAndCaches(t *testing.T) {
	jobs := map[string][]Job{
		"abc123": {
			{
				ID: 7,
				Results: []Outcome{
					{Test: "suite.t1", Recipe: "r1", Status: "OK"},
					{Test: "suite.t1", Recipe: "r2", Status: "FAIL"},
					{Test: "suite.t2", Recipe: "r1", Status: "Invalid"}, // dropped
				},
			},
		},
	}
	server := httptest.NewServer(shaEventsHandler(t, jobs))
	defer server.Close()

	cacheDir := filepath.Join(t.TempDir(), "jobs")
	collector := NewCollector(testLogger(), server.Client(), 2)

	res, err := collector.Collect(context.Background(), CollectRequest{
		Remote:   "test",
		URL:      server.URL,
		Repo:     "idaholab/moose",
		CacheDir: cacheDir,
		Hashes:   []string{"abc123"},
	})
	require.NoError(t, err)

	require.Contains(t, res, "suite.t1")
	assert.NotContains(t, res, "suite.t2") // unknown status dropped
	assert.Len(t, res["suite.t1"][7], 2)

	// the empty job URL falls back to the site base
	assert.Equal(t, server.URL, res["suite.t1"][7][0].URL)

	// the fetched job landed in the cache
	assert.True(t, NewCache(cacheDir).Has(7))
}

func TestCollectorDownloadDisabledUsesCacheOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request with downloading disabled: %s", r.URL)
	}))
	defer server.Close()

	cacheDir := filepath.Join(t.TempDir(), "jobs")
	cache := NewCache(cacheDir)
	require.NoError(t, cache.Store(Job{
		ID:  11,
		URL: "https://civet.example.com",
		Results: []Outcome{
			{Test: "suite.t1", Recipe: "r1", Status: "DIFF"},
		},
	}))

	collector := NewCollector(testLogger(), server.Client(), 2)
	res, err := collector.Collect(context.Background(), CollectRequest{
		Remote:   "test",
		URL:      server.URL,
		Repo:     "idaholab/moose",
		CacheDir: cacheDir,
		Hashes:   nil, // downloading disabled
	})
	require.NoError(t, err)

	require.Contains(t, res, "suite.t1")
	assert.Equal(t, types.StatusDiff, res["suite.t1"][11][0].Status)
}

func TestCollectorSkipsAlreadyCachedJobs(t *testing.T) {
	jobs := map[string][]Job{
		"abc123": {
			{ID: 7, Results: []Outcome{{Test: "suite.t1", Recipe: "r1", Status: "OK"}}},
		},
	}
	server := httptest.NewServer(shaEventsHandler(t, jobs))
	defer server.Close()

	cacheDir := filepath.Join(t.TempDir(), "jobs")
	cache := NewCache(cacheDir)
	require.NoError(t, cache.Store(Job{
		ID:      7,
		URL:     "https://civet.example.com",
		Results: []Outcome{{Test: "suite.t1", Recipe: "r1", Status: "OK"}},
	}))

	collector := NewCollector(testLogger(), server.Client(), 2)
	res, err := collector.Collect(context.Background(), CollectRequest{
		Remote:   "test",
		URL:      server.URL,
		Repo:     "idaholab/moose",
		CacheDir: cacheDir,
		Hashes:   []string{"abc123"},
	})
	require.NoError(t, err)

	// the cached record wins; the fetched duplicate is not ingested twice
	assert.Len(t, res["suite.t1"][7], 1)
	assert.Equal(t, "https://civet.example.com", res["suite.t1"][7][0].URL)
}

func TestCollectorFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	collector := NewCollector(testLogger(), server.Client(), 2)
	_, err := collector.Collect(context.Background(), CollectRequest{
		Remote:   "test",
		URL:      server.URL,
		Repo:     "idaholab/moose",
		CacheDir: filepath.Join(t.TempDir(), "jobs"),
		Hashes:   []string{"abc123"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch results")
}

func TestClientSHAEventsURL(t *testing.T) {
	client := NewClient("https://civet.inl.gov", "idaholab/moose", nil)
	assert.Equal(t,
		"https://civet.inl.gov/sha_events/idaholab/moose/abc123",
		client.SHAEventsURL("abc123"))
}
