package metrics

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idaholab/civet-docs/types"
)

func TestCountersVisibleThroughHandler(t *testing.T) {
	RecordFetch("scrape-remote")
	RecordFetchError("scrape-remote")
	RecordResult("scrape-remote", types.StatusOK)

	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `civetdocs_fetches_total{remote="scrape-remote"} 1`)
	assert.Contains(t, out, `civetdocs_fetch_errors_total{remote="scrape-remote"} 1`)
	assert.Contains(t, out, `civetdocs_results_total{remote="scrape-remote",status="ok"} 1`)
}

func TestSummarize(t *testing.T) {
	RecordCacheHit("summary-remote")
	RecordPages("summary-run", 3)

	var buf bytes.Buffer
	Summarize(slog.New(slog.NewTextHandler(&buf, nil)))

	out := buf.String()
	assert.Contains(t, out, "civetdocs_cache_hits_total")
	assert.Contains(t, out, "summary-remote")
	assert.Contains(t, out, "civetdocs_pages_generated_total")
	assert.Contains(t, out, "summary-run")
}
