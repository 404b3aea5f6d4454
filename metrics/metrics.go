package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/idaholab/civet-docs/types"
)

const (
	MetricsNamespace = "civetdocs"
)

var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "fetches_total",
		Help:      "Count of sha_events fetches issued against the CIVET service",
	}, []string{
		"remote",
	})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "fetch_errors_total",
		Help:      "Count of failed sha_events fetches",
	}, []string{
		"remote",
	})

	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "cache_hits_total",
		Help:      "Count of job records loaded from the local results cache",
	}, []string{
		"remote",
	})

	resultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "results_total",
		Help:      "Count of recipe outcomes ingested into the result store",
	}, []string{
		"remote",
		"status",
	})

	pagesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "pages_generated_total",
		Help:      "Count of generated test report pages",
	}, []string{
		"run_id",
	})
)

func RecordFetch(remote string) {
	fetchesTotal.WithLabelValues(remote).Inc()
}

func RecordFetchError(remote string) {
	fetchErrorsTotal.WithLabelValues(remote).Inc()
}

func RecordCacheHit(remote string) {
	cacheHitsTotal.WithLabelValues(remote).Inc()
}

func RecordResult(remote string, status types.Status) {
	resultsTotal.WithLabelValues(remote, status.Class()).Inc()
}

func RecordPages(runID string, count int) {
	pagesGenerated.WithLabelValues(runID).Add(float64(count))
}

// StartServer exposes the metrics registry on addr for scraping. The caller
// owns the returned server and closes it once the build is done.
func StartServer(log *slog.Logger, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "addr", addr, "err", err)
		}
	}()
	return srv
}

// Summarize gathers the registry and logs every counter in the civetdocs
// namespace, so one-shot builds leave a record of what they counted even
// when no scrape endpoint is running
func Summarize(log *slog.Logger) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		log.Warn("failed to gather metrics", "err", err)
		return
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), MetricsNamespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			attrs := []any{"metric", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			attrs = append(attrs, "value", m.GetCounter().GetValue())
			log.Info("metric", attrs...)
		}
	}
}
