package civet

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sourcegraph/conc/pool"

	"github.com/idaholab/civet-docs/metrics"
	"github.com/idaholab/civet-docs/types"
)

// CollectRequest describes one remote category to gather results from
type CollectRequest struct {
	// Remote is the category name, used for logging and metric labels
	Remote string
	// URL is the CIVET site base, e.g. "https://civet.inl.gov"
	URL string
	// Repo is the repository slug, e.g. "idaholab/moose"
	Repo string
	// CacheDir holds previously downloaded job records. It is always read,
	// regardless of whether downloading is enabled for this run.
	CacheDir string
	// Hashes are the commit hashes to fetch fresh results for. A nil slice
	// means downloading is disabled and only the cache is consulted.
	Hashes []string
}

// Collector populates a result store from cached and freshly fetched CIVET
// job records
type Collector struct {
	log        *slog.Logger
	httpClient *http.Client
	maxFetches int
}

// NewCollector creates a collector. maxFetches bounds the number of
// concurrent sha_events requests.
func NewCollector(log *slog.Logger, httpClient *http.Client, maxFetches int) *Collector {
	if maxFetches <= 0 {
		maxFetches = 4
	}
	return &Collector{
		log:        log,
		httpClient: httpClient,
		maxFetches: maxFetches,
	}
}

// Collect gathers results for one remote category. Cached jobs are loaded
// first; when req.Hashes is non-nil, fresh results are fetched concurrently
// and written back to the cache. Outcomes with a status outside the accepted
// vocabulary are dropped.
func (c *Collector) Collect(ctx context.Context, req CollectRequest) (types.Results, error) {
	res := make(types.Results)
	cache := NewCache(req.CacheDir)

	cached, err := cache.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load results cache: %w", err)
	}
	for _, job := range cached {
		c.ingest(res, req.Remote, job)
		metrics.RecordCacheHit(req.Remote)
	}
	c.log.Info("loaded cached results", "remote", req.Remote, "jobs", len(cached), "cache", req.CacheDir)

	if req.Hashes == nil {
		return res, nil
	}

	client := NewClient(req.URL, req.Repo, c.httpClient)

	fetchPool := pool.NewWithResults[[]Job]().
		WithErrors().
		WithFirstError().
		WithMaxGoroutines(c.maxFetches).
		WithContext(ctx).
		WithCancelOnError()
	for _, sha := range req.Hashes {
		sha := sha
		fetchPool.Go(func(ctx context.Context) ([]Job, error) {
			metrics.RecordFetch(req.Remote)
			jobs, err := client.SHAEvents(ctx, sha)
			if err != nil {
				metrics.RecordFetchError(req.Remote)
				return nil, err
			}
			c.log.Debug("fetched sha_events", "remote", req.Remote, "sha", sha, "jobs", len(jobs))
			return jobs, nil
		})
	}
	fetched, err := fetchPool.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results for %s: %w", req.Remote, err)
	}

	var fresh int
	for _, jobs := range fetched {
		for _, job := range jobs {
			if cache.Has(int64(job.ID)) {
				continue
			}
			if err := cache.Store(job); err != nil {
				return nil, fmt.Errorf("failed to cache job %d: %w", job.ID, err)
			}
			c.ingest(res, req.Remote, job)
			fresh++
		}
	}
	c.log.Info("downloaded results", "remote", req.Remote, "hashes", len(req.Hashes), "new_jobs", fresh)

	return res, nil
}

// ingest folds one job's outcomes into the store, restricting statuses to
// the accepted vocabulary
func (c *Collector) ingest(res types.Results, remote string, job Job) {
	for _, outcome := range job.Results {
		status, err := types.ParseStatus(outcome.Status)
		if err != nil {
			c.log.Debug("skipping result with unknown status", "remote", remote, "job", job.ID, "status", outcome.Status)
			continue
		}
		if res[outcome.Test] == nil {
			res[outcome.Test] = make(map[types.JobID][]types.JobResult)
		}
		res[outcome.Test][job.ID] = append(res[outcome.Test][job.ID], types.JobResult{
			Status: status,
			Recipe: outcome.Recipe,
			URL:    job.URL,
		})
		metrics.RecordResult(remote, status)
	}
}
