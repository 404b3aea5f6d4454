package civet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/idaholab/civet-docs/types"
)

// Job is one CIVET job record as returned by the sha_events endpoint and as
// stored in the local cache. URL is the job's site base; the per-job page
// lives at <URL>/job/<ID>.
type Job struct {
	ID      types.JobID `json:"id"`
	URL     string      `json:"url"`
	Results []Outcome   `json:"results"`
}

// Outcome is a single recipe result within a job. Status is kept raw here
// and validated against the accepted vocabulary on ingest.
type Outcome struct {
	Test   string `json:"test"`
	Recipe string `json:"recipe"`
	Status string `json:"status"`
}

type shaEventsResponse struct {
	Events []struct {
		Jobs []Job `json:"jobs"`
	} `json:"events"`
}

// Client talks to a single CIVET site/repository pair
type Client struct {
	site       string
	repo       string
	httpClient *http.Client
}

// NewClient creates a client for the given site URL (e.g.
// "https://civet.inl.gov") and repository slug (e.g. "idaholab/moose").
func NewClient(site, repo string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		site:       site,
		repo:       repo,
		httpClient: httpClient,
	}
}

// SHAEventsURL returns the human-facing events page for a commit. The same
// path with an Accept: application/json header serves the API payload.
func (c *Client) SHAEventsURL(sha string) string {
	return fmt.Sprintf("%s/sha_events/%s/%s", c.site, c.repo, sha)
}

// SHAEvents fetches every job attached to the events of one commit hash
func (c *Client) SHAEvents(ctx context.Context, sha string) ([]Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SHAEventsURL(sha), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sha_events request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sha_events for %s: %w", sha, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sha_events for %s returned status %d", sha, resp.StatusCode)
	}

	var payload shaEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode sha_events for %s: %w", sha, err)
	}

	var jobs []Job
	for _, ev := range payload.Events {
		for _, job := range ev.Jobs {
			if job.URL == "" {
				job.URL = c.site
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}
