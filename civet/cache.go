package civet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores one JSON file per CIVET job under a local directory, so that
// results survive between documentation builds and builds with downloading
// disabled can still populate the result store.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir. The directory is created lazily
// on the first Store call.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) jobPath(id int64) string {
	return filepath.Join(c.dir, fmt.Sprintf("job_%d.json", id))
}

// Load reads every cached job record. A missing cache directory is not an
// error; it simply yields no jobs.
func (c *Cache) Load() ([]Job, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory %s: %w", c.dir, err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read cached job %s: %w", entry.Name(), err)
		}
		var job Job
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to decode cached job %s: %w", entry.Name(), err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Has reports whether a job is already cached
func (c *Cache) Has(id int64) bool {
	_, err := os.Stat(c.jobPath(id))
	return err == nil
}

// Store writes a job record to the cache, creating the directory if needed
func (c *Cache) Store(job Job) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", c.dir, err)
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode job %d: %w", job.ID, err)
	}
	if err := os.WriteFile(c.jobPath(int64(job.ID)), data, 0644); err != nil {
		return fmt.Errorf("failed to write cached job %d: %w", job.ID, err)
	}
	return nil
}
