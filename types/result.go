package types

import (
	"fmt"
	"sort"
	"strings"
)

// Status represents the possible outcomes of a CIVET recipe run
type Status string

const (
	StatusOK      Status = "OK"
	StatusFail    Status = "FAIL"
	StatusDiff    Status = "DIFF"
	StatusTimeout Status = "TIMEOUT"
)

// KnownStatuses is the fixed vocabulary accepted from the CIVET service.
// Anything outside this set is dropped during collection.
var KnownStatuses = []Status{StatusOK, StatusFail, StatusDiff, StatusTimeout}

// IsKnown reports whether s is part of the accepted status vocabulary
func (s Status) IsKnown() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Class returns the lowercase form used for CSS hooks and metric labels
func (s Status) Class() string {
	return strings.ToLower(string(s))
}

// ParseStatus validates a raw status string from the service
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsKnown() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// JobResult is one recipe outcome from a single CIVET job
type JobResult struct {
	Status Status `json:"status"`
	Recipe string `json:"recipe"`
	URL    string `json:"url"` // base link to the job, without the /job/<id> suffix
}

// JobID identifies a CIVET job on the remote service
type JobID int64

// Results maps a fully-qualified test name ("<prefix>.<testname>" or a bare
// name) to the recipe outcomes of every job that exercised it. It is built
// once at the start of a documentation build and read-only afterward.
type Results map[string]map[JobID][]JobResult

// Merge folds other into r, overwriting overlapping test keys.
// Later remote categories win, matching the collection order.
func (r Results) Merge(other Results) {
	for key, jobs := range other {
		r[key] = jobs
	}
}

// Keys returns the test names in sorted order. Report page numbering
// depends on this order being stable across builds.
func (r Results) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// StatusCounts aggregates result occurrences per status for one test
type StatusCounts map[Status]int

// CountStatuses tallies every recipe outcome across all jobs for the given
// test. A missing test yields an empty count map.
func (r Results) CountStatuses(test string) StatusCounts {
	counts := make(StatusCounts)
	for _, recipes := range r[test] {
		for _, recipe := range recipes {
			counts[recipe.Status]++
		}
	}
	return counts
}

// HasFailure reports whether the counts represent a failing state: true
// whenever no OK outcome is present, which deliberately includes the
// zero-results case.
func (c StatusCounts) HasFailure() bool {
	return c[StatusOK] == 0
}

// Ordered returns the statuses present in c in vocabulary order, so badge
// output does not depend on map iteration.
func (c StatusCounts) Ordered() []Status {
	out := make([]Status, 0, len(c))
	for _, s := range KnownStatuses {
		if c[s] > 0 {
			out = append(out, s)
		}
	}
	return out
}
