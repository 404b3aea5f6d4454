package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Status
		wantErr bool
	}{
		{name: "ok", raw: "OK", want: StatusOK},
		{name: "fail lowercase", raw: "fail", want: StatusFail},
		{name: "diff with spaces", raw: " DIFF ", want: StatusDiff},
		{name: "timeout", raw: "TIMEOUT", want: StatusTimeout},
		{name: "unknown", raw: "PASSED", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountStatuses(t *testing.T) {
	res := Results{
		"suite.t1": {
			1: []JobResult{
				{Status: StatusOK, Recipe: "r1", URL: "u"},
				{Status: StatusFail, Recipe: "r2", URL: "u"},
			},
			2: []JobResult{
				{Status: StatusOK, Recipe: "r1", URL: "u"},
			},
		},
	}

	counts := res.CountStatuses("suite.t1")
	assert.Equal(t, 2, counts[StatusOK])
	assert.Equal(t, 1, counts[StatusFail])
	assert.False(t, counts.HasFailure())

	// missing test yields empty counts, which read as failing
	counts = res.CountStatuses("suite.missing")
	assert.Empty(t, counts)
	assert.True(t, counts.HasFailure())
}

func TestStatusCountsHasFailure(t *testing.T) {
	tests := []struct {
		name   string
		counts StatusCounts
		want   bool
	}{
		{name: "ok present", counts: StatusCounts{StatusOK: 1, StatusFail: 1}, want: false},
		{name: "all non-ok", counts: StatusCounts{StatusFail: 2}, want: true},
		{name: "no results", counts: StatusCounts{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.HasFailure())
		})
	}
}

func TestStatusCountsOrdered(t *testing.T) {
	counts := StatusCounts{StatusTimeout: 1, StatusOK: 2, StatusDiff: 3}
	assert.Equal(t, []Status{StatusOK, StatusDiff, StatusTimeout}, counts.Ordered())
}

func TestResultsMerge(t *testing.T) {
	first := Results{
		"t1": {1: []JobResult{{Status: StatusOK, Recipe: "r1"}}},
		"t2": {2: []JobResult{{Status: StatusFail, Recipe: "r2"}}},
	}
	second := Results{
		"t2": {3: []JobResult{{Status: StatusOK, Recipe: "r3"}}},
		"t3": {4: []JobResult{{Status: StatusDiff, Recipe: "r4"}}},
	}

	first.Merge(second)
	require.Len(t, first, 3)

	// later categories overwrite overlapping keys wholesale
	assert.Equal(t, second["t2"], first["t2"])
	assert.NotContains(t, first["t2"], JobID(2))
}

func TestResultsKeysSorted(t *testing.T) {
	res := Results{"b": nil, "a": nil, "c": nil}
	assert.Equal(t, []string{"a", "b", "c"}, res.Keys())
}
