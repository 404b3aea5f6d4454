package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idaholab/civet-docs/types"
)

func TestSummaryTable(t *testing.T) {
	res := types.Results{
		"suite.t1": {
			1: []types.JobResult{
				{Status: types.StatusOK, Recipe: "r1"},
				{Status: types.StatusFail, Recipe: "r2"},
			},
		},
		"suite.t2": {
			2: []types.JobResult{
				{Status: types.StatusTimeout, Recipe: "r1"},
			},
		},
	}

	out := SummaryTable(res, "CIVET Results")

	assert.Contains(t, out, "CIVET Results")
	assert.Contains(t, out, "suite.t1")
	assert.Contains(t, out, "suite.t2")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "TIMEOUT")
	assert.Contains(t, out, "Total")
}
