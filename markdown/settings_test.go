package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "empty",
			raw:  "",
			want: map[string]string{},
		},
		{
			name: "single pair",
			raw:  "remote=moose",
			want: map[string]string{"remote": "moose"},
		},
		{
			name: "multiple pairs",
			raw:  "url=https://civet.inl.gov repo=idaholab/moose",
			want: map[string]string{"url": "https://civet.inl.gov", "repo": "idaholab/moose"},
		},
		{
			name: "double quoted value with spaces",
			raw:  `tests="suite.a suite.b" prefix=kernels`,
			want: map[string]string{"tests": "suite.a suite.b", "prefix": "kernels"},
		},
		{
			name: "single quoted value",
			raw:  "tests='suite.a suite.b'",
			want: map[string]string{"tests": "suite.a suite.b"},
		},
		{
			name: "unterminated quote keeps remainder",
			raw:  `tests="suite.a suite.b`,
			want: map[string]string{"tests": "suite.a suite.b"},
		},
		{
			name: "bare tokens ignored",
			raw:  "bare remote=moose",
			want: map[string]string{"remote": "moose"},
		},
		{
			name: "extra spacing",
			raw:  "  remote=moose   repo=idaholab/moose  ",
			want: map[string]string{"remote": "moose", "repo": "idaholab/moose"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSettings(tt.raw))
		})
	}
}
