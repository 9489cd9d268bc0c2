package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.0.0", "1"},
		{"1.0", "1"},
		{"1", "1"},
		{"1.2.0", "1.2"},
		{"1.2.3", "1.2.3"},
		{"0", "0"},
		{"0.0", "0"},
		{"2024w1", "2024w1"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalizeEquatesReleaseSpellings(t *testing.T) {
	assert.Equal(t, Normalize("1.0"), Normalize("1.0.0"))
	assert.NotEqual(t, Normalize("1.0.1"), Normalize("1.0"))
}

func TestVersionDefaults(t *testing.T) {
	v := Version()
	assert.Equal(t, "unknown", v.Version)
	assert.Equal(t, "unknown", v.Branch)
}
