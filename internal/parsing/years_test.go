package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMinYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plus form", "5+ years of experience with Go", 5},
		{"at least", "At least 3 years in backend development", 3},
		{"minimum of", "Minimum of 7 years professional experience", 7},
		{"range takes lower bound", "3-5 years of experience", 3},
		{"number word", "five years of experience building APIs", 5},
		{"number word with digits", "two (2) years of relevant work", 2},
		{"maximum governs", "2+ years with SQL\n4+ years with Python", 4},
		{"fractional", "1.5 years of hands-on work", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMinYears(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestExtractMinYears_NoBar(t *testing.T) {
	inputs := []string{
		"",
		"Founded 20 years ago, we ship software.",
		"Benefits after 2 years tenure",
		"Salary reviewed every 1 year",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Nil(t, ExtractMinYears(input))
		})
	}
}
