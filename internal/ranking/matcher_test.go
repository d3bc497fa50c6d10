package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactMatcher(t *testing.T) {
	m := ExactMatcher{}

	assert.Equal(t, "python", m.Canonical("  Python "))
	assert.Equal(t, "golang", m.Canonical("Golang"))
}

func TestSynonymMatcher(t *testing.T) {
	m := NewSynonymMatcher(nil)

	tests := []struct {
		input string
		want  string
	}{
		{"golang", "go"},
		{"JS", "javascript"},
		{"k8s", "kubernetes"},
		{"Postgres", "postgresql"},
		{"React.js", "react"},
		{"rust", "rust"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Canonical(tt.input))
		})
	}
}

func TestSynonymMatcher_CustomTable(t *testing.T) {
	m := NewSynonymMatcher(map[string]string{"Sheets": "Excel", "": "ignored"})

	assert.Equal(t, "excel", m.Canonical("sheets"))
	assert.Equal(t, "golang", m.Canonical("golang"))
}
