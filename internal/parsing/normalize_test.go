package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lower case", "Python", "python"},
		{"surrounding whitespace", "  python  ", "python"},
		{"upper case", "PYTHON", "python"},
		{"stop phrase", "Proficient in Go", "go"},
		{"chained stop phrases", "Strong experience with Kubernetes", "kubernetes"},
		{"keeps plus signs", "C++", "c++"},
		{"keeps hash", "C#", "c#"},
		{"trailing period", "Node.js.", "node.js"},
		{"parenthetical", "Python (advanced)", "python"},
		{"inner whitespace", "machine   learning", "machine learning"},
		{"accents folded", "Résumé Writing", "resume writing"},
		{"endorsement count", "12 endorsements", ""},
		{"stop phrase alone", "Excellent", ""},
		{"bullet edge", "- SQL", "sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkill(tt.input))
		})
	}
}

func TestTokenizeSkills(t *testing.T) {
	got := TokenizeSkills("Python, Go; SQL | python\n• Docker · Kubernetes")
	assert.Equal(t, []string{"python", "go", "sql", "docker", "kubernetes"}, got)
}

func TestTokenizeSkills_DropsEmptyTokens(t *testing.T) {
	got := TokenizeSkills(",, ; Go ,")
	assert.Equal(t, []string{"go"}, got)
}

func TestSkillSet_SortedAndUnique(t *testing.T) {
	got := SkillSet([]string{"SQL", "python", "Python", "aws"})
	assert.Equal(t, []string{"aws", "python", "sql"}, got)
}

func TestFoldText(t *testing.T) {
	assert.Equal(t, "senior engineer", FoldText("  Senior\tENGINEER "))
	assert.Equal(t, "cafe", FoldText("Café"))
	assert.Equal(t, "", FoldText("   "))
}
