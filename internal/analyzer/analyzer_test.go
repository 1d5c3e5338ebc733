package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"main.py", "python"},
		{"app.js", "javascript"},
		{"component.tsx", "typescript"},
		{"Main.java", "java"},
		{"server.go", "go"},
		{"lib.rs", "rust"},
		{"query.SQL", "sql"},
		{"index.html", "html"},
		{"README", "unknown"},
		{"archive.tar.gz", "unknown"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DetectLanguage(c.filename), "filename=%s", c.filename)
	}
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "C++", LanguageName("cpp"))
	assert.Equal(t, "Python", LanguageName("python"))
	assert.Equal(t, "brainfuck", LanguageName("brainfuck"))
}

func TestParseAnalysis(t *testing.T) {
	raw := `Here is the analysis:
{
  "errors": [
    {"type": "syntax_error", "line": 2, "message": "missing closing parenthesis", "severity": "high", "suggestion": "add )"}
  ],
  "line_corrections": [
    {"line": 2, "original": "print('hi'", "corrected": "print('hi')", "reason": "close the call"}
  ],
  "quality_score": 65,
  "score_breakdown": {"syntax": 10, "logic": 18, "style": 15, "security": 12, "performance": 10},
  "corrected_code": "def hello():\n    print('hi')",
  "explanation": "The code has a syntax error.",
  "suggestions": ["Use a linter"],
  "performance_tips": [],
  "security_issues": []
}`

	resp, err := ParseAnalysis(raw, "python")
	require.NoError(t, err)
	assert.True(t, resp.HasErrors)
	assert.Equal(t, 1, resp.ErrorCount)
	assert.Equal(t, 65, resp.QualityScore)
	assert.Equal(t, 10, resp.ScoreBreakdown.Syntax)
	assert.Len(t, resp.LineCorrections, 1)
	assert.Equal(t, "python", resp.Language)
	assert.NotEmpty(t, resp.ID)
}

func TestParseAnalysisCleanCode(t *testing.T) {
	raw := `{"errors": [], "line_corrections": [], "quality_score": 95,
		"score_breakdown": {"syntax": 20, "logic": 20, "style": 18, "security": 19, "performance": 18},
		"corrected_code": "", "explanation": "Clean code.", "suggestions": [], "performance_tips": [], "security_issues": []}`

	resp, err := ParseAnalysis(raw, "go")
	require.NoError(t, err)
	assert.False(t, resp.HasErrors)
	assert.Equal(t, 0, resp.ErrorCount)
	assert.NotNil(t, resp.Errors)
	assert.NotNil(t, resp.Suggestions)
}

func TestParseAnalysisInvalidJSON(t *testing.T) {
	_, err := ParseAnalysis("the code looks mostly fine but has an error", "python")
	assert.Error(t, err)
}

func TestFallbackAnalysis(t *testing.T) {
	resp := fallbackAnalysis("This code has an error on line 2 and another error later. Overall poor quality.", "python")
	assert.True(t, resp.HasErrors)
	assert.Equal(t, 2, resp.ErrorCount)
	assert.Equal(t, 40, resp.QualityScore)

	resp = fallbackAnalysis("Excellent work, nothing to report.", "go")
	assert.False(t, resp.HasErrors)
	assert.Equal(t, 90, resp.QualityScore)
}
