package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msrishav-28/eduflow-dev/internal/llm"
	model "github.com/msrishav-28/eduflow-dev/internal/models"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// analysisPayload est le format JSON attendu de la part du modèle.
type analysisPayload struct {
	Errors          []model.CodeError      `json:"errors"`
	LineCorrections []model.CodeCorrection `json:"line_corrections"`
	QualityScore    int                    `json:"quality_score"`
	ScoreBreakdown  model.ScoreBreakdown   `json:"score_breakdown"`
	CorrectedCode   string                 `json:"corrected_code"`
	Explanation     string                 `json:"explanation"`
	Suggestions     []string               `json:"suggestions"`
	PerformanceTips []string               `json:"performance_tips"`
	SecurityIssues  []string               `json:"security_issues"`
}

func analysisPrompt(code, language string) string {
	return fmt.Sprintf(`Analyze this %s code comprehensively and provide:

1. **Errors & Issues**: List all syntax errors, logic errors, style issues, security vulnerabilities, and performance problems
2. **Line-by-line corrections**: For each error, provide the corrected line
3. **Quality Score**: Rate the code 0-100 based on:
   - Syntax correctness (20 points)
   - Logic correctness (20 points)
   - Code style & readability (20 points)
   - Security (20 points)
   - Performance (20 points)
4. **Corrected Code**: Provide the fully corrected version
5. **Suggestions**: List improvements and best practices
6. **Performance Tips**: Specific optimization suggestions

CODE:
`+"```%s\n%s\n```"+`

Respond in this exact JSON format:
{
  "errors": [
    {"type": "syntax_error|logic_error|style|security|performance", "line": 5, "column": 10, "message": "Error description", "severity": "high|medium|low", "suggestion": "How to fix"}
  ],
  "line_corrections": [
    {"line": 5, "original": "bad code", "corrected": "good code", "reason": "Why this is better"}
  ],
  "quality_score": 75,
  "score_breakdown": {
    "syntax": 18,
    "logic": 20,
    "style": 15,
    "security": 20,
    "performance": 12
  },
  "corrected_code": "Full corrected code here",
  "explanation": "Overall explanation of the code and its issues",
  "suggestions": ["Suggestion 1", "Suggestion 2"],
  "performance_tips": ["Tip 1", "Tip 2"],
  "security_issues": ["Issue 1", "Issue 2"]
}

Provide ONLY the JSON response, no markdown formatting.`, LanguageName(language), language, code)
}

// extractJSONObject isole le premier objet JSON d'une réponse de modèle.
func extractJSONObject(response string) string {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end > start {
		return response[start : end+1]
	}
	return response
}

// AnalyzeCode fait l'analyse complète: erreurs, score qualité,
// corrections ligne à ligne, conseils.
func AnalyzeCode(ctx context.Context, client *llm.Client, code, language, filename string) (*model.CodeAnalysisResponse, error) {
	if filename != "" && language == "unknown" {
		language = DetectLanguage(filename)
	}
	if language != "unknown" && !IsSupportedLanguage(language) {
		language = "unknown"
	}

	raw, err := client.Call(ctx, analysisPrompt(code, language), llm.Options{Temperature: 0.3, MaxTokens: 4000})
	if err != nil {
		return nil, err
	}

	resp, err := ParseAnalysis(raw, language)
	if err != nil {
		// Réponse hors format: analyse dégradée à partir du texte brut
		utils.LogError("code analysis JSON parse failed: %v", err)
		return fallbackAnalysis(raw, language), nil
	}

	utils.LogInfo("code analyzed: %s, score: %d, errors: %d", language, resp.QualityScore, resp.ErrorCount)
	return resp, nil
}

// ParseAnalysis décode la réponse JSON du modèle en analyse structurée.
func ParseAnalysis(raw, language string) (*model.CodeAnalysisResponse, error) {
	var payload analysisPayload
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}

	if payload.Errors == nil {
		payload.Errors = []model.CodeError{}
	}
	if payload.LineCorrections == nil {
		payload.LineCorrections = []model.CodeCorrection{}
	}
	if payload.Suggestions == nil {
		payload.Suggestions = []string{}
	}
	if payload.PerformanceTips == nil {
		payload.PerformanceTips = []string{}
	}
	if payload.SecurityIssues == nil {
		payload.SecurityIssues = []string{}
	}

	return &model.CodeAnalysisResponse{
		ID:              uuid.New().String(),
		Language:        language,
		HasErrors:       len(payload.Errors) > 0,
		ErrorCount:      len(payload.Errors),
		Errors:          payload.Errors,
		QualityScore:    payload.QualityScore,
		ScoreBreakdown:  payload.ScoreBreakdown,
		Explanation:     payload.Explanation,
		CorrectedCode:   payload.CorrectedCode,
		LineCorrections: payload.LineCorrections,
		Suggestions:     payload.Suggestions,
		PerformanceTips: payload.PerformanceTips,
		SecurityIssues:  payload.SecurityIssues,
		Timestamp:       time.Now().UTC(),
	}, nil
}

// fallbackAnalysis estime un résultat quand le modèle ne répond pas en JSON.
func fallbackAnalysis(raw, language string) *model.CodeAnalysisResponse {
	lower := strings.ToLower(raw)

	hasErrors := false
	for _, kw := range []string{"error", "issue", "problem", "bug", "incorrect"} {
		if strings.Contains(lower, kw) {
			hasErrors = true
			break
		}
	}

	score := 70
	switch {
	case strings.Contains(lower, "excellent") || strings.Contains(lower, "perfect"):
		score = 90
	case strings.Contains(lower, "good"):
		score = 75
	case strings.Contains(lower, "poor") || strings.Contains(lower, "bad"):
		score = 40
	}

	explanation := raw
	if len(explanation) > 1000 {
		explanation = explanation[:1000]
	}

	per := score / 5
	return &model.CodeAnalysisResponse{
		ID:              uuid.New().String(),
		Language:        language,
		HasErrors:       hasErrors,
		ErrorCount:      strings.Count(lower, "error"),
		Errors:          []model.CodeError{},
		QualityScore:    score,
		ScoreBreakdown:  model.ScoreBreakdown{Syntax: per, Logic: per, Style: per, Security: per, Performance: per},
		Explanation:     explanation,
		LineCorrections: []model.CodeCorrection{},
		Suggestions:     []string{},
		PerformanceTips: []string{},
		SecurityIssues:  []string{},
		Timestamp:       time.Now().UTC(),
	}
}

// QuickCheck fait une vérification rapide, limitée aux erreurs critiques.
// Une réponse hors format vaut "pas d'erreur".
func QuickCheck(ctx context.Context, client *llm.Client, code, language string) (*model.QuickCheckResult, error) {
	prompt := fmt.Sprintf(`Quickly check this %s code for errors.
List up to 5 critical issues only.

CODE:
`+"```%s\n%s\n```"+`

Respond in JSON format:
{"has_errors": true/false, "error_count": 3, "errors": ["error 1", "error 2"]}`, language, language, code)

	raw, err := client.Call(ctx, prompt, llm.Options{Temperature: 0.2, MaxTokens: 500})
	if err != nil {
		return nil, err
	}

	var result model.QuickCheckResult
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &result); err != nil {
		return &model.QuickCheckResult{HasErrors: false, ErrorCount: 0, Errors: []string{}}, nil
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return &result, nil
}

// FixCode demande au modèle la version corrigée du code avec la liste
// des changements appliqués.
func FixCode(ctx context.Context, client *llm.Client, code, language string) (*model.CodeFixResponse, error) {
	prompt := fmt.Sprintf(`Fix all errors in this %s code.

CODE:
`+"```%s\n%s\n```"+`

Respond in this exact JSON format:
{"corrected_code": "Full corrected code here", "changes": ["Change 1", "Change 2"]}

Provide ONLY the JSON response, no markdown formatting.`, LanguageName(language), language, code)

	raw, err := client.Call(ctx, prompt, llm.Options{Temperature: 0.2, MaxTokens: 3000})
	if err != nil {
		return nil, err
	}

	var payload struct {
		CorrectedCode string   `json:"corrected_code"`
		Changes       []string `json:"changes"`
	}
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse fix response: %w", err)
	}
	if payload.Changes == nil {
		payload.Changes = []string{}
	}

	return &model.CodeFixResponse{
		ID:            uuid.New().String(),
		Language:      language,
		CorrectedCode: payload.CorrectedCode,
		Changes:       payload.Changes,
		Timestamp:     time.Now().UTC(),
	}, nil
}
