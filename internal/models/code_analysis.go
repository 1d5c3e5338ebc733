package model

import (
	"time"
)

// CodeError décrit un problème détecté dans le code analysé
type CodeError struct {
	Type       string `json:"type"` // syntax_error, logic_error, style, security, performance
	Line       int    `json:"line"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"` // high, medium, low
	Suggestion string `json:"suggestion,omitempty"`
}

// CodeCorrection est une correction ligne par ligne
type CodeCorrection struct {
	Line      int    `json:"line"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Reason    string `json:"reason,omitempty"`
}

// ScoreBreakdown détaille le score qualité sur 5 catégories (20 points chacune)
type ScoreBreakdown struct {
	Syntax      int `json:"syntax"`
	Logic       int `json:"logic"`
	Style       int `json:"style"`
	Security    int `json:"security"`
	Performance int `json:"performance"`
}

// CodeAnalysisResponse est la réponse complète de POST /code/analyze
type CodeAnalysisResponse struct {
	ID              string           `json:"id"`
	Language        string           `json:"language"`
	HasErrors       bool             `json:"has_errors"`
	ErrorCount      int              `json:"error_count"`
	Errors          []CodeError      `json:"errors"`
	QualityScore    int              `json:"quality_score"`
	ScoreBreakdown  ScoreBreakdown   `json:"score_breakdown"`
	Explanation     string           `json:"explanation"`
	CorrectedCode   string           `json:"corrected_code,omitempty"`
	LineCorrections []CodeCorrection `json:"line_corrections"`
	Suggestions     []string         `json:"suggestions"`
	PerformanceTips []string         `json:"performance_tips"`
	SecurityIssues  []string         `json:"security_issues"`
	Timestamp       time.Time        `json:"timestamp"`
}

// CodeFixResponse est la réponse de POST /code/fix
type CodeFixResponse struct {
	ID            string    `json:"id"`
	Language      string    `json:"language"`
	CorrectedCode string    `json:"corrected_code"`
	Changes       []string  `json:"changes"`
	Timestamp     time.Time `json:"timestamp"`
}

// QuickCheckResult est la réponse de POST /code/quick-check
type QuickCheckResult struct {
	HasErrors  bool     `json:"has_errors"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors"`
}
