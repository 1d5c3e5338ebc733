package model

import (
	"time"
)

// UserProfile représente un utilisateur avec son état de gamification
type UserProfile struct {
	ID          string `json:"id,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`

	// Gamification
	Points           int        `json:"points"`
	Level            int        `json:"level"`      // dérivé des points, jamais stocké en base
	LevelName        string     `json:"level_name"` // dérivé également
	Badges           []string   `json:"badges"`
	StreakDays       int        `json:"streak_days"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	TotalActivities  int        `json:"total_activities"`

	// Compteurs par type d'activité
	QACount          int `json:"qa_count"`
	SummarizeCount   int `json:"summarize_count"`
	MCQCount         int `json:"mcq_count"`
	CodeExplainCount int `json:"code_explain_count"`
	CodeFixCount     int `json:"code_fix_count"`

	// Limites débloquées par les points
	MaxFileSize      int `json:"max_file_size"`
	MaxMCQQuestions  int `json:"max_mcq_questions"`
	MaxSummaryPoints int `json:"max_summary_points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenResponse est la réponse des endpoints signup/login
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *UserProfile `json:"user"`
}
