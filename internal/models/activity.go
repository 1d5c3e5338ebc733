package model

import (
	"time"
)

// Activity est une entrée immuable du journal d'activités.
// C'est la source de vérité pour tout l'état de gamification dérivé.
type Activity struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	ActivityType string                 `json:"activity_type"` // qa, summarize, mcq, code_explain, code_fix, file_upload, daily_login
	PointsEarned int                    `json:"points_earned"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}
