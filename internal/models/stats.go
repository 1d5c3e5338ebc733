package model

// BadgeInfo est un badge détaillé tel que renvoyé par /gamification/stats
type BadgeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserStats regroupe l'état de gamification complet d'un utilisateur
type UserStats struct {
	Points              int            `json:"points"`
	Level               int            `json:"level"`
	LevelName           string         `json:"level_name"`
	PointsToNextLevel   int            `json:"points_to_next_level"`
	Badges              []BadgeInfo    `json:"badges"`
	StreakDays          int            `json:"streak_days"`
	TotalActivities     int            `json:"total_activities"`
	ActivitiesBreakdown map[string]int `json:"activities_breakdown"`
	FeatureUnlocks      map[string]int `json:"feature_unlocks"`
	Rank                int            `json:"rank"`
}

// LeaderboardEntry est une ligne de classement, recalculée à chaque lecture
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	Level       int    `json:"level"`
	LevelName   string `json:"level_name"`
}
