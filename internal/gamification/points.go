package gamification

// Types d'activités reconnus par le moteur de points.
const (
	ActivityQA           = "qa"
	ActivitySummarize    = "summarize"
	ActivityMCQ          = "mcq"
	ActivityCodeExplain  = "code_explain"
	ActivityCodeFix      = "code_fix"
	ActivityFileUpload   = "file_upload"
	ActivityDailyLogin   = "daily_login"
	ActivityStreak7      = "streak_7"
	ActivityStreak30     = "streak_30"
	ActivityQuizComplete = "quiz_complete"
)

// ActivityPoints donne le barème de points par type d'activité.
var ActivityPoints = map[string]int{
	ActivityQA:           5,
	ActivitySummarize:    10,
	ActivityMCQ:          15,
	ActivityCodeExplain:  10,
	ActivityCodeFix:      20,
	ActivityFileUpload:   5,
	ActivityDailyLogin:   10,
	ActivityStreak7:      50,
	ActivityStreak30:     200,
	ActivityQuizComplete: 25,
}

// countColumns associe chaque type d'activité à sa colonne compteur.
// Sert de liste blanche: jamais de nom de colonne venant du client.
var countColumns = map[string]string{
	ActivityQA:          "qa_count",
	ActivitySummarize:   "summarize_count",
	ActivityMCQ:         "mcq_count",
	ActivityCodeExplain: "code_explain_count",
	ActivityCodeFix:     "code_fix_count",
}

// PointsFor retourne le nombre de points d'un type d'activité.
// Un type inconnu vaut zéro point.
func PointsFor(activityType string) int {
	return ActivityPoints[activityType]
}

// IsKnownActivity indique si le type d'activité est reconnu.
func IsKnownActivity(activityType string) bool {
	_, ok := ActivityPoints[activityType]
	return ok
}
