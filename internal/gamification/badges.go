package gamification

// Aggregates regroupe les compteurs d'un utilisateur au moment de
// l'évaluation des badges.
type Aggregates struct {
	Points           int
	TotalActivities  int
	QACount          int
	SummarizeCount   int
	MCQCount         int
	CodeExplainCount int
	CodeFixCount     int
	StreakDays       int
}

// Badge décrit un badge et sa condition d'obtention.
type Badge struct {
	ID          string
	Name        string
	Description string
	Earned      func(Aggregates) bool
}

// Catalog liste tous les badges existants.
var Catalog = []Badge{
	{
		ID:          "beginner",
		Name:        "Beginner",
		Description: "Complete your first activity",
		Earned:      func(a Aggregates) bool { return a.TotalActivities >= 1 },
	},
	{
		ID:          "reader",
		Name:        "Reader",
		Description: "Generate 10 summaries",
		Earned:      func(a Aggregates) bool { return a.SummarizeCount >= 10 },
	},
	{
		ID:          "scholar",
		Name:        "Scholar",
		Description: "Generate 50 summaries",
		Earned:      func(a Aggregates) bool { return a.SummarizeCount >= 50 },
	},
	{
		ID:          "coder",
		Name:        "Coder",
		Description: "Get 20 code explanations",
		Earned:      func(a Aggregates) bool { return a.CodeExplainCount >= 20 },
	},
	{
		ID:          "debugger",
		Name:        "Debugger",
		Description: "Fix 10 code snippets",
		Earned:      func(a Aggregates) bool { return a.CodeFixCount >= 10 },
	},
	{
		ID:          "streak_master",
		Name:        "Streak Master",
		Description: "Keep a 30 day learning streak",
		Earned:      func(a Aggregates) bool { return a.StreakDays >= 30 },
	},
	{
		ID:          "quiz_master",
		Name:        "Quiz Master",
		Description: "Generate 50 quizzes",
		Earned:      func(a Aggregates) bool { return a.MCQCount >= 50 },
	},
	{
		ID:          "speed_learner",
		Name:        "Speed Learner",
		Description: "Ask 100 questions",
		Earned:      func(a Aggregates) bool { return a.QACount >= 100 },
	},
	{
		ID:          "legend",
		Name:        "Legend",
		Description: "Reach 10000 points",
		Earned:      func(a Aggregates) bool { return a.Points >= 10000 },
	},
}

// BadgeByID retrouve un badge du catalogue, ou nil.
func BadgeByID(id string) *Badge {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// Evaluate retourne les badges nouvellement gagnés: ceux dont la
// condition est remplie et qui ne figurent pas déjà dans owned.
// Un badge acquis ne se perd jamais.
func Evaluate(agg Aggregates, owned []string) []string {
	has := make(map[string]bool, len(owned))
	for _, id := range owned {
		has[id] = true
	}

	var earned []string
	for _, b := range Catalog {
		if !has[b.ID] && b.Earned(agg) {
			earned = append(earned, b.ID)
		}
	}
	return earned
}
