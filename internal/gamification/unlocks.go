package gamification

// Limits regroupe les plafonds de fonctionnalités d'un utilisateur.
type Limits struct {
	MaxFileSize      int
	MaxMCQQuestions  int
	MaxSummaryPoints int
}

// DefaultLimits sont les plafonds de départ d'un nouvel utilisateur.
var DefaultLimits = Limits{
	MaxFileSize:      50000,
	MaxMCQQuestions:  20,
	MaxSummaryPoints: 20,
}

// unlock décrit un plafond relevé à partir d'un seuil de points.
type unlock struct {
	minPoints int
	apply     func(*Limits)
}

// Les seuils s'appliquent dans l'ordre croissant, le dernier gagne.
var unlocks = []unlock{
	{500, func(l *Limits) { l.MaxFileSize = 100000 }},
	{800, func(l *Limits) { l.MaxSummaryPoints = 50 }},
	{1000, func(l *Limits) { l.MaxMCQQuestions = 50 }},
	{2000, func(l *Limits) { l.MaxFileSize = 200000 }},
}

// EvaluateUnlocks calcule les plafonds correspondant au total de points.
func EvaluateUnlocks(points int) Limits {
	limits := DefaultLimits
	for _, u := range unlocks {
		if points >= u.minPoints {
			u.apply(&limits)
		}
	}
	return limits
}
