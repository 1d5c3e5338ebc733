package gamification

// Level décrit un palier de progression.
type Level struct {
	Number    int
	Name      string
	MinPoints int
	MaxPoints int // -1 pour le dernier palier, sans limite
}

// Levels liste les paliers dans l'ordre croissant.
var Levels = []Level{
	{Number: 1, Name: "Newbie", MinPoints: 0, MaxPoints: 100},
	{Number: 2, Name: "Learner", MinPoints: 101, MaxPoints: 500},
	{Number: 3, Name: "Scholar", MinPoints: 501, MaxPoints: 1000},
	{Number: 4, Name: "Expert", MinPoints: 1001, MaxPoints: 5000},
	{Number: 5, Name: "Master", MinPoints: 5001, MaxPoints: -1},
}

// LevelForPoints retourne le palier correspondant au total de points.
// Le niveau est toujours dérivé, jamais stocké.
func LevelForPoints(points int) Level {
	for i := len(Levels) - 1; i >= 0; i-- {
		if points >= Levels[i].MinPoints {
			return Levels[i]
		}
	}
	return Levels[0]
}

// PointsToNextLevel retourne le nombre de points manquants pour le
// palier suivant, ou 0 au dernier palier.
func PointsToNextLevel(points int) int {
	level := LevelForPoints(points)
	if level.MaxPoints < 0 {
		return 0
	}
	return level.MaxPoints + 1 - points
}
