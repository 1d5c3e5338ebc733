package gamification

import "time"

// utcDay tronque un instant au jour calendaire UTC.
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextStreak calcule la nouvelle série de jours consécutifs.
// Les jours sont comptés en calendrier UTC:
//   - première activité: série à 1
//   - même jour: série inchangée
//   - jour suivant: série +1
//   - trou d'au moins un jour: série repart à 1
func NextStreak(lastActivity *time.Time, now time.Time, current int) (streak int, changed bool) {
	if lastActivity == nil {
		return 1, true
	}

	last := utcDay(*lastActivity)
	today := utcDay(now)

	switch days := int(today.Sub(last).Hours() / 24); {
	case days <= 0:
		return current, false
	case days == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

// StreakBonus retourne le type d'activité bonus déclenché quand la
// série atteint exactement un seuil, ou "" sinon.
func StreakBonus(streak int) string {
	switch streak {
	case 7:
		return ActivityStreak7
	case 30:
		return ActivityStreak30
	}
	return ""
}
