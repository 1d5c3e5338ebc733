package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestNextStreakFirstActivity(t *testing.T) {
	streak, changed := NextStreak(nil, day(2024, time.March, 1, 10), 0)
	assert.Equal(t, 1, streak)
	assert.True(t, changed)
}

func TestNextStreakSameDay(t *testing.T) {
	last := day(2024, time.March, 1, 8)
	streak, changed := NextStreak(&last, day(2024, time.March, 1, 22), 4)
	assert.Equal(t, 4, streak)
	assert.False(t, changed)
}

func TestNextStreakConsecutiveDays(t *testing.T) {
	// D, D+1, D+2 → série de 3
	d0 := day(2024, time.March, 1, 12)
	streak, _ := NextStreak(nil, d0, 0)
	assert.Equal(t, 1, streak)

	d1 := day(2024, time.March, 2, 9)
	streak, _ = NextStreak(&d0, d1, streak)
	assert.Equal(t, 2, streak)

	d2 := day(2024, time.March, 3, 23)
	streak, _ = NextStreak(&d1, d2, streak)
	assert.Equal(t, 3, streak)
}

func TestNextStreakGapResets(t *testing.T) {
	last := day(2024, time.March, 1, 12)
	streak, changed := NextStreak(&last, day(2024, time.March, 4, 12), 9)
	assert.Equal(t, 1, streak)
	assert.True(t, changed)
}

func TestNextStreakUTCBoundary(t *testing.T) {
	// 23h59 UTC puis 00h01 UTC le lendemain: jours consécutifs
	last := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 2, 0, 1, 0, 0, time.UTC)
	streak, _ := NextStreak(&last, now, 1)
	assert.Equal(t, 2, streak)

	// Même instant exprimé dans un autre fuseau: même résultat
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	lastParis := last.In(paris)
	streak, _ = NextStreak(&lastParis, now.In(paris), 1)
	assert.Equal(t, 2, streak)
}

func TestStreakBonus(t *testing.T) {
	assert.Equal(t, ActivityStreak7, StreakBonus(7))
	assert.Equal(t, ActivityStreak30, StreakBonus(30))
	assert.Equal(t, "", StreakBonus(6))
	assert.Equal(t, "", StreakBonus(8))
	assert.Equal(t, "", StreakBonus(1))
}
