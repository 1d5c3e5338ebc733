package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points    int
		wantLevel int
		wantName  string
	}{
		{0, 1, "Newbie"},
		{100, 1, "Newbie"},
		{101, 2, "Learner"},
		{500, 2, "Learner"},
		{501, 3, "Scholar"},
		{1000, 3, "Scholar"},
		{1001, 4, "Expert"},
		{5000, 4, "Expert"},
		{5001, 5, "Master"},
		{999999, 5, "Master"},
	}
	for _, c := range cases {
		level := LevelForPoints(c.points)
		assert.Equal(t, c.wantLevel, level.Number, "points=%d", c.points)
		assert.Equal(t, c.wantName, level.Name, "points=%d", c.points)
	}
}

func TestLevelPurity(t *testing.T) {
	// Même total de points → même palier, à chaque appel
	for _, points := range []int{0, 100, 250, 750, 3000, 10000} {
		first := LevelForPoints(points)
		second := LevelForPoints(points)
		assert.Equal(t, first, second)
	}
}

func TestPointsToNextLevel(t *testing.T) {
	assert.Equal(t, 101, PointsToNextLevel(0))
	assert.Equal(t, 1, PointsToNextLevel(100))
	assert.Equal(t, 400, PointsToNextLevel(101))
	assert.Equal(t, 0, PointsToNextLevel(5001))
	assert.Equal(t, 0, PointsToNextLevel(20000))
}
