package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateUnlocks(t *testing.T) {
	cases := []struct {
		points int
		want   Limits
	}{
		{0, Limits{MaxFileSize: 50000, MaxMCQQuestions: 20, MaxSummaryPoints: 20}},
		{499, Limits{MaxFileSize: 50000, MaxMCQQuestions: 20, MaxSummaryPoints: 20}},
		{500, Limits{MaxFileSize: 100000, MaxMCQQuestions: 20, MaxSummaryPoints: 20}},
		{800, Limits{MaxFileSize: 100000, MaxMCQQuestions: 20, MaxSummaryPoints: 50}},
		{1000, Limits{MaxFileSize: 100000, MaxMCQQuestions: 50, MaxSummaryPoints: 50}},
		{2000, Limits{MaxFileSize: 200000, MaxMCQQuestions: 50, MaxSummaryPoints: 50}},
		{99999, Limits{MaxFileSize: 200000, MaxMCQQuestions: 50, MaxSummaryPoints: 50}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EvaluateUnlocks(c.points), "points=%d", c.points)
	}
}
