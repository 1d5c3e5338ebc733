package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msrishav-28/eduflow-dev/internal/database"
)

var userCols = []string{
	"id", "email", "display_name", "points", "badges", "streak_days",
	"last_activity_date", "total_activities",
	"qa_count", "summarize_count", "mcq_count", "code_explain_count", "code_fix_count",
	"max_file_size", "max_mcq_questions", "max_summary_points",
	"created_at", "updated_at",
}

type userRow struct {
	points       int
	badges       string // littéral Postgres, ex: "{beginner}"
	streak       int
	lastActivity interface{} // nil ou time.Time
	total        int
	qa           int
	summarize    int
}

func userRows(r userRow) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userCols).AddRow(
		"u1", "u1@example.com", "User One",
		r.points, []byte(r.badges), r.streak,
		r.lastActivity, r.total,
		r.qa, r.summarize, 0, 0, 0,
		50000, 20, 20,
		now, now,
	)
}

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		mock.Close()
	})
	return mock
}

func TestLogActivityRecordsPointsAndOneLedgerEntry(t *testing.T) {
	mock := newMockDB(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, email, .* FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(userRows(userRow{
			points: 20, badges: "{beginner}", streak: 1,
			lastActivity: now, total: 4, qa: 4,
		}))
	mock.ExpectQuery(`UPDATE users SET points = points \+ \$1`).
		WithArgs(5, 1, pgxmock.AnyArg(), "u1").
		WillReturnRows(userRows(userRow{
			points: 25, badges: "{beginner}", streak: 1,
			lastActivity: now, total: 5, qa: 5,
		}))
	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "u1", ActivityQA, 5, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, earned, err := LogActivity(context.Background(), "u1", ActivityQA, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, user.Points)
	assert.Equal(t, 5, user.QACount)
	assert.Empty(t, earned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogActivityFirstActivityEarnsBeginnerBadge(t *testing.T) {
	mock := newMockDB(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, email, .* FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(userRows(userRow{badges: "{}", lastActivity: nil}))
	mock.ExpectQuery(`UPDATE users SET points = points \+ \$1`).
		WithArgs(5, 1, pgxmock.AnyArg(), "u1").
		WillReturnRows(userRows(userRow{
			points: 5, badges: "{}", streak: 1,
			lastActivity: now, total: 1, qa: 1,
		}))
	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "u1", ActivityQA, 5, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE users SET badges = badges \|\| \$1`).
		WithArgs(pgxmock.AnyArg(), "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	user, earned, err := LogActivity(context.Background(), "u1", ActivityQA, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beginner"}, earned)
	assert.Contains(t, user.Badges, "beginner")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogActivityStreakMilestoneAddsBonusLedgerRow(t *testing.T) {
	mock := newMockDB(t)
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, email, .* FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(userRows(userRow{
			points: 100, badges: "{beginner}", streak: 6,
			lastActivity: yesterday, total: 10, summarize: 3,
		}))
	// 10 points pour le résumé + 50 de bonus au passage à 7 jours
	mock.ExpectQuery(`UPDATE users SET points = points \+ \$1`).
		WithArgs(60, 7, pgxmock.AnyArg(), "u1").
		WillReturnRows(userRows(userRow{
			points: 160, badges: "{beginner}", streak: 7,
			lastActivity: now, total: 11, summarize: 4,
		}))
	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "u1", ActivitySummarize, 10, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "u1", ActivityStreak7, 50, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, _, err := LogActivity(context.Background(), "u1", ActivitySummarize, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, user.StreakDays)
	assert.Equal(t, 160, user.Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogActivityUnknownTypeRejected(t *testing.T) {
	mock := newMockDB(t)

	_, _, err := LogActivity(context.Background(), "u1", "teleport", nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantDailyLoginBonusGrantedThenDenied(t *testing.T) {
	mock := newMockDB(t)
	now := time.Now()

	// Première connexion du jour: bonus accordé et journalisé
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET last_login_bonus_at = NOW\(\)`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT id, email, .* FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(userRows(userRow{
			points: 40, badges: "{beginner}", streak: 2,
			lastActivity: now, total: 5, qa: 5,
		}))
	mock.ExpectQuery(`UPDATE users SET points = points \+ \$1`).
		WithArgs(10, 2, pgxmock.AnyArg(), "u1").
		WillReturnRows(userRows(userRow{
			points: 50, badges: "{beginner}", streak: 2,
			lastActivity: now, total: 6, qa: 5,
		}))
	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(pgxmock.AnyArg(), "u1", ActivityDailyLogin, 10, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	granted, err := GrantDailyLoginBonus(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, granted)

	// Deuxième tentative le même jour: la garde ne passe pas
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET last_login_bonus_at = NOW\(\)`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	granted, err = GrantDailyLoginBonus(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantFileUploadBonusDeniedSameDay(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET last_upload_bonus_at = NOW\(\)`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	granted, err := GrantFileUploadBonus(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardAllTimeOrdering(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`ORDER BY points DESC, created_at ASC`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "display_name", "points"}).
			AddRow("a", "Alice", 600).
			AddRow("b", "Bob", 600).
			AddRow("c", "Cara", 40))

	entries, err := GetLeaderboard(context.Background(), "all_time", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Rang séquentiel, points non croissants, égalité départagée en amont
	// par created_at dans la requête
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, entries[i-1].Points, e.Points)
		}
	}
	assert.Equal(t, "Alice", entries[0].DisplayName)
	assert.Equal(t, 3, entries[0].Level)
	assert.Equal(t, "Scholar", entries[0].LevelName)
	assert.Equal(t, 1, entries[2].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardMonthlyWindowPinnedToUTC(t *testing.T) {
	mock := newMockDB(t)

	// La borne du mois doit être recastée en timestamptz UTC pour ne pas
	// dépendre du fuseau de session Postgres
	mock.ExpectQuery(`AT TIME ZONE 'utc'\) AT TIME ZONE 'utc'`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "display_name", "pts"}).
			AddRow("a", "Alice", 120))

	entries, err := GetLeaderboard(context.Background(), "monthly", 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 120, entries[0].Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardInvalidPeriod(t *testing.T) {
	newMockDB(t)

	_, err := GetLeaderboard(context.Background(), "weekly", 10)
	assert.Error(t, err)
}

func TestGetRecentActivity(t *testing.T) {
	mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`FROM activities`).
		WithArgs("u1", 20).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "activity_type", "points_earned", "metadata", "created_at",
		}).
			AddRow("a2", "u1", "code_explain", 10, []byte(`{"language":"python"}`), now).
			AddRow("a1", "u1", "qa", 5, []byte("{}"), now.Add(-time.Hour)))

	activities, err := GetRecentActivity(context.Background(), "u1", 20)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "code_explain", activities[0].ActivityType)
	assert.Equal(t, "python", activities[0].Metadata["language"])
	assert.Equal(t, 5, activities[1].PointsEarned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
