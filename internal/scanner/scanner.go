package scanner

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	model "github.com/msrishav-28/eduflow-dev/internal/models"
	"github.com/msrishav-28/eduflow-dev/internal/utils"
)

// UserColumns liste les colonnes lues par ScanUserProfile, dans l'ordre.
const UserColumns = `id, email, display_name, points, badges, streak_days,
	last_activity_date, total_activities,
	qa_count, summarize_count, mcq_count, code_explain_count, code_fix_count,
	max_file_size, max_mcq_questions, max_summary_points,
	created_at, updated_at`

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var lastActivity sql.NullTime
	var badges []string

	err := scanner.Scan(
		&user.ID, &user.Email, &user.DisplayName,
		&user.Points, pq.Array(&badges), &user.StreakDays,
		&lastActivity, &user.TotalActivities,
		&user.QACount, &user.SummarizeCount, &user.MCQCount,
		&user.CodeExplainCount, &user.CodeFixCount,
		&user.MaxFileSize, &user.MaxMCQQuestions, &user.MaxSummaryPoints,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	if badges == nil {
		badges = []string{}
	}
	user.Badges = badges
	user.LastActivityDate = utils.NullTimeToPointer(lastActivity)

	return &user, nil
}

// ScanActivity scanne une ligne SQL vers une Activity
func ScanActivity(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Activity, error) {
	var a model.Activity
	var metadata []byte

	err := scanner.Scan(
		&a.ID, &a.UserID, &a.ActivityType, &a.PointsEarned,
		&metadata, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, err
		}
	}

	return &a, nil
}
