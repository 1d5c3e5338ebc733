package gamification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/msrishav-28/eduflow-dev/internal/database"
	model "github.com/msrishav-28/eduflow-dev/internal/models"
	"github.com/msrishav-28/eduflow-dev/internal/observability"
	"github.com/msrishav-28/eduflow-dev/internal/scanner"
)

// LogActivity enregistre une activité et applique tous ses effets
// (points, série, badges, paliers) dans une seule transaction.
// Retourne le profil à jour et les badges nouvellement gagnés.
func LogActivity(ctx context.Context, userID, activityType string, metadata map[string]interface{}) (*model.UserProfile, []string, error) {
	if !IsKnownActivity(activityType) {
		return nil, nil, fmt.Errorf("unknown activity type: %s", activityType)
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user, earned, err := logActivityTx(ctx, tx, userID, activityType, metadata)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}

	observability.CountActivity(activityType)
	for _, b := range earned {
		observability.CountBadge(b)
	}
	return user, earned, nil
}

// logActivityTx fait le travail dans une transaction déjà ouverte.
func logActivityTx(ctx context.Context, tx pgx.Tx, userID, activityType string, metadata map[string]interface{}) (*model.UserProfile, []string, error) {
	// Verrouiller la ligne utilisateur pour toute la transaction
	user, err := scanner.ScanUserProfile(tx.QueryRow(ctx,
		`SELECT `+scanner.UserColumns+` FROM users
		 WHERE id = $1 AND deleted_at IS NULL
		 FOR UPDATE`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, fmt.Errorf("user not found")
		}
		return nil, nil, fmt.Errorf("lock user row: %w", err)
	}

	now := time.Now()
	points := PointsFor(activityType)

	// Transition de série, avec bonus de palier au moment du passage
	streak, _ := NextStreak(user.LastActivityDate, now, user.StreakDays)
	bonusType := ""
	if streak > user.StreakDays {
		bonusType = StreakBonus(streak)
	}
	totalPoints := points
	if bonusType != "" {
		totalPoints += PointsFor(bonusType)
	}

	// Mise à jour atomique des agrégats, compteur par type inclus
	query := `UPDATE users SET
		points = points + $1,
		streak_days = $2,
		last_activity_date = $3,
		total_activities = total_activities + 1,
		updated_at = NOW()`
	if col, ok := countColumns[activityType]; ok {
		query += fmt.Sprintf(", %s = %s + 1", col, col)
	}
	query += ` WHERE id = $4 RETURNING ` + scanner.UserColumns

	user, err = scanner.ScanUserProfile(tx.QueryRow(ctx, query, totalPoints, streak, now, userID))
	if err != nil {
		return nil, nil, fmt.Errorf("update user aggregates: %w", err)
	}

	// Une ligne de journal par action acceptée
	if err := insertActivity(ctx, tx, userID, activityType, points, metadata); err != nil {
		return nil, nil, err
	}
	if bonusType != "" {
		bonusMeta := map[string]interface{}{"streak_days": streak}
		if err := insertActivity(ctx, tx, userID, bonusType, PointsFor(bonusType), bonusMeta); err != nil {
			return nil, nil, err
		}
	}

	// Badges évalués sur les agrégats frais, jamais retirés
	agg := Aggregates{
		Points:           user.Points,
		TotalActivities:  user.TotalActivities,
		QACount:          user.QACount,
		SummarizeCount:   user.SummarizeCount,
		MCQCount:         user.MCQCount,
		CodeExplainCount: user.CodeExplainCount,
		CodeFixCount:     user.CodeFixCount,
		StreakDays:       user.StreakDays,
	}
	earned := Evaluate(agg, user.Badges)
	if len(earned) > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE users SET badges = badges || $1, updated_at = NOW() WHERE id = $2`,
			pq.Array(earned), userID)
		if err != nil {
			return nil, nil, fmt.Errorf("append badges: %w", err)
		}
		user.Badges = append(user.Badges, earned...)
	}

	// Plafonds débloqués par les points
	limits := EvaluateUnlocks(user.Points)
	if limits.MaxFileSize != user.MaxFileSize ||
		limits.MaxMCQQuestions != user.MaxMCQQuestions ||
		limits.MaxSummaryPoints != user.MaxSummaryPoints {
		_, err = tx.Exec(ctx,
			`UPDATE users SET max_file_size = $1, max_mcq_questions = $2,
			 max_summary_points = $3, updated_at = NOW() WHERE id = $4`,
			limits.MaxFileSize, limits.MaxMCQQuestions, limits.MaxSummaryPoints, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("update feature unlocks: %w", err)
		}
		user.MaxFileSize = limits.MaxFileSize
		user.MaxMCQQuestions = limits.MaxMCQQuestions
		user.MaxSummaryPoints = limits.MaxSummaryPoints
	}

	return user, earned, nil
}

func insertActivity(ctx context.Context, tx pgx.Tx, userID, activityType string, points int, metadata map[string]interface{}) error {
	meta := []byte("{}")
	if len(metadata) > 0 {
		var err error
		meta, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO activities (id, user_id, activity_type, points_earned, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		uuid.New().String(), userID, activityType, points, meta)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GrantDailyLoginBonus accorde le bonus de connexion, au plus une fois
// par jour UTC. Retourne true si le bonus a été accordé.
func GrantDailyLoginBonus(ctx context.Context, userID string) (bool, error) {
	return grantDailyBonus(ctx, userID, ActivityDailyLogin, "last_login_bonus_at")
}

// GrantFileUploadBonus accorde le bonus d'upload de fichier, au plus
// une fois par jour UTC. Retourne true si le bonus a été accordé.
func GrantFileUploadBonus(ctx context.Context, userID string) (bool, error) {
	return grantDailyBonus(ctx, userID, ActivityFileUpload, "last_upload_bonus_at")
}

func grantDailyBonus(ctx context.Context, userID, activityType, column string) (bool, error) {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Garde-fou: ne passe que si le dernier bonus date d'un jour UTC antérieur
	query := fmt.Sprintf(`UPDATE users SET %s = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		AND (%s IS NULL OR date_trunc('day', %s AT TIME ZONE 'utc') < date_trunc('day', NOW() AT TIME ZONE 'utc'))`,
		column, column, column)
	tag, err := tx.Exec(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("claim daily bonus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, _, err := logActivityTx(ctx, tx, userID, activityType, nil); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	observability.CountActivity(activityType)
	return true, nil
}

// GetUserStats construit la vue statistiques d'un utilisateur.
func GetUserStats(ctx context.Context, user model.UserProfile) (*model.UserStats, error) {
	level := LevelForPoints(user.Points)

	var rank int
	err := database.DB.QueryRow(ctx,
		`SELECT 1 + COUNT(*) FROM users
		 WHERE deleted_at IS NULL
		 AND (points > $1 OR (points = $1 AND created_at < $2))`,
		user.Points, user.CreatedAt).Scan(&rank)
	if err != nil {
		return nil, fmt.Errorf("compute rank: %w", err)
	}

	badges := make([]model.BadgeInfo, 0, len(user.Badges))
	for _, id := range user.Badges {
		if b := BadgeByID(id); b != nil {
			badges = append(badges, model.BadgeInfo{ID: b.ID, Name: b.Name, Description: b.Description})
		}
	}

	return &model.UserStats{
		Points:            user.Points,
		Level:             level.Number,
		LevelName:         level.Name,
		PointsToNextLevel: PointsToNextLevel(user.Points),
		Badges:            badges,
		StreakDays:        user.StreakDays,
		TotalActivities:   user.TotalActivities,
		ActivitiesBreakdown: map[string]int{
			ActivityQA:          user.QACount,
			ActivitySummarize:   user.SummarizeCount,
			ActivityMCQ:         user.MCQCount,
			ActivityCodeExplain: user.CodeExplainCount,
			ActivityCodeFix:     user.CodeFixCount,
		},
		FeatureUnlocks: map[string]int{
			"max_file_size":      user.MaxFileSize,
			"max_mcq_questions":  user.MaxMCQQuestions,
			"max_summary_points": user.MaxSummaryPoints,
		},
		Rank: rank,
	}, nil
}

// GetLeaderboard retourne le classement pour la période demandée.
func GetLeaderboard(ctx context.Context, period string, limit int) ([]model.LeaderboardEntry, error) {
	var rows pgx.Rows
	var err error

	switch period {
	case "all_time":
		rows, err = database.DB.Query(ctx,
			`SELECT id, display_name, points FROM users
			 WHERE deleted_at IS NULL
			 ORDER BY points DESC, created_at ASC
			 LIMIT $1`, limit)
	case "monthly":
		rows, err = database.DB.Query(ctx,
			`SELECT u.id, u.display_name, COALESCE(SUM(a.points_earned), 0) AS pts
			 FROM users u
			 JOIN activities a ON a.user_id = u.id
			 WHERE u.deleted_at IS NULL
			 AND a.created_at >= date_trunc('month', NOW() AT TIME ZONE 'utc') AT TIME ZONE 'utc'
			 GROUP BY u.id, u.display_name, u.created_at
			 ORDER BY pts DESC, u.created_at ASC
			 LIMIT $1`, limit)
	default:
		return nil, fmt.Errorf("invalid period: %s", period)
	}
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	rank := 1
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Points); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		level := LevelForPoints(e.Points)
		e.Rank = rank
		e.Level = level.Number
		e.LevelName = level.Name
		entries = append(entries, e)
		rank++
	}
	return entries, rows.Err()
}

// GetRecentActivity retourne les dernières entrées du journal d'un
// utilisateur, de la plus récente à la plus ancienne.
func GetRecentActivity(ctx context.Context, userID string, limit int) ([]model.Activity, error) {
	rows, err := database.DB.Query(ctx,
		`SELECT id, user_id, activity_type, points_earned, metadata, created_at
		 FROM activities
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		a, err := scanner.ScanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}
