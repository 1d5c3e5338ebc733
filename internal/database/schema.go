package database

import (
	"context"
	"fmt"
)

// schema des deux collections principales: users et activities.
// Le niveau n'est volontairement PAS stocké: il est toujours recalculé
// depuis les points pour ne jamais diverger.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		points INT NOT NULL DEFAULT 0,
		badges TEXT[] NOT NULL DEFAULT '{}',
		streak_days INT NOT NULL DEFAULT 0,
		last_activity_date TIMESTAMPTZ,
		total_activities INT NOT NULL DEFAULT 0,
		qa_count INT NOT NULL DEFAULT 0,
		summarize_count INT NOT NULL DEFAULT 0,
		mcq_count INT NOT NULL DEFAULT 0,
		code_explain_count INT NOT NULL DEFAULT 0,
		code_fix_count INT NOT NULL DEFAULT 0,
		max_file_size INT NOT NULL DEFAULT 50000,
		max_mcq_questions INT NOT NULL DEFAULT 20,
		max_summary_points INT NOT NULL DEFAULT 20,
		last_login_bonus_at TIMESTAMPTZ,
		last_upload_bonus_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email
		ON users(email) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_users_points
		ON users(points DESC, created_at ASC) WHERE deleted_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS activities (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		activity_type TEXT NOT NULL,
		points_earned INT NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_user_created
		ON activities(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_created
		ON activities(created_at)`,
}

// Migrate crée les tables si elles n'existent pas encore
func Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
