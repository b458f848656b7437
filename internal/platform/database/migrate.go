package database

import (
	"context"
	"fmt"
)

// The partial unique index on credited solutions is what prevents two
// concurrent correct submissions from both earning points: the second
// insert fails with SQLSTATE 23505 and is reported as already solved.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              UUID PRIMARY KEY,
		tg_id           BIGINT UNIQUE,
		username        TEXT UNIQUE,
		email           TEXT UNIQUE,
		hashed_password TEXT,
		role            TEXT NOT NULL DEFAULT 'user',
		score           INT  NOT NULL DEFAULT 0,
		level           INT  NOT NULL DEFAULT 1,
		solved_count    INT  NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		slug        TEXT NOT NULL UNIQUE,
		subject     TEXT NOT NULL,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS problems (
		id             UUID PRIMARY KEY,
		title          TEXT NOT NULL,
		slug           TEXT NOT NULL UNIQUE,
		description    TEXT NOT NULL,
		subject        TEXT NOT NULL,
		difficulty     TEXT NOT NULL,
		category_id    UUID REFERENCES categories(id),
		correct_answer TEXT NOT NULL,
		points         INT  NOT NULL DEFAULT 10,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_solutions (
		id               UUID PRIMARY KEY,
		user_id          UUID NOT NULL REFERENCES users(id),
		problem_id       UUID NOT NULL REFERENCES problems(id),
		submitted_answer TEXT NOT NULL,
		is_correct       BOOLEAN NOT NULL DEFAULT FALSE,
		solved_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_user_solutions_credited
		ON user_solutions (user_id, problem_id) WHERE is_correct`,
	`CREATE INDEX IF NOT EXISTS idx_user_solutions_user
		ON user_solutions (user_id, solved_at)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL REFERENCES users(id),
		title        TEXT NOT NULL,
		done         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMPTZ
	)`,
}

func Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	return nil
}
