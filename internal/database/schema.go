package database

import "context"

// Schema statements are idempotent so EnsureSchema can run at every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                 BIGSERIAL PRIMARY KEY,
		username           TEXT NOT NULL UNIQUE,
		name               TEXT NOT NULL,
		bio                TEXT,
		price              INTEGER,
		is_available       BOOLEAN,
		password_digest    TEXT NOT NULL,
		session_token      TEXT NOT NULL,
		session_expiration TIMESTAMPTZ NOT NULL,
		update_token       TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_session_token_key UNIQUE (session_token),
		CONSTRAINT users_update_token_key UNIQUE (update_token)
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT subjects_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS user_subjects (
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		subject_id BIGINT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, subject_id)
	)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id          BIGSERIAL PRIMARY KEY,
		status      TEXT NOT NULL,
		sender_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
