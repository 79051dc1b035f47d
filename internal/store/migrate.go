package store

import (
	"context"
	"database/sql"
)

// The accounts table intentionally has no ON DELETE CASCADE: the users
// service deletes linked accounts explicitly so a failed account delete
// surfaces instead of leaving a user deletion half-applied. The unique
// constraint on (provider, provider_account_id) closes the check-then-insert
// race between concurrent first-time sign-ins.
const migration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email text NOT NULL,
    name text NOT NULL DEFAULT '',
    image text NOT NULL DEFAULT '',
    email_verified timestamptz,
    role text NOT NULL DEFAULT 'editor',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS accounts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id uuid NOT NULL REFERENCES users(id),
    provider text NOT NULL,
    provider_account_id text NOT NULL,
    type text NOT NULL,
    access_token text NOT NULL DEFAULT '',
    refresh_token text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT accounts_provider_unique
        UNIQUE (provider, provider_account_id)
);

CREATE INDEX IF NOT EXISTS accounts_user_id_idx
ON accounts (user_id);
`

// Migrate applies the idempotent schema migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}
