package storage

import (
	"context"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	email TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL,
	full_name TEXT NOT NULL DEFAULT '',
	personal_email TEXT NOT NULL DEFAULT '',
	whatsapp TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	company_names TEXT NOT NULL DEFAULT '',
	company_location TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Pending',
	admin_message TEXT,
	messages JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS applications_email_idx ON applications (email)`,
}

// Migrate creates the tables the intake flow needs. It is safe to run on
// every start.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return persistenceError(err, "applying schema")
		}
	}
	return nil
}
