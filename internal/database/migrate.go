package database

import (
	"database/sql"
	"fmt"
)

// Schema statements are written in the portable subset that SQLite,
// PostgreSQL and MySQL all accept. IDs are UUID strings assigned in the
// application, never by the database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tickets (
		id          VARCHAR(36)  PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		description TEXT         NOT NULL,
		assigned_to VARCHAR(120) NOT NULL,
		created_by  VARCHAR(120) NOT NULL,
		company     VARCHAR(255) NOT NULL,
		priority    VARCHAR(10)  NOT NULL,
		due_date    TIMESTAMP    NULL,
		status      VARCHAR(20)  NOT NULL,
		done_at     TIMESTAMP    NULL,
		paid        VARCHAR(3)   NOT NULL,
		rate        DOUBLE PRECISION NULL,
		currency    VARCHAR(3)   NOT NULL,
		created_at  TIMESTAMP    NOT NULL,
		updated_at  TIMESTAMP    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_assigned_to ON tickets (assigned_to)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_created_by ON tickets (created_by)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets (status)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id         VARCHAR(36)  PRIMARY KEY,
		name       VARCHAR(255) NOT NULL UNIQUE,
		paid       VARCHAR(3)   NOT NULL,
		created_at TIMESTAMP    NOT NULL,
		updated_at TIMESTAMP    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(36)  PRIMARY KEY,
		username      VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		role          VARCHAR(10)  NOT NULL,
		created_at    TIMESTAMP    NOT NULL,
		updated_at    TIMESTAMP    NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet. It is idempotent
// and runs on every startup.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
