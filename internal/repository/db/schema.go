package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'admin',
    created_at TIMESTAMP NOT NULL
);
`

const sqliteProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    technologies TEXT NOT NULL,
    image_url TEXT,
    github_url TEXT,
    demo_url TEXT,
    category TEXT NOT NULL DEFAULT 'web',
    featured BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const sqliteComments = `
CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    author_name TEXT NOT NULL,
    author_email TEXT NOT NULL,
    content TEXT NOT NULL,
    rating INTEGER CHECK (rating >= 1 AND rating <= 5),
    approved BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);
`

const sqliteCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    color TEXT NOT NULL DEFAULT '#7FB3D5',
    description TEXT,
    created_at TIMESTAMP NOT NULL
);
`

const postgresUsers = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(50) NOT NULL DEFAULT 'admin',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const postgresProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id BIGSERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL,
    technologies TEXT NOT NULL,
    image_url VARCHAR(500),
    github_url VARCHAR(500),
    demo_url VARCHAR(500),
    category VARCHAR(100) NOT NULL DEFAULT 'web',
    featured BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const postgresComments = `
CREATE TABLE IF NOT EXISTS comments (
    id BIGSERIAL PRIMARY KEY,
    project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    author_name VARCHAR(255) NOT NULL,
    author_email VARCHAR(255) NOT NULL,
    content TEXT NOT NULL,
    rating INTEGER CHECK (rating >= 1 AND rating <= 5),
    approved BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const postgresCategories = `
CREATE TABLE IF NOT EXISTS categories (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) UNIQUE NOT NULL,
    color VARCHAR(7) NOT NULL DEFAULT '#7FB3D5',
    description TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Indexes shared by both dialects.
const (
	indexProjectsCategory = `CREATE INDEX IF NOT EXISTS idx_projects_category ON projects (category)`
	indexCommentsProject  = `CREATE INDEX IF NOT EXISTS idx_comments_project_id ON comments (project_id)`
)

func schemaFor(driver string) ([]string, error) {
	switch driver {
	case DriverSQLite:
		return []string{sqliteUsers, sqliteProjects, sqliteComments, sqliteCategories, indexProjectsCategory, indexCommentsProject}, nil
	case DriverPostgres:
		return []string{postgresUsers, postgresProjects, postgresComments, postgresCategories, indexProjectsCategory, indexCommentsProject}, nil
	default:
		return nil, fmt.Errorf("no schema for driver %q", driver)
	}
}

// EnsureSchema creates the tables that do not exist yet, in one transaction.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	stmts, err := schemaFor(db.DriverName())
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
