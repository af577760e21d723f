package migration

import (
	"context"

	"methodcost/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Statements returns the DDL in execution order. Every statement is idempotent.
func (r *MigrationRunner) Statements() []Step {
	return []Step{
		{Name: "create projects table", SQL: createProjectsTable},
		{Name: "create analyses table", SQL: createAnalysesTable},
		{Name: "create indexes", SQL: createIndexes},
	}
}

// Step is one named schema change
type Step struct {
	Name string
	SQL  string
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, step := range r.Statements() {
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			return errors.Wrapf(errors.DatabaseError(step.Name, err), "migration %s failed", r.version)
		}
	}
	return nil
}

const createProjectsTable = `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		user_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		methodology VARCHAR(50) NOT NULL,
		industry VARCHAR(100) NOT NULL DEFAULT '',
		size VARCHAR(20) NOT NULL DEFAULT '',
		team_size INTEGER NOT NULL DEFAULT 0,
		start_date TIMESTAMP WITH TIME ZONE NOT NULL,
		end_date TIMESTAMP WITH TIME ZONE,
		status VARCHAR(20) NOT NULL DEFAULT 'Active',
		planned_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		actual_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const createAnalysesTable = `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		user_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		project_ids TEXT[] NOT NULL DEFAULT '{}',
		results JSONB NOT NULL,
		configuration JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const createIndexes = `
	CREATE INDEX IF NOT EXISTS idx_projects_user_created ON projects (user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_projects_user_methodology ON projects (user_id, methodology);
	CREATE INDEX IF NOT EXISTS idx_analyses_user_created ON analyses (user_id, created_at DESC);
`
