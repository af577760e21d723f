package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/internal/errors"
	"methodcost/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const projectColumns = `id, user_id, name, methodology, industry, size, team_size,
	start_date, end_date, status, planned_cost, actual_cost, created_at, updated_at`

const insertProject = `
	INSERT INTO projects (` + projectColumns + `)
	VALUES (:id, :user_id, :name, :methodology, :industry, :size, :team_size,
		:start_date, :end_date, :status, :planned_cost, :actual_cost, :created_at, :updated_at)`

// ProjectRepositoryImpl implements ProjectRepository for PostgreSQL
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new PostgreSQL project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func prepareInsert(p *project.Project) {
	if core.ID(p.ID).IsEmpty() {
		p.ID = core.NewProjectID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func insertError(err error, p *project.Project) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		return errors.InvalidInputf("project %s already exists", p.ID)
	}
	return errors.DatabaseError("failed to insert project", err)
}

// Create stores a new project
func (r *ProjectRepositoryImpl) Create(ctx context.Context, p *project.Project) error {
	prepareInsert(p)
	if _, err := r.db.NamedExecContext(ctx, insertProject, p); err != nil {
		return insertError(err, p)
	}
	return nil
}

// CreateBatch stores projects for userID in a single transaction
func (r *ProjectRepositoryImpl) CreateBatch(ctx context.Context, userID uuid.UUID, projects []project.Project) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	for i := range projects {
		p := &projects[i]
		p.UserID = userID
		prepareInsert(p)
		if _, err := tx.NamedExecContext(ctx, insertProject, p); err != nil {
			return insertError(err, p)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit project batch", err)
	}
	return nil
}

// Update replaces the mutable fields of a project
func (r *ProjectRepositoryImpl) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE projects SET
			name = :name, methodology = :methodology, industry = :industry, size = :size,
			team_size = :team_size, start_date = :start_date, end_date = :end_date,
			status = :status, planned_cost = :planned_cost, actual_cost = :actual_cost,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, p)
	if err != nil {
		return errors.DatabaseError("failed to update project", err)
	}
	return requireRow(res, "project", p.ID.String())
}

// Delete removes a project
func (r *ProjectRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, id core.ProjectID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.DatabaseError("failed to delete project", err)
	}
	return requireRow(res, "project", id.String())
}

// Get retrieves a project by user ID and project ID
func (r *ProjectRepositoryImpl) Get(ctx context.Context, userID uuid.UUID, id core.ProjectID) (*project.Project, error) {
	var p project.Project
	err := r.db.GetContext(ctx, &p, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1 AND id = $2`, userID, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("project", id.String())
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to get project", err)
	}
	return &p, nil
}

// ListByUser returns a user's projects, newest first
func (r *ProjectRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	projects := []project.Project{}
	err := r.db.SelectContext(ctx, &projects, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, errors.DatabaseError("failed to list projects", err)
	}
	return projects, nil
}

func requireRow(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.DatabaseError("failed to read affected rows", err)
	}
	if n == 0 {
		return core.NewNotFoundError(resource, id)
	}
	return nil
}
