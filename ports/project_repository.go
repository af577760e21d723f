package ports

import (
	"context"

	"methodcost/domain/core"
	"methodcost/domain/project"

	"github.com/google/uuid"
)

// ProjectRepository is the record source for analyses. Every method is
// scoped to a single user; implementations never return another user's
// projects.
type ProjectRepository interface {
	// Create stores a new project, assigning ID and timestamps when unset
	Create(ctx context.Context, p *project.Project) error

	// CreateBatch stores several projects in one transaction
	CreateBatch(ctx context.Context, userID uuid.UUID, projects []project.Project) error

	// Update replaces the mutable fields of an existing project
	Update(ctx context.Context, p *project.Project) error

	// Delete removes a project
	Delete(ctx context.Context, userID uuid.UUID, id core.ProjectID) error

	// Get retrieves a single project
	Get(ctx context.Context, userID uuid.UUID, id core.ProjectID) (*project.Project, error)

	// ListByUser returns a user's projects, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]project.Project, error)
}
