package app

import (
	"context"
	"math"
	"strings"

	"methodcost/adapters/excel"
	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/internal"
	"methodcost/internal/errors"
	"methodcost/internal/testkit"
	"methodcost/ports"

	"github.com/google/uuid"
)

// ProjectService manages a user's project portfolio
type ProjectService struct {
	projects ports.ProjectRepository
	logger   *internal.Logger
}

// NewProjectService creates a project service
func NewProjectService(projects ports.ProjectRepository, logger *internal.Logger) *ProjectService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ProjectService{projects: projects, logger: logger.With("ProjectService")}
}

// ValidateProject checks the fields a project must carry. Unknown
// methodologies are accepted and simply never bucketed by the analysis.
func ValidateProject(p *project.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Industry = strings.TrimSpace(p.Industry)
	if p.Name == "" {
		return errors.InvalidInput("project name is required")
	}
	if strings.TrimSpace(string(p.Methodology)) == "" {
		return errors.InvalidInput("methodology is required")
	}
	if p.Size != "" && !p.Size.IsKnown() {
		return errors.InvalidInputf("unknown project size %q", p.Size)
	}
	if p.TeamSize < 0 {
		return errors.InvalidInput("team size cannot be negative")
	}
	for _, cost := range []float64{p.PlannedCost, p.ActualCost} {
		if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
			return errors.InvalidInput("costs must be finite and non-negative")
		}
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return errors.InvalidInput("end date is before start date")
	}
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	return nil
}

// Create validates and stores a project for userID
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, p *project.Project) error {
	if err := ValidateProject(p); err != nil {
		return err
	}
	p.ID = ""
	p.UserID = userID
	if err := s.projects.Create(ctx, p); err != nil {
		return errors.Wrap(err, "failed to create project")
	}
	return nil
}

// Update validates and replaces an existing project
func (s *ProjectService) Update(ctx context.Context, userID uuid.UUID, id core.ProjectID, p *project.Project) error {
	if err := ValidateProject(p); err != nil {
		return err
	}
	p.ID = id
	p.UserID = userID
	if err := s.projects.Update(ctx, p); err != nil {
		return errors.Wrapf(err, "failed to update project %s", id)
	}
	return nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, userID uuid.UUID, id core.ProjectID) error {
	if err := s.projects.Delete(ctx, userID, id); err != nil {
		return errors.Wrapf(err, "failed to delete project %s", id)
	}
	return nil
}

// Get retrieves a project
func (s *ProjectService) Get(ctx context.Context, userID uuid.UUID, id core.ProjectID) (*project.Project, error) {
	p, err := s.projects.Get(ctx, userID, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load project %s", id)
	}
	return p, nil
}

// List returns the user's projects, newest first
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	return projects, nil
}

// Import parses an uploaded xlsx or csv file and stores every project in
// one batch. Nothing is stored when any row is invalid.
func (s *ProjectService) Import(ctx context.Context, userID uuid.UUID, fileName string, content []byte) ([]project.Project, error) {
	projects, err := excel.ReadProjectsBytes(fileName, content, userID)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, userID, projects, fileName)
}

// ImportFile reads projects from a file on disk and stores them
func (s *ProjectService) ImportFile(ctx context.Context, userID uuid.UUID, path string) ([]project.Project, error) {
	projects, err := excel.NewDataReader(path).ReadProjects(userID)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, userID, projects, path)
}

// LoadSamples stores the demo portfolio for a user
func (s *ProjectService) LoadSamples(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	return s.store(ctx, userID, testkit.SampleProjects(userID), "sample portfolio")
}

func (s *ProjectService) store(ctx context.Context, userID uuid.UUID, projects []project.Project, source string) ([]project.Project, error) {
	for i := range projects {
		if err := ValidateProject(&projects[i]); err != nil {
			return nil, errors.Wrapf(err, "project %d", i+1)
		}
	}
	if err := s.projects.CreateBatch(ctx, userID, projects); err != nil {
		return nil, errors.Wrap(err, "failed to store imported projects")
	}
	s.logger.Info("Imported %d projects from %s for user %s", len(projects), source, userID)
	return projects, nil
}
