package testkit

import (
	"context"
	"sort"
	"sync"
	"time"

	"methodcost/domain/analysis"
	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/ports"

	"github.com/google/uuid"
)

// TestKit bundles in-memory repositories seeded for tests and local runs
type TestKit struct {
	Projects *InMemoryProjectRepository
	Analyses *InMemoryAnalysisRepository
}

// NewTestKit creates a test kit with empty repositories
func NewTestKit() *TestKit {
	return &TestKit{
		Projects: NewInMemoryProjectRepository(),
		Analyses: NewInMemoryAnalysisRepository(),
	}
}

// NewSeededTestKit creates a test kit whose project repository already holds
// the sample portfolio for userID
func NewSeededTestKit(userID uuid.UUID) (*TestKit, error) {
	kit := NewTestKit()
	if err := kit.Projects.CreateBatch(context.Background(), userID, SampleProjects(userID)); err != nil {
		return nil, err
	}
	return kit, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// SampleProjects returns the five-project demo portfolio shown to new users
func SampleProjects(userID uuid.UUID) []project.Project {
	return []project.Project{
		{
			UserID: userID, Name: "E-commerce Platform Redesign",
			Methodology: project.MethodologyAgile, Industry: "E-commerce", Size: project.SizeLarge, TeamSize: 12,
			StartDate: date(2024, time.January, 15), EndDate: datePtr(2024, time.June, 30),
			Status: project.StatusActive, PlannedCost: 250000, ActualCost: 235000,
		},
		{
			UserID: userID, Name: "Healthcare Management System",
			Methodology: project.MethodologyWaterfall, Industry: "Healthcare", Size: project.SizeMedium, TeamSize: 8,
			StartDate: date(2023, time.September, 1), EndDate: datePtr(2024, time.March, 15),
			Status: project.StatusCompleted, PlannedCost: 180000, ActualCost: 195000,
		},
		{
			UserID: userID, Name: "Mobile Banking App",
			Methodology: project.MethodologyAgile, Industry: "Finance", Size: project.SizeMedium, TeamSize: 6,
			StartDate: date(2024, time.February, 1),
			Status:    project.StatusActive, PlannedCost: 150000, ActualCost: 142000,
		},
		{
			UserID: userID, Name: "Corporate Website Revamp",
			Methodology: project.MethodologyHybrid, Industry: "Technology", Size: project.SizeSmall, TeamSize: 4,
			StartDate: date(2024, time.March, 1), EndDate: datePtr(2024, time.May, 15),
			Status: project.StatusCompleted, PlannedCost: 85000, ActualCost: 78000,
		},
		{
			UserID: userID, Name: "Inventory Management System",
			Methodology: project.MethodologyWaterfall, Industry: "Retail", Size: project.SizeMedium, TeamSize: 7,
			StartDate: date(2024, time.January, 10),
			Status:    project.StatusOnHold, PlannedCost: 120000, ActualCost: 95000,
		},
	}
}

// InMemoryProjectRepository implements ports.ProjectRepository with in-memory storage
type InMemoryProjectRepository struct {
	projects map[uuid.UUID]map[core.ProjectID]project.Project
	mu       sync.RWMutex
}

var _ ports.ProjectRepository = (*InMemoryProjectRepository)(nil)

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{
		projects: make(map[uuid.UUID]map[core.ProjectID]project.Project),
	}
}

func (r *InMemoryProjectRepository) Create(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(p)
	return nil
}

func (r *InMemoryProjectRepository) CreateBatch(ctx context.Context, userID uuid.UUID, projects []project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range projects {
		p := &projects[i]
		p.UserID = userID
		r.insertLocked(p)
	}
	return nil
}

func (r *InMemoryProjectRepository) insertLocked(p *project.Project) {
	if p.ID == "" {
		p.ID = core.NewProjectID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if r.projects[p.UserID] == nil {
		r.projects[p.UserID] = make(map[core.ProjectID]project.Project)
	}
	r.projects[p.UserID][p.ID] = *p
}

func (r *InMemoryProjectRepository) Update(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.projects[p.UserID][p.ID]
	if !ok {
		return core.NewNotFoundError("project", p.ID.String())
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.projects[p.UserID][p.ID] = *p
	return nil
}

func (r *InMemoryProjectRepository) Delete(ctx context.Context, userID uuid.UUID, id core.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[userID][id]; !ok {
		return core.NewNotFoundError("project", id.String())
	}
	delete(r.projects[userID], id)
	return nil
}

func (r *InMemoryProjectRepository) Get(ctx context.Context, userID uuid.UUID, id core.ProjectID) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[userID][id]
	if !ok {
		return nil, core.NewNotFoundError("project", id.String())
	}
	return &p, nil
}

func (r *InMemoryProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]project.Project, 0, len(r.projects[userID]))
	for _, p := range r.projects[userID] {
		projects = append(projects, p)
	}
	// IDs are time-ordered, so descending ID is newest first
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ID > projects[j].ID
	})
	return projects, nil
}

// InMemoryAnalysisRepository implements ports.AnalysisRepository with in-memory storage.
// FailSaves makes every Save return the configured error.
type InMemoryAnalysisRepository struct {
	analyses  map[core.AnalysisID]analysis.SavedAnalysis
	FailSaves error
	mu        sync.RWMutex
}

var _ ports.AnalysisRepository = (*InMemoryAnalysisRepository)(nil)

func NewInMemoryAnalysisRepository() *InMemoryAnalysisRepository {
	return &InMemoryAnalysisRepository{
		analyses: make(map[core.AnalysisID]analysis.SavedAnalysis),
	}
}

func (r *InMemoryAnalysisRepository) Save(ctx context.Context, a *analysis.SavedAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailSaves != nil {
		return r.FailSaves
	}
	if a.ID == "" {
		a.ID = core.NewAnalysisID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.analyses[a.ID] = *a
	return nil
}

func (r *InMemoryAnalysisRepository) Get(ctx context.Context, userID uuid.UUID, id core.AnalysisID) (*analysis.SavedAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.analyses[id]
	if !ok || a.UserID != userID {
		return nil, core.NewNotFoundError("analysis", id.String())
	}
	return &a, nil
}

func (r *InMemoryAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]analysis.SavedAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var analyses []analysis.SavedAnalysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			analyses = append(analyses, a)
		}
	}
	sort.Slice(analyses, func(i, j int) bool {
		if !analyses[i].CreatedAt.Equal(analyses[j].CreatedAt) {
			return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
		}
		return analyses[i].ID > analyses[j].ID
	})
	return analyses, nil
}

func (r *InMemoryAnalysisRepository) Delete(ctx context.Context, userID uuid.UUID, id core.AnalysisID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.analyses[id]
	if !ok || a.UserID != userID {
		return core.NewNotFoundError("analysis", id.String())
	}
	delete(r.analyses, id)
	return nil
}

// Count returns the number of stored analyses across all users
func (r *InMemoryAnalysisRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.analyses)
}
