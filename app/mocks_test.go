package app

import (
	"context"

	"methodcost/domain/analysis"
	"methodcost/domain/core"
	"methodcost/domain/project"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) CreateBatch(ctx context.Context, userID uuid.UUID, projects []project.Project) error {
	return m.Called(ctx, userID, projects).Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID uuid.UUID, id core.ProjectID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProjectRepository) Get(ctx context.Context, userID uuid.UUID, id core.ProjectID) (*project.Project, error) {
	args := m.Called(ctx, userID, id)
	if p := args.Get(0); p != nil {
		return p.(*project.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.([]project.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Save(ctx context.Context, a *analysis.SavedAnalysis) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAnalysisRepository) Get(ctx context.Context, userID uuid.UUID, id core.AnalysisID) (*analysis.SavedAnalysis, error) {
	args := m.Called(ctx, userID, id)
	if a := args.Get(0); a != nil {
		return a.(*analysis.SavedAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]analysis.SavedAnalysis, error) {
	args := m.Called(ctx, userID)
	if a := args.Get(0); a != nil {
		return a.([]analysis.SavedAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnalysisRepository) Delete(ctx context.Context, userID uuid.UUID, id core.AnalysisID) error {
	return m.Called(ctx, userID, id).Error(0)
}
