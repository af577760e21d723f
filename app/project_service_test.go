package app

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"methodcost/domain/core"
	"methodcost/domain/project"
	"methodcost/internal/errors"
	"methodcost/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateProject(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)

	valid := func() project.Project {
		return project.Project{Name: "Portal", Methodology: project.MethodologyAgile, StartDate: start, PlannedCost: 10, ActualCost: 12}
	}

	p := valid()
	require.NoError(t, ValidateProject(&p))
	assert.Equal(t, project.StatusActive, p.Status)

	custom := valid()
	custom.Methodology = "Kanban"
	assert.NoError(t, ValidateProject(&custom))

	tests := []struct {
		name   string
		mutate func(p *project.Project)
	}{
		{"blank name", func(p *project.Project) { p.Name = " " }},
		{"blank methodology", func(p *project.Project) { p.Methodology = "" }},
		{"unknown size", func(p *project.Project) { p.Size = "Huge" }},
		{"negative team", func(p *project.Project) { p.TeamSize = -1 }},
		{"negative cost", func(p *project.Project) { p.PlannedCost = -5 }},
		{"NaN cost", func(p *project.Project) { p.ActualCost = math.NaN() }},
		{"end before start", func(p *project.Project) { p.EndDate = &before }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := ValidateProject(&p)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestProjectService_CRUD(t *testing.T) {
	ctx := context.Background()
	kit := testkit.NewTestKit()
	svc := NewProjectService(kit.Projects, quietLogger())

	p := &project.Project{ID: "client-chosen", Name: "Portal", Methodology: project.MethodologyHybrid, PlannedCost: 100, ActualCost: 90}
	require.NoError(t, svc.Create(ctx, userID, p))
	assert.NotEqual(t, "client-chosen", p.ID.String())
	assert.Equal(t, userID, p.UserID)

	update := &project.Project{Name: "Portal v2", Methodology: project.MethodologyHybrid, PlannedCost: 100, ActualCost: 95}
	require.NoError(t, svc.Update(ctx, userID, p.ID, update))

	got, err := svc.Get(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", got.Name)
	assert.Equal(t, 95.0, got.ActualCost)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, userID, p.ID))
	_, err = svc.Get(ctx, userID, p.ID)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestProjectService_Import(t *testing.T) {
	ctx := context.Background()
	kit := testkit.NewTestKit()
	svc := NewProjectService(kit.Projects, quietLogger())

	csv := strings.Join([]string{
		"Name,Methodology,Industry,Size,Team Size,Start Date,End Date,Status,Planned Cost,Actual Cost",
		`"Claims Portal","Waterfall","Insurance","Medium","9","2024-02-10","Ongoing","Active","120000","131500"`,
		`"Data Lake","Agile","Finance","Large","14","2024-03-01","2024-09-30","Completed","400000","380000"`,
	}, "\n")

	imported, err := svc.Import(ctx, userID, "portfolio.csv", []byte(csv))
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.False(t, core.ID(imported[0].ID).IsEmpty())

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProjectService_ImportRejectsInvalidRows(t *testing.T) {
	projects := &MockProjectRepository{}
	svc := NewProjectService(projects, quietLogger())

	csv := "Name,Methodology,Size,Planned Cost,Actual Cost\nPortal,Agile,Gigantic,1,2"
	_, err := svc.Import(context.Background(), userID, "portfolio.csv", []byte(csv))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	projects.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_LoadSamples(t *testing.T) {
	kit := testkit.NewTestKit()
	svc := NewProjectService(kit.Projects, quietLogger())

	samples, err := svc.LoadSamples(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, samples, 5)

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
