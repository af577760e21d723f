package testkit

import (
	"testing"
	"time"

	"methodcost/domain/core"
	"methodcost/domain/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectGenerator_Basic(t *testing.T) {
	config := DefaultProjectConfig()
	config.ProjectCount = 12

	projects := NewProjectGenerator(config).Generate(core.DefaultUserID)
	require.Len(t, projects, 12)

	counts := map[project.Methodology]int{}
	for i, p := range projects {
		counts[p.Methodology]++
		assert.NotEmpty(t, p.Name, "project %d", i)
		assert.True(t, p.Size.IsKnown(), "project %d size %q", i, p.Size)
		assert.Greater(t, p.PlannedCost, 0.0, "project %d", i)
		assert.Equal(t, core.DefaultUserID, p.UserID)
		assert.False(t, p.StartDate.Before(config.StartDate), "project %d starts too early", i)
		assert.False(t, p.StartDate.After(config.EndDate), "project %d starts too late", i)
		if p.Status == project.StatusCompleted {
			require.NotNil(t, p.EndDate, "completed project %d needs an end date", i)
			assert.True(t, p.EndDate.After(p.StartDate))
		}
	}

	assert.Equal(t, 4, counts[project.MethodologyAgile])
	assert.Equal(t, 4, counts[project.MethodologyWaterfall])
	assert.Equal(t, 4, counts[project.MethodologyHybrid])
}

func TestProjectGenerator_Reproducible(t *testing.T) {
	config := DefaultProjectConfig()

	first := NewProjectGenerator(config).Generate(core.DefaultUserID)
	second := NewProjectGenerator(config).Generate(core.DefaultUserID)
	assert.Equal(t, first, second)

	config.Seed = 7
	third := NewProjectGenerator(config).Generate(core.DefaultUserID)
	assert.NotEqual(t, first, third)
}

func TestProjectGenerator_SingleDayWindow(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	config := DefaultProjectConfig()
	config.ProjectCount = 3
	config.StartDate = day
	config.EndDate = day

	for _, p := range NewProjectGenerator(config).Generate(core.DefaultUserID) {
		assert.Equal(t, day, p.StartDate)
	}
}
