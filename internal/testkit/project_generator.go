package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"methodcost/domain/project"

	"github.com/google/uuid"
)

// ProjectGeneratorConfig configures the synthetic portfolio generator
type ProjectGeneratorConfig struct {
	ProjectCount int       `json:"project_count"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Seed         int64     `json:"seed"`

	// Mean overrun fraction per methodology, e.g. 0.05 is 5% over plan
	AgileOverrun     float64 `json:"agile_overrun"`
	WaterfallOverrun float64 `json:"waterfall_overrun"`
	HybridOverrun    float64 `json:"hybrid_overrun"`
	OverrunSpread    float64 `json:"overrun_spread"`
}

// DefaultProjectConfig returns defaults that make Waterfall run over budget
// more often than Agile
func DefaultProjectConfig() ProjectGeneratorConfig {
	return ProjectGeneratorConfig{
		ProjectCount:     40,
		StartDate:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:             42,
		AgileOverrun:     -0.02,
		WaterfallOverrun: 0.12,
		HybridOverrun:    0.04,
		OverrunSpread:    0.08,
	}
}

// ProjectGenerator produces reproducible synthetic project portfolios
type ProjectGenerator struct {
	config ProjectGeneratorConfig
	rng    *rand.Rand
}

// NewProjectGenerator creates a generator seeded from config
func NewProjectGenerator(config ProjectGeneratorConfig) *ProjectGenerator {
	return &ProjectGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	industries   = []string{"E-commerce", "Healthcare", "Finance", "Technology", "Retail", "Manufacturing"}
	projectKinds = []string{"Platform", "Portal", "Mobile App", "Data Pipeline", "CRM Integration", "Billing System"}
	sizes        = []project.Size{project.SizeSmall, project.SizeMedium, project.SizeLarge}
)

// Generate returns ProjectCount projects for userID. Methodologies cycle
// Agile, Waterfall, Hybrid so every bucket is populated once the count
// reaches three.
func (g *ProjectGenerator) Generate(userID uuid.UUID) []project.Project {
	projects := make([]project.Project, 0, g.config.ProjectCount)
	for i := 0; i < g.config.ProjectCount; i++ {
		methodology := project.Methodologies[i%len(project.Methodologies)]
		projects = append(projects, g.generateProject(userID, i, methodology))
	}
	return projects
}

func (g *ProjectGenerator) generateProject(userID uuid.UUID, i int, methodology project.Methodology) project.Project {
	size := sizes[g.rng.Intn(len(sizes))]
	teamSize, baseBudget := g.sizeProfile(size)

	planned := math.Round(baseBudget*(0.75+g.rng.Float64()*0.5)/1000) * 1000
	overrun := g.overrunFor(methodology) + g.rng.NormFloat64()*g.config.OverrunSpread
	actual := math.Round(planned*(1+overrun)/1000) * 1000

	start := g.randomTimeInRange(g.config.StartDate, g.config.EndDate)
	status := project.StatusActive
	var end *time.Time
	switch r := g.rng.Float64(); {
	case r < 0.55:
		status = project.StatusCompleted
		e := start.AddDate(0, 2+g.rng.Intn(10), 0)
		end = &e
	case r < 0.65:
		status = project.StatusOnHold
	}

	industry := industries[g.rng.Intn(len(industries))]
	return project.Project{
		UserID:      userID,
		Name:        fmt.Sprintf("%s %s %03d", industry, projectKinds[g.rng.Intn(len(projectKinds))], i+1),
		Methodology: methodology,
		Industry:    industry,
		Size:        size,
		TeamSize:    teamSize,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		PlannedCost: planned,
		ActualCost:  actual,
	}
}

func (g *ProjectGenerator) sizeProfile(size project.Size) (int, float64) {
	switch size {
	case project.SizeSmall:
		return 3 + g.rng.Intn(3), 80000
	case project.SizeLarge:
		return 10 + g.rng.Intn(8), 300000
	default:
		return 6 + g.rng.Intn(4), 150000
	}
}

func (g *ProjectGenerator) overrunFor(m project.Methodology) float64 {
	switch m {
	case project.MethodologyAgile:
		return g.config.AgileOverrun
	case project.MethodologyWaterfall:
		return g.config.WaterfallOverrun
	default:
		return g.config.HybridOverrun
	}
}

func (g *ProjectGenerator) randomTimeInRange(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, g.rng.Intn(days+1))
}
