package app

import (
	"context"
	"strings"
	"time"

	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/core"
	"methodcost/domain/project"
	domainStats "methodcost/domain/stats"
	"methodcost/internal"
	"methodcost/internal/analysis"
	"methodcost/internal/errors"
	"methodcost/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultSaveTimeout bounds how long a run waits on the analysis store
const DefaultSaveTimeout = 5 * time.Second

// recentAnalysesLimit is how many saved analyses the dashboard lists
const recentAnalysesLimit = 5

// AnalysisService runs methodology comparisons over a user's projects and
// keeps the results
type AnalysisService struct {
	projects    ports.ProjectRepository
	analyses    ports.AnalysisRepository
	logger      *internal.Logger
	saveTimeout time.Duration
	now         func() time.Time
}

// RunOutcome is a completed analysis. Saved is false when the result could
// not be persisted; the result itself is still valid.
type RunOutcome struct {
	Analysis  domainAnalysis.SavedAnalysis `json:"analysis"`
	Saved     bool                         `json:"saved"`
	SaveError string                       `json:"saveError,omitempty"`
}

// DashboardView is the dashboard plus the user's latest saved analyses
type DashboardView struct {
	domainAnalysis.Dashboard
	RecentAnalyses []domainAnalysis.SavedAnalysis `json:"recentAnalyses"`
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(projects ports.ProjectRepository, analyses ports.AnalysisRepository, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		projects:    projects,
		analyses:    analyses,
		logger:      logger.With("AnalysisService"),
		saveTimeout: DefaultSaveTimeout,
		now:         time.Now,
	}
}

// WithSaveTimeout overrides DefaultSaveTimeout
func (s *AnalysisService) WithSaveTimeout(d time.Duration) *AnalysisService {
	if d > 0 {
		s.saveTimeout = d
	}
	return s
}

// ValidateConfig checks an analysis request and fills defaults: an empty
// metric list becomes DefaultMetrics and an empty test becomes the t-test.
func ValidateConfig(cfg *domainAnalysis.Config) error {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return errors.InvalidInput("analysis name is required")
	}

	if len(cfg.Metrics) == 0 {
		cfg.Metrics = append([]domainAnalysis.MetricKey(nil), domainAnalysis.DefaultMetrics...)
	}
	for _, m := range cfg.Metrics {
		if !m.IsKnown() {
			return errors.InvalidInputf("unknown metric %q", m)
		}
	}

	if cfg.StatisticalTest == "" {
		cfg.StatisticalTest = domainStats.TestTTest
	}
	if !cfg.StatisticalTest.IsKnown() {
		return errors.InvalidInputf("unknown statistical test %q", cfg.StatisticalTest)
	}

	for _, m := range cfg.Filters.Methodology {
		if !m.IsKnown() {
			return errors.InvalidInputf("unknown methodology filter %q", m)
		}
	}
	for _, sz := range cfg.Filters.Size {
		if !sz.IsKnown() {
			return errors.InvalidInputf("unknown size filter %q", sz)
		}
	}
	if dr := cfg.Filters.DateRange; dr != nil && !dr.Start.IsZero() && !dr.End.IsZero() && dr.End.Before(dr.Start) {
		return errors.InvalidInput("date range end is before its start")
	}
	return nil
}

// RunAnalysis validates cfg, analyses the user's matching projects and
// saves the result. A failed save is logged and reported through
// RunOutcome.Saved rather than as an error.
func (s *AnalysisService) RunAnalysis(ctx context.Context, userID uuid.UUID, cfg domainAnalysis.Config) (*RunOutcome, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	records, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load projects")
	}
	if len(records) == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(core.ErrNoProjects, "add projects before running an analysis"))
	}

	selected := analysis.ApplyFilters(records, cfg.Filters)
	s.logger.Debug("Running %q over %d of %d projects (%s)", cfg.Name, len(selected), len(records), cfg.StatisticalTest)

	result := analysis.RunWithTest(selected, cfg.Metrics, cfg.StatisticalTest)

	outcome := &RunOutcome{
		Analysis: domainAnalysis.SavedAnalysis{
			ID:            core.NewAnalysisID(),
			UserID:        userID,
			Name:          cfg.Name,
			ProjectIDs:    project.IDs(selected),
			Results:       result,
			Configuration: cfg,
			CreatedAt:     s.now().UTC(),
		},
	}

	// the save outlives a cancelled request but not the timeout
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
	defer cancel()
	if err := s.analyses.Save(saveCtx, &outcome.Analysis); err != nil {
		s.logger.Warn("Failed to save analysis %s for user %s: %v", outcome.Analysis.ID, userID, err)
		outcome.SaveError = err.Error()
		return outcome, nil
	}
	outcome.Saved = true
	s.logger.Info("Saved analysis %s (%d projects)", outcome.Analysis.ID, len(selected))
	return outcome, nil
}

// GetAnalysis retrieves one saved analysis
func (s *AnalysisService) GetAnalysis(ctx context.Context, userID uuid.UUID, id core.AnalysisID) (*domainAnalysis.SavedAnalysis, error) {
	a, err := s.analyses.Get(ctx, userID, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load analysis %s", id)
	}
	return a, nil
}

// ListAnalyses returns the user's saved analyses, newest first
func (s *AnalysisService) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]domainAnalysis.SavedAnalysis, error) {
	list, err := s.analyses.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list analyses")
	}
	return list, nil
}

// DeleteAnalysis removes a saved analysis
func (s *AnalysisService) DeleteAnalysis(ctx context.Context, userID uuid.UUID, id core.AnalysisID) error {
	if err := s.analyses.Delete(ctx, userID, id); err != nil {
		return errors.Wrapf(err, "failed to delete analysis %s", id)
	}
	return nil
}

// Dashboard loads projects and saved analyses concurrently and builds the
// dashboard view
func (s *AnalysisService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardView, error) {
	var (
		records []project.Project
		recent  []domainAnalysis.SavedAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.projects.ListByUser(gctx, userID)
		return errors.Wrap(err, "failed to load projects")
	})
	g.Go(func() error {
		var err error
		recent, err = s.analyses.ListByUser(gctx, userID)
		return errors.Wrap(err, "failed to load analyses")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(recent) > recentAnalysesLimit {
		recent = recent[:recentAnalysesLimit]
	}
	if recent == nil {
		recent = []domainAnalysis.SavedAnalysis{}
	}

	return &DashboardView{
		Dashboard:      analysis.BuildDashboard(records),
		RecentAnalyses: recent,
	}, nil
}
