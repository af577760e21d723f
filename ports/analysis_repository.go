package ports

import (
	"context"

	"methodcost/domain/analysis"
	"methodcost/domain/core"

	"github.com/google/uuid"
)

// AnalysisRepository is the result sink for completed analyses
type AnalysisRepository interface {
	// Save persists an analysis, assigning ID and CreatedAt when unset
	Save(ctx context.Context, a *analysis.SavedAnalysis) error

	// Get retrieves one saved analysis
	Get(ctx context.Context, userID uuid.UUID, id core.AnalysisID) (*analysis.SavedAnalysis, error)

	// ListByUser returns a user's saved analyses, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]analysis.SavedAnalysis, error)

	// Delete removes a saved analysis
	Delete(ctx context.Context, userID uuid.UUID, id core.AnalysisID) error
}
