package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"methodcost/domain/analysis"
	"methodcost/domain/core"
	"methodcost/internal/errors"
	"methodcost/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// analysisRow is the analyses table layout; results and configuration are JSONB
type analysisRow struct {
	ID            string         `db:"id"`
	UserID        uuid.UUID      `db:"user_id"`
	Name          string         `db:"name"`
	ProjectIDs    pq.StringArray `db:"project_ids"`
	Results       []byte         `db:"results"`
	Configuration []byte         `db:"configuration"`
	CreatedAt     time.Time      `db:"created_at"`
}

func toAnalysisRow(a *analysis.SavedAnalysis) (analysisRow, error) {
	results, err := json.Marshal(a.Results)
	if err != nil {
		return analysisRow{}, fmt.Errorf("failed to marshal results: %w", err)
	}
	configuration, err := json.Marshal(a.Configuration)
	if err != nil {
		return analysisRow{}, fmt.Errorf("failed to marshal configuration: %w", err)
	}

	ids := make(pq.StringArray, len(a.ProjectIDs))
	for i, id := range a.ProjectIDs {
		ids[i] = id.String()
	}

	return analysisRow{
		ID:            a.ID.String(),
		UserID:        a.UserID,
		Name:          a.Name,
		ProjectIDs:    ids,
		Results:       results,
		Configuration: configuration,
		CreatedAt:     a.CreatedAt,
	}, nil
}

func (row analysisRow) toSavedAnalysis() (*analysis.SavedAnalysis, error) {
	a := &analysis.SavedAnalysis{
		ID:         core.AnalysisID(row.ID),
		UserID:     row.UserID,
		Name:       row.Name,
		ProjectIDs: make([]core.ProjectID, len(row.ProjectIDs)),
		CreatedAt:  row.CreatedAt,
	}
	for i, id := range row.ProjectIDs {
		a.ProjectIDs[i] = core.ProjectID(id)
	}
	if err := json.Unmarshal(row.Results, &a.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	if err := json.Unmarshal(row.Configuration, &a.Configuration); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return a, nil
}

// AnalysisRepositoryImpl implements AnalysisRepository for PostgreSQL
type AnalysisRepositoryImpl struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new PostgreSQL analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db}
}

// Save persists an analysis
func (r *AnalysisRepositoryImpl) Save(ctx context.Context, a *analysis.SavedAnalysis) error {
	if core.ID(a.ID).IsEmpty() {
		a.ID = core.NewAnalysisID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	row, err := toAnalysisRow(a)
	if err != nil {
		return errors.Wrap(err, "failed to encode analysis")
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO analyses (id, user_id, name, project_ids, results, configuration, created_at)
		VALUES (:id, :user_id, :name, :project_ids, :results, :configuration, :created_at)`, row)
	if err != nil {
		return errors.DatabaseError("failed to save analysis", err)
	}
	return nil
}

// Get retrieves a saved analysis by user ID and analysis ID
func (r *AnalysisRepositoryImpl) Get(ctx context.Context, userID uuid.UUID, id core.AnalysisID) (*analysis.SavedAnalysis, error) {
	var row analysisRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, user_id, name, project_ids, results, configuration, created_at
		FROM analyses
		WHERE user_id = $1 AND id = $2`, userID, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("analysis", id.String())
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to get analysis", err)
	}
	return row.toSavedAnalysis()
}

// ListByUser returns a user's saved analyses, newest first
func (r *AnalysisRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]analysis.SavedAnalysis, error) {
	var rows []analysisRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, name, project_ids, results, configuration, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, errors.DatabaseError("failed to list analyses", err)
	}

	analyses := make([]analysis.SavedAnalysis, 0, len(rows))
	for _, row := range rows {
		a, err := row.toSavedAnalysis()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode analysis %s", row.ID)
		}
		analyses = append(analyses, *a)
	}
	return analyses, nil
}

// Delete removes a saved analysis
func (r *AnalysisRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, id core.AnalysisID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return errors.DatabaseError("failed to delete analysis", err)
	}
	return requireRow(res, "analysis", id.String())
}
