package repository

import (
	"context"

	"procedurecheck-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository handles database operations for analysis records.
// Records are append-only: there is no update path, and ids are assigned by
// the database sequence so history ordering is the insertion ordering.
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create persists a completed analysis, assigning its id and timestamp
func (r *AnalysisRepository) Create(ctx context.Context, analysis *models.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (
			user_id, document_name, document_type, result
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		analysis.UserID,
		analysis.DocumentName,
		analysis.DocumentType,
		analysis.Result,
	).Scan(&analysis.ID, &analysis.CreatedAt)

	return err
}

// GetByID retrieves a single analysis record
func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*models.AnalysisRecord, error) {
	analysis := &models.AnalysisRecord{}
	query := `
		SELECT id, user_id, document_name, document_type, result, created_at
		FROM analyses
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.DocumentName,
		&analysis.DocumentType,
		&analysis.Result,
		&analysis.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return analysis, nil
}

// GetAll retrieves the full analysis history in insertion order
func (r *AnalysisRepository) GetAll(ctx context.Context) ([]models.AnalysisRecord, error) {
	query := `
		SELECT id, user_id, document_name, document_type, result, created_at
		FROM analyses
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]models.AnalysisRecord, 0)
	for rows.Next() {
		var analysis models.AnalysisRecord
		err := rows.Scan(
			&analysis.ID,
			&analysis.UserID,
			&analysis.DocumentName,
			&analysis.DocumentType,
			&analysis.Result,
			&analysis.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		history = append(history, analysis)
	}

	return history, rows.Err()
}

// ClearAll removes every analysis record. Outcome records are removed with
// them via the foreign key cascade; callers must also reset the engine's
// derived state.
func (r *AnalysisRepository) ClearAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM analyses`)
	return err
}
