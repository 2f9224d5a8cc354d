package repository

import (
	"context"

	"procedurecheck-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutcomeRepository handles database operations for the court-outcome ledger.
// The ledger is append-only; outcomes are never edited or deleted on their
// own, only cleared wholesale with the analyses they belong to.
type OutcomeRepository struct {
	db *pgxpool.Pool
}

// NewOutcomeRepository creates a new outcome repository
func NewOutcomeRepository(db *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// Create appends one outcome to the ledger, assigning its id and timestamp
func (r *OutcomeRepository) Create(ctx context.Context, outcome *models.OutcomeRecord) error {
	query := `
		INSERT INTO outcomes (
			analysis_id, outcome, defects_raised, court_response,
			effective_arguments, outcome_date
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		outcome.AnalysisID,
		outcome.Outcome,
		outcome.DefectsRaised,
		outcome.CourtResponse,
		outcome.EffectiveArguments,
		outcome.OutcomeDate,
	).Scan(&outcome.ID, &outcome.CreatedAt)

	return err
}

// GetAll retrieves the full outcome ledger in insertion order, the order the
// engine replays it in.
func (r *OutcomeRepository) GetAll(ctx context.Context) ([]models.OutcomeRecord, error) {
	query := `
		SELECT id, analysis_id, outcome, defects_raised, court_response,
			effective_arguments, outcome_date, created_at
		FROM outcomes
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOutcomes(rows)
}

// GetByAnalysisID retrieves all outcomes recorded against one analysis
func (r *OutcomeRepository) GetByAnalysisID(ctx context.Context, analysisID int64) ([]models.OutcomeRecord, error) {
	query := `
		SELECT id, analysis_id, outcome, defects_raised, court_response,
			effective_arguments, outcome_date, created_at
		FROM outcomes
		WHERE analysis_id = $1
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOutcomes(rows)
}

func scanOutcomes(rows pgx.Rows) ([]models.OutcomeRecord, error) {
	outcomes := make([]models.OutcomeRecord, 0)
	for rows.Next() {
		var outcome models.OutcomeRecord
		err := rows.Scan(
			&outcome.ID,
			&outcome.AnalysisID,
			&outcome.Outcome,
			&outcome.DefectsRaised,
			&outcome.CourtResponse,
			&outcome.EffectiveArguments,
			&outcome.OutcomeDate,
			&outcome.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}
