package repository

import (
	"context"

	"procedurecheck-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for uploaded case documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new case document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.CaseDocument) error {
	query := `
		INSERT INTO case_documents (
			user_id, analysis_id, filename, mime_type, size, storage_path
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.UserID,
		doc.AnalysisID,
		doc.Filename,
		doc.MimeType,
		doc.Size,
		doc.StoragePath,
	).Scan(&doc.ID, &doc.CreatedAt)

	return err
}

// GetByID retrieves a case document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CaseDocument, error) {
	doc := &models.CaseDocument{}
	query := `
		SELECT id, user_id, analysis_id, filename, mime_type, size, storage_path, created_at
		FROM case_documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.AnalysisID,
		&doc.Filename,
		&doc.MimeType,
		&doc.Size,
		&doc.StoragePath,
		&doc.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListByUserID retrieves all case documents for a user
func (r *DocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.CaseDocument, error) {
	query := `
		SELECT id, user_id, analysis_id, filename, mime_type, size, storage_path, created_at
		FROM case_documents
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.CaseDocument
	for rows.Next() {
		doc := &models.CaseDocument{}
		err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.AnalysisID,
			&doc.Filename,
			&doc.MimeType,
			&doc.Size,
			&doc.StoragePath,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Delete deletes a case document record
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM case_documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
