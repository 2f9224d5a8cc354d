package service

import (
	"context"
	"errors"

	"procedurecheck-backend/models"
	"procedurecheck-backend/repository"

	"github.com/google/uuid"
)

// AnalysisService handles business logic for analysis records
type AnalysisService struct {
	analysisRepo *repository.AnalysisRepository
	engine       *PatternEngine
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithAnalysisRepository sets the analysis repository
func WithAnalysisRepository(repo *repository.AnalysisRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.analysisRepo = repo
	}
}

// WithPatternEngine sets the pattern engine
func WithPatternEngine(engine *PatternEngine) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.engine = engine
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveAnalysisRequest represents a request to persist a completed analysis
type SaveAnalysisRequest struct {
	UserID       uuid.UUID
	DocumentName string
	DocumentType models.DocumentType
	Result       models.ResultPayload
}

// SaveAnalysisResult represents the result of persisting an analysis
type SaveAnalysisResult struct {
	Analysis *models.AnalysisRecord
}

// SaveAnalysis persists a completed analysis and folds its findings into the
// engine's running pattern counts.
func (s *AnalysisService) SaveAnalysis(ctx context.Context, req SaveAnalysisRequest) (*SaveAnalysisResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	analysis := &models.AnalysisRecord{
		UserID:       req.UserID,
		DocumentName: req.DocumentName,
		DocumentType: req.DocumentType,
		Result:       req.Result,
	}
	if analysis.DocumentType == "" {
		analysis.DocumentType = models.DocTypeOther
	}

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}

	if s.engine != nil {
		s.engine.RecordPatterns(*analysis)
	}

	return &SaveAnalysisResult{Analysis: analysis}, nil
}

// GetAnalysisRequest represents a request to get one analysis
type GetAnalysisRequest struct {
	ID int64
}

// GetAnalysisResult represents the result of getting one analysis
type GetAnalysisResult struct {
	Analysis *models.AnalysisRecord
}

// GetAnalysis retrieves an analysis record by id
func (s *AnalysisService) GetAnalysis(ctx context.Context, req GetAnalysisRequest) (*GetAnalysisResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	analysis, err := s.analysisRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetAnalysisResult{Analysis: analysis}, nil
}

// ListAnalysesResult represents the full analysis history
type ListAnalysesResult struct {
	Analyses []models.AnalysisRecord
}

// ListAnalyses retrieves the full analysis history in insertion order
func (s *AnalysisService) ListAnalyses(ctx context.Context) (*ListAnalysesResult, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	analyses, err := s.analysisRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ListAnalysesResult{Analyses: analyses}, nil
}
