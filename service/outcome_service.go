package service

import (
	"context"
	"errors"
	"time"

	"procedurecheck-backend/models"
	"procedurecheck-backend/repository"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidOutcome   = errors.New("outcome is not in the accepted vocabulary")
	ErrMissingDate      = errors.New("outcome date is required")
	ErrNoDefectsRaised  = errors.New("at least one raised defect is required")
)

// OutcomeService handles recording and querying of court outcomes. Validation
// happens here, at the recording boundary: the engine itself trusts
// well-formed input and never validates outcome completeness.
type OutcomeService struct {
	outcomeRepo  *repository.OutcomeRepository
	analysisRepo *repository.AnalysisRepository
	engine       *PatternEngine
}

// OutcomeServiceOption is a functional option for OutcomeService
type OutcomeServiceOption func(*OutcomeService)

// OutcomeWithOutcomeRepository sets the outcome repository
func OutcomeWithOutcomeRepository(repo *repository.OutcomeRepository) OutcomeServiceOption {
	return func(s *OutcomeService) {
		s.outcomeRepo = repo
	}
}

// OutcomeWithAnalysisRepository sets the analysis repository
func OutcomeWithAnalysisRepository(repo *repository.AnalysisRepository) OutcomeServiceOption {
	return func(s *OutcomeService) {
		s.analysisRepo = repo
	}
}

// OutcomeWithPatternEngine sets the pattern engine
func OutcomeWithPatternEngine(engine *PatternEngine) OutcomeServiceOption {
	return func(s *OutcomeService) {
		s.engine = engine
	}
}

// NewOutcomeService creates a new outcome service
func NewOutcomeService(opts ...OutcomeServiceOption) *OutcomeService {
	s := &OutcomeService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordOutcomeRequest represents a request to record a court outcome
type RecordOutcomeRequest struct {
	AnalysisID         int64
	Outcome            models.Outcome
	DefectsRaised      []string
	CourtResponse      string
	EffectiveArguments []string
	OutcomeDate        time.Time
}

// RecordOutcomeResult represents the result of recording a court outcome
type RecordOutcomeResult struct {
	Outcome *models.OutcomeRecord
}

// RecordOutcome validates and appends one outcome to the ledger, then feeds
// it to the engine so the success-rate statistics stay current without a
// full replay.
func (s *OutcomeService) RecordOutcome(ctx context.Context, req RecordOutcomeRequest) (*RecordOutcomeResult, error) {
	if !req.Outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}
	if req.OutcomeDate.IsZero() {
		return nil, ErrMissingDate
	}
	if len(req.DefectsRaised) == 0 {
		return nil, ErrNoDefectsRaised
	}

	if s.outcomeRepo == nil {
		return nil, errors.New("outcome repository not set")
	}
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}

	if _, err := s.analysisRepo.GetByID(ctx, req.AnalysisID); err != nil {
		return nil, ErrAnalysisNotFound
	}

	outcome := &models.OutcomeRecord{
		AnalysisID:         req.AnalysisID,
		Outcome:            req.Outcome,
		DefectsRaised:      req.DefectsRaised,
		CourtResponse:      req.CourtResponse,
		EffectiveArguments: req.EffectiveArguments,
		OutcomeDate:        req.OutcomeDate,
	}

	if err := s.outcomeRepo.Create(ctx, outcome); err != nil {
		return nil, err
	}

	if s.engine != nil {
		s.engine.LearnFromOutcome(*outcome)
	}

	return &RecordOutcomeResult{Outcome: outcome}, nil
}

// ListOutcomesResult represents the full outcome ledger
type ListOutcomesResult struct {
	Outcomes []models.OutcomeRecord
}

// ListOutcomes retrieves the full outcome ledger in insertion order
func (s *OutcomeService) ListOutcomes(ctx context.Context) (*ListOutcomesResult, error) {
	if s.outcomeRepo == nil {
		return nil, errors.New("outcome repository not set")
	}

	outcomes, err := s.outcomeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ListOutcomesResult{Outcomes: outcomes}, nil
}

// ListOutcomesForAnalysis retrieves the outcomes recorded against one analysis
func (s *OutcomeService) ListOutcomesForAnalysis(ctx context.Context, analysisID int64) (*ListOutcomesResult, error) {
	if s.outcomeRepo == nil {
		return nil, errors.New("outcome repository not set")
	}

	outcomes, err := s.outcomeRepo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	return &ListOutcomesResult{Outcomes: outcomes}, nil
}
