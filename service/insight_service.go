package service

import (
	"context"
	"errors"
	"log"

	"procedurecheck-backend/models"
	"procedurecheck-backend/repository"
)

// InsightService orchestrates the pattern engine over the persisted history.
// It materializes the full history and ledger before any aggregation runs;
// storage failures propagate to the caller and are never retried here.
type InsightService struct {
	analysisRepo *repository.AnalysisRepository
	outcomeRepo  *repository.OutcomeRepository
	engine       *PatternEngine
}

// InsightServiceOption is a functional option for InsightService
type InsightServiceOption func(*InsightService)

// InsightWithAnalysisRepository sets the analysis repository
func InsightWithAnalysisRepository(repo *repository.AnalysisRepository) InsightServiceOption {
	return func(s *InsightService) {
		s.analysisRepo = repo
	}
}

// InsightWithOutcomeRepository sets the outcome repository
func InsightWithOutcomeRepository(repo *repository.OutcomeRepository) InsightServiceOption {
	return func(s *InsightService) {
		s.outcomeRepo = repo
	}
}

// InsightWithPatternEngine sets the pattern engine
func InsightWithPatternEngine(engine *PatternEngine) InsightServiceOption {
	return func(s *InsightService) {
		s.engine = engine
	}
}

// NewInsightService creates a new insight service
func NewInsightService(opts ...InsightServiceOption) *InsightService {
	s := &InsightService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildInsights reads the full history and produces the structured insights
// report for the presenter.
func (s *InsightService) BuildInsights(ctx context.Context) (*models.InsightsReport, error) {
	if s.analysisRepo == nil {
		return nil, errors.New("analysis repository not set")
	}
	if s.engine == nil {
		return nil, errors.New("pattern engine not set")
	}

	history, err := s.analysisRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := s.engine.BuildInsights(history)
	return &report, nil
}

// Rebuild clears the engine's derived state and replays the analysis history
// and the outcome ledger through it. Called at startup and after a
// store-level clear; replay from a cleared state is idempotent.
func (s *InsightService) Rebuild(ctx context.Context) error {
	if s.analysisRepo == nil || s.outcomeRepo == nil {
		return errors.New("repositories not set")
	}
	if s.engine == nil {
		return errors.New("pattern engine not set")
	}

	history, err := s.analysisRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	outcomes, err := s.outcomeRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	s.engine.Reset()
	for _, rec := range history {
		s.engine.RecordPatterns(rec)
	}
	for _, outcome := range outcomes {
		s.engine.LearnFromOutcome(outcome)
	}

	log.Printf("Rebuilt engine state from %d analyses and %d outcomes", len(history), len(outcomes))
	return nil
}

// ClearAll wipes the persisted stores and resets the engine's derived state
// so the two stay consistent.
func (s *InsightService) ClearAll(ctx context.Context) error {
	if s.analysisRepo == nil {
		return errors.New("analysis repository not set")
	}
	if s.engine == nil {
		return errors.New("pattern engine not set")
	}

	if err := s.analysisRepo.ClearAll(ctx); err != nil {
		return err
	}
	s.engine.Reset()
	return nil
}
