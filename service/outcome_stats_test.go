package service

import (
	"testing"
	"time"

	"procedurecheck-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcomeFor(types []string, outcome models.Outcome, day int) models.OutcomeRecord {
	return models.OutcomeRecord{
		AnalysisID:    1,
		Outcome:       outcome,
		DefectsRaised: types,
		CourtResponse: "noted",
		OutcomeDate:   time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestLearnFromOutcomeSuccessRateRoundTrip(t *testing.T) {
	engine := NewPatternEngine()

	for i := 0; i < 7; i++ {
		engine.LearnFromOutcome(outcomeFor([]string{"X"}, models.OutcomeEvidenceExcluded, i+1))
	}
	engine.LearnFromOutcome(outcomeFor([]string{"X"}, models.OutcomeCaseProceeded, 8))

	rates := engine.SuccessRates()
	require.Len(t, rates, 1)
	assert.Equal(t, "X", rates[0].Type)
	assert.Equal(t, 8, rates[0].TotalRaised)
	assert.Equal(t, 7, rates[0].Successful)
	assert.Equal(t, 1, rates[0].Unsuccessful)
	assert.Equal(t, "87.5", rates[0].SuccessRate)
	assert.Len(t, rates[0].Outcomes, 8)
}

func TestLearnFromOutcomeSuccessVocabulary(t *testing.T) {
	engine := NewPatternEngine()

	successful := []models.Outcome{
		models.OutcomeEvidenceExcluded,
		models.OutcomeApplicationSuccessful,
		models.OutcomeCaseDismissed,
	}
	unsuccessful := []models.Outcome{
		models.OutcomeEvidenceAdmitted,
		models.OutcomeApplicationDenied,
		models.OutcomeCaseProceeded,
		models.OutcomeSettled,
		models.OutcomeWithdrawn,
		models.OutcomeOther,
	}

	for i, o := range successful {
		engine.LearnFromOutcome(outcomeFor([]string{"Y"}, o, i+1))
	}
	for i, o := range unsuccessful {
		engine.LearnFromOutcome(outcomeFor([]string{"Y"}, o, i+10))
	}

	rates := engine.SuccessRates()
	require.Len(t, rates, 1)
	assert.Equal(t, 9, rates[0].TotalRaised)
	assert.Equal(t, 3, rates[0].Successful)
	assert.Equal(t, 6, rates[0].Unsuccessful)
}

func TestSuccessRatesSortedNumerically(t *testing.T) {
	engine := NewPatternEngine()

	// "low" first so insertion order differs from rate order; its rate of
	// 87.5 would sort above 100.0 under a string comparison
	for i := 0; i < 7; i++ {
		engine.LearnFromOutcome(outcomeFor([]string{"low"}, models.OutcomeEvidenceExcluded, i+1))
	}
	engine.LearnFromOutcome(outcomeFor([]string{"low"}, models.OutcomeCaseProceeded, 8))
	engine.LearnFromOutcome(outcomeFor([]string{"high"}, models.OutcomeCaseDismissed, 10))

	rates := engine.SuccessRates()
	require.Len(t, rates, 2)
	assert.Equal(t, "high", rates[0].Type)
	assert.Equal(t, "100.0", rates[0].SuccessRate)
	assert.Equal(t, "low", rates[1].Type)
	assert.Equal(t, "87.5", rates[1].SuccessRate)
}

func TestLearnFromOutcomeReplayFromReset(t *testing.T) {
	engine := NewPatternEngine()

	ledger := []models.OutcomeRecord{
		outcomeFor([]string{"A", "B"}, models.OutcomeEvidenceExcluded, 1),
		outcomeFor([]string{"A"}, models.OutcomeCaseProceeded, 2),
	}

	for _, o := range ledger {
		engine.LearnFromOutcome(o)
	}
	first := engine.SuccessRates()

	// replaying without a reset double-counts; replay from cleared state is
	// idempotent
	engine.Reset()
	for _, o := range ledger {
		engine.LearnFromOutcome(o)
	}
	assert.Equal(t, first, engine.SuccessRates())
}

func TestResetClearsSuccessRates(t *testing.T) {
	engine := NewPatternEngine()

	engine.LearnFromOutcome(outcomeFor([]string{"A"}, models.OutcomeEvidenceExcluded, 1))
	require.NotEmpty(t, engine.SuccessRates())

	engine.Reset()
	assert.Empty(t, engine.SuccessRates())
}

func TestPrioritizeDefectsConfidenceThreshold(t *testing.T) {
	engine := NewPatternEngine()

	// two raisings stay below the confidence threshold
	engine.LearnFromOutcome(outcomeFor([]string{"A"}, models.OutcomeEvidenceExcluded, 1))
	engine.LearnFromOutcome(outcomeFor([]string{"A"}, models.OutcomeEvidenceExcluded, 2))

	priorities := engine.PrioritizeDefects([]models.Defect{{Type: "A"}})
	require.Len(t, priorities, 1)
	assert.False(t, priorities[0].HasHistory)
	assert.Contains(t, priorities[0].Advice, "No historical outcome data")

	// the third raising crosses it
	engine.LearnFromOutcome(outcomeFor([]string{"A"}, models.OutcomeEvidenceExcluded, 3))
	priorities = engine.PrioritizeDefects([]models.Defect{{Type: "A"}})
	require.Len(t, priorities, 1)
	assert.True(t, priorities[0].HasHistory)
	assert.Equal(t, 3, priorities[0].TimesRaised)
	assert.Equal(t, "100.0", priorities[0].SuccessRate)
	assert.Contains(t, priorities[0].Advice, "Strong defect to raise")
}

func TestPrioritizeDefectsAdviceBoundary(t *testing.T) {
	engine := NewPatternEngine()

	// 3 of 5 successful: 60.0% is not above the 60% bar
	for i := 0; i < 3; i++ {
		engine.LearnFromOutcome(outcomeFor([]string{"borderline"}, models.OutcomeEvidenceExcluded, i+1))
	}
	for i := 0; i < 2; i++ {
		engine.LearnFromOutcome(outcomeFor([]string{"borderline"}, models.OutcomeCaseProceeded, i+4))
	}

	priorities := engine.PrioritizeDefects([]models.Defect{{Type: "borderline"}})
	require.Len(t, priorities, 1)
	assert.True(t, priorities[0].HasHistory)
	assert.Contains(t, priorities[0].Advice, "Ensure stronger supporting evidence")
}

func TestPrioritizeDefectsStablePartialSort(t *testing.T) {
	engine := NewPatternEngine()

	// weak: 1 of 3 successful; strong: 3 of 3
	engine.LearnFromOutcome(outcomeFor([]string{"weak"}, models.OutcomeEvidenceExcluded, 1))
	engine.LearnFromOutcome(outcomeFor([]string{"weak"}, models.OutcomeCaseProceeded, 2))
	engine.LearnFromOutcome(outcomeFor([]string{"weak"}, models.OutcomeEvidenceAdmitted, 3))
	for i := 0; i < 3; i++ {
		engine.LearnFromOutcome(outcomeFor([]string{"strong"}, models.OutcomeCaseDismissed, i+4))
	}

	current := []models.Defect{
		{Type: "unseen-1"},
		{Type: "weak"},
		{Type: "unseen-2"},
		{Type: "strong"},
	}

	priorities := engine.PrioritizeDefects(current)
	require.Len(t, priorities, 4)

	// with-history entries swap into rate order; no-history entries keep
	// their original slots
	assert.Equal(t, "unseen-1", priorities[0].Defect.Type)
	assert.Equal(t, "strong", priorities[1].Defect.Type)
	assert.Equal(t, "unseen-2", priorities[2].Defect.Type)
	assert.Equal(t, "weak", priorities[3].Defect.Type)
}
