package service

import (
	"testing"
	"time"

	"procedurecheck-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisRecord(id int64, ts time.Time, result string) models.AnalysisRecord {
	return models.AnalysisRecord{
		ID:        id,
		Result:    models.ResultPayload(result),
		CreatedAt: ts,
	}
}

func TestExtractFindingsFlatShape(t *testing.T) {
	rec := analysisRecord(1, time.Now(), `{"findings": [
		{"type": "Charge wording defect", "severity": "critical", "statute": "Criminal Procedure Act 2009 s.6", "description": "missing particulars"},
		{"type": "Service outside time limit", "severity": "medium"}
	]}`)

	defects := ExtractFindings(rec)
	require.Len(t, defects, 2)

	assert.Equal(t, "Charge wording defect", defects[0].Type)
	assert.Equal(t, models.SeverityCritical, defects[0].Severity)
	assert.Equal(t, "Criminal Procedure Act 2009 s.6", defects[0].Statute)

	// missing statute falls back to the sentinel
	assert.Equal(t, models.StatuteUnknown, defects[1].Statute)
}

func TestExtractFindingsPhaseShape(t *testing.T) {
	rec := analysisRecord(1, time.Now(), `{"phases": {"presetAnalysis": [
		{"findings": [{"type": "A", "severity": "HIGH"}]},
		{"findings": [{"type": "B", "severity": "LOW"}, {"type": "A", "severity": "HIGH"}]}
	]}}`)

	defects := ExtractFindings(rec)
	require.Len(t, defects, 3)

	// encounter order preserved, repeats kept
	assert.Equal(t, "A", defects[0].Type)
	assert.Equal(t, "B", defects[1].Type)
	assert.Equal(t, "A", defects[2].Type)
}

func TestExtractFindingsMergesBothShapes(t *testing.T) {
	rec := analysisRecord(1, time.Now(), `{
		"findings": [{"type": "top", "severity": "HIGH"}],
		"phases": {"presetAnalysis": [{"findings": [{"type": "nested", "severity": "LOW"}]}]}
	}`)

	defects := ExtractFindings(rec)
	require.Len(t, defects, 2)
	assert.Equal(t, "top", defects[0].Type)
	assert.Equal(t, "nested", defects[1].Type)
}

func TestExtractFindingsFailsSoft(t *testing.T) {
	cases := []struct {
		name   string
		result string
	}{
		{"empty payload", ""},
		{"empty object", `{}`},
		{"malformed json", `{"findings": [`},
		{"wrong types", `{"findings": "not an array"}`},
		{"null findings", `{"findings": null}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defects := ExtractFindings(analysisRecord(1, time.Now(), tc.result))
			assert.NotNil(t, defects)
			assert.Empty(t, defects)
		})
	}
}

func TestExtractFindingsNormalizesSeverity(t *testing.T) {
	rec := analysisRecord(1, time.Now(), `{"findings": [
		{"type": "a", "severity": "Critical"},
		{"type": "b", "severity": "high"},
		{"type": "c", "severity": "bogus"},
		{"type": "d"}
	]}`)

	defects := ExtractFindings(rec)
	require.Len(t, defects, 4)
	assert.Equal(t, models.SeverityCritical, defects[0].Severity)
	assert.Equal(t, models.SeverityHigh, defects[1].Severity)
	assert.Equal(t, models.SeverityLow, defects[2].Severity)
	assert.Equal(t, models.SeverityLow, defects[3].Severity)
}
