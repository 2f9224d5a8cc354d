package service

import (
	"encoding/json"

	"procedurecheck-backend/models"
)

// rawFinding mirrors the loose shape findings take inside a result payload.
// Severity and statute are normalized on the way out, never stored like this.
type rawFinding struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Statute     string `json:"statute"`
	Description string `json:"description"`
}

// resultShape covers both payload layouts the classification pipeline has
// produced over time: findings directly on the result, and findings nested
// under preset-analysis phases. A payload may carry either or both.
type resultShape struct {
	Findings []rawFinding `json:"findings"`
	Phases   struct {
		PresetAnalysis []struct {
			Findings []rawFinding `json:"findings"`
		} `json:"presetAnalysis"`
	} `json:"phases"`
}

// ExtractFindings flattens an analysis record's result payload into a single
// ordered defect list. Top-level findings come first, then phase findings in
// phase order. Repeated identical findings are kept: each occurrence counts
// toward frequency. Malformed or missing shapes yield an empty list, never an
// error.
func ExtractFindings(rec models.AnalysisRecord) []models.Defect {
	defects := make([]models.Defect, 0)
	if len(rec.Result) == 0 {
		return defects
	}

	var shape resultShape
	if err := json.Unmarshal([]byte(rec.Result), &shape); err != nil {
		return defects
	}

	for _, f := range shape.Findings {
		defects = append(defects, normalizeFinding(f))
	}
	for _, phase := range shape.Phases.PresetAnalysis {
		for _, f := range phase.Findings {
			defects = append(defects, normalizeFinding(f))
		}
	}

	return defects
}

// normalizeFinding maps a raw finding to a canonical defect: severity
// uppercased with LOW fallback, missing statute replaced by the sentinel.
func normalizeFinding(f rawFinding) models.Defect {
	statute := f.Statute
	if statute == "" {
		statute = models.StatuteUnknown
	}
	return models.Defect{
		Type:        f.Type,
		Severity:    models.NormalizeSeverity(f.Severity),
		Statute:     statute,
		Description: f.Description,
	}
}
