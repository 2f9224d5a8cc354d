package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Outcome represents what happened in court for an analysed document
type Outcome string

const (
	OutcomeEvidenceExcluded      Outcome = "evidence excluded"
	OutcomeApplicationSuccessful Outcome = "application successful"
	OutcomeCaseDismissed         Outcome = "case dismissed"
	OutcomeEvidenceAdmitted      Outcome = "evidence admitted"
	OutcomeApplicationDenied     Outcome = "application denied"
	OutcomeCaseProceeded         Outcome = "case proceeded"
	OutcomeSettled               Outcome = "settled"
	OutcomeWithdrawn             Outcome = "withdrawn"
	OutcomeOther                 Outcome = "other"
)

// ValidOutcomes is the closed vocabulary accepted at the recording boundary
var ValidOutcomes = []Outcome{
	OutcomeEvidenceExcluded,
	OutcomeApplicationSuccessful,
	OutcomeCaseDismissed,
	OutcomeEvidenceAdmitted,
	OutcomeApplicationDenied,
	OutcomeCaseProceeded,
	OutcomeSettled,
	OutcomeWithdrawn,
	OutcomeOther,
}

// IsValid reports whether the outcome belongs to the accepted vocabulary
func (o Outcome) IsValid() bool {
	for _, v := range ValidOutcomes {
		if o == v {
			return true
		}
	}
	return false
}

// IsSuccessful reports whether the outcome counts as a win for success-rate
// statistics. Only three outcomes qualify; everything else (including
// "settled" and "withdrawn") counts as unsuccessful.
func (o Outcome) IsSuccessful() bool {
	switch o {
	case OutcomeEvidenceExcluded, OutcomeApplicationSuccessful, OutcomeCaseDismissed:
		return true
	default:
		return false
	}
}

// StringList represents a JSONB-backed list of strings
type StringList []string

// Value implements driver.Valuer for JSONB
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = make(StringList, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*l = make(StringList, 0)
		return nil
	}

	if len(bytes) == 0 {
		*l = make(StringList, 0)
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// OutcomeRecord represents a user-entered court outcome tied to one analysis.
// One analysis may accumulate several outcome records over time (hearing, then
// appeal). Records are append-only: never edited or deleted by the engine.
type OutcomeRecord struct {
	ID                 int64      `json:"id"`
	AnalysisID         int64      `json:"analysis_id"`
	Outcome            Outcome    `json:"outcome"`
	DefectsRaised      StringList `json:"defects_raised"`
	CourtResponse      string     `json:"court_response"`
	EffectiveArguments StringList `json:"effective_arguments"`
	OutcomeDate        time.Time  `json:"outcome_date"`
	CreatedAt          time.Time  `json:"created_at"`
}
