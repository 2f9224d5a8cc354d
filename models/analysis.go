package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity represents the severity of a compliance defect
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// NormalizeSeverity maps a raw severity string to a canonical Severity.
// Matching is case-insensitive; anything unrecognized becomes LOW.
func NormalizeSeverity(raw string) Severity {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	case string(SeverityLow):
		return SeverityLow
	default:
		return SeverityLow
	}
}

// StatuteUnknown is the canonical sentinel for defects with no statute citation.
// It is used both as the grouping key component and the display value.
const StatuteUnknown = "unknown"

// Defect represents a single compliance finding within an analysis
type Defect struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Statute     string   `json:"statute"`
	Description string   `json:"description"`
}

// DocumentType represents the kind of court document that was analysed
type DocumentType string

const (
	DocTypeChargeSheet     DocumentType = "charge_sheet"
	DocTypeBriefOfEvidence DocumentType = "brief_of_evidence"
	DocTypeSummons         DocumentType = "summons"
	DocTypeInfringement    DocumentType = "infringement_notice"
	DocTypeOther           DocumentType = "other"
)

// ResultPayload holds the raw analysis result as produced by the document
// classification pipeline. Its internal shape varies between pipeline versions
// (top-level "findings" vs. "phases.presetAnalysis[*].findings"), so it is kept
// opaque here and only flattened by the finding extractor.
type ResultPayload json.RawMessage

// Value implements driver.Valuer for JSONB
func (p ResultPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return []byte("{}"), nil
	}
	return []byte(p), nil
}

// Scan implements sql.Scanner for JSONB
func (p *ResultPayload) Scan(value interface{}) error {
	if value == nil {
		*p = ResultPayload("{}")
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*p = ResultPayload(append([]byte(nil), v...))
	case string:
		*p = ResultPayload(v)
	default:
		*p = ResultPayload("{}")
	}
	return nil
}

// MarshalJSON passes the raw payload through unchanged
func (p ResultPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return []byte(p), nil
}

// UnmarshalJSON stores the raw payload unchanged
func (p *ResultPayload) UnmarshalJSON(data []byte) error {
	*p = ResultPayload(append([]byte(nil), data...))
	return nil
}

// AnalysisRecord represents one completed document analysis.
// Records are immutable once persisted: the intelligence layer only reads them.
type AnalysisRecord struct {
	ID           int64         `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	DocumentName string        `json:"document_name"`
	DocumentType DocumentType  `json:"document_type"`
	Result       ResultPayload `json:"result"`
	CreatedAt    time.Time     `json:"created_at"`
}
