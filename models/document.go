package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseDocument represents an uploaded court document (charge sheet, brief,
// summons) held in file storage; the analysed record references it by id.
type CaseDocument struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	AnalysisID  *int64    `json:"analysis_id,omitempty"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
