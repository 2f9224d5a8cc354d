package service

import (
	"context"
	"testing"
	"time"

	"procedurecheck-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRecordOutcomeValidation(t *testing.T) {
	svc := NewOutcomeService()

	valid := RecordOutcomeRequest{
		AnalysisID:    1,
		Outcome:       models.OutcomeEvidenceExcluded,
		DefectsRaised: []string{"Missing s.55D directions language"},
		OutcomeDate:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		name    string
		mutate  func(*RecordOutcomeRequest)
		wantErr error
	}{
		{
			name:    "outcome outside vocabulary",
			mutate:  func(r *RecordOutcomeRequest) { r.Outcome = "acquitted" },
			wantErr: ErrInvalidOutcome,
		},
		{
			name:    "empty outcome",
			mutate:  func(r *RecordOutcomeRequest) { r.Outcome = "" },
			wantErr: ErrInvalidOutcome,
		},
		{
			name:    "missing date",
			mutate:  func(r *RecordOutcomeRequest) { r.OutcomeDate = time.Time{} },
			wantErr: ErrMissingDate,
		},
		{
			name:    "no defects raised",
			mutate:  func(r *RecordOutcomeRequest) { r.DefectsRaised = nil },
			wantErr: ErrNoDefectsRaised,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			_, err := svc.RecordOutcome(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
