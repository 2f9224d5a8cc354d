package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	cases := []struct {
		raw  string
		want Severity
	}{
		{"CRITICAL", SeverityCritical},
		{"critical", SeverityCritical},
		{" High ", SeverityHigh},
		{"Medium", SeverityMedium},
		{"low", SeverityLow},
		{"", SeverityLow},
		{"urgent", SeverityLow},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeSeverity(tc.raw), "raw %q", tc.raw)
	}
}

func TestOutcomeClassification(t *testing.T) {
	for _, o := range ValidOutcomes {
		assert.True(t, o.IsValid())
	}
	assert.False(t, Outcome("acquitted").IsValid())
	assert.False(t, Outcome("").IsValid())

	assert.True(t, OutcomeEvidenceExcluded.IsSuccessful())
	assert.True(t, OutcomeApplicationSuccessful.IsSuccessful())
	assert.True(t, OutcomeCaseDismissed.IsSuccessful())

	for _, o := range []Outcome{
		OutcomeEvidenceAdmitted, OutcomeApplicationDenied, OutcomeCaseProceeded,
		OutcomeSettled, OutcomeWithdrawn, OutcomeOther,
	} {
		assert.False(t, o.IsSuccessful(), "outcome %q", o)
	}
}

func TestResultPayloadScan(t *testing.T) {
	var p ResultPayload

	assert.NoError(t, p.Scan([]byte(`{"findings": []}`)))
	assert.JSONEq(t, `{"findings": []}`, string(p))

	assert.NoError(t, p.Scan("plain-string"))
	assert.Equal(t, "plain-string", string(p))

	assert.NoError(t, p.Scan(nil))
	assert.Equal(t, "{}", string(p))
}

func TestStringListScan(t *testing.T) {
	var l StringList

	assert.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, l)

	assert.NoError(t, l.Scan(nil))
	assert.Empty(t, l)
}
