package models

import "time"

// RecurringDefect is one aggregated group of defect occurrences across the
// analysis history, keyed by (type, statute).
type RecurringDefect struct {
	Type         string    `json:"type"`
	Statute      string    `json:"statute"`
	Count        int       `json:"count"`
	Severity     Severity  `json:"severity"`
	FirstSeen    time.Time `json:"first_seen"`
	LastSeen     time.Time `json:"last_seen"`
	Descriptions []string  `json:"descriptions"`
	AnalysisIDs  []int64   `json:"analysis_ids"`
}

// TrendStatus classifies the direction of recent high-severity defect counts
type TrendStatus string

const (
	TrendInsufficientData TrendStatus = "INSUFFICIENT_DATA"
	TrendWorsening        TrendStatus = "WORSENING"
	TrendImproving        TrendStatus = "IMPROVING"
	TrendStable           TrendStatus = "STABLE"
)

// TrendReport is the result of trend analysis over the recent history.
// When Status is INSUFFICIENT_DATA only RecordCount is meaningful.
type TrendReport struct {
	Status         TrendStatus `json:"status"`
	RecordCount    int         `json:"record_count"`
	Severity       Severity    `json:"severity,omitempty"`
	Message        string      `json:"message,omitempty"`
	Recommendation string      `json:"recommendation,omitempty"`
	FirstHalfAvg   float64     `json:"first_half_avg"`
	SecondHalfAvg  float64     `json:"second_half_avg"`
	ChangePercent  int         `json:"change_percent"`
}

// NovelIssue flags a defect occurrence in the latest analysis whose type has
// never appeared in any earlier analysis.
type NovelIssue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Statute     string   `json:"statute"`
	Description string   `json:"description"`
	Message     string   `json:"message"`
}

// Recommendation is a prioritized advisory derived from recurring defects
type Recommendation struct {
	Priority int      `json:"priority"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
	Statute  string   `json:"statute"`
	Count    int      `json:"count"`
	Advice   string   `json:"advice"`
}

// ComplianceMetrics summarizes defect load across the whole history
type ComplianceMetrics struct {
	TotalDocuments      int     `json:"total_documents"`
	TotalIssues         int     `json:"total_issues"`
	CriticalCount       int     `json:"critical_count"`
	HighCount           int     `json:"high_count"`
	MostFrequentType    string  `json:"most_frequent_type"`
	AverageIssuesPerDoc float64 `json:"average_issues_per_doc"`
	ComplianceRate      float64 `json:"compliance_rate"`
}

// InsightsReport is the full structured output handed to the presenter.
// Every field may be empty or carry its sentinel value; consumers must
// degrade gracefully rather than error.
type InsightsReport struct {
	Recurring         []RecurringDefect `json:"recurring"`
	Trends            TrendReport       `json:"trends"`
	Recommendations   []Recommendation  `json:"recommendations"`
	NovelIssues       []NovelIssue      `json:"novel_issues"`
	ComplianceMetrics ComplianceMetrics `json:"compliance_metrics"`
}

// OutcomeAudit is one traceability entry kept per learned outcome
type OutcomeAudit struct {
	Date               time.Time `json:"date"`
	Outcome            Outcome   `json:"outcome"`
	CourtResponse      string    `json:"court_response"`
	EffectiveArguments []string  `json:"effective_arguments"`
}

// DefectSuccessStats tracks how a defect type has fared when raised in court.
// Derived state: rebuilt by replaying the outcome ledger, never persisted.
type DefectSuccessStats struct {
	Type         string         `json:"type"`
	TotalRaised  int            `json:"total_raised"`
	Successful   int            `json:"successful"`
	Unsuccessful int            `json:"unsuccessful"`
	Outcomes     []OutcomeAudit `json:"outcomes"`
	SuccessRate  string         `json:"success_rate"`
}

// DefectPriority is a defect from a current analysis annotated with
// historical court performance, when enough history exists.
type DefectPriority struct {
	Defect      Defect `json:"defect"`
	HasHistory  bool   `json:"has_history"`
	SuccessRate string `json:"success_rate,omitempty"`
	TimesRaised int    `json:"times_raised,omitempty"`
	Advice      string `json:"advice"`
}
