package service

import (
	"fmt"
	"sort"
	"strings"

	"procedurecheck-backend/models"
)

// catchAllThreshold is the minimum recurrence count for a generic
// recommendation when no specialized rule matches.
const catchAllThreshold = 5

// recommendationRule attaches fixed advisory text to a recurring defect group.
// A rule fires when the defect type contains both trigger substrings,
// case-insensitively. All specialized rules are priority 1.
type recommendationRule struct {
	triggerA string
	triggerB string
	severity models.Severity
	statute  string
	advice   func(count int) string
}

// recommendationRules is the built-in rule table. Order matters: the first
// matching rule wins for a given group.
var recommendationRules = []recommendationRule{
	{
		triggerA: "s.55d",
		triggerB: "direction",
		severity: models.SeverityCritical,
		statute:  "Road Safety Act 1986 s.55D",
		advice: func(count int) string {
			return fmt.Sprintf("Recurring s.55D directions defect (%d occurrences). Check every drink-driving brief against this list before filing:\n"+
				"1. The s.55D directions language is quoted verbatim in the informant's statement, not paraphrased.\n"+
				"2. The time the direction was given and the time of the breath test are both recorded.\n"+
				"3. Any request for a blood sample and the response to it are documented.\n"+
				"4. The breath analysis operator's certificate accompanies the brief.", count)
		},
	},
	{
		triggerA: "service",
		triggerB: "time",
		severity: models.SeverityHigh,
		statute:  "Criminal Procedure Act 2009 s.24",
		advice: func(count int) string {
			return fmt.Sprintf("Out-of-time service has recurred %d times. Schedule refresher training on statutory service windows, and diarise service deadlines when the charge is filed rather than when the matter is listed.", count)
		},
	},
	{
		triggerA: "continuity",
		triggerB: "custody",
		severity: models.SeverityCritical,
		statute:  "Evidence Act 2008 s.137",
		advice: func(count int) string {
			return fmt.Sprintf("Critical process failure: exhibit continuity defects have recurred %d times. This is the highest-urgency issue in your history. Audit the exhibit custody process end to end before the next contested hearing.", count)
		},
	},
}

// matches reports whether the rule fires for the given defect type
func (r recommendationRule) matches(defectType string) bool {
	t := strings.ToLower(defectType)
	return strings.Contains(t, r.triggerA) && strings.Contains(t, r.triggerB)
}

// GenerateRecommendations derives prioritized advisories from the recurring
// defect groups. Specialized rules produce priority-1 entries; any remaining
// group seen at least catchAllThreshold times gets a generic priority-2 entry.
// Groups below that which match no rule produce nothing. Results are ordered
// by ascending priority, then descending count within a priority.
func (e *PatternEngine) GenerateRecommendations(history []models.AnalysisRecord) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0)

	for _, group := range e.FindRecurringDefects(history) {
		matched := false
		for _, rule := range recommendationRules {
			if !rule.matches(group.Type) {
				continue
			}
			recommendations = append(recommendations, models.Recommendation{
				Priority: 1,
				Severity: rule.severity,
				Type:     group.Type,
				Statute:  rule.statute,
				Count:    group.Count,
				Advice:   rule.advice(group.Count),
			})
			matched = true
			break
		}
		if matched || group.Count < catchAllThreshold {
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Priority: 2,
			Severity: group.Severity,
			Type:     group.Type,
			Statute:  group.Statute,
			Count:    group.Count,
			Advice:   fmt.Sprintf("%q (%s) has recurred %d times across your analyses. Add a dedicated review step for it before filing.", group.Type, group.Statute, group.Count),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Priority != recommendations[j].Priority {
			return recommendations[i].Priority < recommendations[j].Priority
		}
		return recommendations[i].Count > recommendations[j].Count
	})

	return recommendations
}
