package service

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"procedurecheck-backend/models"
)

const (
	// recurrenceThreshold is the minimum occurrence count for a (type, statute)
	// group to be reported as recurring.
	recurrenceThreshold = 3

	// confidenceThreshold is the minimum number of times a defect must have
	// been raised in court before its success rate is trusted for
	// prioritization.
	confidenceThreshold = 3

	// trendWindow is how many recent analyses trend analysis looks at
	trendWindow = 5

	// trendMinHistory is the minimum history length for trend analysis
	trendMinHistory = 3
)

// PatternEngine mines the analysis history and the outcome ledger for
// recurring defects, trends, novel issues and success-rate statistics.
//
// All state it holds is derived and rebuildable: the success-rate map by
// replaying the outcome ledger, the pattern counts by replaying the analysis
// history. Reset clears both; there are no package-level singletons.
type PatternEngine struct {
	mu sync.Mutex

	successRates map[string]*models.DefectSuccessStats
	statsOrder   []string

	// running occurrence counts keyed by "type|statute", maintained as
	// analyses are recorded so callers can read pattern frequencies without
	// rescanning the history
	patterns     map[string]int
	patternOrder []string
}

// NewPatternEngine creates an engine with empty derived state
func NewPatternEngine() *PatternEngine {
	e := &PatternEngine{}
	e.Reset()
	return e
}

// Reset fully clears the derived state. Must be called before replaying the
// outcome ledger and alongside any store-level clear.
func (e *PatternEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.successRates = make(map[string]*models.DefectSuccessStats)
	e.statsOrder = nil
	e.patterns = make(map[string]int)
	e.patternOrder = nil
}

// patternKey builds the composite grouping key for a defect
func patternKey(d models.Defect) string {
	statute := d.Statute
	if statute == "" {
		statute = models.StatuteUnknown
	}
	return d.Type + "|" + statute
}

// RecordPatterns folds one analysis into the running pattern counts
func (e *PatternEngine) RecordPatterns(rec models.AnalysisRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range ExtractFindings(rec) {
		key := patternKey(d)
		if _, ok := e.patterns[key]; !ok {
			e.patternOrder = append(e.patternOrder, key)
		}
		e.patterns[key]++
	}
}

// PatternCounts returns a snapshot of the running pattern counts in
// first-encounter order.
func (e *PatternEngine) PatternCounts() []PatternCount {
	e.mu.Lock()
	defer e.mu.Unlock()
	counts := make([]PatternCount, 0, len(e.patternOrder))
	for _, key := range e.patternOrder {
		counts = append(counts, PatternCount{Pattern: key, Count: e.patterns[key]})
	}
	return counts
}

// PatternCount is one entry of the running pattern-count snapshot
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// FindRecurringDefects groups defect occurrences across the whole history by
// (type, statute) and returns the groups seen at least recurrenceThreshold
// times, sorted by descending count. The sort is stable: groups with equal
// counts keep first-appearance order. Severity is taken from the first
// occurrence and not re-validated across the group.
func (e *PatternEngine) FindRecurringDefects(history []models.AnalysisRecord) []models.RecurringDefect {
	groups := make(map[string]*models.RecurringDefect)
	var order []string

	for _, rec := range history {
		for _, d := range ExtractFindings(rec) {
			key := patternKey(d)
			g, ok := groups[key]
			if !ok {
				g = &models.RecurringDefect{
					Type:      d.Type,
					Statute:   d.Statute,
					Severity:  d.Severity,
					FirstSeen: rec.CreatedAt,
					LastSeen:  rec.CreatedAt,
				}
				groups[key] = g
				order = append(order, key)
			}
			g.Count++
			if rec.CreatedAt.Before(g.FirstSeen) {
				g.FirstSeen = rec.CreatedAt
			}
			if rec.CreatedAt.After(g.LastSeen) {
				g.LastSeen = rec.CreatedAt
			}
			g.Descriptions = append(g.Descriptions, d.Description)
			g.AnalysisIDs = append(g.AnalysisIDs, rec.ID)
		}
	}

	recurring := make([]models.RecurringDefect, 0)
	for _, key := range order {
		if groups[key].Count >= recurrenceThreshold {
			recurring = append(recurring, *groups[key])
		}
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].Count > recurring[j].Count
	})

	return recurring
}

// AnalyzeTrends compares high-severity defect counts between the older and
// newer halves of the last few analyses. Histories shorter than
// trendMinHistory yield the insufficient-data sentinel. A zero first-half
// average always classifies STABLE: both the WORSENING and IMPROVING branches
// require a positive baseline.
func (e *PatternEngine) AnalyzeTrends(history []models.AnalysisRecord) models.TrendReport {
	if len(history) < trendMinHistory {
		return models.TrendReport{
			Status:      models.TrendInsufficientData,
			RecordCount: len(history),
		}
	}

	window := history
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}

	counts := make([]int, 0, len(window))
	for _, rec := range window {
		n := 0
		for _, d := range ExtractFindings(rec) {
			if d.Severity == models.SeverityHigh || d.Severity == models.SeverityCritical {
				n++
			}
		}
		counts = append(counts, n)
	}

	half := len(counts) / 2
	firstAvg := mean(counts[:half])
	secondAvg := mean(counts[half:])

	report := models.TrendReport{
		RecordCount:   len(history),
		FirstHalfAvg:  round1(firstAvg),
		SecondHalfAvg: round1(secondAvg),
	}

	switch {
	case firstAvg > 0 && secondAvg > firstAvg*1.2:
		report.Status = models.TrendWorsening
		report.Severity = models.SeverityHigh
		report.ChangePercent = int(math.Round((secondAvg/firstAvg - 1) * 100))
		report.Message = fmt.Sprintf("High-severity defects are up %d%% across recent analyses.", report.ChangePercent)
		report.Recommendation = "Review recent drafting and filing practice and work through the recurring defects list before the next filing."
	case firstAvg > 0 && secondAvg < firstAvg*0.8:
		report.Status = models.TrendImproving
		report.Severity = models.SeverityLow
		report.ChangePercent = int(math.Round((1 - secondAvg/firstAvg) * 100))
		report.Message = fmt.Sprintf("High-severity defects are down %d%% across recent analyses.", report.ChangePercent)
		report.Recommendation = "Current practice is working. Keep applying the existing checklists."
	default:
		report.Status = models.TrendStable
		report.Severity = models.SeverityMedium
		report.Message = "High-severity defect levels are steady across recent analyses."
		report.Recommendation = "Work through the recurring defects list to move the trend downward."
	}

	return report
}

// IdentifyNovelIssues flags defect occurrences in the latest analysis whose
// type has never appeared in any earlier analysis. "Latest" means the last
// element of the supplied ordering. Pure function of its input: repeated novel
// types in the latest analysis each produce their own entry.
func (e *PatternEngine) IdentifyNovelIssues(history []models.AnalysisRecord) []models.NovelIssue {
	issues := make([]models.NovelIssue, 0)
	if len(history) == 0 {
		return issues
	}

	known := make(map[string]bool)
	for _, rec := range history[:len(history)-1] {
		for _, d := range ExtractFindings(rec) {
			known[d.Type] = true
		}
	}

	latest := history[len(history)-1]
	for _, d := range ExtractFindings(latest) {
		if known[d.Type] {
			continue
		}
		issues = append(issues, models.NovelIssue{
			Type:        d.Type,
			Severity:    d.Severity,
			Statute:     d.Statute,
			Description: d.Description,
			Message:     fmt.Sprintf("First appearance of %q in your analysis history. Review it carefully: no prior handling to draw on.", d.Type),
		})
	}

	return issues
}

// CalculateCompliance summarizes defect load across the whole history. An
// empty history reports a 100% compliance rate. The rate deducts 5 points per
// average issue and floors at exactly zero.
func (e *PatternEngine) CalculateCompliance(history []models.AnalysisRecord) models.ComplianceMetrics {
	metrics := models.ComplianceMetrics{
		TotalDocuments: len(history),
		ComplianceRate: 100,
	}
	if len(history) == 0 {
		return metrics
	}

	typeCounts := make(map[string]int)
	var typeOrder []string

	for _, rec := range history {
		for _, d := range ExtractFindings(rec) {
			metrics.TotalIssues++
			switch d.Severity {
			case models.SeverityCritical:
				metrics.CriticalCount++
			case models.SeverityHigh:
				metrics.HighCount++
			}
			if _, ok := typeCounts[d.Type]; !ok {
				typeOrder = append(typeOrder, d.Type)
			}
			typeCounts[d.Type]++
		}
	}

	// ties keep first-encounter order
	best := 0
	for _, t := range typeOrder {
		if typeCounts[t] > best {
			best = typeCounts[t]
			metrics.MostFrequentType = t
		}
	}

	avg := float64(metrics.TotalIssues) / float64(len(history))
	metrics.AverageIssuesPerDoc = round1(avg)
	metrics.ComplianceRate = round1(math.Max(0, 100-avg*5))

	return metrics
}

// BuildInsights runs the full engine over one materialized history
func (e *PatternEngine) BuildInsights(history []models.AnalysisRecord) models.InsightsReport {
	return models.InsightsReport{
		Recurring:         e.FindRecurringDefects(history),
		Trends:            e.AnalyzeTrends(history),
		Recommendations:   e.GenerateRecommendations(history),
		NovelIssues:       e.IdentifyNovelIssues(history),
		ComplianceMetrics: e.CalculateCompliance(history),
	}
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
