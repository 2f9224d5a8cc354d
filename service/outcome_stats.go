package service

import (
	"fmt"
	"sort"

	"procedurecheck-backend/models"
)

// LearnFromOutcome folds one court outcome into the success-rate statistics.
// Each call increments counters, so rebuilding the statistics means calling
// Reset first and replaying the full outcome ledger in order.
func (e *PatternEngine) LearnFromOutcome(outcome models.OutcomeRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, defectType := range outcome.DefectsRaised {
		stats, ok := e.successRates[defectType]
		if !ok {
			stats = &models.DefectSuccessStats{Type: defectType}
			e.successRates[defectType] = stats
			e.statsOrder = append(e.statsOrder, defectType)
		}

		stats.TotalRaised++
		if outcome.Outcome.IsSuccessful() {
			stats.Successful++
		} else {
			stats.Unsuccessful++
		}
		stats.Outcomes = append(stats.Outcomes, models.OutcomeAudit{
			Date:               outcome.OutcomeDate,
			Outcome:            outcome.Outcome,
			CourtResponse:      outcome.CourtResponse,
			EffectiveArguments: outcome.EffectiveArguments,
		})
	}
}

// successRate computes the percentage of successful outcomes, 0 when nothing
// has been raised.
func successRate(stats *models.DefectSuccessStats) float64 {
	if stats.TotalRaised == 0 {
		return 0
	}
	return float64(stats.Successful) / float64(stats.TotalRaised) * 100
}

// SuccessRates returns the statistics for every defect type seen in the
// outcome ledger, sorted by descending success rate. The comparison is
// numeric; the one-decimal string on each entry is for display only.
func (e *PatternEngine) SuccessRates() []models.DefectSuccessStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	rates := make([]models.DefectSuccessStats, 0, len(e.statsOrder))
	numeric := make(map[string]float64, len(e.statsOrder))
	for _, t := range e.statsOrder {
		stats := *e.successRates[t]
		rate := successRate(e.successRates[t])
		stats.SuccessRate = fmt.Sprintf("%.1f", rate)
		numeric[t] = rate
		rates = append(rates, stats)
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return numeric[rates[i].Type] > numeric[rates[j].Type]
	})

	return rates
}

// PrioritizeDefects annotates the defects of a current analysis with
// historical court performance. A defect gets history only when its type has
// been raised at least confidenceThreshold times. Only the entries with
// history are reordered (by descending success rate); entries without history
// stay in their original slots relative to one another.
func (e *PatternEngine) PrioritizeDefects(current []models.Defect) []models.DefectPriority {
	e.mu.Lock()
	defer e.mu.Unlock()

	type ratedPriority struct {
		entry models.DefectPriority
		rate  float64
	}

	rated := make([]ratedPriority, 0, len(current))
	for _, d := range current {
		entry := models.DefectPriority{Defect: d}
		rate := 0.0

		if stats, ok := e.successRates[d.Type]; ok && stats.TotalRaised >= confidenceThreshold {
			rate = successRate(stats)
			entry.HasHistory = true
			entry.SuccessRate = fmt.Sprintf("%.1f", rate)
			entry.TimesRaised = stats.TotalRaised
			if rate > 60 {
				entry.Advice = fmt.Sprintf("Strong defect to raise: succeeded in %s%% of %d prior matters.", entry.SuccessRate, stats.TotalRaised)
			} else {
				entry.Advice = fmt.Sprintf("Raised %d times with a %s%% success rate. Ensure stronger supporting evidence before relying on it.", stats.TotalRaised, entry.SuccessRate)
			}
		} else {
			entry.Advice = "No historical outcome data for this defect type yet."
		}

		rated = append(rated, ratedPriority{entry: entry, rate: rate})
	}

	// Reorder only the with-history subset by descending rate; no-history
	// entries keep their original slots.
	var idx []int
	for i := range rated {
		if rated[i].entry.HasHistory {
			idx = append(idx, i)
		}
	}
	subset := make([]ratedPriority, len(idx))
	for k, i := range idx {
		subset[k] = rated[i]
	}
	sort.SliceStable(subset, func(a, b int) bool {
		return subset[a].rate > subset[b].rate
	})
	for k, i := range idx {
		rated[i] = subset[k]
	}

	priorities := make([]models.DefectPriority, 0, len(rated))
	for _, r := range rated {
		priorities = append(priorities, r.entry)
	}
	return priorities
}
