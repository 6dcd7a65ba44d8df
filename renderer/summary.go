package renderer

import (
	"github.com/AndreFelix74/divulga-rentab"
)

// RunSummary gathers the facts of one disclosure run for the markdown
// report: how much was read, what was computed, and what reconciliation
// found.
type RunSummary struct {
	RunID         string
	MovementFiles int
	Movements     int
	Plans         int
	TotalAssets   rentab.Money

	Aggregated    int
	Unresolved    map[rentab.GroupingKind]int
	Discrepancies map[rentab.DiscrepancyStatus]int

	Warnings []rentab.Warning

	OutputDir string
}

// CountDiscrepancies tallies discrepancy records by status.
func CountDiscrepancies(records []rentab.DiscrepancyRecord) map[rentab.DiscrepancyStatus]int {
	counts := make(map[rentab.DiscrepancyStatus]int)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}
