package rentab

// Resolve maps every aggregated row to its Maestro identifier through the
// entity catalog. Rows whose entity has no catalog match are kept in the
// output with status Unresolved so they stay visible for audit; dropping
// them, or failing the run on them, is a policy left to the caller.
//
// Resolution is a pure lookup: resolving the same rows against the same
// catalog twice yields identical assignments.
func Resolve(rows []AggregatedReturn, catalog *EntityCatalog) []ReconciledEntity {
	out := make([]ReconciledEntity, 0, len(rows))
	for _, row := range rows {
		rec := ReconciledEntity{AggregatedReturn: row, Status: Unresolved}
		if e, ok := catalog.Lookup(EntityKey{Kind: row.Kind, Name: row.Label}); ok {
			rec.APIID = e.ID
			rec.Status = Resolved
		}
		out = append(out, rec)
	}
	return out
}

// UnresolvedByKind counts the unresolved entities per grouping kind, the
// summary a caller may treat as a soft failure. Each distinct label is
// counted once regardless of how many months it covers.
func UnresolvedByKind(rows []ReconciledEntity) map[GroupingKind]int {
	seen := make(map[EntityKey]bool)
	counts := make(map[GroupingKind]int)
	for _, r := range rows {
		if r.Status != Unresolved {
			continue
		}
		key := EntityKey{Kind: r.Kind, Name: NormalizeName(r.Label)}
		if seen[key] {
			continue
		}
		seen[key] = true
		counts[r.Kind]++
	}
	return counts
}
