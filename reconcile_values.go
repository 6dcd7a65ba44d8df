package rentab

import "math"

// Compare builds the discrepancy table: every resolved row is compared with
// the official monthly value for its month and, when its YTD is defined,
// with the official annual value for its year. Unresolved rows cannot be
// compared and are reported as NoOfficialData, keyed by the absence of an
// identifier rather than the absence of a value.
//
// tolerance bounds the acceptable relative difference (or absolute
// difference when the official value is zero). It is an input because
// acceptable rounding drift varies by indicator type.
//
// The output preserves the (kind, label, month) ordering of the input, with
// the monthly comparison before the annual one for each row.
func Compare(rows []ReconciledEntity, official *OfficialReturnCatalog, tolerance float64) []DiscrepancyRecord {
	out := make([]DiscrepancyRecord, 0, len(rows))
	for _, row := range rows {
		monthly := DiscrepancyRecord{
			Kind:      row.Kind,
			Label:     row.Label,
			Month:     row.Month,
			Indicator: Monthly,
			APIID:     row.APIID,
			Local:     row.Monthly,
			Status:    NoOfficialData,
		}
		if row.Status == Resolved {
			if value, ok := official.Monthly(row.APIID, row.Month); ok {
				monthly = classify(monthly, value, tolerance)
			}
		}
		out = append(out, monthly)

		if !row.HasYTD {
			continue
		}
		annual := DiscrepancyRecord{
			Kind:      row.Kind,
			Label:     row.Label,
			Month:     row.Month,
			Indicator: Annual,
			APIID:     row.APIID,
			Local:     row.YTD,
			Status:    NoOfficialData,
		}
		if row.Status == Resolved {
			if value, ok := official.Annual(row.APIID, row.Month.Year()); ok {
				annual = classify(annual, value, tolerance)
			}
		}
		out = append(out, annual)
	}
	return out
}

// classify fills the comparison fields of rec against the official value.
// Match requires an exactly zero delta; within tolerance is judged on the
// relative delta, or on the absolute delta when the official value is zero
// and the relative delta is undefined.
func classify(rec DiscrepancyRecord, official Percent, tolerance float64) DiscrepancyRecord {
	rec.Official = official
	rec.Delta = float64(rec.Local) - float64(official)
	if official != 0 {
		rec.RelativeDelta = rec.Delta / float64(official)
		rec.HasRelative = true
	}

	switch {
	case rec.Delta == 0:
		rec.Status = Match
	case rec.HasRelative:
		if math.Abs(rec.RelativeDelta) <= tolerance {
			rec.Status = WithinTolerance
		} else {
			rec.Status = Mismatch
		}
	default:
		if math.Abs(rec.Delta) <= tolerance {
			rec.Status = WithinTolerance
		} else {
			rec.Status = Mismatch
		}
	}
	return rec
}
