package rentab

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/AndreFelix74/divulga-rentab/date"
	"github.com/shopspring/decimal"
)

// ErrNoPlanInfo is returned when the plan metadata table is empty: no join
// is possible and any aggregate would be meaningless.
var ErrNoPlanInfo = errors.New("plan metadata is empty, no join possible")

// DefaultConsolidatedName labels the consolidated rows when the Aggregator
// does not override it.
const DefaultConsolidatedName = "VIVEST"

// Aggregator merges movement records with plan metadata and derives the
// standardized table of monthly and year-to-date returns per grouping.
type Aggregator struct {
	// ConsolidatedName is the label of the consolidated (whole entity) rows.
	ConsolidatedName string
}

// joinedMovement is a movement record matched to its plan metadata.
type joinedMovement struct {
	mov  MovementRecord
	info AuxPlanInfo
}

// Aggregate joins each movement to its plan metadata and computes, for every
// grouping kind, the value-weighted monthly return and the year-to-date
// compounded return of each (label, month) partition.
//
// Movements without plan metadata, zero-weight partitions and months whose
// YTD cannot be compounded are reported as data-quality warnings; none of
// them aborts the run. The only fatal condition is an empty metadata table.
//
// The returned rows are stable-sorted by (kind, label, month) so that
// downstream comparison and fixtures are deterministic.
func (a Aggregator) Aggregate(movements []MovementRecord, plans map[string]AuxPlanInfo) ([]AggregatedReturn, []Warning, error) {
	if len(plans) == 0 {
		return nil, nil, ErrNoPlanInfo
	}
	consolidated := a.ConsolidatedName
	if consolidated == "" {
		consolidated = DefaultConsolidatedName
	}

	var warnings []Warning

	// Join movements to their plan metadata. A movement whose plan is
	// unknown is excluded, and a single warning is kept per plan id.
	joined := make([]joinedMovement, 0, len(movements))
	unknown := make(map[string]bool)
	for _, m := range movements {
		id := strings.TrimSpace(m.PlanID)
		info, ok := plans[id]
		if !ok {
			if !unknown[id] {
				unknown[id] = true
				warnings = append(warnings, Warning{
					Kind:    WarnUnmatchedPlan,
					PlanID:  id,
					Message: "no plan metadata, movements excluded from aggregation",
				})
			}
			continue
		}
		joined = append(joined, joinedMovement{mov: m, info: info})
	}

	groupings := []struct {
		kind  GroupingKind
		label func(AuxPlanInfo) string
	}{
		{KindPlanType, func(i AuxPlanInfo) string { return i.PlanType }},
		{KindGroup, func(i AuxPlanInfo) string { return i.Group }},
		{KindIndexer, func(i AuxPlanInfo) string { return i.Indexer }},
		{KindPlan, func(i AuxPlanInfo) string { return i.PlanName }},
		{KindConsolidated, func(AuxPlanInfo) string { return consolidated }},
	}

	var out []AggregatedReturn
	for _, g := range groupings {
		rows, w := aggregateKind(g.kind, joined, g.label)
		out = append(out, rows...)
		warnings = append(warnings, w...)
	}

	slices.SortStableFunc(out, compareReturns)
	return out, warnings, nil
}

// aggregateKind computes the monthly and YTD returns of one grouping kind.
func aggregateKind(kind GroupingKind, joined []joinedMovement, label func(AuxPlanInfo) string) ([]AggregatedReturn, []Warning) {
	type partKey struct {
		label string
		month date.Month
	}
	type partition struct {
		weight   decimal.Decimal // sum(value_i)
		weighted decimal.Decimal // sum(value_i * return_i)
	}

	var warnings []Warning

	parts := make(map[partKey]*partition)
	emptyLabel := make(map[string]bool)
	for _, j := range joined {
		name := strings.TrimSpace(label(j.info))
		if name == "" {
			id := strings.TrimSpace(j.mov.PlanID)
			if !emptyLabel[id] {
				emptyLabel[id] = true
				warnings = append(warnings, Warning{
					Kind:      WarnEmptyLabel,
					PlanID:    id,
					GroupKind: kind,
					Message:   "plan metadata has no label for this grouping, movements excluded from it",
				})
			}
			continue
		}
		key := partKey{label: name, month: date.MonthOf(j.mov.Date)}
		p, ok := parts[key]
		if !ok {
			p = &partition{}
			parts[key] = p
		}
		w := j.mov.Value.Decimal()
		p.weight = p.weight.Add(w)
		p.weighted = p.weighted.Add(w.Mul(decimal.NewFromFloat(float64(j.mov.Return))))
	}

	rows := make([]AggregatedReturn, 0, len(parts))
	for key, p := range parts {
		if p.weight.IsZero() {
			warnings = append(warnings, Warning{
				Kind:      WarnZeroWeight,
				GroupKind: kind,
				Label:     key.label,
				Month:     key.month,
				Message:   "total weight is zero, monthly return is undefined",
			})
			continue
		}
		rows = append(rows, AggregatedReturn{
			Kind:    kind,
			Label:   key.label,
			Month:   key.month,
			Monthly: Percent(p.weighted.Div(p.weight).InexactFloat64()),
		})
	}
	slices.SortStableFunc(rows, compareReturns)

	warnings = append(warnings, compoundYTD(rows)...)
	return rows, warnings
}

// compoundYTD fills the year-to-date return of rows already sorted by
// (kind, label, month). Compounding restarts at each calendar year and is
// only defined while the year's monthly sequence, starting in January, has
// no gap; once the chain is broken the remaining months of that year are
// reported as missing.
func compoundYTD(rows []AggregatedReturn) []Warning {
	var warnings []Warning

	var label string
	var year int
	var next date.Month
	factor := 1.0
	valid := false

	for i := range rows {
		r := &rows[i]
		if r.Label != label || r.Month.Year() != year {
			label, year = r.Label, r.Month.Year()
			factor = 1.0
			valid = r.Month.Month() == time.January
			if !valid {
				warnings = append(warnings, Warning{
					Kind:      WarnYTDGap,
					GroupKind: r.Kind,
					Label:     r.Label,
					Month:     r.Month,
					Message:   "year does not start in January, YTD is undefined",
				})
			}
		} else if valid && r.Month != next {
			valid = false
			warnings = append(warnings, Warning{
				Kind:      WarnYTDGap,
				GroupKind: r.Kind,
				Label:     r.Label,
				Month:     r.Month,
				Message:   "missing month in sequence, YTD is undefined from here on",
			})
		}
		if valid {
			factor *= 1 + float64(r.Monthly)
			r.YTD = Percent(factor - 1)
			r.HasYTD = true
		}
		next = r.Month.Next()
	}
	return warnings
}

// compareReturns orders aggregated rows by (kind, label, month).
func compareReturns(a, b AggregatedReturn) int {
	if c := cmp.Compare(kindOrder[a.Kind], kindOrder[b.Kind]); c != 0 {
		return c
	}
	if c := strings.Compare(a.Label, b.Label); c != 0 {
		return c
	}
	return a.Month.Compare(b.Month)
}

// TotalAssets sums the most recent value of each plan, giving the entity's
// net assets at the end of the covered period.
func TotalAssets(movements []MovementRecord) Money {
	type last struct {
		on    date.Date
		value Money
	}
	latest := make(map[string]last)
	for _, m := range movements {
		id := strings.TrimSpace(m.PlanID)
		if cur, ok := latest[id]; !ok || m.Date.After(cur.on) {
			latest[id] = last{on: m.Date, value: m.Value}
		}
	}
	total := BRL(decimal.Zero)
	ids := make([]string, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		total = total.Add(latest[id].value)
	}
	return total
}
