package rentab

import (
	"fmt"

	"github.com/AndreFelix74/divulga-rentab/date"
)

// WarningKind identifies a class of non-fatal data-quality problem.
type WarningKind string

const (
	// WarnUnmatchedPlan flags a movement whose plan id has no entry in the
	// plan metadata; the movement is excluded from aggregation.
	WarnUnmatchedPlan WarningKind = "UNMATCHED_PLAN"
	// WarnEmptyLabel flags a plan whose metadata lacks the grouping label,
	// excluding its movements from that grouping only.
	WarnEmptyLabel WarningKind = "EMPTY_LABEL"
	// WarnZeroWeight flags a partition whose total weight is zero; its
	// monthly return is undefined and the row is omitted.
	WarnZeroWeight WarningKind = "ZERO_WEIGHT"
	// WarnYTDGap flags a month whose year-to-date return cannot be
	// compounded because the calendar year's monthly sequence is missing a
	// month (or does not start in January).
	WarnYTDGap WarningKind = "YTD_GAP"
	// WarnBadRow flags an input row that could not be decoded.
	WarnBadRow WarningKind = "BAD_ROW"
)

// Warning is one collected data-quality diagnostic. Warnings are data for
// the audit trail, not errors: they never abort a run.
type Warning struct {
	Kind      WarningKind
	PlanID    string       // when the problem is tied to a plan
	GroupKind GroupingKind // when the problem is tied to a partition
	Label     string
	Month     date.Month
	Message   string
}

func (w Warning) String() string {
	switch {
	case w.PlanID != "":
		return fmt.Sprintf("%s: plan %q: %s", w.Kind, w.PlanID, w.Message)
	case w.Label != "":
		return fmt.Sprintf("%s: %s %q %s: %s", w.Kind, w.GroupKind, w.Label, w.Month, w.Message)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
}
