package rentab

import (
	"time"

	"github.com/AndreFelix74/divulga-rentab/date"
)

// GroupingKind is the dimension along which returns are aggregated and
// disclosed. The values are the labels used by the original MEC-SAC tables
// and by the Maestro entity endpoints.
type GroupingKind string

const (
	KindPlanType     GroupingKind = "TIPO_PLANO"
	KindGroup        GroupingKind = "GRUPO"
	KindIndexer      GroupingKind = "INDEXADOR"
	KindPlan         GroupingKind = "PLANO"
	KindConsolidated GroupingKind = "CONSOLIDADO"
)

// kindOrder fixes the output ordering of grouping kinds.
var kindOrder = map[GroupingKind]int{
	KindPlanType:     0,
	KindGroup:        1,
	KindIndexer:      2,
	KindPlan:         3,
	KindConsolidated: 4,
}

// MovementRecord is one row of raw portfolio movement data, keyed by the SAC
// client code of the plan. The grouping attributes (group, indexer, plan
// type) are not carried here; they are joined from AuxPlanInfo by PlanID.
type MovementRecord struct {
	PlanID string    // SAC client code (CLCLI_CD)
	Date   date.Date // reference date (DT)
	Value  Money     // net asset value, the aggregation weight (VL_PATRLIQTOT1)
	Return Percent   // period return as supplied (RENTAB_MES)
}

// AuxPlanInfo is the reference metadata describing a plan, loaded once per
// run from dCadPlanoSAC and keyed by SAC client code.
type AuxPlanInfo struct {
	PlanName string
	Group    string
	Indexer  string
	PlanType string
	CNPB     string
	PlanCode string
}

// AggregatedReturn is one row of the aggregation output: the monthly and
// year-to-date return of one grouping for one month.
//
// For a fixed kind and label, rows cover a non-decreasing sequence of months
// and the YTD compounding restarts at each new calendar year. HasYTD is
// false when the year's monthly sequence is not anchored at January or has a
// gap; the value is then reported as missing rather than silently skipped.
type AggregatedReturn struct {
	Kind    GroupingKind
	Label   string
	Month   date.Month
	Monthly Percent
	YTD     Percent
	HasYTD  bool
}

// EntityKey is the local identifying tuple used to look up a Maestro
// identifier.
type EntityKey struct {
	Kind GroupingKind
	Name string
}

// ApiEntity is one entity as known to Maestro.
type ApiEntity struct {
	Kind GroupingKind
	Name string
	ID   int64
}

// ResolutionStatus tells whether a local entity was resolved to a Maestro
// identifier.
type ResolutionStatus string

const (
	Resolved   ResolutionStatus = "RESOLVED"
	Unresolved ResolutionStatus = "UNRESOLVED"
)

// ReconciledEntity is an AggregatedReturn augmented with the Maestro
// identifier of its entity, when one was found.
type ReconciledEntity struct {
	AggregatedReturn
	APIID  int64 // zero when Status is Unresolved
	Status ResolutionStatus
}

// OfficialReturn is one official return value from Maestro. Month is zero
// for annual values.
type OfficialReturn struct {
	APIID int64
	Year  int
	Month time.Month
	Value Percent
}

// Indicator distinguishes the two official return series.
type Indicator string

const (
	Monthly Indicator = "MENSAL"
	Annual  Indicator = "ANUAL"
)

// DiscrepancyStatus classifies the comparison of one local value against
// one official value.
type DiscrepancyStatus string

const (
	Match           DiscrepancyStatus = "MATCH"
	WithinTolerance DiscrepancyStatus = "WITHIN_TOLERANCE"
	Mismatch        DiscrepancyStatus = "MISMATCH"
	NoOfficialData  DiscrepancyStatus = "NO_OFFICIAL_DATA"
)

// DiscrepancyRecord compares one locally computed value against the official
// value for the same entity and period.
type DiscrepancyRecord struct {
	Kind      GroupingKind
	Label     string
	Month     date.Month
	Indicator Indicator
	APIID     int64 // zero when the entity was never resolved

	Local         Percent
	Official      Percent
	Delta         float64
	RelativeDelta float64
	HasRelative   bool // false when Official is zero or there is no official data

	Status DiscrepancyStatus
}
