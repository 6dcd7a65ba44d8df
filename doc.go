// Package rentab computes periodic investment-return indicators from MEC-SAC
// portfolio movement records and reconciles both the entities (plans, groups,
// indexers, plan types) and the computed values against the Maestro
// system-of-record API, so that publicly disclosed return figures match, and
// can be audited against, the official values.
//
// The core functionalities include:
//   - Aggregation: joining movement records with plan metadata and deriving
//     value-weighted monthly returns and compounded year-to-date returns per
//     grouping (plan type, group, indexer, plan, consolidated).
//   - Entity reconciliation: resolving each local grouping to its Maestro
//     identifier through a normalized name lookup, keeping unresolved rows
//     visible for audit.
//   - Value reconciliation: comparing locally computed returns against the
//     official monthly and annual values, classifying each pair as a match,
//     a tolerated rounding difference, or a discrepancy.
//   - Data persistence: decoding movement and plan metadata CSV files and
//     encoding the three tabular results for downstream consumers.
//
// The package is a pure, in-memory transformation core: the Maestro catalogs
// are fetched once per run (see the maestro package), held read-only, and
// discarded. Row-level problems are collected as data-quality warnings and
// never abort a run; only unusable plan metadata or a failed catalog fetch
// is fatal.
//
// This package serves as the foundational logic for the `rdc` command-line
// tool.
package rentab
