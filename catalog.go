package rentab

import (
	"strings"
	"time"

	"github.com/AndreFelix74/divulga-rentab/date"
)

// NormalizeName is the single tie-break policy absorbing minor naming
// inconsistencies between local and official entity names. It is applied
// identically to lookup keys and to catalog keys.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// EntityCatalog is an in-memory index of the official Maestro entities,
// keyed by normalized (kind, name). It is fetched once per run and is
// read-only thereafter.
type EntityCatalog struct {
	index map[EntityKey]ApiEntity
}

// NewEntityCatalog indexes the given entities. Names are normalized; when
// two entities of the same kind normalize to the same name the first one
// wins, so an accidental duplicate cannot silently remap a key.
func NewEntityCatalog(entities []ApiEntity) *EntityCatalog {
	index := make(map[EntityKey]ApiEntity, len(entities))
	for _, e := range entities {
		key := EntityKey{Kind: e.Kind, Name: NormalizeName(e.Name)}
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = e
	}
	return &EntityCatalog{index: index}
}

// Len returns the number of indexed entities.
func (c *EntityCatalog) Len() int { return len(c.index) }

// Lookup resolves a local key to its Maestro entity. The key's name is
// normalized before lookup.
func (c *EntityCatalog) Lookup(key EntityKey) (ApiEntity, bool) {
	e, ok := c.index[EntityKey{Kind: key.Kind, Name: NormalizeName(key.Name)}]
	return e, ok
}

type monthlyReturnKey struct {
	apiID int64
	month date.Month
}

type annualReturnKey struct {
	apiID int64
	year  int
}

// OfficialReturnCatalog holds the official monthly and annual return values
// fetched from Maestro, as a point-in-time snapshot for one run.
type OfficialReturnCatalog struct {
	monthly map[monthlyReturnKey]Percent
	annual  map[annualReturnKey]Percent
}

// NewOfficialReturnCatalog indexes official returns. Entries with a month
// are indexed as monthly values, entries without one as annual values.
func NewOfficialReturnCatalog(returns []OfficialReturn) *OfficialReturnCatalog {
	c := &OfficialReturnCatalog{
		monthly: make(map[monthlyReturnKey]Percent),
		annual:  make(map[annualReturnKey]Percent),
	}
	for _, r := range returns {
		if r.Month == time.Month(0) {
			c.annual[annualReturnKey{apiID: r.APIID, year: r.Year}] = r.Value
			continue
		}
		c.monthly[monthlyReturnKey{apiID: r.APIID, month: date.NewMonth(r.Year, r.Month)}] = r.Value
	}
	return c
}

// Monthly returns the official monthly value for (apiID, month).
func (c *OfficialReturnCatalog) Monthly(apiID int64, month date.Month) (Percent, bool) {
	v, ok := c.monthly[monthlyReturnKey{apiID: apiID, month: month}]
	return v, ok
}

// Annual returns the official annual value for (apiID, year).
func (c *OfficialReturnCatalog) Annual(apiID int64, year int) (Percent, bool) {
	v, ok := c.annual[annualReturnKey{apiID: apiID, year: year}]
	return v, ok
}

// Len returns the number of indexed official values.
func (c *OfficialReturnCatalog) Len() int { return len(c.monthly) + len(c.annual) }
