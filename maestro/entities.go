package maestro

import (
	"fmt"

	"github.com/AndreFelix74/divulga-rentab"
)

// entityEndpoints lists the catalog endpoints, one per grouping kind that
// Maestro keys by an identifier. Consolidated figures have no identifier of
// their own.
var entityEndpoints = []struct {
	kind     rentab.GroupingKind
	endpoint string
}{
	{rentab.KindGroup, "/investimentos/Grupos"},
	{rentab.KindIndexer, "/investimentos/Indexadores"},
	{rentab.KindPlan, "/investimentos/Planos"},
	{rentab.KindPlanType, "/investimentos/TiposPlanos"},
}

// FetchEntities retrieves all registered entities from Maestro. Any endpoint
// failure is an error, a partial catalog would silently leave entities
// unresolved downstream.
func (c *Client) FetchEntities() ([]rentab.ApiEntity, error) {
	var entities []rentab.ApiEntity
	for _, e := range entityEndpoints {
		var jobj any
		if err := c.jwget(e.endpoint, &jobj); err != nil {
			return nil, fmt.Errorf("cannot fetch %s entities: %w", e.kind, err)
		}
		names, err := stringsAt(jobj, "$[*].nome")
		if err != nil {
			return nil, fmt.Errorf("cannot read %s entities: %w", e.kind, err)
		}
		ids, err := int64sAt(jobj, "$[*].id")
		if err != nil {
			return nil, fmt.Errorf("cannot read %s entities: %w", e.kind, err)
		}
		if len(names) != len(ids) {
			return nil, fmt.Errorf("incomplete %s catalog: %d names for %d ids", e.kind, len(names), len(ids))
		}
		for i := range names {
			entities = append(entities, rentab.ApiEntity{Kind: e.kind, Name: names[i], ID: ids[i]})
		}
	}
	return entities, nil
}
