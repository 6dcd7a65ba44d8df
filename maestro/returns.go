package maestro

import (
	"fmt"
	"time"

	"github.com/AndreFelix74/divulga-rentab"
)

const (
	monthlyReturnsEndpoint = "/investimentos/Rentabilidades/mensais"
	annualReturnsEndpoint  = "/investimentos/Rentabilidades/anuais"
)

// FetchOfficialReturns retrieves the published monthly and annual return
// series. Maestro exchanges values in percent points, they are converted to
// fractions here so the rest of the program never sees the API scale.
func (c *Client) FetchOfficialReturns() ([]rentab.OfficialReturn, error) {
	monthly, err := c.fetchReturns(monthlyReturnsEndpoint, true)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch monthly returns: %w", err)
	}
	annual, err := c.fetchReturns(annualReturnsEndpoint, false)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch annual returns: %w", err)
	}
	return append(monthly, annual...), nil
}

func (c *Client) fetchReturns(endpoint string, withMonth bool) ([]rentab.OfficialReturn, error) {
	var jobj any
	if err := c.jwget(endpoint, &jobj); err != nil {
		return nil, err
	}
	ids, err := int64sAt(jobj, "$[*].planoId")
	if err != nil {
		return nil, err
	}
	years, err := int64sAt(jobj, "$[*].ano")
	if err != nil {
		return nil, err
	}
	values, err := float64sAt(jobj, "$[*].valor")
	if err != nil {
		return nil, err
	}
	var months []int64
	if withMonth {
		months, err = int64sAt(jobj, "$[*].mes")
		if err != nil {
			return nil, err
		}
	}
	if len(years) != len(ids) || len(values) != len(ids) || (withMonth && len(months) != len(ids)) {
		return nil, fmt.Errorf("incomplete series: %d ids, %d years, %d values", len(ids), len(years), len(values))
	}

	returns := make([]rentab.OfficialReturn, 0, len(ids))
	for i := range ids {
		r := rentab.OfficialReturn{
			APIID: ids[i],
			Year:  int(years[i]),
			Value: rentab.Percent(values[i] / 100),
		}
		if withMonth {
			r.Month = time.Month(months[i])
		}
		returns = append(returns, r)
	}
	return returns, nil
}
