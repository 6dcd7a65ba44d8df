package rentab

import "fmt"

// Percent is a fractional return: 0.0302 means 3.02%. The Maestro API
// exchanges values in percent points; the maestro package converts at that
// boundary so that the whole core works on fractions.
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p)*100)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p)*100)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Equal compares two percents at the precision relevant for disclosure.
func (p Percent) Equal(q Percent) bool {
	const precision = 1e-9
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) < precision
}
