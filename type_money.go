package rentab

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of MEC-SAC net asset values.
const DefaultCurrency = "BRL"

// Money represents a monetary value with exact decimal arithmetic.
type Money struct {
	value decimal.Decimal // in major units
	cur   string
}

// M builds a Money from a decimal amount in the given currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// BRL builds a Money in the default currency.
func BRL(value decimal.Decimal) Money { return M(value, DefaultCurrency) }

// ParseMoney parses a decimal amount in the default currency.
func ParseMoney(s string) (Money, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return BRL(value), nil
}

// currency returns the money's currency, never nil.
func (m Money) currency() *money.Currency {
	return money.New(0, m.cur).Currency()
}

// String formats the value with its currency symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}
