package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the format used to represent months as strings.
const MonthFormat = "2006-01"

const readMonthFormat = "2006-1" // permissive read format

// Month represents a calendar month, the granularity at which returns are
// aggregated and disclosed.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// MonthOf returns the Month containing d.
func MonthOf(d Date) Month { return NewMonth(d.Year(), d.Month()) }

// Year returns the calendar year.
func (m Month) Year() int { return m.y }

// Month returns the month within the year.
func (m Month) Month() time.Month { return m.m }

// Next returns the following calendar month.
func (m Month) Next() Month { return NewMonth(m.y, m.m+1) }

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool { return m == Month{} }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool {
	return m.y < x.y || (m.y == x.y && m.m < x.m)
}

// Compare returns -1, 0 or +1 ordering m against x chronologically.
func (m Month) Compare(x Month) int {
	switch {
	case m.Before(x):
		return -1
	case x.Before(m):
		return 1
	default:
		return 0
	}
}

// String formats the month in its standard format.
func (m Month) String() string {
	return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// ParseMonth parses a Month from a string. It is lenient and accepts "2025-7".
func ParseMonth(str string) (Month, error) {
	t, err := time.Parse(readMonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, readMonthFormat, err)
	}
	return NewMonth(t.Year(), t.Month()), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
