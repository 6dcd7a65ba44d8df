package date

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "2025-01", want: NewMonth(2025, time.January)},
		{in: "2025-7", want: NewMonth(2025, time.July)},
		{in: "2025-01-31", wantErr: true},
		{in: "jan/2025", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMonth(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMonth(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	if got := MonthOf(New(2025, time.April, 30)); got != NewMonth(2025, time.April) {
		t.Errorf("MonthOf() = %v, want 2025-04", got)
	}
}

func TestMonth_Next(t *testing.T) {
	tests := []struct {
		in   Month
		want Month
	}{
		{NewMonth(2025, time.January), NewMonth(2025, time.February)},
		{NewMonth(2025, time.December), NewMonth(2026, time.January)},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%v.Next() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMonth_Compare(t *testing.T) {
	jan := NewMonth(2025, time.January)
	feb := NewMonth(2025, time.February)
	if jan.Compare(feb) != -1 || feb.Compare(jan) != 1 || jan.Compare(jan) != 0 {
		t.Errorf("Compare() inconsistent for %v and %v", jan, feb)
	}
	if !jan.Before(feb) || feb.Before(jan) {
		t.Errorf("Before() inconsistent for %v and %v", jan, feb)
	}
}

func TestMonth_JSONRoundTrip(t *testing.T) {
	m := NewMonth(2024, time.November)
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	var back Month
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON(%s) error = %v", data, err)
	}
	if back != m {
		t.Errorf("round trip = %v, want %v", back, m)
	}
}
