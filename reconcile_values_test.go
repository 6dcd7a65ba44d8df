package rentab

import (
	"math"
	"testing"
	"time"

	"github.com/AndreFelix74/divulga-rentab/date"
)

func resolvedRow(apiID int64, month date.Month, monthly, ytd Percent) ReconciledEntity {
	return ReconciledEntity{
		AggregatedReturn: AggregatedReturn{
			Kind: KindPlan, Label: "PLANO CD UM", Month: month,
			Monthly: monthly, YTD: ytd, HasYTD: true,
		},
		APIID:  apiID,
		Status: Resolved,
	}
}

func TestCompare_Classification(t *testing.T) {
	jan := date.NewMonth(2025, time.January)

	tests := []struct {
		name       string
		local      Percent
		official   Percent
		tolerance  float64
		wantStatus DiscrepancyStatus
	}{
		{name: "exact match", local: 0.03, official: 0.03, tolerance: 0, wantStatus: Match},
		{name: "within tolerance", local: 0.0305, official: 0.03, tolerance: 0.02, wantStatus: WithinTolerance},
		{name: "mismatch", local: 0.04, official: 0.03, tolerance: 0.02, wantStatus: Mismatch},
		{name: "official zero within absolute tolerance", local: 0.005, official: 0, tolerance: 0.01, wantStatus: WithinTolerance},
		{name: "official zero mismatch", local: 0.05, official: 0, tolerance: 0.01, wantStatus: Mismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			official := NewOfficialReturnCatalog([]OfficialReturn{
				{APIID: 1, Year: 2025, Month: time.January, Value: tt.official},
			})
			rows := Compare([]ReconciledEntity{resolvedRow(1, jan, tt.local, tt.local)}, official, tt.tolerance)
			if len(rows) == 0 {
				t.Fatal("Compare() returned no rows")
			}
			monthly := rows[0]
			if monthly.Indicator != Monthly {
				t.Fatalf("first row indicator = %s, want %s", monthly.Indicator, Monthly)
			}
			if monthly.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s (delta=%v rel=%v)", monthly.Status, tt.wantStatus, monthly.Delta, monthly.RelativeDelta)
			}
		})
	}
}

func TestCompare_RelativeDelta(t *testing.T) {
	jan := date.NewMonth(2025, time.January)
	official := NewOfficialReturnCatalog([]OfficialReturn{
		{APIID: 1, Year: 2025, Month: time.January, Value: 0.03},
	})
	rows := Compare([]ReconciledEntity{resolvedRow(1, jan, 0.0305, 0.0305)}, official, 0.02)
	monthly := rows[0]
	if !monthly.HasRelative {
		t.Fatal("relative delta undefined for a nonzero official value")
	}
	if got := monthly.RelativeDelta; math.Abs(got-0.05/3) > 1e-9 {
		t.Errorf("relative delta = %v, want ~0.0167", got)
	}
}

func TestCompare_SymmetricDetection(t *testing.T) {
	// Swapping which value is called local vs official changes the sign of
	// delta but not the classification.
	jan := date.NewMonth(2025, time.January)
	const tolerance = 0.01
	a, b := Percent(0.04), Percent(0.03)

	forward := Compare([]ReconciledEntity{resolvedRow(1, jan, a, a)},
		NewOfficialReturnCatalog([]OfficialReturn{{APIID: 1, Year: 2025, Month: time.January, Value: b}}), tolerance)
	backward := Compare([]ReconciledEntity{resolvedRow(1, jan, b, b)},
		NewOfficialReturnCatalog([]OfficialReturn{{APIID: 1, Year: 2025, Month: time.January, Value: a}}), tolerance)

	if forward[0].Status != backward[0].Status {
		t.Errorf("classification not symmetric: %s vs %s", forward[0].Status, backward[0].Status)
	}
	if forward[0].Delta != -backward[0].Delta {
		t.Errorf("delta signs = %v and %v, want opposites", forward[0].Delta, backward[0].Delta)
	}
}

func TestCompare_AnnualAgainstYTD(t *testing.T) {
	feb := date.NewMonth(2025, time.February)
	official := NewOfficialReturnCatalog([]OfficialReturn{
		{APIID: 1, Year: 2025, Month: time.February, Value: 0.02},
		{APIID: 1, Year: 2025, Value: 0.0302},
	})
	rows := Compare([]ReconciledEntity{resolvedRow(1, feb, 0.02, 0.0302)}, official, 0)
	if len(rows) != 2 {
		t.Fatalf("Compare() rows = %d, want monthly + annual", len(rows))
	}
	if rows[0].Indicator != Monthly || rows[1].Indicator != Annual {
		t.Fatalf("indicators = %s, %s, want MENSAL then ANUAL", rows[0].Indicator, rows[1].Indicator)
	}
	if rows[1].Status != Match {
		t.Errorf("annual status = %s, want MATCH", rows[1].Status)
	}
}

func TestCompare_MissingYTDSkipsAnnual(t *testing.T) {
	mar := date.NewMonth(2025, time.March)
	row := resolvedRow(1, mar, 0.02, 0)
	row.HasYTD = false
	rows := Compare([]ReconciledEntity{row}, NewOfficialReturnCatalog(nil), 0)
	if len(rows) != 1 {
		t.Fatalf("Compare() rows = %d, want 1 (no annual row without a YTD)", len(rows))
	}
}

func TestCompare_NoOfficialData(t *testing.T) {
	jan := date.NewMonth(2025, time.January)
	rows := Compare([]ReconciledEntity{resolvedRow(1, jan, 0.01, 0.01)}, NewOfficialReturnCatalog(nil), 0)
	for _, r := range rows {
		if r.Status != NoOfficialData {
			t.Errorf("%s status = %s, want NO_OFFICIAL_DATA", r.Indicator, r.Status)
		}
	}
}

func TestCompare_UnresolvedReportedNotCompared(t *testing.T) {
	jan := date.NewMonth(2025, time.January)
	unresolved := ReconciledEntity{
		AggregatedReturn: AggregatedReturn{Kind: KindGroup, Label: "GROUP Z", Month: jan, Monthly: 0.01},
		Status:           Unresolved,
	}
	// Even with an official value that would match by id 0, unresolved rows
	// must not be compared.
	official := NewOfficialReturnCatalog([]OfficialReturn{
		{APIID: 0, Year: 2025, Month: time.January, Value: 0.01},
	})
	rows := Compare([]ReconciledEntity{unresolved}, official, 0)
	if len(rows) != 1 {
		t.Fatalf("Compare() rows = %d, want 1", len(rows))
	}
	if rows[0].Status != NoOfficialData || rows[0].APIID != 0 {
		t.Errorf("unresolved row = %s id %d, want NO_OFFICIAL_DATA id 0", rows[0].Status, rows[0].APIID)
	}
}
