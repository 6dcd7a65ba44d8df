package rentab

import (
	"strings"
	"testing"
	"time"

	"github.com/AndreFelix74/divulga-rentab/date"
)

func TestEncodeAggregated(t *testing.T) {
	jan := date.NewMonth(2025, time.January)
	feb := date.NewMonth(2025, time.February)
	rows := []AggregatedReturn{
		{Kind: KindGroup, Label: "GRUPO A", Month: jan, Monthly: 0.01, YTD: 0.01, HasYTD: true},
		{Kind: KindGroup, Label: "GRUPO A", Month: feb, Monthly: 0.02}, // YTD missing
	}
	var b strings.Builder
	if err := EncodeAggregated(&b, rows); err != nil {
		t.Fatalf("EncodeAggregated() error = %v", err)
	}
	want := "TIPO,NOME,DT,ANO,MES,RENTAB_MES,RENTAB_ANO\n" +
		"GRUPO,GRUPO A,2025-01,2025,1,0.01,0.01\n" +
		"GRUPO,GRUPO A,2025-02,2025,2,0.02,\n"
	if b.String() != want {
		t.Errorf("EncodeAggregated() =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestEncodeReconciled(t *testing.T) {
	jan := date.NewMonth(2025, time.January)
	rows := []ReconciledEntity{
		{
			AggregatedReturn: AggregatedReturn{Kind: KindPlan, Label: "PLANO CD UM", Month: jan, Monthly: 0.01, YTD: 0.01, HasYTD: true},
			APIID:            42, Status: Resolved,
		},
		{
			AggregatedReturn: AggregatedReturn{Kind: KindGroup, Label: "GRUPO Z", Month: jan, Monthly: 0.02, YTD: 0.02, HasYTD: true},
			Status:           Unresolved,
		},
	}
	var b strings.Builder
	if err := EncodeReconciled(&b, rows); err != nil {
		t.Fatalf("EncodeReconciled() error = %v", err)
	}
	want := "TIPO,NOME,DT,ANO,MES,RENTAB_MES,RENTAB_ANO,api_id,status\n" +
		"PLANO,PLANO CD UM,2025-01,2025,1,0.01,0.01,42,RESOLVED\n" +
		"GRUPO,GRUPO Z,2025-01,2025,1,0.02,0.02,,UNRESOLVED\n"
	if b.String() != want {
		t.Errorf("EncodeReconciled() =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestEncodeDiscrepancies(t *testing.T) {
	jan := date.NewMonth(2025, time.January)
	rows := []DiscrepancyRecord{
		{
			Kind: KindPlan, Label: "PLANO CD UM", Month: jan, Indicator: Monthly, APIID: 42,
			Local: 0.0305, Official: 0.03, Delta: 0.0005, RelativeDelta: 0.0167, HasRelative: true,
			Status: WithinTolerance,
		},
		{
			Kind: KindGroup, Label: "GRUPO Z", Month: jan, Indicator: Monthly,
			Local: 0.02, Status: NoOfficialData,
		},
	}
	var b strings.Builder
	if err := EncodeDiscrepancies(&b, rows); err != nil {
		t.Fatalf("EncodeDiscrepancies() error = %v", err)
	}
	want := "TIPO,NOME,DT,INDICADOR,api_id,LOCAL,OFICIAL,DELTA,DELTA_REL,STATUS\n" +
		"PLANO,PLANO CD UM,2025-01,MENSAL,42,0.0305,0.03,0.0005,0.0167,WITHIN_TOLERANCE\n" +
		"GRUPO,GRUPO Z,2025-01,MENSAL,,0.02,,,,NO_OFFICIAL_DATA\n"
	if b.String() != want {
		t.Errorf("EncodeDiscrepancies() =\n%s\nwant\n%s", b.String(), want)
	}
}
