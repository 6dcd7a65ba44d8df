package rentab

import (
	"encoding/csv"
	"io"
	"strconv"
)

// this file encodes the three run outputs as row-oriented CSV tables with
// the column vocabulary of the original disclosure files. The columns are
// the contract; the persistence format belongs to the export side.

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EncodeAggregated writes the aggregated returns table.
//
// Columns: TIPO, NOME, DT, ANO, MES, RENTAB_MES, RENTAB_ANO. RENTAB_ANO is
// empty when the year-to-date value is undefined for that month.
func EncodeAggregated(w io.Writer, rows []AggregatedReturn) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"TIPO", "NOME", "DT", "ANO", "MES", "RENTAB_MES", "RENTAB_ANO"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(aggregatedFields(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func aggregatedFields(r AggregatedReturn) []string {
	ytd := ""
	if r.HasYTD {
		ytd = formatFloat(float64(r.YTD))
	}
	return []string{
		string(r.Kind),
		r.Label,
		r.Month.String(),
		strconv.Itoa(r.Month.Year()),
		strconv.Itoa(int(r.Month.Month())),
		formatFloat(float64(r.Monthly)),
		ytd,
	}
}

// EncodeReconciled writes the entity-resolved table, unresolved rows
// included so the audit trail shows what could not be matched.
//
// Columns: the aggregated set plus api_id (empty when unresolved) and status.
func EncodeReconciled(w io.Writer, rows []ReconciledEntity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"TIPO", "NOME", "DT", "ANO", "MES", "RENTAB_MES", "RENTAB_ANO", "api_id", "status"}); err != nil {
		return err
	}
	for _, r := range rows {
		fields := aggregatedFields(r.AggregatedReturn)
		apiID := ""
		if r.Status == Resolved {
			apiID = strconv.FormatInt(r.APIID, 10)
		}
		fields = append(fields, apiID, string(r.Status))
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeDiscrepancies writes the discrepancy table.
//
// Columns: TIPO, NOME, DT, INDICADOR, api_id, LOCAL, OFICIAL, DELTA,
// DELTA_REL, STATUS. The official-side columns are empty on
// NO_OFFICIAL_DATA rows, and DELTA_REL is empty when the official value is
// zero and the relative delta is undefined.
func EncodeDiscrepancies(w io.Writer, rows []DiscrepancyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"TIPO", "NOME", "DT", "INDICADOR", "api_id", "LOCAL", "OFICIAL", "DELTA", "DELTA_REL", "STATUS"}); err != nil {
		return err
	}
	for _, r := range rows {
		apiID, official, delta, rel := "", "", "", ""
		if r.APIID != 0 {
			apiID = strconv.FormatInt(r.APIID, 10)
		}
		if r.Status != NoOfficialData {
			official = formatFloat(float64(r.Official))
			delta = formatFloat(r.Delta)
			if r.HasRelative {
				rel = formatFloat(r.RelativeDelta)
			}
		}
		err := cw.Write([]string{
			string(r.Kind),
			r.Label,
			r.Month.String(),
			string(r.Indicator),
			apiID,
			formatFloat(float64(r.Local)),
			official,
			delta,
			rel,
			string(r.Status),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
