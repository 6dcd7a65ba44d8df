package rentab

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/AndreFelix74/divulga-rentab/date"
	"golang.org/x/sync/errgroup"
)

// this file decodes the run inputs: the per-plan movement files exported
// from MEC-SAC and the dCadPlanoSAC plan metadata table.

// movementFilePrefix marks the files extracted from MEC-SAC.
const movementFilePrefix = "_mecSAC_"

// header indexes a CSV header row by column name.
type header map[string]int

func readHeader(rec []string) header {
	h := make(header, len(rec))
	for i, name := range rec {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

// get returns the trimmed value of a named column, or "" when absent.
func (h header) get(rec []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (h header) require(names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return fmt.Errorf("missing required column %q", name)
		}
	}
	return nil
}

// DecodeMovements reads movement records from 'r' in the MEC-SAC CSV format.
//
// The required columns are CLCLI_CD (plan SAC code), DT (reference date),
// VL_PATRLIQTOT1 (net asset value, the weight) and RENTAB_MES (period
// return as a fraction). Rows that cannot be parsed are skipped with a
// BAD_ROW warning; only an unreadable stream or a broken header is an error.
func DecodeMovements(r io.Reader) ([]MovementRecord, []Warning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width is validated per column below

	first, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read movement header: %w", err)
	}
	h := readHeader(first)
	if err := h.require("CLCLI_CD", "DT", "VL_PATRLIQTOT1", "RENTAB_MES"); err != nil {
		return nil, nil, fmt.Errorf("invalid movement file: %w", err)
	}

	var records []MovementRecord
	var warnings []Warning
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, Warning{Kind: WarnBadRow, Message: fmt.Sprintf("line %d: %v", line, err)})
			continue
		}
		m, err := decodeMovement(h, rec)
		if err != nil {
			warnings = append(warnings, Warning{Kind: WarnBadRow, PlanID: h.get(rec, "CLCLI_CD"), Message: fmt.Sprintf("line %d: %v", line, err)})
			continue
		}
		records = append(records, m)
	}
	return records, warnings, nil
}

func decodeMovement(h header, rec []string) (MovementRecord, error) {
	id := h.get(rec, "CLCLI_CD")
	if id == "" {
		return MovementRecord{}, fmt.Errorf("empty CLCLI_CD")
	}
	on, err := date.Parse(h.get(rec, "DT"))
	if err != nil {
		return MovementRecord{}, fmt.Errorf("invalid DT: %w", err)
	}
	value, err := ParseMoney(h.get(rec, "VL_PATRLIQTOT1"))
	if err != nil {
		return MovementRecord{}, fmt.Errorf("invalid VL_PATRLIQTOT1: %w", err)
	}
	ret, err := strconv.ParseFloat(h.get(rec, "RENTAB_MES"), 64)
	if err != nil {
		return MovementRecord{}, fmt.Errorf("invalid RENTAB_MES: %w", err)
	}
	return MovementRecord{PlanID: id, Date: on, Value: value, Return: Percent(ret)}, nil
}

// DecodeAuxPlans reads the dCadPlanoSAC plan metadata from 'r', keyed by SAC
// client code. When a row carries CODCLI_SAC_INVEST (the portfolio without
// litigation assets) that code takes precedence over CODCLI_SAC.
func DecodeAuxPlans(r io.Reader) (map[string]AuxPlanInfo, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read dCadPlanoSAC header: %w", err)
	}
	h := readHeader(first)
	if err := h.require("CODCLI_SAC", "NOME_PLANO", "GRUPO", "INDEXADOR", "TIPO_PLANO"); err != nil {
		return nil, fmt.Errorf("invalid dCadPlanoSAC file: %w", err)
	}

	plans := make(map[string]AuxPlanInfo)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read dCadPlanoSAC row: %w", err)
		}
		key := h.get(rec, "CODCLI_SAC_INVEST")
		if key == "" {
			key = h.get(rec, "CODCLI_SAC")
		}
		if key == "" {
			continue
		}
		plans[key] = AuxPlanInfo{
			PlanName: h.get(rec, "NOME_PLANO"),
			Group:    h.get(rec, "GRUPO"),
			Indexer:  h.get(rec, "INDEXADOR"),
			PlanType: h.get(rec, "TIPO_PLANO"),
			CNPB:     h.get(rec, "CNPB"),
			PlanCode: h.get(rec, "COD_PLANO"),
		}
	}
	return plans, nil
}

// FindMovementFiles recursively discovers the MEC-SAC movement files
// (_mecSAC_*.csv) under root, in lexical order.
func FindMovementFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, movementFilePrefix) && strings.HasSuffix(name, ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan %q for movement files: %w", root, err)
	}
	return files, nil
}

// LoadMovements discovers and decodes every movement file under root. Files
// are read in parallel with no shared state; the concatenated result is the
// complete, order-independent set of records, flattened in file order so
// repeated runs see the same input sequence.
func LoadMovements(root string) ([]MovementRecord, []Warning, error) {
	files, err := FindMovementFiles(root)
	if err != nil {
		return nil, nil, err
	}

	perFile := make([][]MovementRecord, len(files))
	perFileWarnings := make([][]Warning, len(files))

	var g errgroup.Group
	g.SetLimit(min(8, runtime.NumCPU()))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("cannot open movement file %q: %w", file, err)
			}
			defer f.Close()
			records, warnings, err := DecodeMovements(f)
			if err != nil {
				return fmt.Errorf("cannot decode movement file %q: %w", file, err)
			}
			perFile[i] = records
			perFileWarnings[i] = warnings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var movements []MovementRecord
	var warnings []Warning
	for i := range files {
		movements = append(movements, perFile[i]...)
		warnings = append(warnings, perFileWarnings[i]...)
	}
	return movements, warnings, nil
}
