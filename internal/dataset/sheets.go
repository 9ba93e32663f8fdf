package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"comparador/internal/core"
)

// SheetsSource loads the dataset from a Google Sheet whose first row holds
// the same column names as the published CSV.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
	minBaseYear   int
}

// NewSheetsSource builds the sheets backend. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsSource(ctx context.Context, cfg Config) (*SheetsSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id for sheets backend")
	}
	readRange := cfg.ReadRange
	if readRange == "" {
		readRange = "A:K"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsSource{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     readRange,
		minBaseYear:   cfg.MinBaseYear,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("no Google credentials configured")
	}

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
}

// Load fetches the sheet values and converts them into the typed table.
func (s *SheetsSource) Load(ctx context.Context) (*core.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch sheet values: %w", err)
	}
	if len(resp.Values) < 2 {
		return nil, errors.New("sheet has no data rows")
	}

	col := map[string]int{}
	for i, h := range resp.Values[0] {
		col[strings.TrimSpace(fmt.Sprint(h))] = i
	}
	for _, name := range []string{"ano_base", "uf", "ocupacao_principal", "qtde_contribuintes",
		"rend_total", "rend_isentos_e_nao_tributaveis", "imposto_pago", "imposto_devido_total"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("sheet is missing column %q", name)
		}
	}

	rows := make([]core.Row, 0, len(resp.Values)-1)
	for i, rec := range resp.Values[1:] {
		year, err := cellInt(rec, col["ano_base"])
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", i+2, err)
		}
		if year < s.minBaseYear {
			continue
		}

		row := core.Row{
			BaseYear:             year,
			Region:               cellString(rec, col["uf"]),
			Occupation:           cellString(rec, col["ocupacao_principal"]),
			IncomePerContributor: cellValue(rec, colIdx(col, "rend_total_por_contrib")),
			ExemptShare:          cellValue(rec, colIdx(col, "pct_isento")),
			EffectivePaidRate:    cellValue(rec, colIdx(col, "aliq_efetiva_paga")),
		}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"qtde_contribuintes", &row.Contributors},
			{"rend_total", &row.TotalIncome},
			{"rend_isentos_e_nao_tributaveis", &row.ExemptIncome},
			{"imposto_pago", &row.TaxPaid},
			{"imposto_devido_total", &row.TaxOwed},
		} {
			v, err := cellFloat(rec, col[f.name])
			if err != nil {
				return nil, fmt.Errorf("sheet row %d, column %s: %w", i+2, f.name, err)
			}
			*f.dst = v
		}
		rows = append(rows, row)
	}
	return core.NewTable(rows), nil
}

func colIdx(col map[string]int, name string) int {
	idx, ok := col[name]
	if !ok {
		return -1
	}
	return idx
}

func cellString(rec []interface{}, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(rec[idx]))
}

func cellInt(rec []interface{}, idx int) (int, error) {
	s := cellString(rec, idx)
	if s == "" {
		return 0, errors.New("empty integer cell")
	}
	return strconv.Atoi(s)
}

func cellFloat(rec []interface{}, idx int) (float64, error) {
	if idx < 0 || idx >= len(rec) {
		return 0, errors.New("missing cell")
	}
	switch v := rec[idx].(type) {
	case float64:
		return v, nil
	default:
		s := cellString(rec, idx)
		if s == "" {
			return 0, errors.New("empty numeric cell")
		}
		return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	}
}

func cellValue(rec []interface{}, idx int) core.Value {
	if idx < 0 || idx >= len(rec) {
		return core.Undefined()
	}
	f, err := cellFloat(rec, idx)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return core.Undefined()
	}
	return core.Defined(f)
}
