package dataset

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"comparador/internal/core"
)

// csvRow mirrors the published column names of the IRPF dashboard CSV.
type csvRow struct {
	BaseYear             int           `csv:"ano_base"`
	Region               string        `csv:"uf"`
	Occupation           string        `csv:"ocupacao_principal"`
	Contributors         float64       `csv:"qtde_contribuintes"`
	TotalIncome          float64       `csv:"rend_total"`
	ExemptIncome         float64       `csv:"rend_isentos_e_nao_tributaveis"`
	TaxPaid              float64       `csv:"imposto_pago"`
	TaxOwed              float64       `csv:"imposto_devido_total"`
	IncomePerContributor nullableFloat `csv:"rend_total_por_contrib"`
	ExemptShare          nullableFloat `csv:"pct_isento"`
	EffectivePaidRate    nullableFloat `csv:"aliq_efetiva_paga"`
}

// nullableFloat parses a ratio column that may be empty or NaN in the
// source file into the engine's tagged undefined value.
type nullableFloat struct {
	val core.Value
}

// UnmarshalCSV implements the gocsv field unmarshaler.
func (n *nullableFloat) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		n.val = core.Undefined()
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		n.val = core.Undefined()
		return nil
	}
	n.val = core.Defined(f)
	return nil
}

// CSVSource reads the dataset from a local CSV file.
type CSVSource struct {
	Path        string
	MinBaseYear int
}

// Load parses the file and returns the typed table with the year floor
// applied.
func (s *CSVSource) Load(ctx context.Context) (*core.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset csv %s: %w", s.Path, err)
	}
	defer f.Close()

	var records []csvRow
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse dataset csv %s: %w", s.Path, err)
	}

	rows := make([]core.Row, 0, len(records))
	for _, rec := range records {
		if rec.BaseYear < s.MinBaseYear {
			continue
		}
		rows = append(rows, core.Row{
			BaseYear:             rec.BaseYear,
			Region:               rec.Region,
			Occupation:           rec.Occupation,
			Contributors:         rec.Contributors,
			TotalIncome:          rec.TotalIncome,
			ExemptIncome:         rec.ExemptIncome,
			TaxPaid:              rec.TaxPaid,
			TaxOwed:              rec.TaxOwed,
			IncomePerContributor: rec.IncomePerContributor.val,
			ExemptShare:          rec.ExemptShare.val,
			EffectivePaidRate:    rec.EffectivePaidRate.val,
		})
	}
	return core.NewTable(rows), nil
}
