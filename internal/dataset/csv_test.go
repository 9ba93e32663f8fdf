package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `ano_base,uf,ocupacao_principal,qtde_contribuintes,rend_total,rend_isentos_e_nao_tributaveis,imposto_pago,imposto_devido_total,rend_total_por_contrib,pct_isento,aliq_efetiva_paga
2020,São Paulo,Médico,100,1000000,200000,100000,120000,10000,0.2,0.1
2021,São Paulo,Médico,110,1210000,242000,121000,145200,11000,0.2,0.1
2022,São Paulo,Médico,0,0,0,0,0,NaN,,
2021,Ceará,Membro do Poder Judiciário e de Tribunal de Contas,10,500000,100000,75000,80000,50000,0.2,0.15
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	src := &CSVSource{Path: writeSample(t), MinBaseYear: 2021}

	table, err := src.Load(context.Background())
	require.NoError(t, err)

	// The 2020 row falls below the year floor.
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []int{2021, 2022}, table.Years())
	assert.Equal(t, []string{"Ceará", "São Paulo"}, table.Regions())

	rows := table.Rows()
	var zeroYear, judiciary bool
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.BaseYear, 2021)
		switch {
		case r.BaseYear == 2022 && r.Occupation == "Médico":
			zeroYear = true
			// NaN and empty cells become undefined values.
			assert.False(t, r.IncomePerContributor.IsDefined())
			assert.False(t, r.ExemptShare.IsDefined())
			assert.False(t, r.EffectivePaidRate.IsDefined())
		case r.Region == "Ceará":
			judiciary = true
			f, ok := r.IncomePerContributor.Float64()
			assert.True(t, ok)
			assert.InDelta(t, 50_000.0, f, 1e-9)
		}
	}
	assert.True(t, zeroYear, "zero-contributor row should survive the load")
	assert.True(t, judiciary)
}

func TestCSVSourceLoadMissingFile(t *testing.T) {
	src := &CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv"), MinBaseYear: 2021}
	_, err := src.Load(context.Background())
	assert.Error(t, err)
}

func TestCSVSourceLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("ano_base,uf\nnot-a-year,SP\n"), 0644))

	src := &CSVSource{Path: path, MinBaseYear: 2021}
	_, err := src.Load(context.Background())
	assert.Error(t, err)
}
