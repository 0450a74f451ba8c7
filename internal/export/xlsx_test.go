package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/comps-engine/internal/model"
)

func readBack(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	sheet, ok := f.Sheet[SheetName]
	require.True(t, ok, "sheet %q missing", SheetName)

	// Trailing empty cells may not survive the round trip; pad to the header width.
	var width int
	if len(sheet.Rows) > 0 {
		width = len(sheet.Rows[0].Cells)
	}
	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, max(width, len(row.Cells)))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows
}

func TestWriteXLSX(t *testing.T) {
	a := model.Company{ID: "a", Name: "Alpha", Sector: "Software"}
	a.OperatingMetrics.RuleOf40 = 40
	a.ValuationMetrics.PriceToEarnings = model.Float(20)
	b := model.Company{ID: "b", Name: "Beta", Sector: "Fintech"}
	b.OperatingMetrics.RuleOf40 = 60

	agg := model.AggregateResult{
		Count:  2,
		Mean:   map[string]*float64{"ruleOf40": model.Float(50), "priceToEarnings": model.Float(20)},
		Median: map[string]*float64{"ruleOf40": model.Float(60), "priceToEarnings": nil},
	}

	var buf bytes.Buffer
	err := WriteXLSX(&buf, []model.Company{a, b}, agg, []string{"name", "sector", "ruleOf40", "priceToEarnings"})
	require.NoError(t, err)

	rows := readBack(t, buf.Bytes())
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Company", "Sector", "Rule of 40", "Price / Earnings"}, rows[0])
	assert.Equal(t, []string{"Alpha", "Software", "40", "20"}, rows[1])
	assert.Equal(t, []string{"Beta", "Fintech", "60", ""}, rows[2])
	assert.Equal(t, []string{"Mean", "", "50", "20"}, rows[3])
	assert.Equal(t, []string{"Median", "", "60", ""}, rows[4])
}

func TestWriteXLSX_NumericFirstColumnKeepsAggregate(t *testing.T) {
	a := model.Company{ID: "a", Name: "Alpha"}
	a.OperatingMetrics.RuleOf40 = 40
	b := model.Company{ID: "b", Name: "Beta"}
	b.OperatingMetrics.RuleOf40 = 60

	agg := model.AggregateResult{
		Count:  2,
		Mean:   map[string]*float64{"ruleOf40": model.Float(50)},
		Median: map[string]*float64{"ruleOf40": model.Float(60)},
	}

	var buf bytes.Buffer
	err := WriteXLSX(&buf, []model.Company{a, b}, agg, []string{"ruleOf40", "name"})
	require.NoError(t, err)

	rows := readBack(t, buf.Bytes())
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"", "Rule of 40", "Company"}, rows[0])
	assert.Equal(t, []string{"", "40", "Alpha"}, rows[1])
	assert.Equal(t, []string{"Mean", "50", ""}, rows[3])
	assert.Equal(t, []string{"Median", "60", ""}, rows[4])
}

func TestWriteXLSX_NoCompanies(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, nil, model.AggregateResult{}, []string{"name", "marketCap"})
	require.NoError(t, err)

	rows := readBack(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, "Market Cap", rows[0][1])
	assert.Equal(t, "Mean", rows[1][0])
	assert.Equal(t, "Median", rows[2][0])
}

func TestWriteXLSX_BadColumns(t *testing.T) {
	var buf bytes.Buffer

	err := WriteXLSX(&buf, nil, model.AggregateResult{}, nil)
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))

	err = WriteXLSX(&buf, nil, model.AggregateResult{}, []string{"name", "bogus"})
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "bogus")
	assert.Zero(t, buf.Len())
}
