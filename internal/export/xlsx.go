// Package export writes the comparison table to spreadsheet formats.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/comps-engine/internal/metric"
	"github.com/sells-group/comps-engine/internal/model"
)

// SheetName is the worksheet the comparison table is written to.
const SheetName = "Comps"

// WriteXLSX writes companies as one row each under a header of column labels,
// followed by Mean and Median rows from aggregates. Numeric cells hold the
// stored value; null values are left empty. Columns must be metric keys.
// When the first column is numeric a leading label column holds the
// Mean and Median labels.
func WriteXLSX(w io.Writer, companies []model.Company, aggregates model.AggregateResult, columns []string) error {
	defs, err := resolve(columns)
	if err != nil {
		return err
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	labelCol := !defs[0].IsText()

	header := sheet.AddRow()
	if labelCol {
		header.AddCell()
	}
	for _, d := range defs {
		header.AddCell().SetString(d.Label)
	}

	for i := range companies {
		row := sheet.AddRow()
		if labelCol {
			row.AddCell()
		}
		for _, d := range defs {
			cell := row.AddCell()
			if d.IsText() {
				cell.SetString(d.Text(&companies[i]))
				continue
			}
			if v, ok := d.Value(&companies[i]); ok {
				cell.SetFloat(v)
			}
		}
	}

	summaryRow(sheet, "Mean", defs, aggregates.Mean, labelCol)
	summaryRow(sheet, "Median", defs, aggregates.Median, labelCol)

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write")
	}
	return nil
}

// summaryRow writes label and the aggregate value under each numeric column.
// The label takes its own leading cell when labelCol is set and replaces the
// first text column otherwise.
func summaryRow(sheet *xlsx.Sheet, label string, defs []metric.Definition, values map[string]*float64, labelCol bool) {
	row := sheet.AddRow()
	if labelCol {
		row.AddCell().SetString(label)
	}
	for i, d := range defs {
		cell := row.AddCell()
		if d.IsText() {
			if i == 0 && !labelCol {
				cell.SetString(label)
			}
			continue
		}
		if v := values[d.Key]; v != nil {
			cell.SetFloat(*v)
		}
	}
}

func resolve(columns []string) ([]metric.Definition, error) {
	if len(columns) == 0 {
		return nil, model.NewValidationError("columns", "at least one column is required")
	}
	defs := make([]metric.Definition, len(columns))
	for i, key := range columns {
		d, ok := metric.Lookup(key)
		if !ok {
			return nil, model.NewValidationError("columns", "unknown column "+key)
		}
		defs[i] = d
	}
	return defs, nil
}
