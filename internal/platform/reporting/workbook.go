// Package reporting renders sales series to XLSX workbooks.
package reporting

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	salesSheet      = "Sales"
	comparisonSheet = "Year over year"
	defaultSheet    = "Sheet1"
)

// MonthRow is one month of a revenue series.
type MonthRow struct {
	YearMonth  string
	Outpatient decimal.Decimal
	Inpatient  decimal.Decimal
	Total      decimal.Decimal
}

// Series is a named monthly revenue series, e.g. one doctor or one department.
type Series struct {
	Name string
	Rows []MonthRow
}

// ComparisonRow pairs a month with the same month one year earlier.
type ComparisonRow struct {
	YearMonth      string
	PriorYearMonth string
	Current        decimal.Decimal
	Prior          decimal.Decimal
}

// Change is Current - Prior.
func (r ComparisonRow) Change() decimal.Decimal { return r.Current.Sub(r.Prior) }

// ChangeRatio is Change / Prior, or false when the prior month had no revenue.
func (r ComparisonRow) ChangeRatio() (decimal.Decimal, bool) {
	if r.Prior.IsZero() {
		return decimal.Zero, false
	}
	return r.Change().Div(r.Prior), true
}

var (
	SalesHeader      = []string{"Series", "Month", "Outpatient", "Inpatient", "Total"}
	ComparisonHeader = []string{"Month", "Prior month", "Current", "Prior", "Change", "Change %"}
)

type sheetWriter struct {
	f      *excelize.File
	sheet  string
	header int
	money  int
	pct    int
}

func newSheet(name string, header []string, widths []float64) (*sheetWriter, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet(defaultSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	w := &sheetWriter{f: f, sheet: name}
	if w.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	// Built-in formats: 4 is "#,##0.00", 10 is "0.00%".
	if w.money, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		f.Close()
		return nil, fmt.Errorf("create money style: %w", err)
	}
	if w.pct, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		f.Close()
		return nil, fmt.Errorf("create percent style: %w", err)
	}

	if err := w.row(1, toCells(header)...); err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(name, "A1", last, w.header); err != nil {
		f.Close()
		return nil, fmt.Errorf("set header style: %w", err)
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	return w, nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func (w *sheetWriter) row(n int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}

// style applies style to columns [from, to] of row n.
func (w *sheetWriter) style(n, from, to, style int) error {
	start, _ := excelize.CoordinatesToCellName(from, n)
	end, _ := excelize.CoordinatesToCellName(to, n)
	return w.f.SetCellStyle(w.sheet, start, end, style)
}

func (w *sheetWriter) writeTo(out io.Writer) error {
	defer w.f.Close()
	if _, err := w.f.WriteTo(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func money(d decimal.Decimal) float64 { return d.InexactFloat64() }

// WriteSalesWorkbook renders series to a single-sheet workbook, one row per
// series-month, in the order given.
func WriteSalesWorkbook(out io.Writer, series []Series) error {
	w, err := newSheet(salesSheet, SalesHeader, []float64{24, 10, 16, 16, 16})
	if err != nil {
		return err
	}

	n := 2
	for _, s := range series {
		for _, r := range s.Rows {
			if err := w.row(n, s.Name, r.YearMonth, money(r.Outpatient), money(r.Inpatient), money(r.Total)); err != nil {
				w.f.Close()
				return err
			}
			if err := w.style(n, 3, 5, w.money); err != nil {
				w.f.Close()
				return err
			}
			n++
		}
	}
	return w.writeTo(out)
}

// WriteComparisonWorkbook renders a year-over-year comparison. Change % is
// left blank for months without prior-year revenue.
func WriteComparisonWorkbook(out io.Writer, rows []ComparisonRow) error {
	w, err := newSheet(comparisonSheet, ComparisonHeader, []float64{10, 12, 16, 16, 16, 10})
	if err != nil {
		return err
	}

	for i, r := range rows {
		n := i + 2
		values := []interface{}{r.YearMonth, r.PriorYearMonth, money(r.Current), money(r.Prior), money(r.Change())}
		if ratio, ok := r.ChangeRatio(); ok {
			values = append(values, ratio.InexactFloat64())
		}
		if err := w.row(n, values...); err != nil {
			w.f.Close()
			return err
		}
		if err := w.style(n, 3, 5, w.money); err != nil {
			w.f.Close()
			return err
		}
		if err := w.style(n, 6, 6, w.pct); err != nil {
			w.f.Close()
			return err
		}
	}
	return w.writeTo(out)
}
