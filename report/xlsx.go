package report

import (
	"fmt"
	"math"

	"github.com/alexshd/xrfthick"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetResults      = "Results"
	SheetMeasurements = "Measurements"
)

var (
	resultsHeader = []interface{}{
		"sample", "composition", "thickness_um", "stderr_um",
		"rss", "r_squared", "iterations", "converged", "error_kind", "error",
	}
	measurementsHeader = []interface{}{
		"sample", "angle", "intensity", "model_intensity", "ln_residual",
	}
)

// cellValue keeps NaN and Inf out of the sheet, which excelize would write as
// unreadable numbers.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}

// WriteWorkbook writes one Results row per sample and one Measurements row
// per data point.
func WriteWorkbook(results []xrfthick.SampleResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetResults); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetMeasurements); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeRow(f, SheetResults, 1, resultsHeader, bold); err != nil {
		return err
	}
	if err := writeRow(f, SheetMeasurements, 1, measurementsHeader, bold); err != nil {
		return err
	}

	mrow := 2
	for i, r := range results {
		composition := ""
		if r.Coating != nil {
			composition = r.Coating.Composition().String()
		}
		row := []interface{}{r.Name, composition}
		if r.OK() {
			um, errUm := r.Fit.Micrometres()
			row = append(row, cellValue(um), cellValue(errUm), cellValue(r.Fit.RSS),
				cellValue(r.Fit.RSquared), r.Fit.Iterations, r.Fit.Converged, "", "")
		} else {
			row = append(row, "", "", "", "", "", "", string(xrfthick.Classify(r.Err)), r.Err.Error())
		}
		if err := writeRow(f, SheetResults, i+2, row, 0); err != nil {
			return err
		}

		for j, p := range r.Measurements {
			row := []interface{}{r.Name, p.Angle, cellValue(p.Intensity), "", ""}
			if r.OK() && j < len(r.Fitted) && p.Intensity > 0 {
				model := r.Fitted[j].Intensity
				row[3], row[4] = cellValue(model), cellValue(math.Log(p.Intensity/model))
			}
			if err := writeRow(f, SheetMeasurements, mrow, row, 0); err != nil {
				return err
			}
			mrow++
		}
	}

	if err := f.SetColWidth(SheetResults, "A", "B", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetResults, "J", "J", 60); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	if style == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, last, style)
}
