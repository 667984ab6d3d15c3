package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexshd/xrfthick"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Column names every table must carry. Extra columns are ignored.
const (
	ColSample      = "sample"
	ColComposition = "composition"
	ColAngle       = "angle"
	ColIntensity   = "intensity"
)

// ErrFormat reports a table that cannot be turned into samples.
var ErrFormat = errors.New("malformed dataset")

var columnTypes = map[string]series.Type{
	ColSample:      series.String,
	ColComposition: series.String,
	ColAngle:       series.Float,
	ColIntensity:   series.Float,
}

// Load reads samples from a .csv or .xlsx file.
func Load(path string, table *xrfthick.Table) ([]xrfthick.Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f, table)
	case ".xlsx":
		return ReadXLSX(path, table)
	}
	return nil, fmt.Errorf("%s: unsupported extension: %w", path, ErrFormat)
}

// ReadCSV reads one row per measurement with a header naming the sample,
// composition, angle and intensity columns. Compositions use spaces between
// pairs ("Zr:20 Ti:35 V:45") so they need no quoting.
func ReadCSV(r io.Reader, table *xrfthick.Table) ([]xrfthick.Sample, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	return fromFrame(df, table)
}

// ReadXLSX reads the first sheet of a workbook laid out like the CSV format.
func ReadXLSX(path string, table *xrfthick.Table) ([]xrfthick.Sample, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWorkbook(f, table)
}

// ReadXLSXFrom is ReadXLSX on an open stream.
func ReadXLSXFrom(r io.Reader, table *xrfthick.Table) ([]xrfthick.Sample, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWorkbook(f, table)
}

func readWorkbook(f *excelize.File, table *xrfthick.Table) ([]xrfthick.Sample, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows: %w", sheet, ErrFormat)
	}

	// GetRows drops trailing empty cells; pad to the header width.
	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row[:width]
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	return fromFrame(df, table)
}

// fromFrame groups rows into samples in first-seen order. Every row of a
// sample must repeat the same composition.
func fromFrame(df dataframe.DataFrame, table *xrfthick.Table) ([]xrfthick.Sample, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("%v: %w", df.Err, ErrFormat)
	}

	have := make(map[string]bool)
	for _, n := range df.Names() {
		have[n] = true
	}
	for _, n := range []string{ColSample, ColComposition, ColAngle, ColIntensity} {
		if !have[n] {
			return nil, fmt.Errorf("missing column %q: %w", n, ErrFormat)
		}
	}

	names := df.Col(ColSample).Records()
	comps := df.Col(ColComposition).Records()
	angles := df.Col(ColAngle).Float()
	intensities := df.Col(ColIntensity).Float()

	index := make(map[string]int)
	var samples []xrfthick.Sample
	var raw []string
	for i := 0; i < df.Nrow(); i++ {
		name := strings.TrimSpace(names[i])
		if name == "" {
			return nil, fmt.Errorf("row %d: empty sample name: %w", i+2, ErrFormat)
		}
		if math.IsNaN(angles[i]) || math.IsNaN(intensities[i]) {
			return nil, fmt.Errorf("row %d: angle and intensity must be numbers: %w", i+2, ErrFormat)
		}

		comp := strings.TrimSpace(comps[i])
		k, seen := index[name]
		if !seen {
			c, err := xrfthick.ParseComposition(table, comp)
			if err != nil {
				return nil, fmt.Errorf("row %d: sample %s: %w", i+2, name, err)
			}
			k = len(samples)
			index[name] = k
			samples = append(samples, xrfthick.Sample{Name: name, Coating: c})
			raw = append(raw, comp)
		} else if comp != raw[k] {
			return nil, fmt.Errorf("row %d: sample %s composition %q differs from %q: %w",
				i+2, name, comp, raw[k], ErrFormat)
		}

		samples[k].Measurements = append(samples[k].Measurements,
			xrfthick.Point{Angle: angles[i], Intensity: intensities[i]})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrFormat)
	}
	return samples, nil
}
