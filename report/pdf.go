package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexshd/xrfthick"
	"github.com/phpdave11/gofpdf"
)

// PDFTitle heads every summary.
const PDFTitle = "XRF Coating Thickness"

// WritePDF writes a summary of the setup and one row per sample. The plot at
// PlotPaths(dir, results, "png") next to path is embedded after the table
// when present.
func WritePDF(results []xrfthick.SampleResult, setup xrfthick.Setup, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(PDFTitle, true)
	pdf.SetCreator("xrfthick", true)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, PDFTitle)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")),
		fmt.Sprintf("Excitation: %.3g keV, fluorescence: %.4g keV", setup.IncidentEnergy, setup.FluorescenceEnergy),
		fmt.Sprintf("Beam flux: %.3g /s, detector efficiency: %.3g", setup.BeamFlux, setup.DetectorEfficiency),
		fmt.Sprintf("Setup constant: %.4g (acceptance %.4g, excitation %.4g)",
			setup.Constant, setup.DetectorAcceptance, setup.ExcitationFactor),
	} {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{35, 30, 30, 25, 20, 50}
	header := []string{"Sample", "Thickness (µm)", "Std. err. (µm)", "R²", "Iter.", "Status"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range results {
		cells := []string{r.Name, "", "", "", "", ""}
		if r.OK() {
			um, errUm := r.Fit.Micrometres()
			cells[1] = fmt.Sprintf("%.4f", um)
			cells[2] = fmt.Sprintf("%.4f", errUm)
			cells[3] = fmt.Sprintf("%.4f", r.Fit.RSquared)
			cells[4] = fmt.Sprintf("%d", r.Fit.Iterations)
			cells[5] = r.Fit.Converged
		} else {
			cells[5] = "failed: " + string(xrfthick.Classify(r.Err))
		}
		for i, c := range cells {
			align := "R"
			if i == 0 || i == 5 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	plots := PlotPaths(filepath.Dir(path), results, "png")
	for i, r := range results {
		img := plots[i]
		if _, err := os.Stat(img); err != nil {
			continue
		}
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(Line(r)))
		pdf.Ln(10)
		pdf.Image(img, 15, pdf.GetY(), 180, 0, false, "", 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
