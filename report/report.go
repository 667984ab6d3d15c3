// Package report renders analysis results as plots, workbooks, PDF summaries
// and console lines.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexshd/xrfthick"
)

// unsafeRunes are percent-encoded in file names; '%' is among them so the
// encoding stays reversible.
const unsafeRunes = `/\:*?"<>|% `

// FileName returns dir/fit_<sample>.<ext>. Path separators, characters
// reserved on common filesystems and control characters in the sample name
// are percent-encoded, so distinct names never share a file.
func FileName(dir, sample, ext string) string {
	var b strings.Builder
	for _, r := range sample {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(unsafeRunes, r) {
			fmt.Fprintf(&b, "%%%02X", r)
			continue
		}
		b.WriteRune(r)
	}
	return filepath.Join(dir, "fit_"+b.String()+"."+strings.TrimPrefix(ext, "."))
}

// PlotPaths assigns one FileName per result, in input order. A result whose
// file is already taken, by a repeated sample name or a name differing only
// in case, gets a ~2, ~3, ... suffix.
func PlotPaths(dir string, results []xrfthick.SampleResult, ext string) []string {
	paths := make([]string, len(results))
	taken := make(map[string]bool, len(results))
	for i, r := range results {
		path := FileName(dir, r.Name, ext)
		for n := 2; taken[strings.ToLower(path)]; n++ {
			path = FileName(dir, fmt.Sprintf("%s~%d", r.Name, n), ext)
		}
		taken[strings.ToLower(path)] = true
		paths[i] = path
	}
	return paths
}

// Line is the console summary of one result.
func Line(r xrfthick.SampleResult) string {
	if !r.OK() {
		return fmt.Sprintf("%s: failed (%s): %v", r.Name, xrfthick.Classify(r.Err), r.Err)
	}
	um, errUm := r.Fit.Micrometres()
	return fmt.Sprintf("%s: %.4f µm ± %.4f µm", r.Name, um, errUm)
}
