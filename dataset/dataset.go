// Package dataset provides the reference steel measurements and loaders for
// angle-resolved intensity tables.
package dataset

import "github.com/alexshd/xrfthick"

// ReferenceAngles are the incidence angles (degrees) of the steel series.
var ReferenceAngles = []float64{5, 10, 20, 30, 45, 60}

// SteelSubstrate is the stainless steel substrate, Fe:70 Cr:20 Ni:10 (molar).
func SteelSubstrate() xrfthick.Composition {
	return xrfthick.Composition{
		Elements:    []int{26, 24, 28},
		MolarRatios: []float64{70, 20, 10},
	}
}

// reference holds one coated steel specimen: Zr/Ti/V molar ratios and the Fe
// Kα peak areas (counts/1e5) at ReferenceAngles.
type reference struct {
	name  string
	zrTiV [3]float64
	areas [6]float64
}

var references = []reference{
	{"S1_1B", [3]float64{20, 35, 45}, [6]float64{4.17, 4.69, 4.50, 4.05, 3.24, 2.35}},
	{"S1_5B", [3]float64{16, 35, 49}, [6]float64{2.47, 3.38, 3.60, 3.26, 2.60, 1.78}},
	{"S2_3B", [3]float64{18, 35, 47}, [6]float64{4.09, 4.63, 4.47, 4.01, 3.22, 2.32}},
	{"S5_7F", [3]float64{21, 34, 45}, [6]float64{3.52, 4.15, 4.11, 3.73, 2.99, 2.13}},
	{"S7_2B", [3]float64{23, 33, 44}, [6]float64{5.49, 5.56, 5.08, 4.62, 3.64, 2.70}},
	{"S7_5F", [3]float64{21, 38, 41}, [6]float64{6.17, 5.99, 5.36, 4.74, 3.83, 2.90}},
}

// SteelCoatings returns the six Zr/Ti/V coated steel samples. Each call
// returns fresh slices.
func SteelCoatings() []xrfthick.Sample {
	samples := make([]xrfthick.Sample, len(references))
	for i, ref := range references {
		pts := make([]xrfthick.Point, len(ReferenceAngles))
		for j, a := range ReferenceAngles {
			pts[j] = xrfthick.Point{Angle: a, Intensity: ref.areas[j] * 1e5}
		}
		samples[i] = xrfthick.Sample{
			Name: ref.name,
			Coating: xrfthick.Composition{
				Elements:    []int{40, 22, 23},
				MolarRatios: []float64{ref.zrTiV[0], ref.zrTiV[1], ref.zrTiV[2]},
			},
			Measurements: pts,
		}
	}
	return samples
}
