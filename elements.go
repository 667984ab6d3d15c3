package xrfthick

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TableVersion identifies the revision of the embedded element table.
// Fits are only comparable when produced with the same table version.
const TableVersion = "edge-powerlaw/2"

// Validity range of the embedded cross-section model (keV).
const (
	MinEnergy = 1.0
	MaxEnergy = 100.0
)

// photoSlope is the exponent of the photoelectric power law between edges.
const photoSlope = 2.75

// ElementData is one row of the physics table.
type ElementData struct {
	Z            int
	Symbol       string
	AtomicWeight float64 // g/mol
	Density      float64 // g/cm³
	EdgeK        float64 // K absorption edge (keV)
	EdgeL1       float64 // L1 absorption edge (keV); 0 when folded into JumpL3
	EdgeL2       float64 // L2 absorption edge (keV); 0 when folded into JumpL3
	EdgeL3       float64 // L3 absorption edge (keV)
	EdgeM1       float64 // highest M edge (keV); the row is undefined below it
	PhotoK       float64 // photoelectric cross-section just above the K edge (cm²/g)
	JumpK        float64 // K edge jump ratio
	JumpL1       float64
	JumpL2       float64
	JumpL3       float64 // L3 jump, or the combined L jump without EdgeL1/EdgeL2
	YieldK       float64 // K fluorescence yield
	YieldL3      float64 // L3 fluorescence yield
	RateKL2      float64 // radiative rates within the K shell
	RateKL3      float64
	RateKM3      float64
	LineKL2      float64 // line energies (keV)
	LineKL3      float64
	LineKM3      float64
}

// elementTable covers Na..Mo with the L edges combined at L3, followed by the
// common heavy coating metals with separate L1, L2 and L3 edges. Rows are
// ordered by Z within each block; the first block is indexed by Z-11.
var elementTable = []ElementData{
	{Z: 11, Symbol: "Na", AtomicWeight: 22.990, Density: 0.971, EdgeK: 1.0721, EdgeL3: 0.031, PhotoK: 6500, JumpK: 13.0, JumpL3: 4.0, YieldK: 0.0192, YieldL3: 0.0024, RateKL2: 0.3300, RateKL3: 0.6600, RateKM3: 0.0060, LineKL2: 1.041, LineKL3: 1.041, LineKM3: 1.071},
	{Z: 12, Symbol: "Mg", AtomicWeight: 24.305, Density: 1.738, EdgeK: 1.3050, EdgeL3: 0.050, PhotoK: 5000, JumpK: 12.4, JumpL3: 4.02, YieldK: 0.0265, YieldL3: 0.0026, RateKL2: 0.3267, RateKL3: 0.6533, RateKM3: 0.0120, LineKL2: 1.254, LineKL3: 1.254, LineKM3: 1.302},
	{Z: 13, Symbol: "Al", AtomicWeight: 26.982, Density: 2.699, EdgeK: 1.5596, EdgeL3: 0.073, PhotoK: 4000, JumpK: 11.1, JumpL3: 4.04, YieldK: 0.0357, YieldL3: 0.0028, RateKL2: 0.3233, RateKL3: 0.6467, RateKM3: 0.0180, LineKL2: 1.486, LineKL3: 1.487, LineKM3: 1.557},
	{Z: 14, Symbol: "Si", AtomicWeight: 28.086, Density: 2.330, EdgeK: 1.8389, EdgeL3: 0.099, PhotoK: 3200, JumpK: 10.4, JumpL3: 4.06, YieldK: 0.0469, YieldL3: 0.0031, RateKL2: 0.3200, RateKL3: 0.6400, RateKM3: 0.0240, LineKL2: 1.739, LineKL3: 1.740, LineKM3: 1.836},
	{Z: 15, Symbol: "P", AtomicWeight: 30.974, Density: 1.820, EdgeK: 2.1455, EdgeL3: 0.136, PhotoK: 2600, JumpK: 10.0, JumpL3: 4.08, YieldK: 0.0603, YieldL3: 0.0034, RateKL2: 0.3167, RateKL3: 0.6333, RateKM3: 0.0300, LineKL2: 2.013, LineKL3: 2.014, LineKM3: 2.139},
	{Z: 16, Symbol: "S", AtomicWeight: 32.065, Density: 2.070, EdgeK: 2.4720, EdgeL3: 0.163, PhotoK: 2200, JumpK: 9.7, JumpL3: 4.1, YieldK: 0.0760, YieldL3: 0.0037, RateKL2: 0.3133, RateKL3: 0.6267, RateKM3: 0.0360, LineKL2: 2.307, LineKL3: 2.308, LineKM3: 2.464},
	{Z: 17, Symbol: "Cl", AtomicWeight: 35.453, Density: 0.0032, EdgeK: 2.8224, EdgeL3: 0.200, PhotoK: 1750, JumpK: 9.4, JumpL3: 4.12, YieldK: 0.0941, YieldL3: 0.0041, RateKL2: 0.3100, RateKL3: 0.6200, RateKM3: 0.0420, LineKL2: 2.621, LineKL3: 2.622, LineKM3: 2.816},
	{Z: 18, Symbol: "Ar", AtomicWeight: 39.948, Density: 0.00166, EdgeK: 3.2029, EdgeL3: 0.248, PhotoK: 1450, JumpK: 9.2, JumpL3: 4.14, YieldK: 0.1146, YieldL3: 0.0045, RateKL2: 0.3067, RateKL3: 0.6133, RateKM3: 0.0480, LineKL2: 2.956, LineKL3: 2.958, LineKM3: 3.190},
	{Z: 19, Symbol: "K", AtomicWeight: 39.098, Density: 0.862, EdgeK: 3.6074, EdgeL3: 0.294, PhotoK: 1300, JumpK: 9.0, JumpL3: 4.16, YieldK: 0.1375, YieldL3: 0.0049, RateKL2: 0.3033, RateKL3: 0.6067, RateKM3: 0.0540, LineKL2: 3.311, LineKL3: 3.314, LineKM3: 3.590},
	{Z: 20, Symbol: "Ca", AtomicWeight: 40.078, Density: 1.550, EdgeK: 4.0381, EdgeL3: 0.346, PhotoK: 1100, JumpK: 8.8, JumpL3: 4.18, YieldK: 0.1627, YieldL3: 0.0054, RateKL2: 0.2983, RateKL3: 0.5967, RateKM3: 0.0630, LineKL2: 3.688, LineKL3: 3.692, LineKM3: 4.013},
	{Z: 21, Symbol: "Sc", AtomicWeight: 44.956, Density: 2.989, EdgeK: 4.4928, EdgeL3: 0.399, PhotoK: 870, JumpK: 8.6, JumpL3: 4.2, YieldK: 0.1899, YieldL3: 0.0059, RateKL2: 0.2967, RateKL3: 0.5933, RateKM3: 0.0660, LineKL2: 4.086, LineKL3: 4.091, LineKM3: 4.461},
	{Z: 22, Symbol: "Ti", AtomicWeight: 47.867, Density: 4.540, EdgeK: 4.9664, EdgeL3: 0.454, PhotoK: 685, JumpK: 8.4, JumpL3: 4.22, YieldK: 0.2189, YieldL3: 0.0064, RateKL2: 0.2950, RateKL3: 0.5900, RateKM3: 0.0690, LineKL2: 4.505, LineKL3: 4.511, LineKM3: 4.932},
	{Z: 23, Symbol: "V", AtomicWeight: 50.942, Density: 6.110, EdgeK: 5.4651, EdgeL3: 0.512, PhotoK: 600, JumpK: 8.3, JumpL3: 4.24, YieldK: 0.2495, YieldL3: 0.0071, RateKL2: 0.2940, RateKL3: 0.5880, RateKM3: 0.0708, LineKL2: 4.944, LineKL3: 4.952, LineKM3: 5.427},
	{Z: 24, Symbol: "Cr", AtomicWeight: 51.996, Density: 7.190, EdgeK: 5.9892, EdgeL3: 0.574, PhotoK: 540, JumpK: 8.2, JumpL3: 4.26, YieldK: 0.2813, YieldL3: 0.0077, RateKL2: 0.2933, RateKL3: 0.5867, RateKM3: 0.0720, LineKL2: 5.405, LineKL3: 5.415, LineKM3: 5.947},
	{Z: 25, Symbol: "Mn", AtomicWeight: 54.938, Density: 7.330, EdgeK: 6.5390, EdgeL3: 0.639, PhotoK: 470, JumpK: 8.1, JumpL3: 4.28, YieldK: 0.3140, YieldL3: 0.0085, RateKL2: 0.2933, RateKL3: 0.5867, RateKM3: 0.0720, LineKL2: 5.888, LineKL3: 5.899, LineKM3: 6.490},
	{Z: 26, Symbol: "Fe", AtomicWeight: 55.845, Density: 7.874, EdgeK: 7.1120, EdgeL3: 0.707, PhotoK: 410, JumpK: 8.0, JumpL3: 4.3, YieldK: 0.3472, YieldL3: 0.0093, RateKL2: 0.2933, RateKL3: 0.5867, RateKM3: 0.0720, LineKL2: 6.391, LineKL3: 6.404, LineKM3: 7.058},
	{Z: 27, Symbol: "Co", AtomicWeight: 58.933, Density: 8.900, EdgeK: 7.7089, EdgeL3: 0.778, PhotoK: 360, JumpK: 7.9, JumpL3: 4.32, YieldK: 0.3805, YieldL3: 0.0101, RateKL2: 0.2930, RateKL3: 0.5860, RateKM3: 0.0726, LineKL2: 6.915, LineKL3: 6.930, LineKM3: 7.649},
	{Z: 28, Symbol: "Ni", AtomicWeight: 58.693, Density: 8.902, EdgeK: 8.3328, EdgeL3: 0.853, PhotoK: 330, JumpK: 7.8, JumpL3: 4.34, YieldK: 0.4137, YieldL3: 0.0111, RateKL2: 0.2927, RateKL3: 0.5853, RateKM3: 0.0732, LineKL2: 7.461, LineKL3: 7.478, LineKM3: 8.265},
	{Z: 29, Symbol: "Cu", AtomicWeight: 63.546, Density: 8.960, EdgeK: 8.9789, EdgeL3: 0.933, PhotoK: 280, JumpK: 7.7, JumpL3: 4.36, YieldK: 0.4465, YieldL3: 0.0121, RateKL2: 0.2923, RateKL3: 0.5847, RateKM3: 0.0738, LineKL2: 8.028, LineKL3: 8.048, LineKM3: 8.905},
	{Z: 30, Symbol: "Zn", AtomicWeight: 65.380, Density: 7.133, EdgeK: 9.6586, EdgeL3: 1.022, PhotoK: 250, JumpK: 7.6, JumpL3: 4.38, YieldK: 0.4785, YieldL3: 0.0132, RateKL2: 0.2913, RateKL3: 0.5827, RateKM3: 0.0756, LineKL2: 8.616, LineKL3: 8.639, LineKM3: 9.572},
	{Z: 31, Symbol: "Ga", AtomicWeight: 69.723, Density: 5.904, EdgeK: 10.3671, EdgeL3: 1.117, PhotoK: 215, JumpK: 7.5, JumpL3: 4.4, YieldK: 0.5096, YieldL3: 0.0145, RateKL2: 0.2900, RateKL3: 0.5800, RateKM3: 0.0780, LineKL2: 9.225, LineKL3: 9.252, LineKM3: 10.264},
	{Z: 32, Symbol: "Ge", AtomicWeight: 72.630, Density: 5.323, EdgeK: 11.1031, EdgeL3: 1.217, PhotoK: 195, JumpK: 7.4, JumpL3: 4.42, YieldK: 0.5395, YieldL3: 0.0158, RateKL2: 0.2883, RateKL3: 0.5767, RateKM3: 0.0810, LineKL2: 9.855, LineKL3: 9.886, LineKM3: 10.982},
	{Z: 33, Symbol: "As", AtomicWeight: 74.922, Density: 5.730, EdgeK: 11.8667, EdgeL3: 1.324, PhotoK: 175, JumpK: 7.3, JumpL3: 4.44, YieldK: 0.5683, YieldL3: 0.0172, RateKL2: 0.2867, RateKL3: 0.5733, RateKM3: 0.0840, LineKL2: 10.508, LineKL3: 10.544, LineKM3: 11.726},
	{Z: 34, Symbol: "Se", AtomicWeight: 78.971, Density: 4.500, EdgeK: 12.6578, EdgeL3: 1.434, PhotoK: 155, JumpK: 7.2, JumpL3: 4.46, YieldK: 0.5956, YieldL3: 0.0188, RateKL2: 0.2850, RateKL3: 0.5700, RateKM3: 0.0870, LineKL2: 11.182, LineKL3: 11.222, LineKM3: 12.496},
	{Z: 35, Symbol: "Br", AtomicWeight: 79.904, Density: 3.120, EdgeK: 13.4737, EdgeL3: 1.550, PhotoK: 140, JumpK: 7.1, JumpL3: 4.48, YieldK: 0.6216, YieldL3: 0.0204, RateKL2: 0.2833, RateKL3: 0.5667, RateKM3: 0.0900, LineKL2: 11.878, LineKL3: 11.924, LineKM3: 13.291},
	{Z: 36, Symbol: "Kr", AtomicWeight: 83.798, Density: 0.00375, EdgeK: 14.3256, EdgeL3: 1.675, PhotoK: 125, JumpK: 7.0, JumpL3: 4.5, YieldK: 0.6461, YieldL3: 0.0222, RateKL2: 0.2817, RateKL3: 0.5633, RateKM3: 0.0930, LineKL2: 12.598, LineKL3: 12.649, LineKM3: 14.112},
	{Z: 37, Symbol: "Rb", AtomicWeight: 85.468, Density: 1.532, EdgeK: 15.1997, EdgeL3: 1.804, PhotoK: 115, JumpK: 6.9, JumpL3: 4.52, YieldK: 0.6691, YieldL3: 0.0242, RateKL2: 0.2807, RateKL3: 0.5613, RateKM3: 0.0948, LineKL2: 13.336, LineKL3: 13.395, LineKM3: 14.961},
	{Z: 38, Symbol: "Sr", AtomicWeight: 87.620, Density: 2.540, EdgeK: 16.1046, EdgeL3: 1.940, PhotoK: 105, JumpK: 6.8, JumpL3: 4.54, YieldK: 0.6907, YieldL3: 0.0263, RateKL2: 0.2797, RateKL3: 0.5593, RateKM3: 0.0966, LineKL2: 14.098, LineKL3: 14.165, LineKM3: 15.836},
	{Z: 39, Symbol: "Y", AtomicWeight: 88.906, Density: 4.469, EdgeK: 17.0384, EdgeL3: 2.080, PhotoK: 100, JumpK: 6.7, JumpL3: 4.56, YieldK: 0.7110, YieldL3: 0.0285, RateKL2: 0.2787, RateKL3: 0.5573, RateKM3: 0.0984, LineKL2: 14.883, LineKL3: 14.958, LineKM3: 16.738},
	{Z: 40, Symbol: "Zr", AtomicWeight: 91.224, Density: 6.506, EdgeK: 17.9976, EdgeL3: 2.222, PhotoK: 93, JumpK: 6.6, JumpL3: 4.58, YieldK: 0.7298, YieldL3: 0.0309, RateKL2: 0.2777, RateKL3: 0.5553, RateKM3: 0.1002, LineKL2: 15.691, LineKL3: 15.775, LineKM3: 17.668},
	{Z: 41, Symbol: "Nb", AtomicWeight: 92.906, Density: 8.570, EdgeK: 18.9856, EdgeL3: 2.371, PhotoK: 88, JumpK: 6.5, JumpL3: 4.6, YieldK: 0.7474, YieldL3: 0.0335, RateKL2: 0.2767, RateKL3: 0.5533, RateKM3: 0.1020, LineKL2: 16.521, LineKL3: 16.615, LineKM3: 18.623},
	{Z: 42, Symbol: "Mo", AtomicWeight: 95.950, Density: 10.220, EdgeK: 19.9995, EdgeL3: 2.520, PhotoK: 80, JumpK: 6.4, JumpL3: 4.62, YieldK: 0.7638, YieldL3: 0.0363, RateKL2: 0.2760, RateKL3: 0.5520, RateKM3: 0.1032, LineKL2: 17.374, LineKL3: 17.479, LineKM3: 19.608},

	{Z: 46, Symbol: "Pd", AtomicWeight: 106.420, Density: 12.020, EdgeK: 24.350, EdgeL1: 3.604, EdgeL2: 3.330, EdgeL3: 3.173, PhotoK: 59.7, JumpK: 6.22, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.85, YieldK: 0.8200, YieldL3: 0.0490, RateKL2: 0.2745, RateKL3: 0.5490, RateKM3: 0.1045, LineKL2: 21.020, LineKL3: 21.177, LineKM3: 23.819},
	{Z: 47, Symbol: "Ag", AtomicWeight: 107.868, Density: 10.490, EdgeK: 25.514, EdgeL1: 3.806, EdgeL2: 3.524, EdgeL3: 3.351, PhotoK: 54.4, JumpK: 6.16, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.87, YieldK: 0.8310, YieldL3: 0.0520, RateKL2: 0.2740, RateKL3: 0.5480, RateKM3: 0.1050, LineKL2: 21.990, LineKL3: 22.163, LineKM3: 24.942},
	{Z: 48, Symbol: "Cd", AtomicWeight: 112.414, Density: 8.650, EdgeK: 26.711, EdgeL1: 4.018, EdgeL2: 3.727, EdgeL3: 3.538, PhotoK: 50.0, JumpK: 6.10, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.87, YieldK: 0.8430, YieldL3: 0.0560, RateKL2: 0.2735, RateKL3: 0.5470, RateKM3: 0.1055, LineKL2: 22.984, LineKL3: 23.174, LineKM3: 26.095},
	{Z: 49, Symbol: "In", AtomicWeight: 114.818, Density: 7.310, EdgeK: 27.940, EdgeL1: 4.238, EdgeL2: 3.938, EdgeL3: 3.730, PhotoK: 46.6, JumpK: 6.05, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.87, YieldK: 0.8530, YieldL3: 0.0610, RateKL2: 0.2730, RateKL3: 0.5460, RateKM3: 0.1060, LineKL2: 24.002, LineKL3: 24.210, LineKM3: 27.276},
	{Z: 50, Symbol: "Sn", AtomicWeight: 118.710, Density: 7.287, EdgeK: 29.200, EdgeL1: 4.465, EdgeL2: 4.156, EdgeL3: 3.929, PhotoK: 43.1, JumpK: 6.00, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.87, YieldK: 0.8620, YieldL3: 0.0650, RateKL2: 0.2725, RateKL3: 0.5450, RateKM3: 0.1065, LineKL2: 25.044, LineKL3: 25.271, LineKM3: 28.486},
	{Z: 73, Symbol: "Ta", AtomicWeight: 180.948, Density: 16.690, EdgeK: 67.417, EdgeL1: 11.682, EdgeL2: 11.136, EdgeL3: 9.881, EdgeM1: 2.708, PhotoK: 11.46, JumpK: 5.21, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.85, YieldK: 0.9550, YieldL3: 0.2430, RateKL2: 0.2760, RateKL3: 0.4800, RateKM3: 0.1100, LineKL2: 56.277, LineKL3: 57.532, LineKM3: 65.223},
	{Z: 74, Symbol: "W", AtomicWeight: 183.840, Density: 19.250, EdgeK: 69.525, EdgeL1: 12.100, EdgeL2: 11.544, EdgeL3: 10.207, EdgeM1: 2.820, PhotoK: 11.08, JumpK: 5.19, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.84, YieldK: 0.9580, YieldL3: 0.2550, RateKL2: 0.2765, RateKL3: 0.4780, RateKM3: 0.1105, LineKL2: 57.981, LineKL3: 59.318, LineKM3: 67.244},
	{Z: 78, Symbol: "Pt", AtomicWeight: 195.084, Density: 21.450, EdgeK: 78.395, EdgeL1: 13.880, EdgeL2: 13.273, EdgeL3: 11.564, EdgeM1: 3.296, PhotoK: 8.85, JumpK: 5.10, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.73, YieldK: 0.9620, YieldL3: 0.3060, RateKL2: 0.2780, RateKL3: 0.4700, RateKM3: 0.1115, LineKL2: 65.112, LineKL3: 66.832, LineKM3: 75.748},
	{Z: 79, Symbol: "Au", AtomicWeight: 196.967, Density: 19.300, EdgeK: 80.725, EdgeL1: 14.353, EdgeL2: 13.734, EdgeL3: 11.919, EdgeM1: 3.425, PhotoK: 8.53, JumpK: 5.08, JumpL1: 1.16, JumpL2: 1.41, JumpL3: 2.70, YieldK: 0.9640, YieldL3: 0.3200, RateKL2: 0.2785, RateKL3: 0.4680, RateKM3: 0.1120, LineKL2: 66.990, LineKL3: 68.804, LineKM3: 77.984},
}

// Table is the default Constants implementation backed by ElementData rows.
// It is immutable after construction.
type Table struct {
	byZ      map[int]ElementData
	bySymbol map[string]int
}

var defaultTable = mustTable(elementTable)

// DefaultTable returns the embedded element table.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable builds a table from rows, rejecting duplicates and non-physical values.
func NewTable(rows []ElementData) (*Table, error) {
	t := &Table{
		byZ:      make(map[int]ElementData, len(rows)),
		bySymbol: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		if _, dup := t.byZ[row.Z]; dup {
			return nil, fmt.Errorf("duplicate row for Z=%d", row.Z)
		}
		if row.AtomicWeight <= 0 || row.Density <= 0 || row.PhotoK <= 0 {
			return nil, fmt.Errorf("Z=%d: weight, density and cross-section must be positive", row.Z)
		}
		if row.EdgeL3 >= row.EdgeK {
			return nil, fmt.Errorf("Z=%d: L3 edge %.4g keV must lie below K edge %.4g keV", row.Z, row.EdgeL3, row.EdgeK)
		}
		if row.JumpK <= 1 || row.JumpL3 <= 1 {
			return nil, fmt.Errorf("Z=%d: jump ratios must exceed 1", row.Z)
		}
		if row.EdgeL1 != 0 || row.EdgeL2 != 0 {
			if !(row.EdgeL3 < row.EdgeL2 && row.EdgeL2 < row.EdgeL1 && row.EdgeL1 < row.EdgeK) {
				return nil, fmt.Errorf("Z=%d: L edges %.4g/%.4g/%.4g keV out of order", row.Z, row.EdgeL3, row.EdgeL2, row.EdgeL1)
			}
			if row.JumpL1 <= 1 || row.JumpL2 <= 1 {
				return nil, fmt.Errorf("Z=%d: L1 and L2 jump ratios must exceed 1", row.Z)
			}
		}
		if row.EdgeM1 < 0 || row.EdgeM1 >= row.EdgeL3 {
			return nil, fmt.Errorf("Z=%d: M1 edge %.4g keV must lie below L3 edge %.4g keV", row.Z, row.EdgeM1, row.EdgeL3)
		}
		t.byZ[row.Z] = row
		t.bySymbol[strings.ToLower(row.Symbol)] = row.Z
	}
	return t, nil
}

func mustTable(rows []ElementData) *Table {
	t, err := NewTable(rows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) row(z int) (ElementData, error) {
	row, ok := t.byZ[z]
	if !ok {
		return ElementData{}, fmt.Errorf("Z=%d: %w", z, ErrUnsupportedElement)
	}
	return row, nil
}

// Elements returns the supported atomic numbers in ascending order.
func (t *Table) Elements() []int {
	zs := make([]int, 0, len(t.byZ))
	for z := range t.byZ {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	return zs
}

// AtomicNumber resolves a chemical symbol (case-insensitive).
func (t *Table) AtomicNumber(symbol string) (int, error) {
	z, ok := t.bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return 0, fmt.Errorf("symbol %q: %w", symbol, ErrUnsupportedElement)
	}
	return z, nil
}

// Symbol returns the chemical symbol of z.
func (t *Table) Symbol(z int) (string, error) {
	row, err := t.row(z)
	if err != nil {
		return "", err
	}
	return row.Symbol, nil
}

// CrossSection evaluates the photoelectric power law, stepping down by the
// jump ratio at each edge crossed below the K edge.
func (t *Table) CrossSection(z int, energy float64) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	lo := math.Max(MinEnergy, row.EdgeM1)
	if math.IsNaN(energy) || energy < lo || energy > MaxEnergy {
		return 0, fmt.Errorf("%.4g keV outside [%g, %g] for Z=%d: %w", energy, lo, MaxEnergy, z, ErrEnergyOutOfRange)
	}

	tau := row.PhotoK * math.Pow(row.EdgeK/energy, photoSlope)
	if energy < row.EdgeK {
		tau /= row.JumpK
	}
	if energy < row.EdgeL1 {
		tau /= row.JumpL1
	}
	if energy < row.EdgeL2 {
		tau /= row.JumpL2
	}
	if energy < row.EdgeL3 {
		tau /= row.JumpL3
	}
	return tau, nil
}

func (t *Table) AtomicWeight(z int) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	return row.AtomicWeight, nil
}

func (t *Table) ElementDensity(z int) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	return row.Density, nil
}

func (t *Table) FluorescenceYield(z int, shell Shell) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	switch shell {
	case ShellK:
		return row.YieldK, nil
	case ShellL3:
		return row.YieldL3, nil
	}
	return 0, fmt.Errorf("shell %q: %w", shell, ErrUnsupportedTransition)
}

func (t *Table) RadiativeRate(z int, line Line) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	switch line {
	case LineKL2:
		return row.RateKL2, nil
	case LineKL3:
		return row.RateKL3, nil
	case LineKM3:
		return row.RateKM3, nil
	}
	return 0, fmt.Errorf("line %q: %w", line, ErrUnsupportedTransition)
}

func (t *Table) JumpFactor(z int, shell Shell) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	switch shell {
	case ShellK:
		return 1 - 1/row.JumpK, nil
	case ShellL3:
		return 1 - 1/row.JumpL3, nil
	}
	return 0, fmt.Errorf("shell %q: %w", shell, ErrUnsupportedTransition)
}

func (t *Table) LineEnergy(z int, line Line) (float64, error) {
	row, err := t.row(z)
	if err != nil {
		return 0, err
	}
	switch line {
	case LineKL2:
		return row.LineKL2, nil
	case LineKL3:
		return row.LineKL3, nil
	case LineKM3:
		return row.LineKM3, nil
	}
	return 0, fmt.Errorf("line %q: %w", line, ErrUnsupportedTransition)
}
