package recommender

import (
	"math"
	"sort"
)

// Matrix es una matriz numérica con etiquetas de fila y columna.
// Los recommenders trabajan por índice y traducen a etiquetas al final.
type Matrix struct {
	Index   []string
	Columns []string
	Data    [][]float64
}

func (m Matrix) Empty() bool {
	return len(m.Data) == 0
}

// RowIndex devuelve la posición de la fila con esa etiqueta, o -1.
func (m Matrix) RowIndex(label string) int {
	for i, l := range m.Index {
		if l == label {
			return i
		}
	}
	return -1
}

// CosineMatrix calcula la matriz de similitud coseno fila-contra-fila.
// Siempre cuadrada y simétrica, de dimensión = cantidad de filas.
// Un vector cero tiene similitud 0 con todo (incluido consigo mismo);
// la diagonal de cualquier vector no-cero es 1.
func CosineMatrix(m Matrix) [][]float64 {
	n := len(m.Data)
	sim := make([][]float64, n)

	norms := make([]float64, n)
	for i, row := range m.Data {
		var s float64
		for _, v := range row {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	for i := 0; i < n; i++ {
		sim[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			var dot float64
			for k := range m.Data[i] {
				dot += m.Data[i][k] * m.Data[j][k]
			}
			v := dot / (norms[i] * norms[j])
			sim[i][j] = v
			sim[j][i] = v
		}
	}
	return sim
}

// argsortAsc devuelve los índices que ordenan `vals` de menor a mayor,
// con orden estable para empates.
func argsortAsc(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })
	return idx
}

// argsortDesc ídem pero de mayor a menor.
func argsortDesc(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return vals[idx[a]] > vals[idx[b]] })
	return idx
}
