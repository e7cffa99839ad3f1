package recommender

// Tamaño fijo del vecindario: acota la señal de comportamiento a un
// grupo chico y barato en vez de recorrer toda la base de usuarios.
const topSimilarUsers = 5

// CollaborativeFilter recomienda productos comprados por usuarios con
// comportamiento de compra parecido (similitud coseno entre filas de la
// matriz de interacciones).
type CollaborativeFilter struct {
	matrix Matrix
	sim    [][]float64
}

func NewCollaborativeFilter() *CollaborativeFilter {
	return &CollaborativeFilter{}
}

// Train reemplaza por completo la matriz anterior y recalcula la
// similitud usuario×usuario.
func (f *CollaborativeFilter) Train(m Matrix) {
	f.matrix = m
	f.sim = CosineMatrix(m)
}

// Recommend devuelve hasta n variantes de producto para el usuario.
// Usuario sin fila en la matriz = arranque en frío, lista vacía.
func (f *CollaborativeFilter) Recommend(userID string, n int) []string {
	userIdx := f.matrix.RowIndex(userID)
	if userIdx < 0 {
		return []string{}
	}

	// top 5 por similitud (el propio usuario aparece y se salta abajo)
	order := argsortAsc(f.sim[userIdx])
	if len(order) > topSimilarUsers {
		order = order[len(order)-topSimilarUsers:]
	}

	purchased := make(map[int]bool)
	for c, q := range f.matrix.Data[userIdx] {
		if q > 0 {
			purchased[c] = true
		}
	}

	recs := []string{}
	// del más parecido al menos parecido
	for i := len(order) - 1; i >= 0; i-- {
		neighbor := order[i]
		if neighbor == userIdx {
			continue
		}
		for c, q := range f.matrix.Data[neighbor] {
			if q <= 0 || purchased[c] {
				continue
			}
			recs = append(recs, f.matrix.Columns[c])
			if len(recs) >= n {
				return recs
			}
		}
	}
	return recs
}
