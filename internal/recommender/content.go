package recommender

// ContentFilter recomienda productos parecidos a los que el usuario ya
// compró, por similitud coseno entre filas de la matriz de features.
type ContentFilter struct {
	features Matrix
	sim      [][]float64
}

func NewContentFilter() *ContentFilter {
	return &ContentFilter{}
}

// Train reemplaza por completo la matriz anterior y recalcula la
// similitud producto×producto.
func (f *ContentFilter) Train(m Matrix) {
	f.features = m
	f.sim = CosineMatrix(m)
}

// Recommend promedia las filas de similitud de los productos comprados
// que existan en el índice entrenado y rankea el resto de mayor a menor.
// El vector de features del usuario se recibe pero todavía no participa
// del ranking: solo las compras deciden qué filas se promedian.
func (f *ContentFilter) Recommend(userFeatures []float64, purchased []string, n int) []string {
	_ = userFeatures

	if f.features.Empty() {
		return []string{}
	}

	purchasedSet := make(map[string]bool, len(purchased))
	for _, id := range purchased {
		purchasedSet[id] = true
	}

	var rows []int
	for _, id := range purchased {
		if idx := f.features.RowIndex(id); idx >= 0 {
			rows = append(rows, idx)
		}
	}
	if len(rows) == 0 {
		// nada de lo comprado está en el índice: sin señal de contenido
		return []string{}
	}

	avg := make([]float64, len(f.features.Index))
	for _, r := range rows {
		for j, v := range f.sim[r] {
			avg[j] += v
		}
	}
	for j := range avg {
		avg[j] /= float64(len(rows))
	}

	recs := []string{}
	for _, idx := range argsortDesc(avg) {
		id := f.features.Index[idx]
		if purchasedSet[id] {
			continue
		}
		recs = append(recs, id)
		if len(recs) >= n {
			break
		}
	}
	return recs
}
