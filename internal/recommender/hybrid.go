package recommender

import (
	"log"

	"productosml/internal/models"
)

// HybridRecommender entrena ambos filtros desde un mismo snapshot y
// combina sus resultados por prioridad: primero lo colaborativo, después
// lo de contenido, sin mezclar puntajes.
type HybridRecommender struct {
	data    *DataProcessor
	collab  *CollaborativeFilter
	content *ContentFilter
	trained bool
}

func NewHybridRecommender() *HybridRecommender {
	return &HybridRecommender{
		data:    NewDataProcessor(),
		collab:  NewCollaborativeFilter(),
		content: NewContentFilter(),
	}
}

func (h *HybridRecommender) Trained() bool { return h.trained }

// Train procesa el snapshot y entrena ambos filtros. Si el payload está
// malformado el error sube al caller y el recommender queda sin entrenar,
// listo para reintentar: servir desde un estado a medio entrenar sería
// silenciosamente incorrecto.
func (h *HybridRecommender) Train(data *models.SnapshotData) error {
	h.trained = false

	if err := h.data.Process(data); err != nil {
		return err
	}

	// los getters son fail-soft: ante falla loguean y entrenan con la
	// matriz vacía, que degrada a recomendaciones vacías
	upm, err := h.data.UserProductMatrix()
	if err != nil {
		log.Printf("[rec] matriz de interacciones vacía: %v", err)
	}
	h.collab.Train(upm)

	pf, err := h.data.ProductFeatures()
	if err != nil {
		log.Printf("[rec] matriz de features vacía: %v", err)
	}
	h.content.Train(pf)

	h.trained = true
	return nil
}

// Recommend devuelve hasta n variantes de producto para el usuario,
// combinando ambos filtros. Prioridad estricta: los resultados
// colaborativos llenan los cupos primero y los de contenido completan lo
// que quede, deduplicando y filtrando lo ya comprado.
func (h *HybridRecommender) Recommend(userID string, n int) []string {
	if !h.trained {
		log.Printf("[rec] recommender sin entrenar, devolviendo vacío")
		return []string{}
	}
	if n <= 0 {
		return []string{}
	}

	userFeatures := h.data.UserFeatures(userID)
	purchased := h.data.PurchasedVariants(userID)

	collabRecs := h.collab.Recommend(userID, n)
	contentRecs := h.content.Recommend(userFeatures, purchased, n)

	purchasedSet := make(map[string]bool, len(purchased))
	for _, id := range purchased {
		purchasedSet[id] = true
	}

	combined := []string{}
	inCombined := make(map[string]bool)
	for _, recs := range [][]string{collabRecs, contentRecs} {
		for _, rec := range recs {
			if purchasedSet[rec] || inCombined[rec] {
				continue
			}
			combined = append(combined, rec)
			inCombined[rec] = true
			if len(combined) >= n {
				return combined
			}
		}
	}
	return combined
}
