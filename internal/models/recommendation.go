package models

import "time"

// Respuesta que devolvemos por API.
type RecommendationResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations"`
}

// Historial de recomendaciones servidas (colección `recommendations` en Mongo).
// No persiste el modelo entrenado, solo lo que se le respondió al usuario.
type Recommendation struct {
	ID        string    `bson:"_id,omitempty"    json:"id"`
	UserID    string    `bson:"userId"           json:"userId"`
	Algo      string    `bson:"algo"             json:"algo"`
	Params    any       `bson:"params"           json:"params"`
	Items     []string  `bson:"items"            json:"items"`
	CreatedAt time.Time `bson:"createdAt"        json:"createdAt"`
}
