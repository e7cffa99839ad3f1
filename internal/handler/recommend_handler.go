package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"productosml/internal/models"
	"productosml/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

func writeRecommendation(w http.ResponseWriter, status int, resp models.RecommendationResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// statusFor separa las tres salidas visibles: upstream caído, payload
// inválido y falla interna genérica.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUpstream):
		return http.StatusServiceUnavailable, "Error fetching data from API"
	case errors.Is(err, service.ErrInvalidPayload):
		return http.StatusBadRequest, "Invalid data received from API"
	default:
		return http.StatusInternalServerError, "Error generating recommendations"
	}
}

// @Summary Recomendaciones de productos para un usuario
// @Tags recommend
// @Produce json
// @Param userId path string true "id del usuario"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora el cache Redis"
// @Success 200 {object} models.RecommendationResponse
// @Router /api/recommendations/{userId} [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:  userID,
		N:       n,
		Refresh: refresh,
	})
	if err != nil {
		status, msg := statusFor(err)
		writeRecommendation(w, status, models.RecommendationResponse{
			Success:         false,
			Message:         msg,
			Recommendations: []string{},
		})
		return
	}

	writeRecommendation(w, http.StatusOK, models.RecommendationResponse{
		Success:         true,
		Message:         "Recommendations generated successfully",
		Recommendations: items,
	})
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Produce json
// @Param userId path string true "id del usuario"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param refresh query bool false "si true, ignora el cache Redis"
// @Success 200 {object} map[string]interface{}
// @Router /api/ws/recommendations/{userId} [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	userID := chi.URLParam(r, "userId")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	refresh := r.URL.Query().Get("refresh") == "true"

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, iniciando ciclo de reentrenamiento…",
	})

	// cada etapa real del pipeline se reporta por el socket
	items, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:  userID,
		N:       n,
		Refresh: refresh,
		Progress: func(stage string) {
			conn.WriteJSON(map[string]any{
				"type":  "progress",
				"stage": stage,
			})
		},
	})
	if err != nil {
		_, msg := statusFor(err)
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": msg,
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":            "recommendations",
		"userId":          userID,
		"recommendations": items,
		"generatedAt":     time.Now(),
	})
}
