package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"productosml/internal/cache"
	"productosml/internal/service"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	svc *service.RecommendService
}

func NewAdminHandler(s *service.RecommendService) *AdminHandler {
	return &AdminHandler{svc: s}
}

// MountAdminRoutes cuelga las rutas de mantenimiento bajo /admin.
func MountAdminRoutes(r chi.Router, h *AdminHandler) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/users/{userId}/recommendations/history", h.GetHistory)
		r.Post("/cache/flush", h.FlushCache)
	})
}

// @Summary Historial de recomendaciones servidas a un usuario
// @Tags admin
// @Produce json
// @Param userId path string true "id del usuario"
// @Param limit query int false "máximo de entradas (default 20)"
// @Security BearerAuth
// @Router /admin/users/{userId}/recommendations/history [get]
func (h *AdminHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := chi.URLParam(r, "userId")
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit <= 0 {
		limit = 20
	}

	hist, err := h.svc.History(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(hist)
}

// @Summary Borra el cache de recomendaciones en Redis
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Router /admin/cache/flush [post]
func (h *AdminHandler) FlushCache(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	deleted, err := cache.DeleteByPrefix(r.Context(), "rec:")
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"deleted": deleted})
}
