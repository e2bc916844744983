package handler

import (
	"encoding/json"
	"net/http"

	"grafoml-pc5/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminGraphHandler expone el mantenimiento del grafo (rebuild y stats),
// solo para admins.
type AdminGraphHandler struct {
	svc *service.GraphService
}

func NewAdminGraphHandler(s *service.GraphService) *AdminGraphHandler {
	return &AdminGraphHandler{svc: s}
}

// MountAdminGraphRoutes cuelga las rutas de mantenimiento bajo /admin/graph.
func MountAdminGraphRoutes(r chi.Router, h *AdminGraphHandler) {
	r.Route("/admin/graph", func(r chi.Router) {
		r.Post("/rebuild", h.Rebuild)
		r.Get("/stats", h.Stats)
	})
}

// @Summary Reconstruir el grafo desde los datos actuales
// @Description Arma un bundle nuevo (grafo+mappings+caches) y lo swapea atómicamente
// @Tags admin
// @Produce json
// @Success 200 {object} service.GraphStats
// @Router /admin/graph/rebuild [post]
func (h *AdminGraphHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := h.svc.Rebuild(r.Context()); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	stats, err := h.svc.Stats()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(stats)
}

// @Summary Stats del grafo activo
// @Tags admin
// @Produce json
// @Success 200 {object} service.GraphStats
// @Router /admin/graph/stats [get]
func (h *AdminGraphHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := h.svc.Stats()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(stats)
}
