package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"grafoml-pc5/internal/scoring"
	"grafoml-pc5/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// traduce los errores del core a status HTTP
func writeRecError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoring.ErrNodeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, scoring.ErrUnknownMethod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// @Summary Recomendaciones para un usuario
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param genre query string false "filtro de género ('All' = sin filtro)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.RecMovie
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	genre := r.URL.Query().Get("genre")
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.RecommendForUser(r.Context(), service.UserRecRequest{
		UserID:  userID,
		TopN:    n,
		Genre:   genre,
		Refresh: refresh,
	})
	if err != nil {
		writeRecError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Mis recomendaciones (userId del token)
// @Tags recommend
// @Produce json
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param genre query string false "filtro de género"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} models.RecMovie
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetMyRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := UserIDFromContext(r.Context())
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	genre := r.URL.Query().Get("genre")
	refresh := r.URL.Query().Get("refresh") == "true"

	items, err := h.svc.RecommendForUser(r.Context(), service.UserRecRequest{
		UserID:  userID,
		TopN:    n,
		Genre:   genre,
		Refresh: refresh,
	})
	if err != nil {
		writeRecError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

type likedRequest struct {
	MovieIDs         []int   `json:"movieIds"`
	TopN             int     `json:"topN"`
	Genre            string  `json:"genre"`
	RatingFloor      float64 `json:"ratingFloor"`
	Algorithm        string  `json:"algorithm"` // jaccard (default) | cn
	PrioritizeRating bool    `json:"prioritizeRating"`
	Refresh          bool    `json:"refresh"`
}

// @Summary Recomendaciones a partir de películas que me gustaron
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body likedRequest true "películas marcadas como me gusta"
// @Success 200 {array} models.RecMovie
// @Router /recommendations/liked [post]
func (h *RecommendHandler) PostLikedRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req likedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.svc.RecommendForLiked(r.Context(), service.LikedRecRequest{
		MovieIDs:         req.MovieIDs,
		TopN:             req.TopN,
		Genre:            req.Genre,
		RatingFloor:      req.RatingFloor,
		Algorithm:        req.Algorithm,
		PrioritizeRating: req.PrioritizeRating,
		Refresh:          req.Refresh,
	})
	if err != nil {
		writeRecError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

type similarUsersRequest struct {
	MovieIDs []int `json:"movieIds"`
	TopN     int   `json:"topN"`
}

// @Summary Usuarios similares a un set de películas "me gusta"
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body similarUsersRequest true "películas"
// @Success 200 {array} models.SimilarUser
// @Router /recommendations/similar-users [post]
func (h *RecommendHandler) PostSimilarUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req similarUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	users, err := h.svc.SimilarUsers(r.Context(), req.MovieIDs, req.TopN)
	if err != nil {
		writeRecError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(users)
}

// @Summary Score crudo usuario→película
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param movie query int true "movieId"
// @Param method query string false "jaccard|cn|rwr (default: jaccard)"
// @Success 200 {object} map[string]any
// @Router /users/{id}/score [get]
func (h *RecommendHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	movieID, _ := strconv.Atoi(r.URL.Query().Get("movie"))
	method := r.URL.Query().Get("method")

	score, err := h.svc.Score(r.Context(), userID, movieID, method)
	if err != nil {
		writeRecError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"userId":  userID,
		"movieId": movieID,
		"method":  method,
		"score":   score,
	})
}

// @Summary Historial de recomendaciones servidas al usuario del token
// @Tags recommend
// @Produce json
// @Param limit query int false "cuántas entradas (default: 20)"
// @Success 200 {array} models.Recommendation
// @Router /me/recommendations/history [get]
func (h *RecommendHandler) GetMyRecommendationHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := UserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	hist, err := h.svc.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(hist)
}

// @Summary Géneros del catálogo activo
// @Tags recommend
// @Produce json
// @Success 200 {array} string
// @Router /genres [get]
func (h *RecommendHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	genres, err := h.svc.Genres(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	_ = json.NewEncoder(w).Encode(genres)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 50)"
// @Param genre query string false "filtro de género"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) GetRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	genre := r.URL.Query().Get("genre")

	// Mensaje inicial
	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, scoreando candidatos…",
	})

	items, err := h.svc.RecommendForUser(r.Context(), service.UserRecRequest{
		UserID:  userID,
		TopN:    n,
		Genre:   genre,
		Refresh: true,
	})
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	// Mensaje final con recomendaciones
	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"items":       items,
		"generatedAt": time.Now(),
	})
}
