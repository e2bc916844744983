package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"grafoml-pc5/internal/cache"
	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"
	"grafoml-pc5/internal/recommend"
	"grafoml-pc5/internal/repository"
	"grafoml-pc5/internal/scoring"
)

const (
	DefaultTopN = 10
	MaxTopN     = 50 // por seguridad, no deja pedir 1000 ítems
	cacheTTL    = 60 * 60
)

type RecommendService struct {
	graphs  *GraphService
	recRepo *repository.RecommendationRepository
}

func NewRecommendService(graphs *GraphService, recRepo *repository.RecommendationRepository) *RecommendService {
	return &RecommendService{graphs: graphs, recRepo: recRepo}
}

func (s *RecommendService) bundle() (*graph.Bundle, error) {
	b := s.graphs.Bundle()
	if b == nil {
		return nil, fmt.Errorf("el grafo todavía no fue construido")
	}
	return b, nil
}

func clampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// ====== Recomendación por usuario conocido ======

type UserRecRequest struct {
	UserID  int
	TopN    int
	Genre   string
	Refresh bool
}

func userCacheKey(req UserRecRequest) string {
	// cachea por usuario + n + género (refresh solo decide si usar cache)
	return fmt.Sprintf("rec:user:%d:n:%d:g:%s", req.UserID, req.TopN, req.Genre)
}

func (s *RecommendService) RecommendForUser(ctx context.Context, req UserRecRequest) ([]models.RecMovie, error) {
	b, err := s.bundle()
	if err != nil {
		return nil, err
	}

	req.TopN = clampTopN(req.TopN)

	var cached []models.RecMovie
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, userCacheKey(req), &cached); err == nil && ok {
			return cached, nil
		}
	}

	userNode, ok := b.Mappings.UserIDToNode[req.UserID]
	if !ok {
		return nil, fmt.Errorf("%w: usuario %d", scoring.ErrNodeNotFound, req.UserID)
	}

	items, err := recommend.ForUser(b, userNode, req.TopN, req.Genre)
	if err != nil {
		return nil, err
	}

	// historial en Mongo (best effort, no rompemos la respuesta si falla)
	if s.recRepo != nil {
		hist := &models.Recommendation{
			UserID: req.UserID,
			Algo:   "graph-jaccard-2hop",
			Params: map[string]any{
				"topN":      req.TopN,
				"genre":     req.Genre,
				"threshold": b.Threshold,
			},
			Items:     items,
			CreatedAt: time.Now(),
		}
		if err := s.recRepo.Insert(ctx, hist); err != nil {
			log.Printf("error guardando recomendación en Mongo: %v", err)
		}
	}

	if err := cache.SetJSON(ctx, userCacheKey(req), items, cacheTTL); err != nil {
		log.Printf("error cacheando recomendación en Redis: %v", err)
	}

	return items, nil
}

// ====== Recomendación por set de películas "me gusta" ======

type LikedRecRequest struct {
	MovieIDs         []int
	TopN             int
	Genre            string
	RatingFloor      float64
	Algorithm        string
	PrioritizeRating bool
	Refresh          bool
}

func likedCacheKey(req LikedRecRequest, algo scoring.Method) string {
	ids := make([]string, 0, len(req.MovieIDs))
	sorted := append([]int(nil), req.MovieIDs...)
	sort.Ints(sorted)
	for _, id := range sorted {
		ids = append(ids, fmt.Sprint(id))
	}
	return fmt.Sprintf("rec:liked:%s:n:%d:g:%s:f:%.2f:a:%s:p:%t",
		strings.Join(ids, ","), req.TopN, req.Genre, req.RatingFloor, algo, req.PrioritizeRating)
}

func (s *RecommendService) RecommendForLiked(ctx context.Context, req LikedRecRequest) ([]models.RecMovie, error) {
	b, err := s.bundle()
	if err != nil {
		return nil, err
	}

	// el nombre del algoritmo se valida acá, en el borde
	algo, err := scoring.ParseMethod(req.Algorithm)
	if err != nil {
		return nil, err
	}

	req.TopN = clampTopN(req.TopN)

	var cached []models.RecMovie
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, likedCacheKey(req, algo), &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := recommend.ForLikedMovies(b, req.MovieIDs, recommend.LikedOptions{
		TopN:             req.TopN,
		Genre:            req.Genre,
		RatingFloor:      req.RatingFloor,
		Algorithm:        algo,
		PrioritizeRating: req.PrioritizeRating,
	})
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, likedCacheKey(req, algo), items, cacheTTL); err != nil {
		log.Printf("error cacheando recomendación en Redis: %v", err)
	}

	return items, nil
}

// History devuelve las últimas recomendaciones servidas a un usuario
// (las que quedaron guardadas en Mongo).
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.recRepo.FindByUser(ctx, userID, limit)
}

// ====== Primitivas crudas (para el visualizador y debugging) ======

// SimilarUsers devuelve los usuarios de referencia del set "me gusta",
// rankeados por películas compartidas.
func (s *RecommendService) SimilarUsers(ctx context.Context, movieIDs []int, topN int) ([]models.SimilarUser, error) {
	b, err := s.bundle()
	if err != nil {
		return nil, err
	}
	return recommend.SimilarUsers(b, movieIDs, clampTopN(topN)), nil
}

// Score calcula el score crudo usuario→película con el método pedido.
func (s *RecommendService) Score(ctx context.Context, userID, movieID int, method string) (float64, error) {
	b, err := s.bundle()
	if err != nil {
		return 0, err
	}

	m, err := scoring.ParseMethod(method)
	if err != nil {
		return 0, err
	}

	userNode, ok := b.Mappings.UserIDToNode[userID]
	if !ok {
		return 0, fmt.Errorf("%w: usuario %d", scoring.ErrNodeNotFound, userID)
	}
	movieNode, ok := b.Mappings.MovieIDToNode[movieID]
	if !ok {
		return 0, fmt.Errorf("%w: película %d", scoring.ErrNodeNotFound, movieID)
	}

	return scoring.Score(b, userNode, movieNode, m)
}

// Genres lista los géneros del catálogo activo (para el combo del front).
func (s *RecommendService) Genres(ctx context.Context) ([]string, error) {
	b, err := s.bundle()
	if err != nil {
		return nil, err
	}
	return b.GenreList(), nil
}
