package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"grafoml-pc5/internal/cache"
	"grafoml-pc5/internal/config"
	"grafoml-pc5/internal/dataset"
	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"
	"grafoml-pc5/internal/repository"
)

// GraphService es el dueño del ciclo de vida del Bundle: lo construye al
// arranque y lo reconstruye entero cuando cambian los datos. El Bundle activo
// se swapea atómicamente; las lecturas en vuelo siguen sobre el viejo hasta
// terminar.
type GraphService struct {
	cfg     *config.Config
	ratings *repository.RatingRepository
	movies  *repository.MovieRepository

	current atomic.Pointer[graph.Bundle]
	// serializa rebuilds concurrentes (las lecturas nunca se bloquean)
	rebuildMu sync.Mutex
}

func NewGraphService(cfg *config.Config, ratings *repository.RatingRepository, movies *repository.MovieRepository) *GraphService {
	return &GraphService{cfg: cfg, ratings: ratings, movies: movies}
}

// Bundle devuelve el bundle activo, o nil si todavía no se construyó.
func (s *GraphService) Bundle() *graph.Bundle {
	return s.current.Load()
}

func (s *GraphService) loadTables(ctx context.Context) ([]models.RatingDoc, []models.MovieDoc, error) {
	if s.cfg.DataSource == "csv" {
		ratings, err := dataset.LoadRatingsCSV(s.cfg.RatingsCSV)
		if err != nil {
			return nil, nil, err
		}
		movies, err := dataset.LoadMoviesCSV(s.cfg.MoviesCSV)
		if err != nil {
			return nil, nil, err
		}
		return ratings, movies, nil
	}

	ratings, err := s.ratings.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	movies, err := s.movies.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ratings, movies, nil
}

// Rebuild carga las tablas, filtra usuarios activos y construye un Bundle
// nuevo completo (grafo + mappings + caches). Recién cuando está validado se
// publica con el swap atómico, y se invalida el cache de respuestas.
func (s *GraphService) Rebuild(ctx context.Context) (*graph.Bundle, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	log.Printf("[graph] cargando datos (source=%s)...", s.cfg.DataSource)

	allRatings, movies, err := s.loadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando tablas: %w", err)
	}
	log.Printf("[graph] %d ratings, %d películas", len(allRatings), len(movies))

	filtered := dataset.FilterActiveUsers(allRatings, s.cfg.GraphMinLikes, s.cfg.GraphThreshold, s.cfg.GraphSampleN)
	log.Printf("[graph] %d interacciones positivas tras el filtro de actividad", len(filtered))

	b, err := graph.NewBundle(allRatings, filtered, movies, s.cfg.GraphThreshold, s.cfg.RatingScale)
	if err != nil {
		return nil, fmt.Errorf("construyendo grafo: %w", err)
	}

	s.current.Store(b)

	// recomendaciones cacheadas del grafo viejo ya no valen
	if err := cache.DeleteByPrefix(ctx, "rec:"); err != nil {
		log.Printf("[graph] error invalidando cache de recomendaciones: %v", err)
	}

	log.Printf("[graph] bundle listo en %s", time.Since(start))
	return b, nil
}

// GraphStats es el resumen para el endpoint de admin.
type GraphStats struct {
	Users     int       `json:"users"`
	Movies    int       `json:"movies"`
	Edges     int       `json:"edges"`
	Threshold float64   `json:"threshold"`
	BuiltAt   time.Time `json:"builtAt"`
}

func (s *GraphService) Stats() (*GraphStats, error) {
	b := s.Bundle()
	if b == nil {
		return nil, fmt.Errorf("el grafo todavía no fue construido")
	}
	return &GraphStats{
		Users:     len(b.Graph.UserNodes()),
		Movies:    len(b.Graph.MovieNodes()),
		Edges:     b.Graph.NumEdges(),
		Threshold: b.Threshold,
		BuiltAt:   b.BuiltAt,
	}, nil
}
