package graph

import (
	"sort"
	"time"

	"grafoml-pc5/internal/models"
)

// Bundle es la unidad inmutable {grafo, mappings, caches} que consumen todas
// las queries. Se construye completo o no se construye: un rebuild arma un
// Bundle nuevo y lo swapea atómicamente, nunca se muta uno en uso.
type Bundle struct {
	Graph    *Graph
	Mappings *Mappings
	Caches   *Caches

	Threshold   float64
	RatingScale float64
	BuiltAt     time.Time
}

// NewBundle construye grafo + mappings + caches como una sola unidad.
// `filtered` son los ratings ya filtrados por actividad (lo que entra al
// grafo); `all` es la tabla completa, de donde sale el lookup de ratings.
func NewBundle(all, filtered []models.RatingDoc, movies []models.MovieDoc, threshold, ratingScale float64) (*Bundle, error) {
	g, m, err := Build(filtered, movies, threshold)
	if err != nil {
		return nil, err
	}
	if err := Validate(g); err != nil {
		return nil, err
	}

	c := &Caches{
		Likers:  buildLikers(g),
		Genres:  buildGenres(g),
		Ratings: buildRatingsLookup(all),
	}

	if ratingScale <= 0 {
		ratingScale = 5.0
	}

	return &Bundle{
		Graph:       g,
		Mappings:    m,
		Caches:      c,
		Threshold:   threshold,
		RatingScale: ratingScale,
		BuiltAt:     time.Now(),
	}, nil
}

// GenreList devuelve todos los géneros del catálogo, ordenados (para el
// combo de filtro del front).
func (b *Bundle) GenreList() []string {
	set := make(map[string]struct{})
	for _, genres := range b.Caches.Genres {
		for g := range genres {
			set[g] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
