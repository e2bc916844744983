package graph

import "grafoml-pc5/internal/models"

// Caches son los tres lookups derivados del grafo. Se reconstruyen siempre
// junto con el grafo (nunca por separado) y después son de solo lectura.
type Caches struct {
	// nodo movie -> set de nodos user adyacentes
	Likers map[string]map[string]struct{}
	// nodo movie -> set de géneros (set vacío si no tiene)
	Genres map[string]map[string]struct{}
	// userId -> movieId -> rating, construido sobre la tabla SIN filtrar
	// para que los lookups de rating funcionen también para usuarios que
	// quedaron fuera del grafo
	Ratings map[int]map[int]float64
}

func buildLikers(g *Graph) map[string]map[string]struct{} {
	cache := make(map[string]map[string]struct{}, len(g.MovieNodes()))
	for _, mKey := range g.MovieNodes() {
		likers := make(map[string]struct{})
		for nbr := range g.Neighbors(mKey) {
			if g.Node(nbr).Kind == KindUser {
				likers[nbr] = struct{}{}
			}
		}
		cache[mKey] = likers
	}
	return cache
}

func buildGenres(g *Graph) map[string]map[string]struct{} {
	cache := make(map[string]map[string]struct{}, len(g.MovieNodes()))
	for _, mKey := range g.MovieNodes() {
		cache[mKey] = g.Node(mKey).Genres
	}
	return cache
}

func buildRatingsLookup(all []models.RatingDoc) map[int]map[int]float64 {
	lookup := make(map[int]map[int]float64)
	for _, r := range all {
		byMovie, ok := lookup[r.UserID]
		if !ok {
			byMovie = make(map[int]float64)
			lookup[r.UserID] = byMovie
		}
		byMovie[r.MovieID] = r.Rating
	}
	return lookup
}
