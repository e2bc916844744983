// Package recommend arma las listas rankeadas de recomendaciones sobre el
// Bundle congelado: generación de candidatos, filtros, scoring y top-N.
package recommend

import (
	"fmt"
	"sort"

	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"
	"grafoml-pc5/internal/scoring"
)

// GenreAll es el sentinel "sin filtro de género".
const GenreAll = "All"

func genreMatches(b *graph.Bundle, movieNode, genre string) bool {
	if genre == "" || genre == GenreAll {
		return true
	}
	_, ok := b.Caches.Genres[movieNode][genre]
	return ok
}

func sortedGenres(b *graph.Bundle, movieNode string) []string {
	set := b.Caches.Genres[movieNode]
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// avgSupportRating promedia los ratings individuales de los supporters para
// una película, usando el lookup (no la tabla cruda). nil si no hay datos.
func avgSupportRating(b *graph.Bundle, supporters map[string]struct{}, movieID int) *float64 {
	var sum float64
	n := 0
	for uNode := range supporters {
		uid, ok := b.Mappings.NodeToUserID[uNode]
		if !ok {
			continue
		}
		if rating, ok := b.Caches.Ratings[uid][movieID]; ok {
			sum += rating
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// ForUser recomienda películas para un usuario conocido del grafo.
//
// Candidatos = todas las películas que el usuario no vio, con filtro opcional
// de género. El set de usuarios a 2 saltos se computa UNA vez y se reusa para
// todos los candidatos. Ranking: jaccard desc, desempate por vecinos comunes
// desc; empates exactos conservan el orden de candidatos (movieId asc).
func ForUser(b *graph.Bundle, userNode string, topN int, genre string) ([]models.RecMovie, error) {
	if !b.Graph.HasNode(userNode) {
		return nil, fmt.Errorf("%w: %s", scoring.ErrNodeNotFound, userNode)
	}
	if topN <= 0 {
		return []models.RecMovie{}, nil
	}

	seen := make(map[string]struct{})
	for nbr := range b.Graph.Neighbors(userNode) {
		if b.Graph.Node(nbr).Kind == graph.KindMovie {
			seen[nbr] = struct{}{}
		}
	}

	twoHop, err := scoring.TwoHopUsers(b, userNode)
	if err != nil {
		return nil, err
	}

	var results []models.RecMovie
	for _, mNode := range b.Graph.MovieNodes() {
		if _, ya := seen[mNode]; ya {
			continue
		}
		if !genreMatches(b, mNode, genre) {
			continue
		}

		likers := b.Caches.Likers[mNode]

		// supporters = usuarios con gusto parecido que además vieron esta
		supporters := make(map[string]struct{})
		for u := range twoHop {
			if _, ok := likers[u]; ok {
				supporters[u] = struct{}{}
			}
		}

		inter := len(supporters)
		union := len(twoHop) + len(likers) - inter
		jacc := 0.0
		if union > 0 {
			jacc = float64(inter) / float64(union)
		}

		movieID := b.Mappings.NodeToMovieID[mNode]
		results = append(results, models.RecMovie{
			MovieNode:  mNode,
			MovieID:    movieID,
			Title:      b.Graph.Node(mNode).Title,
			Genres:     sortedGenres(b, mNode),
			Jaccard:    jacc,
			Common2Hop: inter,
			AvgRating:  avgSupportRating(b, supporters, movieID),
			Score:      jacc,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Jaccard != results[j].Jaccard {
			return results[i].Jaccard > results[j].Jaccard
		}
		return results[i].Common2Hop > results[j].Common2Hop
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}
