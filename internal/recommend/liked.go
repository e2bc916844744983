package recommend

import (
	"fmt"
	"sort"

	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"
	"grafoml-pc5/internal/scoring"
)

// LikedOptions parametriza la recomendación por set de películas "me gusta".
type LikedOptions struct {
	TopN             int
	Genre            string
	RatingFloor      float64        // si > 0, descarta candidatos con promedio desconocido o menor
	Algorithm        scoring.Method // jaccard (default) o cn
	PrioritizeRating bool           // pondera score × (avg / escala de rating)
}

// ForLikedMovies recomienda a partir de un set ad-hoc de películas que
// gustaron (sin usuario conocido).
//
// Ids que no tienen nodo en el grafo se descartan en silencio. El set de
// usuarios de referencia es la unión de likers de las películas elegidas; si
// queda vacío se devuelve lista vacía. Candidatos sin intersección con la
// referencia se saltean (no entran con score 0).
func ForLikedMovies(b *graph.Bundle, likedIDs []int, opts LikedOptions) ([]models.RecMovie, error) {
	algo := opts.Algorithm
	if algo == "" {
		algo = scoring.MethodJaccard
	}
	if algo != scoring.MethodJaccard && algo != scoring.MethodCN {
		return nil, fmt.Errorf("%w: %q (para liked solo jaccard|cn)", scoring.ErrUnknownMethod, algo)
	}
	if opts.TopN <= 0 {
		return []models.RecMovie{}, nil
	}

	// ids -> nodos; los que no existen se descartan
	selected := make(map[string]struct{})
	for _, id := range likedIDs {
		if node, ok := b.Mappings.MovieIDToNode[id]; ok {
			selected[node] = struct{}{}
		}
	}

	// usuarios de referencia = unión de likers de las elegidas
	refUsers := make(map[string]struct{})
	for node := range selected {
		for u := range b.Caches.Likers[node] {
			refUsers[u] = struct{}{}
		}
	}
	if len(refUsers) == 0 {
		return []models.RecMovie{}, nil
	}

	var results []models.RecMovie
	for _, mNode := range b.Graph.MovieNodes() {
		if _, ya := selected[mNode]; ya {
			continue
		}
		if !genreMatches(b, mNode, opts.Genre) {
			continue
		}

		likers := b.Caches.Likers[mNode]

		supporters := make(map[string]struct{})
		for u := range refUsers {
			if _, ok := likers[u]; ok {
				supporters[u] = struct{}{}
			}
		}
		inter := len(supporters)
		if inter == 0 {
			continue
		}

		var score float64
		if algo == scoring.MethodCN {
			score = float64(inter)
		} else {
			union := len(refUsers) + len(likers) - inter
			if union > 0 {
				score = float64(inter) / float64(union)
			}
		}

		movieID := b.Mappings.NodeToMovieID[mNode]
		avg := avgSupportRating(b, supporters, movieID)

		if opts.RatingFloor > 0 && (avg == nil || *avg < opts.RatingFloor) {
			continue
		}

		final := score
		if opts.PrioritizeRating && avg != nil {
			final = score * (*avg / b.RatingScale)
		}

		jacc := 0.0
		if algo == scoring.MethodJaccard {
			jacc = score
		}

		results = append(results, models.RecMovie{
			MovieNode:  mNode,
			MovieID:    movieID,
			Title:      b.Graph.Node(mNode).Title,
			Genres:     sortedGenres(b, mNode),
			Jaccard:    jacc,
			Common2Hop: inter,
			AvgRating:  avg,
			Score:      final,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.TopN {
		results = results[:opts.TopN]
	}
	return results, nil
}
