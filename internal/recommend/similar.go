package recommend

import (
	"sort"

	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"
)

// SimilarUsers rankea los usuarios de referencia de un set de películas
// "me gusta" por cuántas de esas películas comparten. Lo consume el
// visualizador de grafo, que necesita los usuarios crudos y no una lista de
// películas.
func SimilarUsers(b *graph.Bundle, likedIDs []int, topN int) []models.SimilarUser {
	if topN <= 0 {
		return []models.SimilarUser{}
	}

	var likedNodes []string
	for _, id := range likedIDs {
		if node, ok := b.Mappings.MovieIDToNode[id]; ok {
			likedNodes = append(likedNodes, node)
		}
	}

	shared := make(map[string]int)
	for _, mNode := range likedNodes {
		for u := range b.Caches.Likers[mNode] {
			shared[u]++
		}
	}

	out := make([]models.SimilarUser, 0, len(shared))
	for uNode, count := range shared {
		out = append(out, models.SimilarUser{
			UserNode:    uNode,
			UserID:      b.Mappings.NodeToUserID[uNode],
			SharedLiked: count,
		})
	}

	// desempate por userId para que el orden sea reproducible
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharedLiked != out[j].SharedLiked {
			return out[i].SharedLiked > out[j].SharedLiked
		}
		return out[i].UserID < out[j].UserID
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
