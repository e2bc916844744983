// Package scoring implementa las funciones de similitud sobre el grafo
// bipartito congelado: Jaccard a 2 saltos, vecinos comunes y Random Walk
// with Restart. Todas son puras y seguras para llamar en paralelo.
package scoring

import (
	"errors"
	"fmt"

	"grafoml-pc5/internal/graph"
)

var (
	// ErrNodeNotFound: el nodo pedido no existe en el grafo. Es distinto de
	// "similitud 0": el caller puede diferenciar "sin datos" de "score cero".
	ErrNodeNotFound = errors.New("nodo no existe en el grafo")
	// ErrUnknownMethod: nombre de método de scoring desconocido.
	ErrUnknownMethod = errors.New("método de scoring desconocido")
)

// TwoHopUsers devuelve los usuarios a distancia exactamente 2 del usuario
// (user -> movie -> user), excluyéndolo a él mismo. Los callers que scorean
// muchos candidatos para el mismo usuario deben computar este set UNA vez y
// reusarlo: recalcularlo por candidato convierte el batch en O(V·C).
func TwoHopUsers(b *graph.Bundle, userNode string) (map[string]struct{}, error) {
	if !b.Graph.HasNode(userNode) {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, userNode)
	}
	out := make(map[string]struct{})
	for mKey := range b.Graph.Neighbors(userNode) {
		for liker := range b.Caches.Likers[mKey] {
			if liker != userNode {
				out[liker] = struct{}{}
			}
		}
	}
	return out, nil
}

// Likers devuelve el set de usuarios adyacentes a una película (del cache).
// Para películas sin interacciones devuelve set vacío, no error.
func Likers(b *graph.Bundle, movieNode string) (map[string]struct{}, error) {
	likers, ok := b.Caches.Likers[movieNode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, movieNode)
	}
	return likers, nil
}

// IntersectCount cuenta |a ∩ b| iterando el set más chico.
func IntersectCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// JaccardFromSets calcula |U∩L| / |U∪L| sobre sets ya computados.
// 0 si la unión es vacía.
func JaccardFromSets(twoHop, likers map[string]struct{}) float64 {
	inter := IntersectCount(twoHop, likers)
	union := len(twoHop) + len(likers) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// CommonFromSets calcula |U∩L| sobre sets ya computados.
func CommonFromSets(twoHop, likers map[string]struct{}) int {
	return IntersectCount(twoHop, likers)
}

// Jaccard2Hop es la versión de conveniencia que computa los dos sets. Para
// un solo par está bien; para rankear candidatos usar TwoHopUsers +
// JaccardFromSets.
func Jaccard2Hop(b *graph.Bundle, userNode, movieNode string) (float64, error) {
	twoHop, err := TwoHopUsers(b, userNode)
	if err != nil {
		return 0, err
	}
	likers, err := Likers(b, movieNode)
	if err != nil {
		return 0, err
	}
	return JaccardFromSets(twoHop, likers), nil
}

// CommonNeighbors es la alternativa sin normalizar: |U∩L|.
func CommonNeighbors(b *graph.Bundle, userNode, movieNode string) (int, error) {
	twoHop, err := TwoHopUsers(b, userNode)
	if err != nil {
		return 0, err
	}
	likers, err := Likers(b, movieNode)
	if err != nil {
		return 0, err
	}
	return CommonFromSets(twoHop, likers), nil
}
