package scoring

import (
	"fmt"
	"strings"

	"grafoml-pc5/internal/graph"
)

// Method es el conjunto cerrado de algoritmos de scoring. Los nombres
// desconocidos se rechazan en ParseMethod (en el borde), no adentro del
// scoring.
type Method string

const (
	MethodJaccard Method = "jaccard"
	MethodCN      Method = "cn"
	MethodRWR     Method = "rwr"
)

// ParseMethod normaliza y valida el nombre del método.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jaccard":
		return MethodJaccard, nil
	case "cn", "common_neighbors":
		return MethodCN, nil
	case "rwr":
		return MethodRWR, nil
	default:
		return "", fmt.Errorf("%w: %q (debe ser jaccard|cn|rwr)", ErrUnknownMethod, s)
	}
}

// Score despacha al algoritmo pedido y devuelve el score usuario→película.
// Para rwr corre la power iteration con los parámetros default y devuelve la
// masa sobre el nodo de la película.
func Score(b *graph.Bundle, userNode, movieNode string, method Method) (float64, error) {
	switch method {
	case MethodJaccard:
		return Jaccard2Hop(b, userNode, movieNode)
	case MethodCN:
		n, err := CommonNeighbors(b, userNode, movieNode)
		return float64(n), err
	case MethodRWR:
		if !b.Graph.HasNode(movieNode) {
			return 0, fmt.Errorf("%w: %s", ErrNodeNotFound, movieNode)
		}
		dist, order, err := RandomWalkRestart(b, userNode, DefaultRWRParams())
		if err != nil {
			return 0, err
		}
		for i, key := range order {
			if key == movieNode {
				return dist[i], nil
			}
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
