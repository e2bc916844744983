package scoring

import (
	"fmt"
	"math"

	"grafoml-pc5/internal/graph"
)

// RWRParams parametriza el Random Walk with Restart.
type RWRParams struct {
	Alpha   float64 // probabilidad de restart en cada paso
	MaxIter int     // tope de iteraciones (actúa de timeout)
	Tol     float64 // corte por cambio L1 entre iteraciones
}

// DefaultRWRParams es la política por defecto: alpha=0.15, 200 iteraciones,
// tolerancia 1e-6.
func DefaultRWRParams() RWRParams {
	return RWRParams{Alpha: 0.15, MaxIter: 200, Tol: 1e-6}
}

// RandomWalkRestart simula una partícula que en cada paso vuelve al nodo del
// usuario con probabilidad alpha, y si no sigue una arista al azar
// proporcional al peso. Itera p ← α·e + (1−α)·P·p desde p = e hasta que el
// cambio L1 baja de Tol o se agota MaxIter (no converger NO es error: se
// devuelve la última iteración).
//
// Devuelve la distribución sobre todos los nodos y el orden de nodos del
// vector. Es el modo de scoring caro (O(E) por iteración sobre todo el
// grafo): invocarlo a lo sumo una vez por usuario por request, nunca una vez
// por candidato.
func RandomWalkRestart(b *graph.Bundle, userNode string, params RWRParams) ([]float64, []string, error) {
	if !b.Graph.HasNode(userNode) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNodeNotFound, userNode)
	}
	if params.Alpha <= 0 || params.Alpha > 1 {
		params.Alpha = 0.15
	}
	if params.MaxIter <= 0 {
		params.MaxIter = 200
	}
	if params.Tol <= 0 {
		params.Tol = 1e-6
	}

	order := b.Graph.NodeOrder()
	idx := make(map[string]int, len(order))
	for i, key := range order {
		idx[key] = i
	}

	// suma de pesos por columna; una columna con suma 0 queda en cero (ese
	// estado no propaga masa hacia adelante)
	colSum := make([]float64, len(order))
	for j, key := range order {
		for _, w := range b.Graph.Neighbors(key) {
			colSum[j] += w
		}
	}

	source := idx[userNode]
	p := make([]float64, len(order))
	p[source] = 1.0
	next := make([]float64, len(order))

	for iter := 0; iter < params.MaxIter; iter++ {
		for i := range next {
			next[i] = 0
		}
		// (1−α)·P·p con P[i][j] = w(i,j)/colSum[j], recorrido por columnas
		for j, key := range order {
			if p[j] == 0 || colSum[j] == 0 {
				continue
			}
			factor := (1 - params.Alpha) * p[j] / colSum[j]
			for nbr, w := range b.Graph.Neighbors(key) {
				next[idx[nbr]] += factor * w
			}
		}
		next[source] += params.Alpha

		var diff float64
		for i := range next {
			diff += math.Abs(next[i] - p[i])
		}
		p, next = next, p
		if diff < params.Tol {
			break
		}
	}

	return p, order, nil
}
