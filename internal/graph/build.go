package graph

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"grafoml-pc5/internal/models"
)

// ErrSamePartition: una arista conecta dos nodos de la misma partición. Si
// aparece es un bug del builder, no una condición de datos.
var ErrSamePartition = errors.New("arista entre nodos de la misma partición")

// Mappings son las cuatro tablas de lookup id↔nodo. Son biyecciones sobre el
// conjunto de nodos del grafo.
type Mappings struct {
	UserIDToNode  map[int]string
	NodeToUserID  map[string]int
	MovieIDToNode map[int]string
	NodeToMovieID map[string]int
}

// Build construye el grafo bipartito y los mappings a partir de los ratings
// ya filtrados por actividad y del catálogo completo de películas.
//
//   - un nodo user por cada userId distinto en ratings
//   - un nodo movie por CADA película del catálogo, tenga o no ratings
//     (los nodos movie aislados son válidos)
//   - una arista por cada rating >= threshold, con el rating como peso
//
// Ratings de películas fuera del catálogo se ignoran (no inventamos nodos
// sin metadata).
func Build(ratings []models.RatingDoc, movies []models.MovieDoc, threshold float64) (*Graph, *Mappings, error) {
	if len(movies) == 0 {
		return nil, nil, fmt.Errorf("catálogo de películas vacío")
	}

	g := New()

	// nodos user, en orden determinista
	seen := make(map[int]struct{})
	var userIDs []int
	for _, r := range ratings {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
	}
	sort.Ints(userIDs)
	for _, uid := range userIDs {
		g.AddUserNode(uid)
	}

	// nodos movie: todo el catálogo
	for _, m := range movies {
		g.AddMovieNode(m.MovieID, m.Title, m.Genres)
	}

	// aristas: solo interacciones positivas. Iteramos en el orden del input
	// para que un duplicado (user,movie) resuelva last-write-wins de forma
	// determinista.
	skipped := 0
	for _, r := range ratings {
		if r.Rating < threshold {
			continue
		}
		mKey := MovieNodeKey(r.MovieID)
		if !g.HasNode(mKey) {
			skipped++
			continue
		}
		if err := g.AddEdge(UserNodeKey(r.UserID), mKey, r.Rating); err != nil {
			return nil, nil, err
		}
	}
	if skipped > 0 {
		log.Printf("[graph] %d ratings ignorados (película fuera del catálogo)", skipped)
	}

	g.freezeOrder()

	m := &Mappings{
		UserIDToNode:  make(map[int]string, len(userIDs)),
		NodeToUserID:  make(map[string]int, len(userIDs)),
		MovieIDToNode: make(map[int]string, len(movies)),
		NodeToMovieID: make(map[string]int, len(movies)),
	}
	for _, key := range g.UserNodes() {
		n := g.Node(key)
		m.UserIDToNode[n.UserID] = key
		m.NodeToUserID[key] = n.UserID
	}
	for _, key := range g.MovieNodes() {
		n := g.Node(key)
		m.MovieIDToNode[n.MovieID] = key
		m.NodeToMovieID[key] = n.MovieID
	}

	return g, m, nil
}

// Validate recorre todas las aristas y verifica la bipartición (una punta
// user, la otra movie). Se corre una vez después de Build; cualquier
// violación es un bug de construcción y aborta el arranque.
func Validate(g *Graph) error {
	users, movies := 0, 0
	for _, key := range g.NodeOrder() {
		switch g.Node(key).Kind {
		case KindUser:
			users++
		case KindMovie:
			movies++
		}
	}
	log.Printf("[graph] %d usuarios, %d películas, %d aristas", users, movies, g.NumEdges())

	for _, a := range g.NodeOrder() {
		ka := g.Node(a).Kind
		for b := range g.Neighbors(a) {
			if kb := g.Node(b).Kind; ka == kb {
				return fmt.Errorf("%w: %s(%s) - %s(%s)", ErrSamePartition, a, ka, b, kb)
			}
		}
	}
	return nil
}
