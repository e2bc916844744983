package graph

import (
	"fmt"
	"sort"
)

// Kind es la partición de un nodo en el grafo bipartito.
type Kind string

const (
	KindUser  Kind = "user"
	KindMovie Kind = "movie"
)

// UserNodeKey arma la clave estable "u_<userId>".
func UserNodeKey(userID int) string { return fmt.Sprintf("u_%d", userID) }

// MovieNodeKey arma la clave estable "m_<movieId>".
func MovieNodeKey(movieID int) string { return fmt.Sprintf("m_%d", movieID) }

// Node es un nodo del grafo con sus atributos. Para nodos movie se guarda
// título y géneros del catálogo; para nodos user solo el id.
type Node struct {
	Key     string
	Kind    Kind
	UserID  int
	MovieID int
	Title   string
	Genres  map[string]struct{}
}

// Graph es el grafo bipartito no dirigido usuario↔película. Las aristas
// llevan como peso el rating. Después de Build la estructura se trata como
// inmutable: cualquier cantidad de lecturas concurrentes es válida siempre
// que nadie la mute.
type Graph struct {
	nodes map[string]*Node
	adj   map[string]map[string]float64
	edges int

	// órdenes deterministas (por id numérico ascendente), fijados en Build
	userOrder  []string
	movieOrder []string
}

// New crea un grafo vacío.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string]map[string]float64),
	}
}

func (g *Graph) addNode(n *Node) {
	if _, ok := g.nodes[n.Key]; ok {
		return
	}
	g.nodes[n.Key] = n
	g.adj[n.Key] = make(map[string]float64)
}

// AddUserNode agrega (si no existe) el nodo de un usuario.
func (g *Graph) AddUserNode(userID int) {
	g.addNode(&Node{Key: UserNodeKey(userID), Kind: KindUser, UserID: userID})
}

// AddMovieNode agrega (si no existe) el nodo de una película con su metadata.
func (g *Graph) AddMovieNode(movieID int, title string, genres []string) {
	gset := make(map[string]struct{}, len(genres))
	for _, gn := range genres {
		if gn != "" {
			gset[gn] = struct{}{}
		}
	}
	g.addNode(&Node{Key: MovieNodeKey(movieID), Kind: KindMovie, MovieID: movieID, Title: title, Genres: gset})
}

// AddEdge conecta dos nodos existentes con un peso. Si la arista ya existe
// se sobreescribe el peso (last-write-wins, determinista por orden de
// inserción del caller).
func (g *Graph) AddEdge(a, b string, weight float64) error {
	if _, ok := g.nodes[a]; !ok {
		return fmt.Errorf("nodo %q no existe", a)
	}
	if _, ok := g.nodes[b]; !ok {
		return fmt.Errorf("nodo %q no existe", b)
	}
	if _, existed := g.adj[a][b]; !existed {
		g.edges++
	}
	g.adj[a][b] = weight
	g.adj[b][a] = weight
	return nil
}

// HasNode indica si la clave existe en el grafo.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Node devuelve el nodo por clave, o nil.
func (g *Graph) Node(key string) *Node { return g.nodes[key] }

// Neighbors devuelve el mapa vecino→peso de un nodo. El caller no debe
// mutarlo.
func (g *Graph) Neighbors(key string) map[string]float64 { return g.adj[key] }

// Weight devuelve el peso de la arista a–b (0 si no existe) y si existe.
func (g *Graph) Weight(a, b string) (float64, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// NumNodes / NumEdges, para logs y stats.
func (g *Graph) NumNodes() int { return len(g.nodes) }
func (g *Graph) NumEdges() int { return g.edges }

// freezeOrder fija los órdenes de iteración deterministas. Se llama una sola
// vez al final de Build; todo lo que itere candidatos usa estos slices y no
// el orden de los maps.
func (g *Graph) freezeOrder() {
	g.userOrder = g.userOrder[:0]
	g.movieOrder = g.movieOrder[:0]

	var userIDs, movieIDs []int
	for _, n := range g.nodes {
		switch n.Kind {
		case KindUser:
			userIDs = append(userIDs, n.UserID)
		case KindMovie:
			movieIDs = append(movieIDs, n.MovieID)
		}
	}
	sort.Ints(userIDs)
	sort.Ints(movieIDs)

	for _, id := range userIDs {
		g.userOrder = append(g.userOrder, UserNodeKey(id))
	}
	for _, id := range movieIDs {
		g.movieOrder = append(g.movieOrder, MovieNodeKey(id))
	}
}

// UserNodes devuelve los nodos user en orden por userId ascendente.
func (g *Graph) UserNodes() []string { return g.userOrder }

// MovieNodes devuelve los nodos movie en orden por movieId ascendente. Este
// es el orden canónico de candidatos en las recomendaciones.
func (g *Graph) MovieNodes() []string { return g.movieOrder }

// NodeOrder devuelve todos los nodos (users primero, luego movies) en orden
// determinista. Es el orden del vector de estado del RWR.
func (g *Graph) NodeOrder() []string {
	order := make([]string, 0, len(g.userOrder)+len(g.movieOrder))
	order = append(order, g.userOrder...)
	order = append(order, g.movieOrder...)
	return order
}
