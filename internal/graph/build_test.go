package graph

import (
	"testing"

	"grafoml-pc5/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// escenario base: u1–m1(4.0), u1–m2(4.0), u2–m1(5.0), u2–m3(4.0), u3–m2(3.5)
func testRatings() []models.RatingDoc {
	return []models.RatingDoc{
		{UserID: 1, MovieID: 1, Rating: 4.0},
		{UserID: 1, MovieID: 2, Rating: 4.0},
		{UserID: 2, MovieID: 1, Rating: 5.0},
		{UserID: 2, MovieID: 3, Rating: 4.0},
		{UserID: 3, MovieID: 2, Rating: 3.5},
	}
}

func testMovies() []models.MovieDoc {
	return []models.MovieDoc{
		{MovieID: 1, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
		{MovieID: 2, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
		{MovieID: 3, Title: "Seven (1995)", Genres: []string{"Crime", "Thriller"}},
		// m4 no tiene ningún rating: nodo aislado válido
		{MovieID: 4, Title: "Casablanca (1942)", Genres: []string{"Drama", "Romance"}},
	}
}

func TestBuildBasico(t *testing.T) {
	g, m, err := Build(testRatings(), testMovies(), 3.5)
	require.NoError(t, err)

	assert.Len(t, g.UserNodes(), 3)
	assert.Len(t, g.MovieNodes(), 4)
	assert.Equal(t, 5, g.NumEdges())

	// pesos = rating
	w, ok := g.Weight("u_1", "m_1")
	require.True(t, ok)
	assert.Equal(t, 4.0, w)
	w, ok = g.Weight("m_1", "u_2")
	require.True(t, ok)
	assert.Equal(t, 5.0, w)

	// metadata del catálogo en el nodo
	n := g.Node("m_2")
	require.NotNil(t, n)
	assert.Equal(t, "Toy Story (1995)", n.Title)
	assert.Contains(t, n.Genres, "Animation")

	// mappings consistentes en las dos direcciones
	require.Len(t, m.UserIDToNode, 3)
	require.Len(t, m.MovieIDToNode, 4)
	for uid, node := range m.UserIDToNode {
		assert.Equal(t, uid, m.NodeToUserID[node])
	}
	for mid, node := range m.MovieIDToNode {
		assert.Equal(t, mid, m.NodeToMovieID[node])
	}
}

func TestBuildCatalogoCompleto(t *testing.T) {
	// toda película del catálogo tiene nodo, aunque nadie la haya visto
	g, _, err := Build(testRatings(), testMovies(), 3.5)
	require.NoError(t, err)

	require.True(t, g.HasNode("m_4"))
	assert.Empty(t, g.Neighbors("m_4"))
	require.NoError(t, Validate(g))
}

func TestBuildRespetaThreshold(t *testing.T) {
	ratings := append(testRatings(), models.RatingDoc{UserID: 3, MovieID: 1, Rating: 2.0})
	g, _, err := Build(ratings, testMovies(), 3.5)
	require.NoError(t, err)

	// el rating 2.0 no genera arista, pero u3 sí tiene nodo
	_, ok := g.Weight("u_3", "m_1")
	assert.False(t, ok)
	assert.True(t, g.HasNode("u_3"))
	assert.Equal(t, 5, g.NumEdges())
}

func TestBuildDuplicadoLastWriteWins(t *testing.T) {
	ratings := append(testRatings(), models.RatingDoc{UserID: 1, MovieID: 1, Rating: 5.0})
	g, _, err := Build(ratings, testMovies(), 3.5)
	require.NoError(t, err)

	w, ok := g.Weight("u_1", "m_1")
	require.True(t, ok)
	assert.Equal(t, 5.0, w)
	// no se duplica la arista
	assert.Equal(t, 5, g.NumEdges())
}

func TestBuildIgnoraPeliculasFueraDelCatalogo(t *testing.T) {
	ratings := append(testRatings(), models.RatingDoc{UserID: 1, MovieID: 999, Rating: 5.0})
	g, _, err := Build(ratings, testMovies(), 3.5)
	require.NoError(t, err)

	assert.False(t, g.HasNode("m_999"))
	assert.Equal(t, 5, g.NumEdges())
}

func TestBuildCatalogoVacio(t *testing.T) {
	_, _, err := Build(testRatings(), nil, 3.5)
	assert.Error(t, err)
}

func TestOrdenDeterminista(t *testing.T) {
	g, _, err := Build(testRatings(), testMovies(), 3.5)
	require.NoError(t, err)

	assert.Equal(t, []string{"u_1", "u_2", "u_3"}, g.UserNodes())
	assert.Equal(t, []string{"m_1", "m_2", "m_3", "m_4"}, g.MovieNodes())
	assert.Equal(t, []string{"u_1", "u_2", "u_3", "m_1", "m_2", "m_3", "m_4"}, g.NodeOrder())
}

func TestValidateDetectaMismaParticion(t *testing.T) {
	g := New()
	g.AddUserNode(1)
	g.AddUserNode(2)
	require.NoError(t, g.AddEdge("u_1", "u_2", 1.0))
	g.freezeOrder()

	err := Validate(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSamePartition)
}

func TestCaches(t *testing.T) {
	// el lookup de ratings sale de la tabla SIN filtrar: u9 no está en el
	// grafo pero sus ratings se pueden consultar igual
	all := append(testRatings(), models.RatingDoc{UserID: 9, MovieID: 1, Rating: 1.5})
	b, err := NewBundle(all, testRatings(), testMovies(), 3.5, 5.0)
	require.NoError(t, err)

	likersM1 := b.Caches.Likers["m_1"]
	assert.Len(t, likersM1, 2)
	assert.Contains(t, likersM1, "u_1")
	assert.Contains(t, likersM1, "u_2")

	// película aislada: set vacío, no nil ausente
	empty, ok := b.Caches.Likers["m_4"]
	require.True(t, ok)
	assert.Empty(t, empty)

	assert.Contains(t, b.Caches.Genres["m_3"], "Thriller")

	assert.Equal(t, 4.0, b.Caches.Ratings[2][3])
	assert.Equal(t, 1.5, b.Caches.Ratings[9][1])
	assert.False(t, b.Graph.HasNode("u_9"))
}

func TestGenreList(t *testing.T) {
	b, err := NewBundle(testRatings(), testRatings(), testMovies(), 3.5, 5.0)
	require.NoError(t, err)

	genres := b.GenreList()
	assert.Equal(t, []string{"Action", "Animation", "Comedy", "Crime", "Drama", "Romance", "Thriller"}, genres)
}
