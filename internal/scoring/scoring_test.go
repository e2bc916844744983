package scoring

import (
	"testing"

	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// escenario: u1–m1(4.0), u1–m2(4.0), u2–m1(5.0), u2–m3(4.0), u3–m2(3.5),
// más m4 en el catálogo sin ningún rating
func testBundle(t *testing.T) *graph.Bundle {
	t.Helper()

	ratings := []models.RatingDoc{
		{UserID: 1, MovieID: 1, Rating: 4.0},
		{UserID: 1, MovieID: 2, Rating: 4.0},
		{UserID: 2, MovieID: 1, Rating: 5.0},
		{UserID: 2, MovieID: 3, Rating: 4.0},
		{UserID: 3, MovieID: 2, Rating: 3.5},
	}
	movies := []models.MovieDoc{
		{MovieID: 1, Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
		{MovieID: 2, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
		{MovieID: 3, Title: "Seven (1995)", Genres: []string{"Crime", "Thriller"}},
		{MovieID: 4, Title: "Casablanca (1942)", Genres: []string{"Drama", "Romance"}},
	}

	b, err := graph.NewBundle(ratings, ratings, movies, 3.5, 5.0)
	require.NoError(t, err)
	return b
}

func TestTwoHopUsers(t *testing.T) {
	b := testBundle(t)

	// u1 vio m1 y m2; los likers de esas películas (menos u1) son u2 y u3
	twoHop, err := TwoHopUsers(b, "u_1")
	require.NoError(t, err)
	assert.Len(t, twoHop, 2)
	assert.Contains(t, twoHop, "u_2")
	assert.Contains(t, twoHop, "u_3")

	// nunca se incluye a sí mismo
	assert.NotContains(t, twoHop, "u_1")

	_, err = TwoHopUsers(b, "u_99")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestJaccard2Hop(t *testing.T) {
	b := testBundle(t)

	// U(u1)={u2,u3}, L(m3)={u2} → 1/2
	j, err := Jaccard2Hop(b, "u_1", "m_3")
	require.NoError(t, err)
	assert.Equal(t, 0.5, j)

	// película sin likers: intersección y unión chica, score 0
	j, err = Jaccard2Hop(b, "u_1", "m_4")
	require.NoError(t, err)
	assert.Equal(t, 0.0, j)

	_, err = Jaccard2Hop(b, "u_99", "m_3")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = Jaccard2Hop(b, "u_1", "m_99")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestJaccardEnRango(t *testing.T) {
	b := testBundle(t)

	for _, uKey := range b.Graph.UserNodes() {
		for _, mKey := range b.Graph.MovieNodes() {
			j, err := Jaccard2Hop(b, uKey, mKey)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, j, 0.0, "%s→%s", uKey, mKey)
			assert.LessOrEqual(t, j, 1.0, "%s→%s", uKey, mKey)
		}
	}
}

// cn == jaccard * (|U| + |L| - cn), para todo par
func TestConsistenciaJaccardCN(t *testing.T) {
	b := testBundle(t)

	for _, uKey := range b.Graph.UserNodes() {
		twoHop, err := TwoHopUsers(b, uKey)
		require.NoError(t, err)
		for _, mKey := range b.Graph.MovieNodes() {
			likers, err := Likers(b, mKey)
			require.NoError(t, err)

			j := JaccardFromSets(twoHop, likers)
			cn := CommonFromSets(twoHop, likers)
			union := len(twoHop) + len(likers) - cn
			assert.InDelta(t, float64(cn), j*float64(union), 1e-12, "%s→%s", uKey, mKey)
		}
	}
}

func TestCommonNeighbors(t *testing.T) {
	b := testBundle(t)

	n, err := CommonNeighbors(b, "u_1", "m_3")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = CommonNeighbors(b, "u_1", "m_4")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIntersectCount(t *testing.T) {
	a := map[string]struct{}{"x": {}, "y": {}, "z": {}}
	c := map[string]struct{}{"y": {}, "z": {}, "w": {}}
	assert.Equal(t, 2, IntersectCount(a, c))
	assert.Equal(t, 2, IntersectCount(c, a))
	assert.Equal(t, 0, IntersectCount(a, nil))
}

func TestRWRDistribucion(t *testing.T) {
	b := testBundle(t)

	dist, order, err := RandomWalkRestart(b, "u_1", DefaultRWRParams())
	require.NoError(t, err)
	require.Len(t, dist, len(order))
	require.Equal(t, b.Graph.NodeOrder(), order)

	// es una distribución de probabilidad
	var sum float64
	for i, p := range dist {
		assert.GreaterOrEqual(t, p, 0.0, "nodo %s", order[i])
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)

	idx := make(map[string]int, len(order))
	for i, key := range order {
		idx[key] = i
	}

	// el nodo de restart concentra la mayor masa
	for i := range dist {
		if i != idx["u_1"] {
			assert.Greater(t, dist[idx["u_1"]], dist[i])
		}
	}

	// una película aislada no recibe masa
	assert.Equal(t, 0.0, dist[idx["m_4"]])

	// las películas vistas por u1 quedan por encima de la no vista conectada
	assert.Greater(t, dist[idx["m_1"]], dist[idx["m_3"]])
	assert.Greater(t, dist[idx["m_2"]], dist[idx["m_3"]])
	assert.Greater(t, dist[idx["m_3"]], 0.0)
}

func TestRWRNodoInexistente(t *testing.T) {
	b := testBundle(t)
	_, _, err := RandomWalkRestart(b, "u_99", DefaultRWRParams())
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestRWRParamsInvalidosUsanDefault(t *testing.T) {
	b := testBundle(t)

	dist, _, err := RandomWalkRestart(b, "u_1", RWRParams{Alpha: -1, MaxIter: 0, Tol: 0})
	require.NoError(t, err)

	var sum float64
	for _, p := range dist {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{
		"":                 MethodJaccard,
		"jaccard":          MethodJaccard,
		"Jaccard":          MethodJaccard,
		"cn":               MethodCN,
		"common_neighbors": MethodCN,
		"rwr":              MethodRWR,
		" RWR ":            MethodRWR,
	} {
		got, err := ParseMethod(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseMethod("pagerank")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestScoreDespacho(t *testing.T) {
	b := testBundle(t)

	j, err := Score(b, "u_1", "m_3", MethodJaccard)
	require.NoError(t, err)
	assert.Equal(t, 0.5, j)

	cn, err := Score(b, "u_1", "m_3", MethodCN)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cn)

	rwr, err := Score(b, "u_1", "m_3", MethodRWR)
	require.NoError(t, err)
	assert.Greater(t, rwr, 0.0)
	assert.Less(t, rwr, 1.0)

	_, err = Score(b, "u_1", "m_99", MethodRWR)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	_, err = Score(b, "u_1", "m_3", Method("pagerank"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
