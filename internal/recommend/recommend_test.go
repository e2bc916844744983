package recommend

import (
	"testing"

	"grafoml-pc5/internal/graph"
	"grafoml-pc5/internal/models"
	"grafoml-pc5/internal/scoring"

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

func movieIDs(recs []models.RecMovie) []int {
	out := make([]int, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.MovieID)
	}
	return out
}

func TestForUserEscenarioBase(t *testing.T) {
	b := testBundle(t)

	recs, err := ForUser(b, "u_1", 10, "")
	require.NoError(t, err)

	// candidatos: m3 y m4 (m1 y m2 ya vistas)
	require.Equal(t, []int{3, 4}, movieIDs(recs))

	top := recs[0]
	assert.Equal(t, "m_3", top.MovieNode)
	assert.Equal(t, 0.5, top.Jaccard)
	assert.Equal(t, 1, top.Common2Hop)
	require.NotNil(t, top.AvgRating)
	assert.Equal(t, 4.0, *top.AvgRating)
	assert.Equal(t, []string{"Crime", "Thriller"}, top.Genres)

	// la aislada entra con score 0 y sin promedio
	assert.Equal(t, 0.0, recs[1].Jaccard)
	assert.Nil(t, recs[1].AvgRating)
}

func TestForUserNuncaIncluyeVistas(t *testing.T) {
	b := testBundle(t)

	for _, uKey := range b.Graph.UserNodes() {
		recs, err := ForUser(b, uKey, 10, "")
		require.NoError(t, err)
		for _, rec := range recs {
			_, vista := b.Graph.Weight(uKey, rec.MovieNode)
			assert.False(t, vista, "%s recomendada a %s pero ya la vio", rec.MovieNode, uKey)
		}
	}
}

func TestForUserFiltroGenero(t *testing.T) {
	b := testBundle(t)

	recs, err := ForUser(b, "u_1", 10, "Thriller")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, movieIDs(recs))

	recs, err = ForUser(b, "u_1", 10, "Drama")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, movieIDs(recs))

	// "All" y "" son equivalentes
	all, err := ForUser(b, "u_1", 10, GenreAll)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, movieIDs(all))
}

func TestForUserTopN(t *testing.T) {
	b := testBundle(t)

	recs, err := ForUser(b, "u_1", 1, "")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, movieIDs(recs))

	recs, err = ForUser(b, "u_1", 0, "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestForUserNodoInexistente(t *testing.T) {
	b := testBundle(t)
	_, err := ForUser(b, "u_99", 10, "")
	assert.ErrorIs(t, err, scoring.ErrNodeNotFound)
}

func TestForLikedCN(t *testing.T) {
	b := testBundle(t)

	// ref = likers(m1) = {u1,u2}; m2 y m3 empatan con score 1 y el empate
	// conserva el orden de catálogo
	recs, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 10, Algorithm: scoring.MethodCN})
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, movieIDs(recs))
	assert.Equal(t, 1.0, recs[0].Score)
	assert.Equal(t, 1.0, recs[1].Score)

	// la aislada no entra: sin intersección no hay candidato
	assert.NotContains(t, movieIDs(recs), 4)
}

func TestForLikedJaccard(t *testing.T) {
	b := testBundle(t)

	// ref={u1,u2}: m3 → 1/2, m2 → 1/3
	recs, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 10})
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, movieIDs(recs))
	assert.InDelta(t, 0.5, recs[0].Score, 1e-12)
	assert.InDelta(t, 1.0/3.0, recs[1].Score, 1e-12)
}

func TestForLikedNuncaIncluyeElegidas(t *testing.T) {
	b := testBundle(t)

	recs, err := ForLikedMovies(b, []int{1, 2}, LikedOptions{TopN: 10})
	require.NoError(t, err)
	ids := movieIDs(recs)
	assert.NotContains(t, ids, 1)
	assert.NotContains(t, ids, 2)
}

func TestForLikedIdsDesconocidosSeDescartan(t *testing.T) {
	b := testBundle(t)

	// solo ids desconocidos → sin referencia → lista vacía
	recs, err := ForLikedMovies(b, []int{999}, LikedOptions{TopN: 10})
	require.NoError(t, err)
	assert.Empty(t, recs)

	// mezcla: el desconocido no cambia el resultado
	conRuido, err := ForLikedMovies(b, []int{1, 999}, LikedOptions{TopN: 10})
	require.NoError(t, err)
	limpio, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 10})
	require.NoError(t, err)
	assert.Equal(t, limpio, conRuido)
}

func TestForLikedRatingFloor(t *testing.T) {
	b := testBundle(t)

	sinPiso, err := ForLikedMovies(b, []int{1, 2}, LikedOptions{TopN: 10})
	require.NoError(t, err)
	require.NotEmpty(t, sinPiso)

	// todos los promedios del escenario son 4.0: un piso de 4.5 vacía la lista
	conPiso, err := ForLikedMovies(b, []int{1, 2}, LikedOptions{TopN: 10, RatingFloor: 4.5})
	require.NoError(t, err)
	assert.Empty(t, conPiso)

	// subir el piso solo puede achicar el resultado
	conPisoBajo, err := ForLikedMovies(b, []int{1, 2}, LikedOptions{TopN: 10, RatingFloor: 3.0})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(conPiso), len(conPisoBajo))
	assert.LessOrEqual(t, len(conPisoBajo), len(sinPiso))
}

func TestForLikedPrioritizeRating(t *testing.T) {
	b := testBundle(t)

	base, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 10, Algorithm: scoring.MethodCN})
	require.NoError(t, err)

	prio, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 10, Algorithm: scoring.MethodCN, PrioritizeRating: true})
	require.NoError(t, err)

	// promedios iguales (4.0 y 4.0): la ponderación no reordena
	assert.Equal(t, movieIDs(base), movieIDs(prio))

	// score final = score × avg/escala = 1 × 4/5
	require.Len(t, prio, 2)
	assert.InDelta(t, 0.8, prio[0].Score, 1e-12)
	assert.InDelta(t, 0.8, prio[1].Score, 1e-12)
}

func TestForLikedAlgoritmoInvalido(t *testing.T) {
	b := testBundle(t)

	_, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 10, Algorithm: scoring.MethodRWR})
	assert.ErrorIs(t, err, scoring.ErrUnknownMethod)
}

func TestForLikedTopN(t *testing.T) {
	b := testBundle(t)

	recs, err := ForLikedMovies(b, []int{1}, LikedOptions{TopN: 1})
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = ForLikedMovies(b, []int{1}, LikedOptions{TopN: 0})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSimilarUsers(t *testing.T) {
	b := testBundle(t)

	// likers(m1)={u1,u2}, likers(m2)={u1,u3} → u1 comparte 2, u2 y u3 una
	users := SimilarUsers(b, []int{1, 2}, 10)
	require.Len(t, users, 3)
	assert.Equal(t, 1, users[0].UserID)
	assert.Equal(t, 2, users[0].SharedLiked)

	// empate 1–1 desempatado por userId ascendente
	assert.Equal(t, 2, users[1].UserID)
	assert.Equal(t, 3, users[2].UserID)

	top2 := SimilarUsers(b, []int{1, 2}, 2)
	assert.Len(t, top2, 2)

	assert.Empty(t, SimilarUsers(b, []int{999}, 10))
	assert.Empty(t, SimilarUsers(b, []int{1}, 0))
}
