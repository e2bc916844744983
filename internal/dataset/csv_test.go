package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRatingsCSV(t *testing.T) {
	path := writeTempCSV(t, "ratings.csv",
		"userId,movieId,rating,timestamp\n"+
			"1,10,4.0,964982703\n"+
			"2,10,2.5,964982931\n")

	ratings, err := LoadRatingsCSV(path)
	require.NoError(t, err)
	require.Len(t, ratings, 2)

	assert.Equal(t, 1, ratings[0].UserID)
	assert.Equal(t, 10, ratings[0].MovieID)
	assert.Equal(t, 4.0, ratings[0].Rating)
	assert.Equal(t, int64(964982703), ratings[0].Timestamp)
	assert.Equal(t, 2.5, ratings[1].Rating)
}

func TestLoadRatingsCSVSinTimestamp(t *testing.T) {
	path := writeTempCSV(t, "ratings.csv",
		"userId,movieId,rating\n1,10,4.0\n")

	ratings, err := LoadRatingsCSV(path)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Zero(t, ratings[0].Timestamp)
}

func TestLoadRatingsCSVColumnaFaltante(t *testing.T) {
	// sin columna rating: error de esquema, no coerción silenciosa
	path := writeTempCSV(t, "ratings.csv",
		"userId,movieId,score\n1,10,4.0\n")

	_, err := LoadRatingsCSV(path)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadRatingsCSVValorInvalido(t *testing.T) {
	path := writeTempCSV(t, "ratings.csv",
		"userId,movieId,rating\n1,10,alto\n")

	_, err := LoadRatingsCSV(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingColumn)
}

func TestLoadMoviesCSV(t *testing.T) {
	path := writeTempCSV(t, "movies.csv",
		"movieId,title,genres\n"+
			"1,Toy Story (1995),Adventure|Animation|Children\n"+
			"2,Documental raro,(no genres listed)\n")

	movies, err := LoadMoviesCSV(path)
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, 1, movies[0].MovieID)
	assert.Equal(t, "Toy Story (1995)", movies[0].Title)
	assert.Equal(t, []string{"Adventure", "Animation", "Children"}, movies[0].Genres)
	require.NotNil(t, movies[0].Year)
	assert.Equal(t, 1995, *movies[0].Year)

	assert.Nil(t, movies[1].Genres)
	assert.Nil(t, movies[1].Year)
}

func TestLoadMoviesCSVColumnaFaltante(t *testing.T) {
	path := writeTempCSV(t, "movies.csv",
		"movieId,name\n1,Toy Story\n")

	_, err := LoadMoviesCSV(path)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Crime"}, SplitGenres("Action|Crime"))
	assert.Equal(t, []string{"Action", "Crime"}, SplitGenres("Action, Crime"))
	assert.Nil(t, SplitGenres(""))
	assert.Nil(t, SplitGenres("(no genres listed)"))
	assert.Equal(t, []string{"Drama"}, SplitGenres("Drama"))
}
