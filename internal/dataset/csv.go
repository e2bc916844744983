// Package dataset carga y filtra la tabla de interacciones y el catálogo.
// Es el único punto donde los datos todavía son "columnas": acá se valida el
// esquema; el resto del sistema trabaja con registros tipados.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"grafoml-pc5/internal/models"
)

// ErrMissingColumn: falta una columna requerida en el archivo de entrada.
// Es fatal: no se construye grafo parcial con columnas coercionadas.
var ErrMissingColumn = errors.New("columna requerida ausente")

func columnIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

// LoadRatingsCSV lee un ratings.csv estilo MovieLens. Requiere las columnas
// userId, movieId y rating; timestamp es opcional.
func LoadRatingsCSV(path string) ([]models.RatingDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: archivo de ratings vacío", ErrMissingColumn)
	}

	idx, err := columnIndex(rows[0], []string{"userId", "movieId", "rating"})
	if err != nil {
		return nil, err
	}
	tsIdx, hasTS := idx["timestamp"]

	out := make([]models.RatingDoc, 0, len(rows)-1)
	for _, row := range rows[1:] {
		uid, err := strconv.Atoi(strings.TrimSpace(row[idx["userId"]]))
		if err != nil {
			return nil, fmt.Errorf("userId inválido %q: %w", row[idx["userId"]], err)
		}
		mid, err := strconv.Atoi(strings.TrimSpace(row[idx["movieId"]]))
		if err != nil {
			return nil, fmt.Errorf("movieId inválido %q: %w", row[idx["movieId"]], err)
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(row[idx["rating"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("rating inválido %q: %w", row[idx["rating"]], err)
		}

		doc := models.RatingDoc{UserID: uid, MovieID: mid, Rating: rating}
		if hasTS {
			doc.Timestamp, _ = strconv.ParseInt(strings.TrimSpace(row[tsIdx]), 10, 64)
		}
		out = append(out, doc)
	}
	return out, nil
}

var yearRe = regexp.MustCompile(`\((\d{4})\)\s*$`)

// SplitGenres canoniza el campo de géneros crudo (separado por | o por
// coma) a una lista limpia.
func SplitGenres(raw string) []string {
	if raw == "" || raw == "(no genres listed)" {
		return nil
	}
	sep := "|"
	if !strings.Contains(raw, "|") && strings.Contains(raw, ",") {
		sep = ","
	}
	var out []string
	for _, g := range strings.Split(raw, sep) {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

// LoadMoviesCSV lee un movies.csv estilo MovieLens. Requiere movieId y
// title; genres es opcional. El año se extrae del título si está.
func LoadMoviesCSV(path string) ([]models.MovieDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: archivo de películas vacío", ErrMissingColumn)
	}

	idx, err := columnIndex(rows[0], []string{"movieId", "title"})
	if err != nil {
		return nil, err
	}
	genresIdx, hasGenres := idx["genres"]

	out := make([]models.MovieDoc, 0, len(rows)-1)
	for _, row := range rows[1:] {
		mid, err := strconv.Atoi(strings.TrimSpace(row[idx["movieId"]]))
		if err != nil {
			return nil, fmt.Errorf("movieId inválido %q: %w", row[idx["movieId"]], err)
		}
		title := strings.TrimSpace(row[idx["title"]])

		doc := models.MovieDoc{MovieID: mid, Title: title}
		if hasGenres && genresIdx < len(row) {
			doc.Genres = SplitGenres(row[genresIdx])
		}
		if m := yearRe.FindStringSubmatch(title); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil {
				doc.Year = &y
			}
		}
		out = append(out, doc)
	}
	return out, nil
}
