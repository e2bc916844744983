// Seeder: importa los CSV estilo MovieLens (ratings.csv, movies.csv) a las
// colecciones de Mongo que usa la API. Se corre una vez antes de levantar el
// servidor (o cada vez que cambia el dataset).
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"grafoml-pc5/internal/config"
	"grafoml-pc5/internal/dataset"
	"grafoml-pc5/internal/db"
)

const batchSize = 5000

func main() {
	ratingsPath := flag.String("ratings", "res/ratings.csv", "ruta al ratings.csv")
	moviesPath := flag.String("movies", "res/movies.csv", "ruta al movies.csv")
	drop := flag.Bool("drop", false, "si true, borra las colecciones antes de importar")
	flag.Parse()

	cfg := config.Load()
	db.InitMongo(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	movies, err := dataset.LoadMoviesCSV(*moviesPath)
	if err != nil {
		log.Fatalf("[seed] error leyendo %s: %v", *moviesPath, err)
	}
	ratings, err := dataset.LoadRatingsCSV(*ratingsPath)
	if err != nil {
		log.Fatalf("[seed] error leyendo %s: %v", *ratingsPath, err)
	}
	log.Printf("[seed] %d películas, %d ratings leídos", len(movies), len(ratings))

	moviesCol := db.DB().Collection("movies")
	ratingsCol := db.DB().Collection("ratings")

	if *drop {
		if err := moviesCol.Drop(ctx); err != nil {
			log.Fatalf("[seed] drop movies: %v", err)
		}
		if err := ratingsCol.Drop(ctx); err != nil {
			log.Fatalf("[seed] drop ratings: %v", err)
		}
		log.Println("[seed] colecciones borradas")
	}

	// movies
	start := time.Now()
	for i := 0; i < len(movies); i += batchSize {
		end := i + batchSize
		if end > len(movies) {
			end = len(movies)
		}
		docs := make([]any, 0, end-i)
		for _, m := range movies[i:end] {
			docs = append(docs, m)
		}
		if _, err := moviesCol.InsertMany(ctx, docs); err != nil {
			log.Fatalf("[seed] insertando películas: %v", err)
		}
	}
	log.Printf("[seed] %d películas insertadas en %s", len(movies), time.Since(start))

	// ratings
	start = time.Now()
	for i := 0; i < len(ratings); i += batchSize {
		end := i + batchSize
		if end > len(ratings) {
			end = len(ratings)
		}
		docs := make([]any, 0, end-i)
		for _, r := range ratings[i:end] {
			docs = append(docs, r)
		}
		if _, err := ratingsCol.InsertMany(ctx, docs); err != nil {
			log.Fatalf("[seed] insertando ratings: %v", err)
		}
	}
	log.Printf("[seed] %d ratings insertados en %s", len(ratings), time.Since(start))

	log.Println("[seed] listo")
}
