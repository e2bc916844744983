package main

import (
	"context"
	"log"
	"net/http"

	_ "grafoml-pc5/docs" // swagger docs

	"grafoml-pc5/internal/cache"
	"grafoml-pc5/internal/config"
	"grafoml-pc5/internal/db"
	"grafoml-pc5/internal/handler"
	"grafoml-pc5/internal/repository"
	"grafoml-pc5/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GrafoML Movie Recommender API
// @version 1.0
// @description API para PC5 (grafo bipartito en memoria, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	movieRepo := repository.NewMovieRepository()
	ratingRepo := repository.NewRatingRepository()
	recRepo := repository.NewRecommendationRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	movieSvc := service.NewMovieService(movieRepo)
	ratingSvc := service.NewRatingService(ratingRepo, movieRepo)

	// dueño del grafo bipartito en memoria
	graphSvc := service.NewGraphService(cfg, ratingRepo, movieRepo)
	recSvc := service.NewRecommendService(graphSvc, recRepo)

	// ============================
	// Construcción inicial del grafo
	// ============================
	if _, err := graphSvc.Rebuild(context.Background()); err != nil {
		log.Fatalf("[graph] build inicial falló: %v", err)
	}

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(movieSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	recH := handler.NewRecommendHandler(recSvc)
	adminGraphH := handler.NewAdminGraphHandler(graphSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Películas (públicas)
	r.Get("/movies/{id}", movieH.GetMovie)
	r.Get("/movies/search", movieH.Search)
	r.Get("/movies/top", movieH.Top)
	r.Get("/genres", recH.GetGenres)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/ratings", ratingH.GetMyRatings)
			r.Post("/ratings", ratingH.PostMyRating)
			r.Get("/recommendations", recH.GetMyRecommendations)
			r.Get("/recommendations/history", recH.GetMyRecommendationHistory)
		})

		// recomendación por set de "me gusta" (no requiere usuario del grafo)
		r.Post("/recommendations/liked", recH.PostLikedRecommendations)
		r.Post("/recommendations/similar-users", recH.PostSimilarUsers)

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			// ratings y recomendaciones de cualquier usuario
			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/ratings", ratingH.GetRatings)
				r.Post("/ratings", ratingH.PostRating)

				// HTTP normal
				r.Get("/recommendations", recH.GetRecommendations)
				r.Get("/score", recH.GetScore)

				// WebSocket
				r.Get("/ws/recommendations", recH.GetRecommendationsWS)
			})

			// --- mantenimiento del grafo ---
			handler.MountAdminGraphRoutes(r, adminGraphH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
