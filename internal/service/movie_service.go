package service

import (
	"context"

	"grafoml-pc5/internal/models"
	"grafoml-pc5/internal/repository"
)

type MovieService struct {
	movies *repository.MovieRepository
}

func NewMovieService(m *repository.MovieRepository) *MovieService {
	return &MovieService{movies: m}
}

func (s *MovieService) GetMovie(ctx context.Context, movieID int) (*models.MovieDoc, error) {
	return s.movies.GetByID(ctx, movieID)
}

func (s *MovieService) Search(ctx context.Context, q, genre string, yearFrom, yearTo, limit, offset int) ([]models.MovieDoc, error) {
	return s.movies.Search(ctx, q, genre, yearFrom, yearTo, limit, offset)
}

func (s *MovieService) Top(ctx context.Context, metric string, limit int) ([]models.MovieDoc, error) {
	return s.movies.Top(ctx, metric, limit)
}
