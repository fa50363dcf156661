package service

import (
	"context"
	"strings"

	"movies-backend/internal/domains/genre"
	"movies-backend/internal/shared"
)

// genreService implements genre.Service
type genreService struct {
	repo genre.Repository
}

func NewGenreService(repo genre.Repository) genre.Service {
	return &genreService{repo: repo}
}

func (s *genreService) GetByID(ctx context.Context, id string) (*genre.Genre, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, genre.ErrInvalidID
	}
	// Repository handles cache + store
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) List(ctx context.Context, req genre.ListRequest) (int64, []genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return 0, nil, shared.Invalid(err)
	}
	return s.repo.List(ctx, req.Page())
}
