package service

import (
	"context"
	"errors"
	"strings"

	"movies-backend/internal/domains/film"
	"movies-backend/internal/shared"
	"movies-backend/pkg/search"
)

// filmService implements film.Service
// Validates and normalises requests; the repository owns cache and store.
type filmService struct {
	repo film.Repository
}

func NewFilmService(repo film.Repository) film.Service {
	return &filmService{repo: repo}
}

func (s *filmService) GetByID(ctx context.Context, id string) (*film.Film, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, film.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *filmService) List(ctx context.Context, req film.ListRequest) (int64, []film.Film, error) {
	req.Sort = strings.TrimSpace(req.Sort)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := req.Validate(); err != nil {
		return 0, nil, invalid(err)
	}

	return s.repo.List(ctx, film.ListQuery{
		Sort:    search.ParseSort(req.SortOrDefault()),
		GenreID: req.Genre,
		Page:    req.Page(),
	})
}

func (s *filmService) Search(ctx context.Context, req film.SearchRequest) (int64, []film.Film, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := req.Validate(); err != nil {
		return 0, nil, invalid(err)
	}
	return s.repo.Search(ctx, req.Query, req.Page())
}

// invalid keeps domain validation errors as they are and wraps ozzo
// errors into shared.ErrInvalid.
func invalid(err error) error {
	if errors.Is(err, shared.ErrInvalid) {
		return err
	}
	return shared.Invalid(err)
}
