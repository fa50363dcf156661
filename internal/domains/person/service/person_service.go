package service

import (
	"context"
	"errors"
	"strings"

	"movies-backend/internal/domains/person"
	"movies-backend/internal/shared"
)

// personService implements person.Service
type personService struct {
	repo person.Repository
}

func NewPersonService(repo person.Repository) person.Service {
	return &personService{repo: repo}
}

func (s *personService) GetByID(ctx context.Context, id string) (*person.Person, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, person.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *personService) List(ctx context.Context, req person.ListRequest) (int64, []person.Person, error) {
	if err := req.Validate(); err != nil {
		return 0, nil, shared.Invalid(err)
	}
	return s.repo.List(ctx, req.Page())
}

func (s *personService) Search(ctx context.Context, req person.SearchRequest) (int64, []person.Person, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := req.Validate(); err != nil {
		if errors.Is(err, shared.ErrInvalid) {
			return 0, nil, err
		}
		return 0, nil, shared.Invalid(err)
	}
	return s.repo.Search(ctx, req.Query, req.Page())
}
