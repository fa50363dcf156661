package person

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"movies-backend/internal/shared"
)

// ListRequest - GET /api/v1/persons
type ListRequest struct {
	shared.PageQuery
}

func (r ListRequest) Validate() error {
	return r.PageQuery.Validate()
}

// SearchRequest - GET /api/v1/persons/search
type SearchRequest struct {
	Query string `form:"query" json:"query"`
	shared.PageQuery
}

func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Length(1, 256)),
		validation.Field(&r.PageQuery),
	)
}

type PersonFilmResponse struct {
	UUID  string   `json:"uuid"`
	Roles []string `json:"roles"`
}

type PersonResponse struct {
	UUID     string               `json:"uuid"`
	FullName string               `json:"full_name"`
	Films    []PersonFilmResponse `json:"films"`
}

func (p *Person) ToResponse() PersonResponse {
	films := make([]PersonFilmResponse, 0, len(p.Films))
	for _, f := range p.Films {
		roles := make([]string, 0, len(f.Roles))
		for _, r := range f.Roles {
			roles = append(roles, string(r))
		}
		films = append(films, PersonFilmResponse{UUID: f.ID, Roles: roles})
	}
	return PersonResponse{UUID: p.ID, FullName: p.FullName, Films: films}
}

func ToResponses(people []Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(people))
	for i := range people {
		out = append(out, people[i].ToResponse())
	}
	return out
}
