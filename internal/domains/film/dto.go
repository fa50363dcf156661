package film

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"movies-backend/internal/shared"
)

// ListRequest - GET /api/v1/films
type ListRequest struct {
	Sort  string `form:"sort" json:"sort"`
	Genre string `form:"genre" json:"genre"`
	shared.PageQuery
}

// allowedSorts accepts every sortable field in both directions.
func allowedSorts() []interface{} {
	out := make([]interface{}, 0, 2*len(SortableFields))
	for _, f := range SortableFields {
		out = append(out, f, "-"+f)
	}
	return out
}

func (r ListRequest) Validate() error {
	if err := validation.Validate(r.Sort, validation.In(allowedSorts()...)); err != nil {
		return ErrInvalidSort
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Genre, validation.Length(0, 64)),
		validation.Field(&r.PageQuery),
	)
}

// SortOrDefault returns the requested sort or DefaultSort.
func (r ListRequest) SortOrDefault() string {
	if r.Sort == "" {
		return DefaultSort
	}
	return r.Sort
}

// SearchRequest - GET /api/v1/films/search
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

// ════════════════════════════════════════════════════════════════
// RESPONSES
// ════════════════════════════════════════════════════════════════

// FilmShortResponse is the list/search item.
type FilmShortResponse struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

type GenreShortResponse struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type PersonShortResponse struct {
	UUID     string `json:"uuid"`
	FullName string `json:"full_name"`
}

// FilmDetailResponse is the GET /films/:film_id payload.
type FilmDetailResponse struct {
	UUID        string                `json:"uuid"`
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	IMDBRating  *float64              `json:"imdb_rating"`
	Genres      []GenreShortResponse  `json:"genres"`
	Actors      []PersonShortResponse `json:"actors"`
	Writers     []PersonShortResponse `json:"writers"`
	Directors   []PersonShortResponse `json:"directors"`
}

func (f *Film) ToShortResponse() FilmShortResponse {
	return FilmShortResponse{UUID: f.ID, Title: f.Title, IMDBRating: f.IMDBRating}
}

func (f *Film) ToDetailResponse() FilmDetailResponse {
	genres := make([]GenreShortResponse, 0, len(f.Genres))
	for _, g := range f.Genres {
		genres = append(genres, GenreShortResponse{UUID: g.ID, Name: g.Name})
	}
	return FilmDetailResponse{
		UUID:        f.ID,
		Title:       f.Title,
		Description: f.Description,
		IMDBRating:  f.IMDBRating,
		Genres:      genres,
		Actors:      toPersonResponses(f.Actors),
		Writers:     toPersonResponses(f.Writers),
		Directors:   toPersonResponses(f.Directors),
	}
}

func toPersonResponses(people []PersonRef) []PersonShortResponse {
	out := make([]PersonShortResponse, 0, len(people))
	for _, p := range people {
		out = append(out, PersonShortResponse{UUID: p.ID, FullName: p.FullName})
	}
	return out
}

func ToShortResponses(films []Film) []FilmShortResponse {
	out := make([]FilmShortResponse, 0, len(films))
	for i := range films {
		out = append(out, films[i].ToShortResponse())
	}
	return out
}
