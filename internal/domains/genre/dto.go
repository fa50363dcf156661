package genre

import "movies-backend/internal/shared"

// ListRequest - GET /v1/genres
type ListRequest struct {
	shared.PageQuery
}

func (r ListRequest) Validate() error {
	return r.PageQuery.Validate()
}

// GenreResponse is the API shape of a genre.
type GenreResponse struct {
	UUID        string  `json:"uuid"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func ToResponse(g Genre) GenreResponse {
	return GenreResponse{UUID: g.ID, Name: g.Name, Description: g.Description}
}

func ToResponses(genres []Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, ToResponse(g))
	}
	return out
}
