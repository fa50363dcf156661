package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"movies-backend/internal/domains/person"
	"movies-backend/internal/shared"
	"movies-backend/internal/shared/document"
	"movies-backend/pkg/search"
)

// filmRoleResolver implements person.RoleResolver over the movies index.
type filmRoleResolver struct {
	store search.DocumentStore
	index string
	limit int
}

// NewFilmRoleResolver creates a resolver reading up to limit films per
// person from filmsIndex.
func NewFilmRoleResolver(store search.DocumentStore, filmsIndex string, limit int) person.RoleResolver {
	return &filmRoleResolver{store: store, index: filmsIndex, limit: limit}
}

// rolesQuery matches films listing personID under any role.
func rolesQuery(personID string) search.Query {
	should := make([]search.Query, 0, len(person.Roles))
	for _, role := range person.Roles {
		should = append(should, search.Nested{
			Path:  role.Field(),
			Query: search.Term{Field: role.Field() + ".id", Value: personID},
		})
	}
	return search.Bool{Should: should, MinimumShouldMatch: 1}
}

func (r *filmRoleResolver) PersonFilms(ctx context.Context, personID string) ([]person.PersonFilm, error) {
	res, err := r.store.Search(ctx, r.index, search.Request{Query: rolesQuery(personID), Size: r.limit})
	if err != nil {
		log.Error().Err(err).Str("index", r.index).Str("person_id", personID).Msg("person films query failed")
		return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
	}

	films := make([]person.PersonFilm, 0, len(res.Hits))
	seen := make(map[string]int, len(res.Hits))
	for _, hit := range res.Hits {
		doc, err := document.Decode(hit.Source)
		if err != nil {
			log.Warn().Err(err).Str("id", hit.ID).Msg("skipping malformed film document")
			continue
		}
		filmID := doc.String("id")
		if filmID == "" {
			filmID = hit.ID
		}

		// The match itself is not trusted: roles come from the lists.
		roles := rolesIn(doc, personID)
		if len(roles) == 0 {
			continue
		}

		if i, ok := seen[filmID]; ok {
			for _, role := range roles {
				if !films[i].HasRole(role) {
					films[i].Roles = append(films[i].Roles, role)
				}
			}
			continue
		}
		seen[filmID] = len(films)
		films = append(films, person.PersonFilm{ID: filmID, Roles: roles})
	}

	if res.Total > int64(len(res.Hits)) {
		log.Warn().Str("person_id", personID).Int64("total", res.Total).Int("limit", r.limit).
			Msg("person films truncated")
	}
	return films, nil
}

// rolesIn scans every role list of a film document for personID.
func rolesIn(doc document.Fields, personID string) []person.Role {
	var roles []person.Role
	for _, role := range person.Roles {
		for _, ref := range doc.Refs(role.Field(), "name", "full_name") {
			if ref.ID == personID {
				roles = append(roles, role)
				break
			}
		}
	}
	return roles
}
