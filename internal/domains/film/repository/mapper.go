package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"movies-backend/internal/domains/film"
	"movies-backend/internal/domains/genre"
	"movies-backend/internal/shared"
	"movies-backend/internal/shared/document"
)

// GenreLookup resolves bare genre ids found in film documents.
type GenreLookup interface {
	GetByID(ctx context.Context, id string) (*genre.Genre, error)
}

// mapper turns raw movies documents into films.
// Required: id, title. Everything else is repaired: scalars where a list
// is expected read as empty lists, unnamed participants are dropped.
type mapper struct {
	genres GenreLookup
}

// toFilm maps raw. With resolve set, genres stored as bare ids are looked
// up through the genre repository; otherwise they keep only their id.
func (m *mapper) toFilm(ctx context.Context, raw json.RawMessage, resolve bool) (*film.Film, error) {
	f, err := document.Decode(raw)
	if err != nil {
		return nil, err
	}
	id, err := f.RequiredString(film.FieldID)
	if err != nil {
		return nil, fmt.Errorf("film: %w", err)
	}
	title, err := f.RequiredString(film.FieldTitle)
	if err != nil {
		return nil, fmt.Errorf("film %s: %w", id, err)
	}

	genres, err := m.genreRefs(ctx, id, f, resolve)
	if err != nil {
		return nil, err
	}

	return &film.Film{
		ID:          id,
		Title:       title,
		Description: f.OptionalString(film.FieldDescription),
		IMDBRating:  f.OptionalFloat(film.FieldRating),
		Genres:      genres,
		Actors:      personRefs(f, film.FieldActors),
		Writers:     personRefs(f, film.FieldWriters),
		Directors:   personRefs(f, film.FieldDirectors),
	}, nil
}

func (m *mapper) genreRefs(ctx context.Context, filmID string, f document.Fields, resolve bool) ([]film.GenreRef, error) {
	refs := f.Refs(film.FieldGenres, "name")
	out := make([]film.GenreRef, 0, len(refs))
	for _, ref := range refs {
		id := ref.ID
		if ref.IsScalar() {
			id = ref.Scalar
		}
		if ref.Name != "" {
			out = append(out, film.GenreRef{ID: id, Name: ref.Name})
			continue
		}
		if id == "" {
			continue
		}
		if !resolve || m.genres == nil {
			out = append(out, film.GenreRef{ID: id})
			continue
		}

		g, err := m.genres.GetByID(ctx, id)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			log.Warn().Str("film_id", filmID).Str("genre_id", id).Msg("film references unknown genre")
			continue
		case err != nil:
			return nil, err
		}
		out = append(out, film.GenreRef{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

// personRefs reads a participant list. Objects contribute id and name or
// full_name, and keep their id when the name is missing; bare strings are
// display names with no id.
func personRefs(f document.Fields, field string) []film.PersonRef {
	refs := f.Refs(field, "name", "full_name")
	out := make([]film.PersonRef, 0, len(refs))
	for _, ref := range refs {
		switch {
		case ref.IsScalar():
			out = append(out, film.PersonRef{FullName: ref.Scalar})
		case ref.ID != "" || ref.Name != "":
			out = append(out, film.PersonRef{ID: ref.ID, FullName: ref.Name})
		default:
			log.Debug().Str("field", field).Msg("dropping participant with neither id nor name")
		}
	}
	return out
}
