package film

// Film is the detail view of a movies document.
type Film struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	IMDBRating  *float64    `json:"imdb_rating,omitempty"`
	Genres      []GenreRef  `json:"genres"`
	Actors      []PersonRef `json:"actors"`
	Writers     []PersonRef `json:"writers"`
	Directors   []PersonRef `json:"directors"`
}

// GenreRef is a genre attached to a film. Name is empty when the document
// only carried the id and it was not resolved.
type GenreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonRef is one participant of a film. ID is empty for participants
// stored as bare display names.
type PersonRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Film document fields
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldRating      = "imdb_rating"
	FieldGenres      = "genres"
	FieldActors      = "actors"
	FieldWriters     = "writers"
	FieldDirectors   = "directors"
)

// Denormalised text fields used by relevance search, with boosts.
var SearchFields = []string{"title^3", "description^2", "actors_names", "genres_names"}

// DefaultSort orders films by rating, best first.
const DefaultSort = "-" + FieldRating

// SortableFields lists the fields accepted by the sort parameter.
var SortableFields = []string{FieldRating}

// GenreMapping is how the films index maps the genres field. A genre
// filter must target exactly one shape: Elasticsearch rejects a nested
// query whose path is not of nested type.
type GenreMapping string

const (
	GenreMappingNested  GenreMapping = "nested"  // [{"id": ..., "name": ...}]
	GenreMappingKeyword GenreMapping = "keyword" // ["<genre id>"]
)
