package data

import (
	"time"

	"github.com/mvrana/libris/internal/validator"
)

// Author defines an author record. Key holds the openlibrary author key and
// is unique across all authors when present. BirthYear is optional.
type Author struct {
	ID        int64   `json:"id"`
	Key       *string `json:"key,omitempty"`
	Name      string  `json:"name"`
	BirthYear *int32  `json:"birth_year,omitempty"`
}

func ValidateAuthor(v *validator.Validator, author *Author) {
	v.Check(author.Name != "", "name", "must be provided")
	v.Check(len(author.Name) <= 500, "name", "must not be more than 500 bytes long")
	if author.Key != nil {
		v.Check(*author.Key != "", "key", "must not be blank when provided")
	}
	if author.BirthYear != nil {
		v.Check(*author.BirthYear >= 0, "birth_year", "must be a positive number")
		v.Check(*author.BirthYear <= int32(time.Now().Year()), "birth_year", "must not be in the future")
	}
}
