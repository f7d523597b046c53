// Package dto holds the public-facing representations exchanged at the API
// boundary and the explicit mapping functions between them, the data
// entities, and the openlibrary payloads. Every field correspondence is
// written out once so the compiler checks the mapping.
package dto

import (
	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/data"
)

// Author is the public representation of an author. All fields are pointers
// so that absent JSON fields are distinguishable from zero values, which is
// what makes the full/partial update strategies possible.
type Author struct {
	ID        *int64  `json:"id,omitempty"`
	Key       *string `json:"key,omitempty"`
	Name      *string `json:"name,omitempty"`
	BirthYear *int32  `json:"birth_year,omitempty"`
}

// AuthorFromData maps an author entity to its public representation.
// Records with partially-known fields (e.g. authors created from openlibrary
// data with no birth date) simply omit those fields.
func AuthorFromData(author *data.Author) Author {
	return Author{
		ID:        &author.ID,
		Key:       author.Key,
		Name:      &author.Name,
		BirthYear: author.BirthYear,
	}
}

// AuthorToData maps a public author representation to an entity. The id is
// never taken from the DTO; the store owns identity.
func AuthorToData(dto Author) *data.Author {
	author := &data.Author{
		Key:       dto.Key,
		BirthYear: dto.BirthYear,
	}
	if dto.Name != nil {
		author.Name = *dto.Name
	}
	return author
}

// AuthorFromOpenLibrary maps an openlibrary author payload to a public
// author representation. The payload's own key field is deliberately not
// copied: it may be absent or carry the reference prefix, so the caller
// stamps the canonical key after mapping.
func AuthorFromOpenLibrary(remote *openlibrary.Author) Author {
	return Author{
		Name:      &remote.Name,
		BirthYear: remote.BirthYear,
	}
}

// ApplyFullAuthor overwrites every mutable field of the entity from the DTO.
// Fields absent from the DTO become null on the entity. The id is never
// touched.
func ApplyFullAuthor(dto Author, author *data.Author) {
	author.Key = dto.Key
	if dto.Name != nil {
		author.Name = *dto.Name
	} else {
		author.Name = ""
	}
	author.BirthYear = dto.BirthYear
}

// ApplyPartialAuthor overwrites only the mutable fields for which the DTO
// provides a value. Fields absent from the DTO are left untouched. The id is
// never touched.
func ApplyPartialAuthor(dto Author, author *data.Author) {
	if dto.Key != nil {
		author.Key = dto.Key
	}
	if dto.Name != nil {
		author.Name = *dto.Name
	}
	if dto.BirthYear != nil {
		author.BirthYear = dto.BirthYear
	}
}
