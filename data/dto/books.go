package dto

import (
	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/data"
)

// Book is the public representation of a book. The author is nested as an
// Author representation (or null) rather than a bare reference.
type Book struct {
	ISBN   *string `json:"isbn,omitempty"`
	Title  *string `json:"title,omitempty"`
	Author *Author `json:"author,omitempty"`
}

// BookFromData maps a book entity to its public representation.
func BookFromData(book *data.Book) Book {
	dto := Book{
		ISBN:  &book.ISBN,
		Title: &book.Title,
	}
	if book.Author != nil {
		author := AuthorFromData(book.Author)
		dto.Author = &author
	}
	return dto
}

// BookToData maps a public book representation to an entity. The isbn is not
// taken from the DTO; callers stamp the path-supplied isbn onto the entity,
// which always wins over any isbn embedded in the body.
func BookToData(dto Book) *data.Book {
	book := &data.Book{}
	if dto.Title != nil {
		book.Title = *dto.Title
	}
	if dto.Author != nil {
		book.Author = AuthorToData(*dto.Author)
		if dto.Author.ID != nil {
			book.Author.ID = *dto.Author.ID
		}
	}
	return book
}

// BookFromOpenLibrary maps an openlibrary book payload to a public book
// representation. Only the title is carried over; author references are
// resolved separately by the caller, and the isbn comes from the request
// path.
func BookFromOpenLibrary(remote *openlibrary.Book) Book {
	return Book{
		Title: &remote.Title,
	}
}

// ApplyFullBook overwrites every mutable field of the entity from the DTO.
// Fields absent from the DTO become null on the entity. The isbn is never
// touched, even when the DTO carries one.
func ApplyFullBook(dto Book, book *data.Book) {
	if dto.Title != nil {
		book.Title = *dto.Title
	} else {
		book.Title = ""
	}
	if dto.Author != nil {
		book.Author = AuthorToData(*dto.Author)
		if dto.Author.ID != nil {
			book.Author.ID = *dto.Author.ID
		}
	} else {
		book.Author = nil
	}
}

// ApplyPartialBook overwrites only the mutable fields for which the DTO
// provides a value. Fields absent from the DTO are left untouched. The isbn
// is never touched.
func ApplyPartialBook(dto Book, book *data.Book) {
	if dto.Title != nil {
		book.Title = *dto.Title
	}
	if dto.Author != nil {
		book.Author = AuthorToData(*dto.Author)
		if dto.Author.ID != nil {
			book.Author.ID = *dto.Author.ID
		}
	}
}
