package data

import (
	"github.com/mvrana/libris/internal/validator"
)

// Book defines a book record. The ISBN is client-supplied and acts as the
// primary key; it never changes after creation.
type Book struct {
	ISBN   string  `json:"isbn"`
	Title  string  `json:"title"`
	Author *Author `json:"author,omitempty"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.ISBN != "", "isbn", "must be provided")
	v.Check(len(book.ISBN) <= 17, "isbn", "must not be more than 17 characters")
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
}
