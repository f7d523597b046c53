package service

import (
	"context"
	"errors"

	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/data"
	"github.com/mvrana/libris/data/dto"
	"github.com/mvrana/libris/internal/validator"
	"github.com/mvrana/libris/repository"
)

type books interface {
	CreateBook(isbn string, requestBody dto.Book) (dto.Book, error)
	CreateBookFromOpenLibrary(ctx context.Context, isbn string) (dto.Book, error)
	GetOpenLibraryBook(ctx context.Context, isbn string) (*openlibrary.Book, error)
	GetBook(isbn string) (dto.Book, error)
	ListBooks(title string, filters data.Filters) ([]dto.Book, data.Metadata, error)
	UpdateFullBook(isbn string, requestBody dto.Book) (dto.Book, error)
	UpdatePartialBook(isbn string, requestBody dto.Book) (dto.Book, error)
	DeleteBook(isbn string) error
}

// CreateBook service creates a new book under the path-supplied isbn. Any
// isbn embedded in the request body is ignored. A nested author with an id
// must already exist; a nested author without an id is resolved through
// GetOrCreateAuthor.
func (s *service) CreateBook(isbn string, requestBody dto.Book) (dto.Book, error) {
	exists, err := s.repo.BookExists(isbn)
	if err != nil {
		return dto.Book{}, err
	}
	if exists {
		return dto.Book{}, ErrDuplicateRecord
	}
	book := dto.BookToData(requestBody)
	book.ISBN = isbn
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return dto.Book{}, failedValidation(v.Errors)
	}
	if requestBody.Author != nil {
		author, err := s.resolveAuthor(*requestBody.Author)
		if err != nil {
			return dto.Book{}, err
		}
		book.Author = author
	}
	err = s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return dto.Book{}, ErrDuplicateRecord
		default:
			return dto.Book{}, err
		}
	}
	return dto.BookFromData(book), nil
}

// CreateBookFromOpenLibrary service creates a new book from the openlibrary
// record behind the given isbn. When the record carries author references,
// the first one is resolved to a stored author; the rest are ignored. A
// missing remote record persists nothing.
func (s *service) CreateBookFromOpenLibrary(ctx context.Context, isbn string) (dto.Book, error) {
	exists, err := s.repo.BookExists(isbn)
	if err != nil {
		return dto.Book{}, err
	}
	if exists {
		return dto.Book{}, ErrDuplicateRecord
	}
	remote, err := s.catalog.GetBookByISBN(ctx, isbn)
	if err != nil {
		return dto.Book{}, s.translateCatalogError(err)
	}
	requestBody := dto.BookFromOpenLibrary(remote)
	if len(remote.Authors) > 0 {
		author, err := s.GetOrCreateAuthorFromOpenLibrary(ctx, remote.Authors[0].Key)
		if err != nil {
			return dto.Book{}, err
		}
		requestBody.Author = &author
	}
	return s.CreateBook(isbn, requestBody)
}

// GetOpenLibraryBook service fetches the raw openlibrary record for an isbn
// without persisting anything.
func (s *service) GetOpenLibraryBook(ctx context.Context, isbn string) (*openlibrary.Book, error) {
	remote, err := s.catalog.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, s.translateCatalogError(err)
	}
	return remote, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(isbn string) (dto.Book, error) {
	book, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Book{}, ErrRecordNotFound
		default:
			return dto.Book{}, err
		}
	}
	return dto.BookFromData(book), nil
}

// ListBooks service retrieves a list of paginated books. The list can be
// filtered by title and sorted.
func (s *service) ListBooks(title string, filters data.Filters) ([]dto.Book, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	books, metadata, err := s.repo.GetAllBooks(title, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	list := make([]dto.Book, 0, len(books))
	for _, book := range books {
		list = append(list, dto.BookFromData(book))
	}
	return list, metadata, nil
}

// UpdateFullBook service replaces every mutable field of a book. Fields
// absent from the request become null; the isbn never changes, even when the
// body carries a different one.
func (s *service) UpdateFullBook(isbn string, requestBody dto.Book) (dto.Book, error) {
	book, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Book{}, ErrRecordNotFound
		default:
			return dto.Book{}, err
		}
	}
	dto.ApplyFullBook(requestBody, book)
	if requestBody.Author != nil {
		author, err := s.resolveAuthor(*requestBody.Author)
		if err != nil {
			return dto.Book{}, err
		}
		book.Author = author
	}
	return s.saveBook(book)
}

// UpdatePartialBook service updates only the fields present in the request.
// Absent fields keep their stored values; the isbn never changes.
func (s *service) UpdatePartialBook(isbn string, requestBody dto.Book) (dto.Book, error) {
	book, err := s.repo.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Book{}, ErrRecordNotFound
		default:
			return dto.Book{}, err
		}
	}
	dto.ApplyPartialBook(requestBody, book)
	if requestBody.Author != nil {
		author, err := s.resolveAuthor(*requestBody.Author)
		if err != nil {
			return dto.Book{}, err
		}
		book.Author = author
	}
	return s.saveBook(book)
}

func (s *service) saveBook(book *data.Book) (dto.Book, error) {
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return dto.Book{}, failedValidation(v.Errors)
	}
	err := s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Book{}, ErrRecordNotFound
		default:
			return dto.Book{}, err
		}
	}
	return dto.BookFromData(book), nil
}

// DeleteBook service deletes a book. Deleting an absent book succeeds, so
// repeated deletes are idempotent.
func (s *service) DeleteBook(isbn string) error {
	return s.repo.DeleteBook(isbn)
}

// resolveAuthor turns a nested author representation into a stored author
// entity. A representation carrying an id refers to an existing author and
// must match one; without an id the author is resolved by key or created.
func (s *service) resolveAuthor(requestBody dto.Author) (*data.Author, error) {
	if requestBody.ID != nil {
		author, err := s.repo.GetAuthor(*requestBody.ID)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrRecordNotFound):
				return nil, ErrRecordNotFound
			default:
				return nil, err
			}
		}
		return author, nil
	}
	resolved, err := s.GetOrCreateAuthor(requestBody)
	if err != nil {
		return nil, err
	}
	author := dto.AuthorToData(resolved)
	if resolved.ID != nil {
		author.ID = *resolved.ID
	}
	return author, nil
}
