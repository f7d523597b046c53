package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/data"
	"github.com/mvrana/libris/data/dto"
	"github.com/mvrana/libris/internal/validator"
	"github.com/mvrana/libris/repository"
)

type authors interface {
	CreateAuthor(requestBody dto.Author) (dto.Author, error)
	GetOrCreateAuthor(requestBody dto.Author) (dto.Author, error)
	CreateAuthorFromOpenLibrary(ctx context.Context, key string) (dto.Author, error)
	GetOrCreateAuthorFromOpenLibrary(ctx context.Context, referenceKey string) (dto.Author, error)
	GetAuthor(authorID int64) (dto.Author, error)
	ListAuthors() ([]dto.Author, error)
	UpdateFullAuthor(authorID int64, requestBody dto.Author) (dto.Author, error)
	UpdatePartialAuthor(authorID int64, requestBody dto.Author) (dto.Author, error)
	DeleteAuthor(authorID int64) error
}

// CreateAuthor service creates a new author. When the request carries an
// openlibrary key, an existing author with the same key is a conflict no
// matter what the other fields hold.
func (s *service) CreateAuthor(requestBody dto.Author) (dto.Author, error) {
	author := dto.AuthorToData(requestBody)
	v := validator.New()
	if data.ValidateAuthor(v, author); !v.Valid() {
		return dto.Author{}, failedValidation(v.Errors)
	}
	if author.Key != nil {
		_, err := s.repo.GetAuthorByKey(*author.Key)
		switch {
		case err == nil:
			return dto.Author{}, ErrDuplicateRecord
		case errors.Is(err, repository.ErrRecordNotFound):
		default:
			return dto.Author{}, err
		}
	}
	err := s.repo.CreateAuthor(author)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return dto.Author{}, ErrDuplicateRecord
		default:
			return dto.Author{}, err
		}
	}
	return dto.AuthorFromData(author), nil
}

// GetOrCreateAuthor service resolves an author by its openlibrary key,
// creating one when no match exists. An existing author wins verbatim; the
// incoming fields are never merged into it.
func (s *service) GetOrCreateAuthor(requestBody dto.Author) (dto.Author, error) {
	if requestBody.Key != nil {
		author, err := s.repo.GetAuthorByKey(*requestBody.Key)
		switch {
		case err == nil:
			return dto.AuthorFromData(author), nil
		case errors.Is(err, repository.ErrRecordNotFound):
		default:
			return dto.Author{}, err
		}
	}
	return s.CreateAuthor(requestBody)
}

// CreateAuthorFromOpenLibrary service creates a new author from the
// openlibrary record behind the given key. The caller's key is stamped onto
// the author so lookups use the exact key the record was requested under.
func (s *service) CreateAuthorFromOpenLibrary(ctx context.Context, key string) (dto.Author, error) {
	_, err := s.repo.GetAuthorByKey(key)
	switch {
	case err == nil:
		return dto.Author{}, ErrDuplicateRecord
	case errors.Is(err, repository.ErrRecordNotFound):
	default:
		return dto.Author{}, err
	}
	remote, err := s.catalog.GetAuthorByKey(ctx, key)
	if err != nil {
		return dto.Author{}, s.translateCatalogError(err)
	}
	requestBody := dto.AuthorFromOpenLibrary(remote)
	requestBody.Key = &key
	return s.CreateAuthor(requestBody)
}

// GetOrCreateAuthorFromOpenLibrary service resolves an author by an
// openlibrary reference key, creating one from the remote record when no
// match exists. Reference keys may carry the "/authors/" prefix found in
// book payloads; both forms resolve to the same author.
func (s *service) GetOrCreateAuthorFromOpenLibrary(ctx context.Context, referenceKey string) (dto.Author, error) {
	key := strings.TrimPrefix(referenceKey, openlibrary.AuthorKeyPrefix)
	author, err := s.repo.GetAuthorByKey(key)
	switch {
	case err == nil:
		return dto.AuthorFromData(author), nil
	case errors.Is(err, repository.ErrRecordNotFound):
	default:
		return dto.Author{}, err
	}
	return s.CreateAuthorFromOpenLibrary(ctx, key)
}

// GetAuthor service retrieves the details of an author.
func (s *service) GetAuthor(authorID int64) (dto.Author, error) {
	author, err := s.repo.GetAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Author{}, ErrRecordNotFound
		default:
			return dto.Author{}, err
		}
	}
	return dto.AuthorFromData(author), nil
}

// ListAuthors service retrieves all authors.
func (s *service) ListAuthors() ([]dto.Author, error) {
	authors, err := s.repo.GetAllAuthors()
	if err != nil {
		return nil, err
	}
	list := make([]dto.Author, 0, len(authors))
	for _, author := range authors {
		list = append(list, dto.AuthorFromData(author))
	}
	return list, nil
}

// UpdateFullAuthor service replaces every mutable field of an author. Fields
// absent from the request become null; the id never changes.
func (s *service) UpdateFullAuthor(authorID int64, requestBody dto.Author) (dto.Author, error) {
	author, err := s.repo.GetAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Author{}, ErrRecordNotFound
		default:
			return dto.Author{}, err
		}
	}
	dto.ApplyFullAuthor(requestBody, author)
	return s.saveAuthor(author)
}

// UpdatePartialAuthor service updates only the fields present in the
// request. Absent fields keep their stored values; the id never changes.
func (s *service) UpdatePartialAuthor(authorID int64, requestBody dto.Author) (dto.Author, error) {
	author, err := s.repo.GetAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Author{}, ErrRecordNotFound
		default:
			return dto.Author{}, err
		}
	}
	dto.ApplyPartialAuthor(requestBody, author)
	return s.saveAuthor(author)
}

func (s *service) saveAuthor(author *data.Author) (dto.Author, error) {
	v := validator.New()
	if data.ValidateAuthor(v, author); !v.Valid() {
		return dto.Author{}, failedValidation(v.Errors)
	}
	err := s.repo.UpdateAuthor(author)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return dto.Author{}, ErrRecordNotFound
		case errors.Is(err, repository.ErrDuplicateRecord):
			return dto.Author{}, ErrDuplicateRecord
		default:
			return dto.Author{}, err
		}
	}
	return dto.AuthorFromData(author), nil
}

// DeleteAuthor service deletes an author. Deleting an absent author
// succeeds, so repeated deletes are idempotent.
func (s *service) DeleteAuthor(authorID int64) error {
	return s.repo.DeleteAuthor(authorID)
}

// translateCatalogError maps openlibrary client failures onto the service
// error kinds. A remote not-found keeps its not-found shape; anything else
// is an upstream failure.
func (s *service) translateCatalogError(err error) error {
	if errors.Is(err, openlibrary.ErrNotFound) {
		return ErrRecordNotFound
	}
	return errors.Join(ErrUpstreamFailure, err)
}
