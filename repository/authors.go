package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mvrana/libris/data"
)

type authors interface {
	CreateAuthor(author *data.Author) error
	GetAuthor(authorID int64) (*data.Author, error)
	GetAuthorByKey(key string) (*data.Author, error)
	GetAllAuthors() ([]*data.Author, error)
	UpdateAuthor(author *data.Author) error
	DeleteAuthor(authorID int64) error
}

// CreateAuthor creates a new author record and assigns its generated id.
func (r *repository) CreateAuthor(author *data.Author) error {
	query := `
		INSERT INTO authors (key, name, birth_year)
		VALUES ($1, $2, $3)
		RETURNING id`
	args := []interface{}{author.Key, author.Name, author.BirthYear}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&author.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "authors_key_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetAuthor retrieves an author record by its id.
func (r *repository) GetAuthor(authorID int64) (*data.Author, error) {
	if authorID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, key, name, birth_year
		FROM authors
		WHERE id = $1`
	var author data.Author
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, authorID).Scan(
		&author.ID,
		&author.Key,
		&author.Name,
		&author.BirthYear,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetAuthorByKey retrieves an author record by its unique openlibrary key.
func (r *repository) GetAuthorByKey(key string) (*data.Author, error) {
	if key == "" {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, key, name, birth_year
		FROM authors
		WHERE key = $1`
	var author data.Author
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&author.ID,
		&author.Key,
		&author.Name,
		&author.BirthYear,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetAllAuthors retrieves all author records.
func (r *repository) GetAllAuthors() ([]*data.Author, error) {
	query := `
		SELECT id, key, name, birth_year
		FROM authors
		ORDER BY id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := []*data.Author{}
	for rows.Next() {
		var author data.Author
		err := rows.Scan(
			&author.ID,
			&author.Key,
			&author.Name,
			&author.BirthYear,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// UpdateAuthor updates all mutable columns of an author record.
func (r *repository) UpdateAuthor(author *data.Author) error {
	query := `
		UPDATE authors
		SET key = $1, name = $2, birth_year = $3
		WHERE id = $4`
	args := []interface{}{author.Key, author.Name, author.BirthYear, author.ID}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "authors_key_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteAuthor deletes an author record. Deleting an absent author is not an
// error.
func (r *repository) DeleteAuthor(authorID int64) error {
	if authorID < 1 {
		return nil
	}
	query := `
		DELETE FROM authors
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, authorID)
	return err
}
