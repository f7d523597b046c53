package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mvrana/libris/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(isbn string) (*data.Book, error)
	BookExists(isbn string) (bool, error)
	GetAllBooks(title string, filters data.Filters) ([]*data.Book, data.Metadata, error)
	UpdateBook(book *data.Book) error
	DeleteBook(isbn string) error
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (isbn, title, author_id)
		VALUES ($1, $2, $3)`
	var authorID *int64
	if book.Author != nil {
		authorID = &book.Author.ID
	}
	args := []interface{}{book.ISBN, book.Title, authorID}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_pkey"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetBook retrieves a book record by its isbn, together with its author when
// one is linked.
func (r *repository) GetBook(isbn string) (*data.Book, error) {
	if isbn == "" {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT b.isbn, b.title, a.id, a.key, a.name, a.birth_year
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE b.isbn = $1`
	var book data.Book
	var authorID *int64
	var authorKey *string
	var authorName *string
	var authorBirthYear *int32
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(
		&book.ISBN,
		&book.Title,
		&authorID,
		&authorKey,
		&authorName,
		&authorBirthYear,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if authorID != nil {
		book.Author = &data.Author{
			ID:        *authorID,
			Key:       authorKey,
			Name:      *authorName,
			BirthYear: authorBirthYear,
		}
	}
	return &book, nil
}

// BookExists reports whether a book record with the given isbn exists.
func (r *repository) BookExists(isbn string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`
	var exists bool
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// GetAllBooks retrieves a paginated list of book records, optionally filtered
// by title.
func (r *repository) GetAllBooks(title string, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	query := `
		SELECT count(*) OVER(), b.isbn, b.title, a.id, a.key, a.name, a.birth_year
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE (to_tsvector('simple', b.title) @@ plainto_tsquery('simple', $1) OR $1 = '')
		ORDER BY ` + filters.SortColumn() + ` ` + filters.SortDirection() + `, b.isbn ASC
		LIMIT $2 OFFSET $3`
	args := []interface{}{title, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		var authorID *int64
		var authorKey *string
		var authorName *string
		var authorBirthYear *int32
		err := rows.Scan(
			&totalRecords,
			&book.ISBN,
			&book.Title,
			&authorID,
			&authorKey,
			&authorName,
			&authorBirthYear,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		if authorID != nil {
			book.Author = &data.Author{
				ID:        *authorID,
				Key:       authorKey,
				Name:      *authorName,
				BirthYear: authorBirthYear,
			}
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// UpdateBook updates all mutable columns of a book record.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, author_id = $2
		WHERE isbn = $3`
	var authorID *int64
	if book.Author != nil {
		authorID = &book.Author.ID
	}
	args := []interface{}{book.Title, authorID, book.ISBN}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
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

// DeleteBook deletes a book record. Deleting an absent book is not an error.
func (r *repository) DeleteBook(isbn string) error {
	if isbn == "" {
		return nil
	}
	query := `
		DELETE FROM books
		WHERE isbn = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, isbn)
	return err
}
